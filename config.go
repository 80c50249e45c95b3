package domsift

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/domsift/capture"
	"github.com/hazyhaar/domsift/snapshot"
)

// Config holds all domsift configuration.
type Config struct {
	// DBPath is the SQLite file for persisted runs. Empty disables
	// persistence; every analysis is then returned but not recorded.
	DBPath string `yaml:"db_path"`
	// KeepRuns caps the number of persisted runs; older ones are pruned
	// after each insert. Zero keeps everything.
	KeepRuns int `yaml:"keep_runs"`

	Analyze AnalyzeConfig  `yaml:"analyze"`
	Capture capture.Config `yaml:"capture"`
}

// AnalyzeConfig controls report building.
type AnalyzeConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

func (c *Config) defaults() {
	if c.Analyze.MaxDepth <= 0 {
		c.Analyze.MaxDepth = snapshot.DefaultMaxDepth
	}
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
