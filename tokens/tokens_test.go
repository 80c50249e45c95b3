package tokens

import (
	"reflect"
	"testing"

	"github.com/hazyhaar/domsift/snapshot"
)

func styled(tag string, style map[string]string, children ...*snapshot.Node) *snapshot.Node {
	return &snapshot.Node{Tag: tag, Style: style, Children: children}
}

func TestExtract(t *testing.T) {
	root := styled("body", map[string]string{
		"backgroundColor": "rgb(255, 255, 255)",
		"color":           "rgb(17, 24, 39)",
		"fontSize":        "16px",
	},
		styled("button", map[string]string{
			"backgroundColor": "rgb(59, 130, 246)",
			"color":           "rgb(255, 255, 255)",
			"fontSize":        "14px",
			"fontWeight":      "500",
			"padding":         "8px 16px",
			"borderRadius":    "6px",
			"boxShadow":       "rgba(0, 0, 0, 0.1) 0px 1px 3px 0px",
		}),
		styled("button", map[string]string{
			// Duplicate of the first button: nothing new may appear.
			"backgroundColor": "rgb(59, 130, 246)",
			"fontSize":        "14px",
			"padding":         "8px 16px",
		}),
		styled("span", map[string]string{
			// All three skip rules at once.
			"backgroundColor": "rgba(0, 0, 0, 0)",
			"borderRadius":    "0px",
			"boxShadow":       "none",
		}),
	)

	p, truncated := Extract(root, 0)
	if truncated {
		t.Fatal("unexpected truncation")
	}

	wantColors := []string{"rgb(255, 255, 255)", "rgb(17, 24, 39)", "rgb(59, 130, 246)"}
	if !reflect.DeepEqual(p.Colors, wantColors) {
		t.Errorf("colors = %v, want %v", p.Colors, wantColors)
	}
	if !reflect.DeepEqual(p.FontSizes, []string{"16px", "14px"}) {
		t.Errorf("font sizes = %v", p.FontSizes)
	}
	if !reflect.DeepEqual(p.FontWeights, []string{"500"}) {
		t.Errorf("font weights = %v", p.FontWeights)
	}
	if !reflect.DeepEqual(p.Spacing, []string{"8px 16px"}) {
		t.Errorf("spacing = %v", p.Spacing)
	}
	if !reflect.DeepEqual(p.Radii, []string{"6px"}) {
		t.Errorf("radii = %v", p.Radii)
	}
	if len(p.Shadows) != 1 {
		t.Errorf("shadows = %v, want one entry", p.Shadows)
	}
}

// WHAT: the skip rules drop decorative defaults, not real values.
func TestExtractSkipRules(t *testing.T) {
	root := styled("div", map[string]string{
		"backgroundColor": "rgba(0, 0, 0, 0)",
		"borderRadius":    "0px",
		"boxShadow":       "none",
	})
	p, _ := Extract(root, 0)
	if !p.Empty() {
		t.Errorf("palette not empty: %+v", p)
	}
}

func TestExtractFirstSeenOrder(t *testing.T) {
	// WHY: palette order is part of the report contract; emitters assign
	// positional fallback names from it.
	root := styled("div", map[string]string{"color": "rgb(1, 1, 1)"},
		styled("a", map[string]string{"color": "rgb(2, 2, 2)"}),
		styled("b", map[string]string{"color": "rgb(1, 1, 1)"}),
		styled("c", map[string]string{"color": "rgb(3, 3, 3)"}),
	)
	p, _ := Extract(root, 0)
	want := []string{"rgb(1, 1, 1)", "rgb(2, 2, 2)", "rgb(3, 3, 3)"}
	if !reflect.DeepEqual(p.Colors, want) {
		t.Errorf("colors = %v, want %v", p.Colors, want)
	}
}

func TestExtractEmptyTree(t *testing.T) {
	p, truncated := Extract(nil, 0)
	if truncated || !p.Empty() {
		t.Errorf("nil tree: palette=%+v truncated=%v", p, truncated)
	}
}
