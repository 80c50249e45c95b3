// Package analyze derives semantic structure from a captured snapshot
// tree: component detection and classification, layout containers,
// repeated structural patterns, landmark sections and the design-token
// palette, gathered into one Report.
//
// Every scan is a pure function of the input tree. Analyze never
// mutates the snapshot, takes no clock and no I/O, and produces the
// same Report for the same tree on every run.
package analyze

import (
	"github.com/hazyhaar/domsift/tokens"
)

// SemanticType is the closed set of roles a component can be assigned.
type SemanticType string

const (
	TypeButton     SemanticType = "button"
	TypeNavigation SemanticType = "navigation"
	TypeForm       SemanticType = "form"
	TypeInput      SemanticType = "input"
	TypeImage      SemanticType = "image"
	TypeCard       SemanticType = "card"
	TypeModal      SemanticType = "modal"
	TypeHeader     SemanticType = "header"
	TypeFooter     SemanticType = "footer"
	TypeSidebar    SemanticType = "sidebar"
	TypeContainer  SemanticType = "container"
)

// Component is one component-like node: named, fingerprinted and
// assigned a semantic type.
type Component struct {
	Name           string       `json:"name"`
	Tag            string       `json:"tag"`
	ID             string       `json:"id,omitempty"`
	Classes        []string     `json:"classes,omitempty"`
	Signature      string       `json:"signature"`
	ChildCount     int          `json:"child_count"`
	HasInteractive bool         `json:"has_interactive"`
	Type           SemanticType `json:"type"`
}

// LayoutType is the coarse layout mechanism a container establishes.
type LayoutType string

const (
	LayoutFlex  LayoutType = "flex"
	LayoutGrid  LayoutType = "grid"
	LayoutBlock LayoutType = "block"
)

// Layout describes one layout-establishing container and the subset of
// its style that matters for reproducing the arrangement.
type Layout struct {
	Tag       string     `json:"tag"`
	ID        string     `json:"id,omitempty"`
	Classes   []string   `json:"classes,omitempty"`
	Signature string     `json:"signature"`
	Type      LayoutType `json:"type"`
	Direction string     `json:"direction,omitempty"`
	Justify   string     `json:"justify,omitempty"`
	Align     string     `json:"align,omitempty"`
	Gap       string     `json:"gap,omitempty"`
	Columns   string     `json:"columns,omitempty"`
	Rows      string     `json:"rows,omitempty"`
	Width     string     `json:"width,omitempty"`
	Height    string     `json:"height,omitempty"`
}

// Section is a page landmark: a header, nav, main, aside or footer
// region found by tag or ARIA role.
type Section struct {
	Tag        string   `json:"tag"`
	Role       string   `json:"role"`
	ID         string   `json:"id,omitempty"`
	Classes    []string `json:"classes,omitempty"`
	Signature  string   `json:"signature"`
	ChildCount int      `json:"child_count"`
}

// PatternExample identifies one concrete occurrence of a repeated
// structural pattern.
type PatternExample struct {
	Name    string   `json:"name"`
	Tag     string   `json:"tag"`
	ID      string   `json:"id,omitempty"`
	Classes []string `json:"classes,omitempty"`
}

// maxPatternExamples caps stored occurrences per pattern. The count
// keeps the true total.
const maxPatternExamples = 3

// Pattern is one structural signature that occurred more than once.
type Pattern struct {
	Count    int              `json:"count"`
	Examples []PatternExample `json:"examples"`
}

// Report is the complete analysis of one snapshot tree. Identical
// inputs yield identical Reports; there are no timestamps or generated
// identifiers here.
type Report struct {
	Components       []Component        `json:"components"`
	Layouts          []Layout           `json:"layouts"`
	DesignTokens     tokens.Palette     `json:"design_tokens"`
	RepeatedPatterns map[string]Pattern `json:"repeated_patterns"`
	Sections         []Section          `json:"sections"`
	Truncated        bool               `json:"truncated,omitempty"`
}

// ComponentsOf returns the components of one semantic type, in the
// report's document order.
func (r *Report) ComponentsOf(t SemanticType) []Component {
	var out []Component
	for _, c := range r.Components {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}
