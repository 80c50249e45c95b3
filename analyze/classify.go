package analyze

import (
	"strings"

	"github.com/hazyhaar/domsift/snapshot"
)

// rule is one classification heuristic. Tag matches are exact; class
// and id keywords are substring matches against the space-joined
// lowercase class string and the lowercase id.
type rule struct {
	Type          SemanticType
	Tags          []string
	ClassKeywords []string
	IDKeywords    []string
}

// classificationRules is evaluated top to bottom; the first match wins.
// Priority is deliberate — a <button class="nav"> is a button, not
// navigation — so the order here is part of the contract, not styling.
var classificationRules = []rule{
	{Type: TypeButton, Tags: []string{"button"}, ClassKeywords: []string{"button"}, IDKeywords: []string{"btn"}},
	{Type: TypeNavigation, Tags: []string{"nav"}, ClassKeywords: []string{"nav", "menu"}},
	{Type: TypeForm, Tags: []string{"form"}, ClassKeywords: []string{"form"}},
	{Type: TypeInput, Tags: []string{"input", "select", "textarea"}},
	{Type: TypeImage, Tags: []string{"img", "picture"}},
	{Type: TypeCard, Tags: []string{"card"}, ClassKeywords: []string{"card"}},
	{Type: TypeModal, Tags: []string{"modal"}, ClassKeywords: []string{"modal", "dialog"}},
	{Type: TypeHeader, Tags: []string{"header"}, IDKeywords: []string{"header"}},
	{Type: TypeFooter, Tags: []string{"footer"}, IDKeywords: []string{"footer"}},
	{Type: TypeSidebar, Tags: []string{"aside"}, IDKeywords: []string{"sidebar"}},
}

func (r rule) matches(tag, classes, id string) bool {
	for _, t := range r.Tags {
		if tag == t {
			return true
		}
	}
	for _, kw := range r.ClassKeywords {
		if strings.Contains(classes, kw) {
			return true
		}
	}
	for _, kw := range r.IDKeywords {
		if id != "" && strings.Contains(id, kw) {
			return true
		}
	}
	return false
}

// Classify assigns a semantic type to any node. Total: every node gets
// exactly one of the eleven types, with container as the fallback.
func Classify(n *snapshot.Node) SemanticType {
	tag := strings.ToLower(n.Tag)
	classes := strings.ToLower(strings.Join(n.Classes, " "))
	id := strings.ToLower(n.ID)
	for _, r := range classificationRules {
		if r.matches(tag, classes, id) {
			return r.Type
		}
	}
	return TypeContainer
}

// Eligible reports whether a node is component-like: it carries an
// identity (id or classes) and either has children or sits inside the
// interactive closure (itself included — a bare <button> has no
// descendants but is plainly a component).
func Eligible(n *snapshot.Node) bool {
	if n.ID == "" && len(n.Classes) == 0 {
		return false
	}
	return len(n.Children) > 0 || HasInteractive(n)
}

// HasInteractive reports whether n or any node beneath it is
// interactive. Depth-bounded like every other traversal.
func HasInteractive(n *snapshot.Node) bool {
	found := false
	snapshot.Walk(n, 0, func(m *snapshot.Node, _ int) {
		if m.IsInteractive {
			found = true
		}
	})
	return found
}

// ScanComponents collects a Component for every eligible node in
// pre-order. Ineligible nodes are skipped entirely; they may still
// surface in layouts or sections.
func ScanComponents(root *snapshot.Node, maxDepth int) ([]Component, bool) {
	var components []Component
	truncated := snapshot.Walk(root, maxDepth, func(n *snapshot.Node, _ int) {
		if !Eligible(n) {
			return
		}
		components = append(components, Component{
			Name:           componentName(n),
			Tag:            n.Tag,
			ID:             n.ID,
			Classes:        n.Classes,
			Signature:      Signature(n),
			ChildCount:     len(n.Children),
			HasInteractive: HasInteractive(n),
			Type:           Classify(n),
		})
	})
	return components, truncated
}

// componentName derives a stable display name: the id when present,
// else the first class token stripped of non-alphanumerics, else
// "<tag>Component".
func componentName(n *snapshot.Node) string {
	if n.ID != "" {
		return n.ID
	}
	if len(n.Classes) > 0 {
		if s := stripNonAlnum(n.Classes[0]); s != "" {
			return s
		}
	}
	return n.Tag + "Component"
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
