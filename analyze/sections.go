package analyze

import (
	"strings"

	"github.com/hazyhaar/domsift/snapshot"
)

// landmarkTags maps semantic HTML elements to their landmark role.
var landmarkTags = map[string]string{
	"header": "header",
	"nav":    "nav",
	"main":   "main",
	"aside":  "aside",
	"footer": "footer",
}

// landmarkRoles maps ARIA landmark roles onto the same vocabulary, so a
// <div role="banner"> and a <header> produce identical sections.
var landmarkRoles = map[string]string{
	"banner":        "header",
	"navigation":    "nav",
	"main":          "main",
	"complementary": "aside",
	"contentinfo":   "footer",
}

// sectionRole resolves a node's landmark role, or "" for none. The tag
// wins over a contradictory role attribute.
func sectionRole(n *snapshot.Node) string {
	if role, ok := landmarkTags[strings.ToLower(n.Tag)]; ok {
		return role
	}
	if role, ok := landmarkRoles[strings.ToLower(n.Attr("role"))]; ok {
		return role
	}
	return ""
}

// ScanSections collects every landmark node in pre-order. Unlike
// components there is no eligibility gate: a bare <footer> with no id
// and no classes is still page structure worth reporting.
func ScanSections(root *snapshot.Node, maxDepth int) ([]Section, bool) {
	var sections []Section
	truncated := snapshot.Walk(root, maxDepth, func(n *snapshot.Node, _ int) {
		role := sectionRole(n)
		if role == "" {
			return
		}
		sections = append(sections, Section{
			Tag:        n.Tag,
			Role:       role,
			ID:         n.ID,
			Classes:    n.Classes,
			Signature:  Signature(n),
			ChildCount: len(n.Children),
		})
	})
	return sections, truncated
}
