package analyze

import "github.com/hazyhaar/domsift/snapshot"

// DetectPatterns groups every node in the tree by structural signature
// and returns the groups that occurred more than once. Counts cover all
// occurrences; examples keep only the first maxPatternExamples in
// pre-order, enough to show what the pattern looks like without
// retaining the whole tree.
func DetectPatterns(root *snapshot.Node, maxDepth int) (map[string]Pattern, bool) {
	groups := make(map[string]*Pattern)

	truncated := snapshot.Walk(root, maxDepth, func(n *snapshot.Node, _ int) {
		sig := Signature(n)
		g := groups[sig]
		if g == nil {
			g = &Pattern{}
			groups[sig] = g
		}
		g.Count++
		if len(g.Examples) < maxPatternExamples {
			g.Examples = append(g.Examples, PatternExample{
				Name:    componentName(n),
				Tag:     n.Tag,
				ID:      n.ID,
				Classes: n.Classes,
			})
		}
	})

	repeated := make(map[string]Pattern, len(groups))
	for sig, g := range groups {
		if g.Count > 1 {
			repeated[sig] = *g
		}
	}
	return repeated, truncated
}
