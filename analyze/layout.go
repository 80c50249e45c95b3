package analyze

import "github.com/hazyhaar/domsift/snapshot"

// ClassifyLayout inspects a node's display property and describes the
// layout it establishes, or returns nil for nodes that establish none
// (display:none, inline, absent style). Only the properties relevant to
// each mechanism are carried over.
func ClassifyLayout(n *snapshot.Node) *Layout {
	switch n.StyleValue("display") {
	case "flex":
		l := &Layout{
			Tag:       n.Tag,
			ID:        n.ID,
			Classes:   n.Classes,
			Signature: Signature(n),
			Type:      LayoutFlex,
			Direction: n.StyleValue("flexDirection"),
			Justify:   n.StyleValue("justifyContent"),
			Align:     n.StyleValue("alignItems"),
			Gap:       n.StyleValue("gap"),
		}
		if l.Direction == "" {
			l.Direction = "row"
		}
		return l
	case "grid":
		return &Layout{
			Tag:       n.Tag,
			ID:        n.ID,
			Classes:   n.Classes,
			Signature: Signature(n),
			Type:      LayoutGrid,
			Columns:   n.StyleValue("gridTemplateColumns"),
			Rows:      n.StyleValue("gridTemplateRows"),
			Gap:       n.StyleValue("gap"),
		}
	case "block", "inline-block":
		return &Layout{
			Tag:       n.Tag,
			ID:        n.ID,
			Classes:   n.Classes,
			Signature: Signature(n),
			Type:      LayoutBlock,
			Width:     n.StyleValue("width"),
			Height:    n.StyleValue("height"),
		}
	}
	return nil
}

// ScanLayouts collects a Layout for every layout-establishing node in
// pre-order.
func ScanLayouts(root *snapshot.Node, maxDepth int) ([]Layout, bool) {
	var layouts []Layout
	truncated := snapshot.Walk(root, maxDepth, func(n *snapshot.Node, _ int) {
		if l := ClassifyLayout(n); l != nil {
			layouts = append(layouts, *l)
		}
	})
	return layouts, truncated
}
