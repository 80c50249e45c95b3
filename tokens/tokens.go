// Package tokens extracts the distinct style values used across a
// snapshot tree and resolves them to names on fixed design scales.
//
// Extraction collects raw computed-style strings; quantization is a
// separate, memoized step so callers can keep exact values (for audit)
// and scale names (for emission) side by side.
package tokens

import "github.com/hazyhaar/domsift/snapshot"

// transparentBackground is the computed-style literal for an unset
// background. It carries no design intent and is never collected.
const transparentBackground = "rgba(0, 0, 0, 0)"

// Palette holds the distinct raw style values observed in one tree,
// each list in first-seen document order. Lists hold exact strings as
// serialized by the browser; see Quantizer for scale names.
type Palette struct {
	Colors      []string `json:"colors"`
	FontSizes   []string `json:"font_sizes"`
	FontWeights []string `json:"font_weights"`
	Spacing     []string `json:"spacing"`
	Radii       []string `json:"radii"`
	Shadows     []string `json:"shadows"`
}

// Empty reports whether no token of any category was collected.
func (p Palette) Empty() bool {
	return len(p.Colors) == 0 && len(p.FontSizes) == 0 &&
		len(p.FontWeights) == 0 && len(p.Spacing) == 0 &&
		len(p.Radii) == 0 && len(p.Shadows) == 0
}

// orderedSet collapses duplicates while keeping first-seen order, so
// the same tree always yields the same palette.
type orderedSet struct {
	seen map[string]bool
	vals []string
}

func (s *orderedSet) add(v string) {
	if v == "" {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[v] {
		return
	}
	s.seen[v] = true
	s.vals = append(s.vals, v)
}

// Extract walks the tree once and accumulates the palette. Transparent
// backgrounds, zero radii and "none" shadows are skipped; text color is
// collected unconditionally. The bool reports depth truncation.
func Extract(root *snapshot.Node, maxDepth int) (Palette, bool) {
	var colors, fontSizes, fontWeights, spacing, radii, shadows orderedSet

	truncated := snapshot.Walk(root, maxDepth, func(n *snapshot.Node, _ int) {
		if len(n.Style) == 0 {
			return
		}
		if v := n.Style["backgroundColor"]; v != "" && v != transparentBackground {
			colors.add(v)
		}
		colors.add(n.Style["color"])
		fontSizes.add(n.Style["fontSize"])
		fontWeights.add(n.Style["fontWeight"])
		spacing.add(n.Style["padding"])
		spacing.add(n.Style["margin"])
		if v := n.Style["borderRadius"]; v != "" && v != "0px" {
			radii.add(v)
		}
		if v := n.Style["boxShadow"]; v != "" && v != "none" {
			shadows.add(v)
		}
	})

	return Palette{
		Colors:      colors.vals,
		FontSizes:   fontSizes.vals,
		FontWeights: fontWeights.vals,
		Spacing:     spacing.vals,
		Radii:       radii.vals,
		Shadows:     shadows.vals,
	}, truncated
}
