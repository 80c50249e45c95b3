package analyze

import (
	"testing"

	"github.com/hazyhaar/domsift/snapshot"
)

func styledNode(tag string, style map[string]string) *snapshot.Node {
	return &snapshot.Node{Tag: tag, Style: style}
}

func TestClassifyLayoutFlexDefaults(t *testing.T) {
	// WHAT: flex with no flexDirection set reports direction "row", the
	// CSS initial value.
	l := ClassifyLayout(styledNode("div", map[string]string{"display": "flex"}))
	if l == nil || l.Type != LayoutFlex {
		t.Fatalf("layout = %+v, want flex", l)
	}
	if l.Direction != "row" {
		t.Errorf("direction = %q, want row", l.Direction)
	}

	l = ClassifyLayout(styledNode("div", map[string]string{
		"display":        "flex",
		"flexDirection":  "column",
		"justifyContent": "space-between",
		"alignItems":     "center",
		"gap":            "16px",
	}))
	if l.Direction != "column" || l.Justify != "space-between" || l.Align != "center" || l.Gap != "16px" {
		t.Errorf("flex fields not carried: %+v", l)
	}
}

func TestClassifyLayoutGrid(t *testing.T) {
	l := ClassifyLayout(styledNode("div", map[string]string{
		"display":             "grid",
		"gridTemplateColumns": "repeat(3, 1fr)",
		"gap":                 "24px",
	}))
	if l == nil || l.Type != LayoutGrid {
		t.Fatalf("layout = %+v, want grid", l)
	}
	if l.Columns != "repeat(3, 1fr)" || l.Gap != "24px" {
		t.Errorf("grid fields not carried: %+v", l)
	}
}

func TestClassifyLayoutBlock(t *testing.T) {
	for _, display := range []string{"block", "inline-block"} {
		l := ClassifyLayout(styledNode("div", map[string]string{
			"display": display,
			"width":   "640px",
		}))
		if l == nil || l.Type != LayoutBlock || l.Width != "640px" {
			t.Errorf("display %q: layout = %+v", display, l)
		}
	}
}

func TestClassifyLayoutExclusions(t *testing.T) {
	for _, display := range []string{"none", "inline", "contents", ""} {
		if l := ClassifyLayout(styledNode("div", map[string]string{"display": display})); l != nil {
			t.Errorf("display %q produced a layout: %+v", display, l)
		}
	}
	if l := ClassifyLayout(&snapshot.Node{Tag: "div"}); l != nil {
		t.Errorf("styleless node produced a layout: %+v", l)
	}
}

func TestScanLayouts(t *testing.T) {
	root := node("body", "", nil,
		styledNode("div", map[string]string{"display": "flex"}),
		styledNode("div", map[string]string{"display": "none"}),
		styledNode("section", map[string]string{"display": "grid"}),
	)
	layouts, _ := ScanLayouts(root, 0)
	if len(layouts) != 2 {
		t.Fatalf("layouts = %d, want 2", len(layouts))
	}
	if layouts[0].Type != LayoutFlex || layouts[1].Type != LayoutGrid {
		t.Errorf("order or types wrong: %+v", layouts)
	}
}
