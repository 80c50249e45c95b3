package analyze

import (
	"testing"
)

func TestScanSections(t *testing.T) {
	banner := node("div", "top", nil)
	banner.Attributes = map[string]string{"role": "banner"}

	root := node("body", "", nil,
		node("header", "site-header", []string{"sticky"}),
		node("nav", "", []string{"navbar"}),
		node("main", "", nil,
			node("div", "", []string{"content"}), // not a landmark
		),
		banner,
		node("footer", "", nil),
	)

	sections, _ := ScanSections(root, 0)
	if len(sections) != 5 {
		t.Fatalf("sections = %d, want 5", len(sections))
	}

	roles := make([]string, len(sections))
	for i, s := range sections {
		roles[i] = s.Role
	}
	want := []string{"header", "nav", "main", "header", "footer"}
	for i := range want {
		if roles[i] != want[i] {
			t.Fatalf("roles = %v, want %v", roles, want)
		}
	}

	// ARIA equivalent normalized onto the tag vocabulary.
	if sections[3].Tag != "div" || sections[3].Role != "header" {
		t.Errorf("role=banner div: %+v", sections[3])
	}
	// No eligibility gate: the bare footer still shows up.
	if sections[4].Tag != "footer" {
		t.Errorf("bare footer missing: %+v", sections[4])
	}
}
