package analyze

import (
	"testing"
)

func TestSignature(t *testing.T) {
	a := node("button", "", []string{"btn", "btn-primary"})
	if got := Signature(a); got != "button:btn.btn-primary:0" {
		t.Fatalf("signature = %q", got)
	}

	// Same shape, different text: identical signatures.
	b := node("button", "", []string{"btn", "btn-primary"})
	b.Text = "completely different label"
	if Signature(a) != Signature(b) {
		t.Error("text changed the signature")
	}

	// Any of the three inputs differing must change the signature.
	if Signature(node("a", "", []string{"btn", "btn-primary"})) == Signature(a) {
		t.Error("tag ignored")
	}
	if Signature(node("button", "", []string{"btn"})) == Signature(a) {
		t.Error("class list ignored")
	}
	withChild := node("button", "", []string{"btn", "btn-primary"}, node("span", "", nil))
	if Signature(withChild) == Signature(a) {
		t.Error("child count ignored")
	}

	// Class order is significant.
	if Signature(node("button", "", []string{"btn-primary", "btn"})) == Signature(a) {
		t.Error("class order ignored")
	}
}

func TestDetectPatternsUniqueTree(t *testing.T) {
	root := node("body", "", nil,
		node("header", "", nil),
		node("main", "", []string{"content"}),
	)
	patterns, truncated := DetectPatterns(root, 0)
	if truncated {
		t.Fatal("unexpected truncation")
	}
	if len(patterns) != 0 {
		t.Errorf("unique tree produced patterns: %v", patterns)
	}
}

func TestDetectPatternsSiblingPair(t *testing.T) {
	root := node("ul", "", nil,
		node("li", "", []string{"item"}),
		node("li", "", []string{"item"}),
	)
	patterns, _ := DetectPatterns(root, 0)
	p, ok := patterns["li:item:0"]
	if !ok {
		t.Fatalf("missing li pattern; got %v", patterns)
	}
	if p.Count != 2 || len(p.Examples) != 2 {
		t.Errorf("count=%d examples=%d, want 2/2", p.Count, len(p.Examples))
	}
}

// WHAT: counts keep growing past the example cap; examples stop at 3.
func TestDetectPatternsExampleCap(t *testing.T) {
	root := node("div", "grid", nil)
	for i := 0; i < 7; i++ {
		root.Children = append(root.Children, node("div", "", []string{"cell"}))
	}
	patterns, _ := DetectPatterns(root, 0)
	p := patterns["div:cell:0"]
	if p.Count != 7 {
		t.Errorf("count = %d, want 7", p.Count)
	}
	if len(p.Examples) != maxPatternExamples {
		t.Errorf("examples = %d, want %d", len(p.Examples), maxPatternExamples)
	}
	if p.Examples[0].Name != "cell" {
		t.Errorf("example name = %q, want cell", p.Examples[0].Name)
	}
}
