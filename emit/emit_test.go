package emit

import (
	"strings"
	"testing"

	"github.com/hazyhaar/domsift/analyze"
	"github.com/hazyhaar/domsift/tokens"
)

func TestTailwindConfig(t *testing.T) {
	p := tokens.Palette{
		Colors:      []string{"rgb(59, 130, 246)", "rgb(1, 2, 3)", "rgb(255, 255, 255)"},
		FontSizes:   []string{"14px", "15px"}, // both resolve to sm: one entry
		FontWeights: []string{"600"},
		Spacing:     []string{"8px 16px", "16px"},
		Radii:       []string{"6px", "8px"}, // both md: one entry
		Shadows:     []string{"rgba(0, 0, 0, 0.1) 0px 1px 3px 0px"},
	}

	cfg, err := New().TailwindConfig(p)
	if err != nil {
		t.Fatalf("TailwindConfig: %v", err)
	}

	for _, want := range []string{
		"'blue-500': 'rgb(59, 130, 246)'",
		"'custom-1': 'rgb(1, 2, 3)'", // off-palette keeps a positional name
		"'white': 'rgb(255, 255, 255)'",
		"'sm': '14px'",
		"'semibold': '600'",
		"'2': '8px'", // shorthand "8px 16px" resolves by leading magnitude
		"'4': '16px'",
		"'md': '6px'",
		"'shadow-1':",
	} {
		if !strings.Contains(cfg, want) {
			t.Errorf("config missing %q\n%s", want, cfg)
		}
	}
	if strings.Count(cfg, "'sm':") != 1 {
		t.Error("14px and 15px produced separate sm entries")
	}
}

func TestComponentsButtons(t *testing.T) {
	m := &analyze.ComponentMap{
		Buttons: []analyze.ButtonDescriptor{
			{Component: analyze.Component{Name: "save"}, Variant: "default", Size: "default"},
			{Component: analyze.Component{Name: "cancel"}, Variant: "ghost", Size: "sm"},
		},
	}
	files, err := New().Components(m)
	if err != nil {
		t.Fatalf("Components: %v", err)
	}
	src, ok := files["Button.tsx"]
	if !ok {
		t.Fatalf("Button.tsx missing; got %v", keys(files))
	}
	if !strings.Contains(src, "variant = 'default'") {
		t.Error("default variant not wired")
	}
	if !strings.Contains(src, "'default' | 'ghost'") {
		t.Errorf("variant union wrong:\n%s", src)
	}
	if !strings.Contains(src, "ghost: 'bg-transparent") {
		t.Error("ghost variant classes missing")
	}
	// Only categories with instances produce files.
	if _, ok := files["Modal.tsx"]; ok {
		t.Error("empty modal category emitted a file")
	}
}

// WHAT: page-derived names are neutralized before landing in source.
func TestComponentsSanitizesNames(t *testing.T) {
	m := &analyze.ComponentMap{
		Forms: []analyze.Component{
			{Name: `<script>alert('x')</script>login`},
		},
	}
	files, err := New().Components(m)
	if err != nil {
		t.Fatalf("Components: %v", err)
	}
	src := files["Form.tsx"]
	if strings.Contains(src, "<script>") || strings.Contains(src, "alert('x')") {
		t.Errorf("hostile name leaked into source:\n%s", src)
	}
	if !strings.Contains(src, "login") {
		t.Error("legitimate remainder of the name lost")
	}
}

func TestBundle(t *testing.T) {
	rep := &analyze.Report{
		Components: []analyze.Component{
			{Name: "buy", Tag: "button", Classes: []string{"btn", "btn-primary"}, Type: analyze.TypeButton},
			{Name: "product", Tag: "div", Classes: []string{"card"}, ChildCount: 3, Type: analyze.TypeCard},
		},
		DesignTokens: tokens.Palette{Colors: []string{"rgb(59, 130, 246)"}},
	}
	files, err := New().Bundle(rep)
	if err != nil {
		t.Fatalf("Bundle: %v", err)
	}
	for _, want := range []string{"tailwind.config.js", "Button.tsx", "Card.tsx"} {
		if _, ok := files[want]; !ok {
			t.Errorf("bundle missing %s; got %v", want, keys(files))
		}
	}
	if strings.Contains(files["Card.tsx"], "footer?") == false {
		t.Error("card with 3 children should expose a footer slot")
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
