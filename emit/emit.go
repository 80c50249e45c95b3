// Package emit renders analysis output into source artifacts: a
// Tailwind config populated from the design-token palette and one
// component stub per detected category.
//
// Emitters return name→content maps; writing files is the caller's
// business. Every string that originated in the analyzed page passes
// through a strict sanitizer before it lands in generated source.
package emit

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/microcosm-cc/bluemonday"

	"github.com/hazyhaar/domsift/analyze"
	"github.com/hazyhaar/domsift/tokens"
)

// Emitter renders reports. Safe for concurrent use.
type Emitter struct {
	quant  *tokens.Quantizer
	policy *bluemonday.Policy
}

// New creates an Emitter with its own quantizer.
func New() *Emitter {
	return &Emitter{
		quant:  tokens.NewQuantizer(),
		policy: bluemonday.StrictPolicy(),
	}
}

// Bundle renders everything a report yields: the Tailwind config plus
// one stub per non-empty component category.
func (e *Emitter) Bundle(rep *analyze.Report) (map[string]string, error) {
	out := make(map[string]string)

	cfg, err := e.TailwindConfig(rep.DesignTokens)
	if err != nil {
		return nil, err
	}
	out["tailwind.config.js"] = cfg

	files, err := e.Components(analyze.BuildComponentMap(rep))
	if err != nil {
		return nil, err
	}
	for name, content := range files {
		out[name] = content
	}
	return out, nil
}

// entry is one name/value pair in the generated config.
type entry struct {
	Name  string
	Value string
}

type tailwindData struct {
	Colors      []entry
	Spacing     []entry
	FontSizes   []entry
	FontWeights []entry
	Radii       []entry
	Shadows     []entry
}

// radiusValues maps band names back to a representative pixel value.
var radiusValues = map[string]string{
	"sm":   "4px",
	"md":   "6px",
	"lg":   "12px",
	"xl":   "16px",
	"full": "9999px",
}

// TailwindConfig renders the palette into a utility-class config.
// Values that resolve on a scale keep their scale name; the rest get
// stable positional names so nothing observed is dropped.
func (e *Emitter) TailwindConfig(p tokens.Palette) (string, error) {
	data := tailwindData{
		Colors:      e.named(tokens.CategoryColor, p.Colors, "custom"),
		FontWeights: e.named(tokens.CategoryFontWeight, p.FontWeights, "weight"),
		Spacing:     e.scaled(tokens.CategorySpacing, p.Spacing, tokens.SpacingScale()),
		FontSizes:   e.scaled(tokens.CategoryFontSize, p.FontSizes, tokens.FontSizeScale()),
	}
	seen := map[string]bool{}
	for _, raw := range p.Radii {
		name, ok := e.quant.Name(tokens.CategoryRadius, raw)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		data.Radii = append(data.Radii, entry{Name: name, Value: radiusValues[name]})
	}
	for i, raw := range p.Shadows {
		data.Shadows = append(data.Shadows, entry{
			Name:  fmt.Sprintf("shadow-%d", i+1),
			Value: e.cleanValue(raw),
		})
	}

	var buf bytes.Buffer
	if err := tailwindTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("emit: tailwind config: %w", err)
	}
	return buf.String(), nil
}

// named resolves exact-dictionary categories; unnamed values get
// positional "<prefix>-N" names in palette order.
func (e *Emitter) named(cat tokens.Category, raws []string, prefix string) []entry {
	var out []entry
	seen := map[string]bool{}
	unnamed := 0
	for _, raw := range raws {
		name, ok := e.quant.Name(cat, raw)
		if !ok {
			unnamed++
			name = fmt.Sprintf("%s-%d", prefix, unnamed)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, entry{Name: name, Value: e.cleanValue(raw)})
	}
	return out
}

// scaled resolves nearest-scale categories; the emitted value is the
// scale stop's canonical pixel size, not the raw (a "8px 16px" padding
// shorthand resolves to spacing "2" at 8px).
func (e *Emitter) scaled(cat tokens.Category, raws []string, scale []tokens.ScaleEntry) []entry {
	px := make(map[string]int, len(scale))
	for _, s := range scale {
		px[s.Name] = s.Px
	}
	var out []entry
	seen := map[string]bool{}
	for _, raw := range raws {
		name, ok := e.quant.Name(cat, raw)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, entry{Name: name, Value: fmt.Sprintf("%dpx", px[name])})
	}
	return out
}

// Components renders one stub per non-empty category.
func (e *Emitter) Components(m *analyze.ComponentMap) (map[string]string, error) {
	out := make(map[string]string)

	if len(m.Buttons) > 0 {
		variants := map[string]bool{}
		var order []string
		names := make([]string, 0, len(m.Buttons))
		for _, b := range m.Buttons {
			if !variants[b.Variant] {
				variants[b.Variant] = true
				order = append(order, b.Variant)
			}
			names = append(names, e.clean(b.Name))
		}
		if err := render(out, "Button.tsx", buttonTmpl, struct {
			Count          int
			Names          []string
			Variants       []string
			HasVariant     map[string]bool
			DefaultVariant string
		}{len(m.Buttons), names, order, variants, order[0]}); err != nil {
			return nil, err
		}
	}

	if len(m.Cards) > 0 {
		hasFooter := false
		names := make([]string, 0, len(m.Cards))
		for _, c := range m.Cards {
			hasFooter = hasFooter || c.HasFooter
			names = append(names, e.clean(c.Name))
		}
		if err := render(out, "Card.tsx", cardTmpl, struct {
			Count     int
			Names     []string
			HasFooter bool
		}{len(m.Cards), names, hasFooter}); err != nil {
			return nil, err
		}
	}

	if len(m.Navigation) > 0 {
		layout := m.Navigation[0].Layout
		layoutClass := map[analyze.LayoutType]string{
			analyze.LayoutFlex:  "flex",
			analyze.LayoutGrid:  "grid grid-flow-col",
			analyze.LayoutBlock: "block",
		}[layout]
		if err := render(out, "Navigation.tsx", navTmpl, struct {
			Count       int
			Layout      string
			LayoutClass string
		}{len(m.Navigation), string(layout), layoutClass}); err != nil {
			return nil, err
		}
	}

	if len(m.Forms) > 0 {
		names := make([]string, 0, len(m.Forms))
		for _, f := range m.Forms {
			names = append(names, e.clean(f.Name))
		}
		if err := render(out, "Form.tsx", formTmpl, struct {
			Count int
			Names []string
		}{len(m.Forms), names}); err != nil {
			return nil, err
		}
	}

	if len(m.Inputs) > 0 {
		types := map[string]bool{}
		var order []string
		for _, in := range m.Inputs {
			if !types[in.InputType] {
				types[in.InputType] = true
				order = append(order, in.InputType)
			}
		}
		if err := render(out, "Input.tsx", inputTmpl, struct {
			Count       int
			Types       []string
			DefaultType string
		}{len(m.Inputs), order, order[0]}); err != nil {
			return nil, err
		}
	}

	if len(m.Modals) > 0 {
		names := make([]string, 0, len(m.Modals))
		for _, mo := range m.Modals {
			names = append(names, e.clean(mo.Name))
		}
		if err := render(out, "Modal.tsx", modalTmpl, struct {
			Count int
			Names []string
		}{len(m.Modals), names}); err != nil {
			return nil, err
		}
	}

	if len(m.Layouts) > 0 {
		var flex, grid, block int
		for _, l := range m.Layouts {
			switch l.Type {
			case analyze.LayoutFlex:
				flex++
			case analyze.LayoutGrid:
				grid++
			case analyze.LayoutBlock:
				block++
			}
		}
		if err := render(out, "Layout.tsx", layoutTmpl, struct {
			Count      int
			FlexCount  int
			GridCount  int
			BlockCount int
		}{len(m.Layouts), flex, grid, block}); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func render(out map[string]string, name string, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("emit: %s: %w", name, err)
	}
	out[name] = buf.String()
	return nil
}

// clean neutralizes page-derived text before it lands in a generated
// comment or identifier position.
func (e *Emitter) clean(s string) string {
	s = e.policy.Sanitize(s)
	s = strings.NewReplacer("'", "", "\"", "", "`", "", "\\", "", "\n", " ", "\r", " ").Replace(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return "unnamed"
	}
	return s
}

// cleanValue neutralizes a raw style value for a quoted JS string
// position. Legitimate computed values never contain quotes.
func (e *Emitter) cleanValue(s string) string {
	return e.clean(s)
}
