package analyze

import "strings"

// ComponentMap regroups a report by emit category, with the derived
// properties each category's templates need. Every derivation is total:
// missing signals resolve to the documented default, never an error.
type ComponentMap struct {
	Buttons    []ButtonDescriptor `json:"buttons"`
	Forms      []Component        `json:"forms"`
	Navigation []NavDescriptor    `json:"navigation"`
	Cards      []CardDescriptor   `json:"cards"`
	Modals     []Component        `json:"modals"`
	Layouts    []Layout           `json:"layouts"`
	Inputs     []InputDescriptor  `json:"inputs"`
}

// ButtonDescriptor adds the variant and size a button template selects on.
type ButtonDescriptor struct {
	Component
	Variant string `json:"variant"`
	Size    string `json:"size"`
}

// InputDescriptor adds the resolved input type.
type InputDescriptor struct {
	Component
	InputType string `json:"input_type"`
}

// CardDescriptor adds whether the card is big enough to have a footer slot.
type CardDescriptor struct {
	Component
	HasFooter bool `json:"has_footer"`
}

// NavDescriptor pairs a nav landmark with the layout its classes suggest.
type NavDescriptor struct {
	Section
	Layout LayoutType `json:"layout"`
}

// BuildComponentMap derives the category map from a finished report.
// Buttons, forms, cards, modals and inputs come from components by
// semantic type; navigation comes from nav-role sections; layouts pass
// through unchanged.
func BuildComponentMap(r *Report) *ComponentMap {
	m := &ComponentMap{}
	if r == nil {
		return m
	}
	for _, c := range r.Components {
		switch c.Type {
		case TypeButton:
			m.Buttons = append(m.Buttons, ButtonDescriptor{
				Component: c,
				Variant:   buttonVariant(c.Classes),
				Size:      buttonSize(c.Classes),
			})
		case TypeForm:
			m.Forms = append(m.Forms, c)
		case TypeCard:
			m.Cards = append(m.Cards, CardDescriptor{
				Component: c,
				HasFooter: c.ChildCount > 2,
			})
		case TypeModal:
			m.Modals = append(m.Modals, c)
		case TypeInput:
			m.Inputs = append(m.Inputs, InputDescriptor{
				Component: c,
				InputType: inputType(c.Classes),
			})
		}
	}
	for _, s := range r.Sections {
		if s.Role != "nav" {
			continue
		}
		m.Navigation = append(m.Navigation, NavDescriptor{
			Section: s,
			Layout:  navLayout(s.Classes),
		})
	}
	m.Layouts = append(m.Layouts, r.Layouts...)
	return m
}

func joined(classes []string) string {
	return strings.ToLower(strings.Join(classes, " "))
}

// buttonVariant maps class keywords onto the fixed variant vocabulary.
// Order matters: "primary" beats a stray "ghost" further down the list.
func buttonVariant(classes []string) string {
	s := joined(classes)
	switch {
	case strings.Contains(s, "primary"):
		return "default"
	case strings.Contains(s, "secondary"):
		return "outline"
	case strings.Contains(s, "danger"), strings.Contains(s, "destructive"):
		return "destructive"
	case strings.Contains(s, "ghost"):
		return "ghost"
	}
	return "default"
}

func buttonSize(classes []string) string {
	s := joined(classes)
	switch {
	case strings.Contains(s, "lg"):
		return "lg"
	case strings.Contains(s, "sm"):
		return "sm"
	}
	return "default"
}

func inputType(classes []string) string {
	s := joined(classes)
	switch {
	case strings.Contains(s, "email"):
		return "email"
	case strings.Contains(s, "password"):
		return "password"
	case strings.Contains(s, "search"):
		return "search"
	case strings.Contains(s, "number"):
		return "number"
	}
	return "text"
}

func navLayout(classes []string) LayoutType {
	s := joined(classes)
	switch {
	case strings.Contains(s, "grid"):
		return LayoutGrid
	case strings.Contains(s, "flex"):
		return LayoutFlex
	case strings.Contains(s, "block"):
		return LayoutBlock
	}
	return LayoutFlex
}
