package snapshot

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// maxTextLen caps the direct text captured per node. Long copy adds
// nothing to structural analysis.
const maxTextLen = 160

// skipTags are subtrees that never contribute renderable structure.
var skipTags = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
}

// interactiveTags mark a node interactive by element name alone.
var interactiveTags = map[string]bool{
	"a":        true,
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
	"details":  true,
	"summary":  true,
}

// interactiveRoles mark a node interactive via its ARIA role.
var interactiveRoles = map[string]bool{
	"button":   true,
	"link":     true,
	"checkbox": true,
	"radio":    true,
	"tab":      true,
	"menuitem": true,
	"switch":   true,
	"textbox":  true,
	"combobox": true,
	"slider":   true,
}

// FromHTML parses static markup into a snapshot tree rooted at <body>.
// Inline style attributes become the node Style map (properties
// camel-cased, hex colors rewritten to the rgb() form computed styles
// use); geometry stays zero because nothing was rendered. The parser
// tolerates malformed markup the way browsers do.
func FromHTML(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("snapshot: parse html: %w", err)
	}
	body := findElement(doc, atom.Body)
	if body == nil {
		// html.Parse synthesizes a body for any input; this is belt
		// and braces for exotic documents like framesets.
		body = findElement(doc, atom.Html)
	}
	if body == nil {
		return nil, fmt.Errorf("snapshot: parse html: no document element")
	}
	return convert(body), nil
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func convert(el *html.Node) *Node {
	n := &Node{Tag: strings.ToLower(el.Data)}

	for _, a := range el.Attr {
		switch a.Key {
		case "id":
			n.ID = a.Val
		case "class":
			n.Classes = strings.Fields(a.Val)
		case "style":
			n.Style = parseInlineStyle(a.Val)
		default:
			if n.Attributes == nil {
				n.Attributes = make(map[string]string)
			}
			n.Attributes[a.Key] = a.Val
		}
	}

	n.Text = directText(el)
	n.IsInteractive = isInteractive(n)
	n.IsVisible = isVisible(n)

	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || skipTags[c.DataAtom] {
			continue
		}
		n.Children = append(n.Children, convert(c))
	}
	return n
}

// directText joins the element's immediate text children, whitespace
// collapsed, clamped to maxTextLen runes.
func directText(el *html.Node) string {
	var parts []string
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode {
			continue
		}
		if t := strings.TrimSpace(c.Data); t != "" {
			parts = append(parts, t)
		}
	}
	text := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	if runes := []rune(text); len(runes) > maxTextLen {
		text = string(runes[:maxTextLen])
	}
	return text
}

func isInteractive(n *Node) bool {
	if interactiveTags[n.Tag] {
		return true
	}
	if interactiveRoles[strings.ToLower(n.Attr("role"))] {
		return true
	}
	return n.Attr("onclick") != ""
}

func isVisible(n *Node) bool {
	if _, hidden := n.Attributes["hidden"]; hidden {
		return false
	}
	if n.Tag == "input" && strings.EqualFold(n.Attr("type"), "hidden") {
		return false
	}
	if n.StyleValue("display") == "none" || n.StyleValue("visibility") == "hidden" {
		return false
	}
	return true
}

// parseInlineStyle splits a style attribute into camel-cased properties.
// "background-color: #fff; padding:8px" becomes
// {"backgroundColor": "rgb(255, 255, 255)", "padding": "8px"}.
func parseInlineStyle(raw string) map[string]string {
	style := make(map[string]string)
	for _, decl := range strings.Split(raw, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		val = strings.TrimSpace(val)
		if prop == "" || val == "" {
			continue
		}
		style[camelProperty(prop)] = normalizeColor(val)
	}
	if len(style) == 0 {
		return nil
	}
	return style
}

// camelProperty converts a CSS property name to the camel-cased form
// computed-style serialization uses: "flex-direction" -> "flexDirection".
func camelProperty(prop string) string {
	if !strings.Contains(prop, "-") {
		return prop
	}
	parts := strings.Split(prop, "-")
	var b strings.Builder
	first := true
	for _, p := range parts {
		if p == "" {
			continue
		}
		if first {
			b.WriteString(p)
			first = false
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// normalizeColor rewrites #rgb and #rrggbb literals to the "rgb(r, g, b)"
// form that computed styles report, so both capture paths feed identical
// values to token extraction. Anything else passes through unchanged.
func normalizeColor(val string) string {
	if !strings.HasPrefix(val, "#") {
		return val
	}
	hex := val[1:]
	switch len(hex) {
	case 3:
		var expanded strings.Builder
		for _, c := range hex {
			expanded.WriteRune(c)
			expanded.WriteRune(c)
		}
		hex = expanded.String()
	case 6:
		// Already full form.
	default:
		return val
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return val
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", (v>>16)&0xff, (v>>8)&0xff, v&0xff)
}
