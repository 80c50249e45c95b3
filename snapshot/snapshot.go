// Package snapshot defines the serialized DOM tree that the analysis
// pipeline consumes, and the bounded traversal every stage uses.
//
// A snapshot is produced either by the capture package (live Chrome via
// go-rod, with computed styles and layout geometry) or by FromHTML
// (static markup, inline styles only, zero geometry). Both yield the
// same Node shape, so every downstream stage is agnostic to the origin.
package snapshot

// Rect is the border-box geometry of a node at capture time, in CSS
// pixels relative to the viewport. Static HTML ingestion leaves it zero.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
	Top    int `json:"top"`
	Left   int `json:"left"`
	Bottom int `json:"bottom"`
	Right  int `json:"right"`
}

// Area returns the rect surface in square pixels.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Node is one element of a captured DOM tree. Fields mirror what the
// in-page serializer emits: tag names are lowercase, class order follows
// the document, and Style holds camel-cased computed (or inline) style
// properties such as "backgroundColor" or "flexDirection".
type Node struct {
	Tag           string            `json:"tag"`
	ID            string            `json:"id,omitempty"`
	Classes       []string          `json:"classes,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	Rect          Rect              `json:"rect"`
	Style         map[string]string `json:"style,omitempty"`
	Text          string            `json:"text,omitempty"`
	IsVisible     bool              `json:"is_visible"`
	IsInteractive bool              `json:"is_interactive"`
	Children      []*Node           `json:"children,omitempty"`
}

// Attr returns the named attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	if n.Attributes == nil {
		return ""
	}
	return n.Attributes[name]
}

// StyleValue returns the named style property, or "" when absent.
func (n *Node) StyleValue(prop string) string {
	if n.Style == nil {
		return ""
	}
	return n.Style[prop]
}
