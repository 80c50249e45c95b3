package analyze

import (
	"strconv"
	"strings"

	"github.com/hazyhaar/domsift/snapshot"
)

// Signature fingerprints a node's coarse structure as
// "tag:class.list:childCount", e.g. "button:btn.btn-primary:0".
// Class order is preserved from the document — "a b" and "b a" are
// different signatures on purpose, since class order is stable within
// one page and reordering usually means different authorship. Text,
// attributes and geometry are deliberately excluded so that repeated
// structures with varying content still collide.
func Signature(n *snapshot.Node) string {
	var b strings.Builder
	b.WriteString(n.Tag)
	b.WriteByte(':')
	for i, c := range n.Classes {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(c)
	}
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(len(n.Children)))
	return b.String()
}
