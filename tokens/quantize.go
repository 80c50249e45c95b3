package tokens

import (
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Category selects which dictionary a raw value is resolved against.
type Category string

const (
	CategoryColor      Category = "color"
	CategorySpacing    Category = "spacing"
	CategoryFontSize   Category = "font-size"
	CategoryFontWeight Category = "font-weight"
	CategoryRadius     Category = "radius"
)

// ScaleEntry is one named stop on a pixel scale.
type ScaleEntry struct {
	Px   int
	Name string
}

// spacingScale and fontSizeScale are declared in ascending pixel order.
// Nearest-match resolution keeps the FIRST minimal distance it sees, so
// a value equidistant between two stops resolves to the smaller one:
// 10px sits between 8px and 12px and names "2". That rule is part of
// the output contract; reorder nothing here.
var spacingScale = []ScaleEntry{
	{0, "0"}, {4, "1"}, {8, "2"}, {12, "3"}, {16, "4"}, {20, "5"},
	{24, "6"}, {32, "8"}, {40, "10"}, {48, "12"}, {64, "16"},
}

var fontSizeScale = []ScaleEntry{
	{12, "xs"}, {14, "sm"}, {16, "base"}, {18, "lg"}, {20, "xl"},
	{24, "2xl"}, {30, "3xl"}, {36, "4xl"}, {48, "5xl"}, {60, "6xl"},
}

// colorNames resolves exact rgb() strings only. Colors get no nearest
// fallback: naming an off-palette color after its closest neighbor
// would misreport the design, so unmatched colors stay unnamed and the
// emitter falls back to positional names.
var colorNames = map[string]string{
	"rgb(255, 255, 255)": "white",
	"rgb(0, 0, 0)":       "black",
	"rgb(249, 250, 251)": "gray-50",
	"rgb(243, 244, 246)": "gray-100",
	"rgb(229, 231, 235)": "gray-200",
	"rgb(209, 213, 219)": "gray-300",
	"rgb(156, 163, 175)": "gray-400",
	"rgb(107, 114, 128)": "gray-500",
	"rgb(75, 85, 99)":    "gray-600",
	"rgb(55, 65, 81)":    "gray-700",
	"rgb(31, 41, 55)":    "gray-800",
	"rgb(17, 24, 39)":    "gray-900",
	"rgb(254, 226, 226)": "red-100",
	"rgb(239, 68, 68)":   "red-500",
	"rgb(220, 38, 38)":   "red-600",
	"rgb(249, 115, 22)":  "orange-500",
	"rgb(234, 179, 8)":   "yellow-500",
	"rgb(34, 197, 94)":   "green-500",
	"rgb(22, 163, 74)":   "green-600",
	"rgb(16, 185, 129)":  "emerald-500",
	"rgb(20, 184, 166)":  "teal-500",
	"rgb(6, 182, 212)":   "cyan-500",
	"rgb(14, 165, 233)":  "sky-500",
	"rgb(219, 234, 254)": "blue-100",
	"rgb(59, 130, 246)":  "blue-500",
	"rgb(37, 99, 235)":   "blue-600",
	"rgb(29, 78, 216)":   "blue-700",
	"rgb(99, 102, 241)":  "indigo-500",
	"rgb(139, 92, 246)":  "violet-500",
	"rgb(168, 85, 247)":  "purple-500",
	"rgb(236, 72, 153)":  "pink-500",
}

// fontWeightNames resolves exact computed weight values.
var fontWeightNames = map[string]string{
	"100":    "thin",
	"200":    "extralight",
	"300":    "light",
	"400":    "normal",
	"500":    "medium",
	"600":    "semibold",
	"700":    "bold",
	"800":    "extrabold",
	"900":    "black",
	"normal": "normal",
	"bold":   "bold",
}

// SpacingScale returns a copy of the spacing dictionary, for emitters
// that enumerate the full scale.
func SpacingScale() []ScaleEntry {
	out := make([]ScaleEntry, len(spacingScale))
	copy(out, spacingScale)
	return out
}

// FontSizeScale returns a copy of the font-size dictionary.
func FontSizeScale() []ScaleEntry {
	out := make([]ScaleEntry, len(fontSizeScale))
	copy(out, fontSizeScale)
	return out
}

// memoSize bounds the quantizer cache. Pages rarely use more than a few
// dozen distinct values per category.
const memoSize = 512

// Quantizer resolves raw style values to scale names. Resolution is
// pure; the LRU memo only short-circuits repeated lookups when one
// quantizer is shared across many reports. Safe for concurrent use.
type Quantizer struct {
	memo *lru.Cache[string, string]
}

// NewQuantizer returns a ready quantizer with a warm-empty memo.
func NewQuantizer() *Quantizer {
	cache, err := lru.New[string, string](memoSize)
	if err != nil {
		// lru.New fails only for a non-positive size.
		panic(err)
	}
	return &Quantizer{memo: cache}
}

// Name resolves raw to its scale name for the category. ok is false
// when the value has no mapping — an off-palette color, an unparsable
// magnitude — which is an expected outcome, not an error.
func (q *Quantizer) Name(cat Category, raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	key := string(cat) + "|" + raw
	if v, hit := q.memo.Get(key); hit {
		return v, v != ""
	}
	name, ok := resolve(cat, raw)
	if !ok {
		name = "" // cached miss
	}
	q.memo.Add(key, name)
	return name, ok
}

func resolve(cat Category, raw string) (string, bool) {
	switch cat {
	case CategoryColor:
		name, ok := colorNames[raw]
		return name, ok
	case CategoryFontWeight:
		name, ok := fontWeightNames[raw]
		return name, ok
	case CategorySpacing:
		return nearest(spacingScale, raw)
	case CategoryFontSize:
		return nearest(fontSizeScale, raw)
	case CategoryRadius:
		return radiusName(raw)
	}
	return "", false
}

// nearest resolves raw's leading pixel magnitude to the closest scale
// stop. Strict less-than keeps the first (smaller) stop on ties.
func nearest(scale []ScaleEntry, raw string) (string, bool) {
	px, ok := leadingPx(raw)
	if !ok {
		return "", false
	}
	best := -1
	bestDist := 0
	for i, e := range scale {
		d := px - e.Px
		if d < 0 {
			d = -d
		}
		if best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return scale[best].Name, true
}

// leadingPx parses the leading unsigned integer of a value like "12px"
// or the shorthand "8px 16px". False when no digit leads.
func leadingPx(raw string) (int, bool) {
	i := 0
	for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(raw[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// radiusName maps border radii into coarse bands rather than a nearest
// scale: real pages cluster tightly here, and 9999px means "pill".
func radiusName(raw string) (string, bool) {
	switch raw {
	case "", "0", "0px":
		return "", false
	case "4px":
		return "sm", true
	case "6px", "8px":
		return "md", true
	case "12px":
		return "lg", true
	case "16px":
		return "xl", true
	case "9999px":
		return "full", true
	}
	// Any other nonzero radius lands in the middle band.
	return "md", true
}
