// Package classify categorizes code points as ordinary text, standard
// whitespace, or invisible watermark characters from a fixed registry.
package classify

import (
	"github.com/dshills/textwash/internal/engine/buffer"
)

// Category is the classification of a single code point.
type Category uint8

const (
	CategoryOrdinary Category = iota
	CategorySpace
	CategoryTab
	CategoryNewline
	CategoryWatermark
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryOrdinary:
		return "ordinary"
	case CategorySpace:
		return "space"
	case CategoryTab:
		return "tab"
	case CategoryNewline:
		return "newline"
	case CategoryWatermark:
		return "watermark"
	default:
		return "unknown"
	}
}

// Classified pairs a code point with its category. Label is set only for
// watermark code points.
type Classified struct {
	Rune     rune
	Category Category
	Label    string
}

// Classifier performs per-code-point classification against a watermark
// registry. It is stateless and safe for concurrent use.
type Classifier struct {
	registry map[rune]Entry
}

// NewClassifier creates a classifier over the built-in watermark registry.
func NewClassifier() *Classifier {
	return &Classifier{registry: registry}
}

// NewClassifierWithRegistry creates a classifier over a custom registry.
// The classifier does not copy the map; the caller must not mutate it.
func NewClassifierWithRegistry(reg map[rune]Entry) *Classifier {
	return &Classifier{registry: reg}
}

// ClassifyRune classifies a single code point. Unknown code points are
// ordinary.
func (c *Classifier) ClassifyRune(r rune) Classified {
	switch r {
	case ' ':
		return Classified{Rune: r, Category: CategorySpace}
	case '\t':
		return Classified{Rune: r, Category: CategoryTab}
	case '\n':
		return Classified{Rune: r, Category: CategoryNewline}
	}
	if e, ok := c.registry[r]; ok {
		return Classified{Rune: r, Category: CategoryWatermark, Label: e.Label}
	}
	return Classified{Rune: r, Category: CategoryOrdinary}
}

// Classify classifies every code point in the buffer, in order.
// A single linear pass; no side effects.
func (c *Classifier) Classify(buf buffer.Buffer) []Classified {
	runes := buf.Runes()
	out := make([]Classified, len(runes))
	for i, r := range runes {
		out[i] = c.ClassifyRune(r)
	}
	return out
}

// Entry returns the registry entry for a code point, if any.
func (c *Classifier) Entry(r rune) (Entry, bool) {
	e, ok := c.registry[r]
	return e, ok
}

// IsWatermark reports whether the classifier's registry contains the
// code point.
func (c *Classifier) IsWatermark(r rune) bool {
	_, ok := c.registry[r]
	return ok
}
