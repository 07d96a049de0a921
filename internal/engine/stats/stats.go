// Package stats aggregates whitespace and watermark counts over a buffer.
package stats

import (
	"fmt"

	"github.com/dshills/textwash/internal/engine/buffer"
	"github.com/dshills/textwash/internal/engine/classify"
)

// maxDetails caps the per-occurrence detail list, matching what a stats
// panel can usefully show.
const maxDetails = 10

// Stats is a snapshot of whitespace and watermark counts for one buffer.
// It is derived data and never persisted.
type Stats struct {
	Spaces   int
	Tabs     int
	Newlines int

	// Invisible maps watermark label to occurrence count.
	Invisible      map[string]int
	TotalInvisible int

	// Details lists the first occurrences of watermark characters in
	// "char (U+XXXX: LABEL)" form, capped at 10 entries.
	Details []string
}

// Collector counts categories using a classifier. Stateless; safe for
// concurrent use.
type Collector struct {
	classifier *classify.Classifier
}

// NewCollector creates a collector. A nil classifier gets the built-in
// registry.
func NewCollector(c *classify.Classifier) *Collector {
	if c == nil {
		c = classify.NewClassifier()
	}
	return &Collector{classifier: c}
}

// Collect counts every code point in a single linear pass. The buffer is
// not modified; identical input yields identical output.
func (c *Collector) Collect(buf buffer.Buffer) Stats {
	st := Stats{Invisible: make(map[string]int)}

	for _, r := range buf.String() {
		cl := c.classifier.ClassifyRune(r)
		switch cl.Category {
		case classify.CategorySpace:
			st.Spaces++
		case classify.CategoryTab:
			st.Tabs++
		case classify.CategoryNewline:
			st.Newlines++
		case classify.CategoryWatermark:
			st.Invisible[cl.Label]++
			st.TotalInvisible++
			if len(st.Details) < maxDetails {
				st.Details = append(st.Details, fmt.Sprintf("%c (U+%04X: %s)", r, r, cl.Label))
			}
		}
	}

	return st
}
