// Package render maps a buffer to a display form in which whitespace
// and watermark characters are substituted with visible glyph markers.
package render

import (
	"strings"

	"github.com/dshills/textwash/internal/engine/buffer"
	"github.com/dshills/textwash/internal/engine/classify"
)

// Markers for standard whitespace. Watermark glyphs come from the
// registry.
const (
	MarkerSpace   = '·'
	MarkerTab     = '→'
	MarkerNewline = '¶'
)

// Renderer substitutes classified code points with visible markers.
type Renderer struct {
	classifier *classify.Classifier
}

// NewRenderer creates a renderer. A nil classifier gets the built-in
// registry.
func NewRenderer(c *classify.Classifier) *Renderer {
	if c == nil {
		c = classify.NewClassifier()
	}
	return &Renderer{classifier: c}
}

// Render returns the display form of the buffer: a 1:1 substitution,
// so the output has exactly as many code points as the input. Newlines
// become a pilcrow rather than staying line breaks; callers wanting
// line structure should split the input first and render per line.
//
// The output is presentation-only. It is not reversible and must never
// be saved back as document content.
func (r *Renderer) Render(buf buffer.Buffer) string {
	var sb strings.Builder
	sb.Grow(buf.ByteLen())

	for _, ru := range buf.String() {
		cl := r.classifier.ClassifyRune(ru)
		switch cl.Category {
		case classify.CategorySpace:
			sb.WriteRune(MarkerSpace)
		case classify.CategoryTab:
			sb.WriteRune(MarkerTab)
		case classify.CategoryNewline:
			sb.WriteRune(MarkerNewline)
		case classify.CategoryWatermark:
			e, _ := r.classifier.Entry(ru)
			sb.WriteRune(e.Glyph)
		default:
			sb.WriteRune(ru)
		}
	}

	return sb.String()
}

// RenderLines renders each line of the buffer separately, keeping line
// structure for multi-line display. Every line still ends with the
// newline marker except the last.
func (r *Renderer) RenderLines(buf buffer.Buffer) []string {
	lines := buf.Lines()
	out := make([]string, len(lines))
	for i, line := range lines {
		rendered := r.Render(buffer.New(line))
		if i < len(lines)-1 {
			rendered += string(MarkerNewline)
		}
		out[i] = rendered
	}
	return out
}
