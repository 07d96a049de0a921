package classify

// Entry describes a watermark code point: the glyph used to make it
// visible in rendered output, and a human-readable label.
type Entry struct {
	Glyph rune
	Label string
}

// registry maps the known AI-watermark code points to display data.
// These are the invisible (or near-invisible) characters commonly found
// in machine-generated text. The table is fixed at runtime.
var registry = map[rune]Entry{
	'\u200B': {Glyph: '\u25C6', Label: "Zero Width Space"},
	'\u200C': {Glyph: '\u25C6', Label: "Zero Width Non-Joiner"},
	'\u200D': {Glyph: '\u25C6', Label: "Zero Width Joiner"},
	'\u202F': {Glyph: '\u203B', Label: "Narrow No-Break Space"},
	'\u00A0': {Glyph: '\u237D', Label: "No-Break Space"},
	'\u2060': {Glyph: '\u25C6', Label: "Word Joiner"},
	'\uFEFF': {Glyph: '\u25C6', Label: "Zero Width No-Break Space (BOM)"},
	'\u2014': {Glyph: '\u2014', Label: "Em Dash"},
	'\u2013': {Glyph: '\u2013', Label: "En Dash"},
}

// Registry returns a copy of the watermark registry. Callers may not
// mutate the engine's view of the table through the returned map.
func Registry() map[rune]Entry {
	out := make(map[rune]Entry, len(registry))
	for r, e := range registry {
		out[r] = e
	}
	return out
}

// Lookup returns the registry entry for a code point, if any.
func Lookup(r rune) (Entry, bool) {
	e, ok := registry[r]
	return e, ok
}

// IsWatermark reports whether the code point is in the registry.
func IsWatermark(r rune) bool {
	_, ok := registry[r]
	return ok
}
