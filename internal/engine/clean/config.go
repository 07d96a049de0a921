package clean

import (
	"errors"
	"fmt"
	"regexp"
)

// Errors returned by config validation and cleaning.
var (
	ErrInvalidPattern  = errors.New("invalid custom pattern")
	ErrInvalidTabWidth = errors.New("tab width must be 2, 4, or 8")
)

// Config selects which transformations the engine applies. The zero
// value disables everything; Apply with a zero Config returns the input
// unchanged.
type Config struct {
	// RemoveExtraSpaces collapses runs of two or more spaces into one.
	RemoveExtraSpaces bool

	// RemoveExtraTabs collapses runs of two or more tabs into one.
	// Ignored when TabWidth is set, since expansion removes all tabs.
	RemoveExtraTabs bool

	// RemoveExtraNewlines collapses runs of two or more newlines into one.
	RemoveExtraNewlines bool

	// TrimLines strips leading and trailing spaces and tabs from each line.
	TrimLines bool

	// TabWidth, when non-zero, replaces each tab with exactly TabWidth
	// spaces. Valid widths are 2, 4, and 8.
	TabWidth int

	// RemoveInvisible deletes every code point in the watermark registry.
	RemoveInvisible bool

	// Pattern is an optional regular expression applied before any other
	// step. All non-overlapping matches are replaced with Replacement.
	Pattern     string
	Replacement string
}

// Enabled reports whether any transformation is selected.
func (c Config) Enabled() bool {
	return c.RemoveExtraSpaces || c.RemoveExtraTabs || c.RemoveExtraNewlines ||
		c.TrimLines || c.TabWidth != 0 || c.RemoveInvisible || c.Pattern != ""
}

// Validate checks the config without applying it. An invalid Pattern or
// TabWidth is reported; everything else is always valid.
func (c Config) Validate() error {
	if _, err := c.compile(); err != nil {
		return err
	}
	switch c.TabWidth {
	case 0, 2, 4, 8:
		return nil
	default:
		return fmt.Errorf("%w: got %d", ErrInvalidTabWidth, c.TabWidth)
	}
}

// compile compiles the custom pattern, or returns nil if none is set.
func (c Config) compile() (*regexp.Regexp, error) {
	if c.Pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(c.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return re, nil
}
