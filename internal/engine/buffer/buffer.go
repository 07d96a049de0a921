package buffer

import (
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Buffer is an immutable text value. Every transformation in the engine
// produces a new Buffer; a Buffer handed to a component never changes
// underneath it, so results may be retained without copying.
//
// The zero value is an empty buffer and is ready to use.
type Buffer struct {
	text string
}

// New creates a buffer holding the given text.
func New(text string) Buffer {
	return Buffer{text: text}
}

// FromReader creates a buffer from an io.Reader. Line endings are
// normalized to LF on load so downstream passes only see \n.
func FromReader(r io.Reader) (Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Buffer{}, err
	}
	return New(normalizeLineEndings(string(data))), nil
}

// FromFile creates a buffer from the contents of a file.
func FromFile(path string) (Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return Buffer{}, err
	}
	defer f.Close()
	return FromReader(f)
}

// normalizeLineEndings converts CRLF and CR to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// String returns the full buffer content.
func (b Buffer) String() string {
	return b.text
}

// Runes returns the buffer content as a rune slice.
func (b Buffer) Runes() []rune {
	return []rune(b.text)
}

// Len returns the buffer length in code points.
func (b Buffer) Len() int {
	return utf8.RuneCountInString(b.text)
}

// ByteLen returns the buffer length in bytes.
func (b Buffer) ByteLen() int {
	return len(b.text)
}

// IsEmpty returns true if the buffer holds no text.
func (b Buffer) IsEmpty() bool {
	return b.text == ""
}

// Lines splits the buffer on newlines. The newline characters are not
// included; a trailing newline yields a final empty element.
func (b Buffer) Lines() []string {
	return strings.Split(b.text, "\n")
}

// Equal reports whether two buffers hold the same text.
func (b Buffer) Equal(other Buffer) bool {
	return b.text == other.text
}
