// Package history records buffer states across cleaning operations and
// supports undo/redo navigation over them.
//
// Unlike an editor undo stack that replays inverse edits, cleaning
// operations are not invertible (collapsed whitespace cannot be
// restored), so history keeps full buffer snapshots. Entries form an
// ordered sequence with a cursor; applying a new operation while the
// cursor is not at the end discards the abandoned future.
package history

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/textwash/internal/engine/buffer"
	"github.com/dshills/textwash/internal/engine/clean"
)

// Errors reported at history boundaries. These are no-op notices, not
// failures: state is unchanged and the caller can disable its controls.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

const defaultMaxEntries = 1000

// Entry is one recorded buffer state.
type Entry struct {
	ID     uuid.UUID
	Buffer buffer.Buffer

	// Config is the cleaning config whose application produced this
	// entry. Zero for the initial entry.
	Config clean.Config

	Time time.Time
}

// History owns the ordered entry sequence and cursor for one document.
// Multiple documents get independent History values. All methods are
// safe for concurrent use.
type History struct {
	mu         sync.Mutex
	entries    []*Entry
	cursor     int
	maxEntries int
}

// New creates a history seeded with the initial buffer at index 0,
// representing the loaded text before any cleaning.
func New(initial buffer.Buffer, maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &History{
		entries:    []*Entry{newEntry(initial, clean.Config{})},
		maxEntries: maxEntries,
	}
}

func newEntry(buf buffer.Buffer, cfg clean.Config) *Entry {
	return &Entry{
		ID:     uuid.New(),
		Buffer: buf,
		Config: cfg,
		Time:   time.Now(),
	}
}

// Apply records the result of a cleaning operation: entries past the
// cursor are discarded, the new entry is appended, and the cursor
// advances to it.
func (h *History) Apply(buf buffer.Buffer, cfg clean.Config) *Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = h.entries[:h.cursor+1]
	e := newEntry(buf, cfg)
	h.entries = append(h.entries, e)
	h.cursor++

	// Evict oldest entries beyond the cap. The initial entry is not
	// special once evicted; the oldest surviving state takes its place.
	if len(h.entries) > h.maxEntries {
		excess := len(h.entries) - h.maxEntries
		h.entries = h.entries[excess:]
		h.cursor -= excess
	}

	return e
}

// Undo moves the cursor back one entry and returns it. At the start it
// returns ErrNothingToUndo and leaves the cursor in place.
func (h *History) Undo() (*Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor == 0 {
		return nil, ErrNothingToUndo
	}
	h.cursor--
	return h.entries[h.cursor], nil
}

// Redo moves the cursor forward one entry and returns it. At the end it
// returns ErrNothingToRedo and leaves the cursor in place.
func (h *History) Redo() (*Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor >= len(h.entries)-1 {
		return nil, ErrNothingToRedo
	}
	h.cursor++
	return h.entries[h.cursor], nil
}

// Current returns the entry at the cursor.
func (h *History) Current() *Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.cursor]
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor < len(h.entries)-1
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Clear drops all entries and resets to a single empty-buffer entry.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = []*Entry{newEntry(buffer.Buffer{}, clean.Config{})}
	h.cursor = 0
}

// Reset replaces all history with a single entry holding the given
// buffer, as when a new document is loaded.
func (h *History) Reset(initial buffer.Buffer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = []*Entry{newEntry(initial, clean.Config{})}
	h.cursor = 0
}
