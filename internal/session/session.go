// Package session exposes the engine as a small command surface for a
// front end: load, save, detect, scan, clean, undo, redo, clear.
//
// A Session owns one document's buffer and history. It assumes at most
// one operation in flight at a time per document; the front end is
// responsible for not re-triggering a running scan. Multiple documents
// get independent Sessions.
package session

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/dshills/textwash/internal/engine/buffer"
	"github.com/dshills/textwash/internal/engine/classify"
	"github.com/dshills/textwash/internal/engine/clean"
	"github.com/dshills/textwash/internal/engine/entropy"
	"github.com/dshills/textwash/internal/engine/history"
	"github.com/dshills/textwash/internal/engine/stats"
	"github.com/dshills/textwash/internal/render"
)

// Session is the document context for one text buffer.
type Session struct {
	id         uuid.UUID
	classifier *classify.Classifier
	engine     *clean.Engine
	renderer   *render.Renderer
	collector  *stats.Collector
	history    *history.History
}

// New creates a session holding an empty buffer.
func New() *Session {
	c := classify.NewClassifier()
	return &Session{
		id:         uuid.New(),
		classifier: c,
		engine:     clean.NewEngine(c),
		renderer:   render.NewRenderer(c),
		collector:  stats.NewCollector(c),
		history:    history.New(buffer.Buffer{}, 0),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Buffer returns the current buffer (the history cursor's entry).
func (s *Session) Buffer() buffer.Buffer {
	return s.history.Current().Buffer
}

// LoadText reads a file into the session, replacing the buffer and
// resetting history to the loaded state.
func (s *Session) LoadText(path string) (buffer.Buffer, error) {
	buf, err := buffer.FromFile(path)
	if err != nil {
		return buffer.Buffer{}, fmt.Errorf("loading %s: %w", path, err)
	}
	s.history.Reset(buf)
	return buf, nil
}

// SetText replaces the buffer with pasted text, resetting history.
func (s *Session) SetText(text string) buffer.Buffer {
	buf := buffer.New(text)
	s.history.Reset(buf)
	return buf
}

// SaveText writes a buffer to a file as UTF-8. A failed write reports
// the cause; session state is unaffected either way.
func (s *Session) SaveText(path string, buf buffer.Buffer) error {
	if err := os.WriteFile(path, []byte(buf.String()), 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// Detect returns the visible-marker display form of a buffer together
// with its whitespace/watermark statistics. Read-only.
func (s *Session) Detect(buf buffer.Buffer) (string, stats.Stats) {
	return s.renderer.Render(buf), s.collector.Collect(buf)
}

// Stats collects statistics for the current buffer.
func (s *Session) Stats() stats.Stats {
	return s.collector.Collect(s.Buffer())
}

// Scan runs the AI-likelihood heuristic over a buffer. progress may be
// nil; cancellation via ctx discards the partial result.
func (s *Session) Scan(ctx context.Context, buf buffer.Buffer, progress entropy.ProgressFunc) (entropy.Result, error) {
	return entropy.Analyze(ctx, buf, progress)
}

// Clean applies a cleaning config to the current buffer and records the
// result in history. On error (invalid pattern or tab width) the buffer
// and history cursor are exactly as before.
func (s *Session) Clean(cfg clean.Config) (buffer.Buffer, error) {
	out, err := s.engine.Apply(s.Buffer(), cfg)
	if err != nil {
		return buffer.Buffer{}, err
	}
	s.history.Apply(out, cfg)
	return out, nil
}

// Undo steps the buffer back one cleaning operation. At the start of
// history it returns history.ErrNothingToUndo and changes nothing.
func (s *Session) Undo() (buffer.Buffer, error) {
	e, err := s.history.Undo()
	if err != nil {
		return buffer.Buffer{}, err
	}
	return e.Buffer, nil
}

// Redo steps the buffer forward one cleaning operation. At the end of
// history it returns history.ErrNothingToRedo and changes nothing.
func (s *Session) Redo() (buffer.Buffer, error) {
	e, err := s.history.Redo()
	if err != nil {
		return buffer.Buffer{}, err
	}
	return e.Buffer, nil
}

// CanUndo reports whether an undo step is available, for control
// enablement.
func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether a redo step is available.
func (s *Session) CanRedo() bool {
	return s.history.CanRedo()
}

// Clear empties the buffer and drops all history.
func (s *Session) Clear() {
	s.history.Clear()
}
