package view

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textwash/internal/engine/buffer"
	"github.com/dshills/textwash/internal/engine/classify"
)

func lineString(cells []cell) string {
	rs := make([]rune, len(cells))
	for i, c := range cells {
		rs[i] = c.r
	}
	return string(rs)
}

func TestBuildLines(t *testing.T) {
	c := classify.NewClassifier()
	lines := buildLines(buffer.New("a b\tc\nnext\u200Bword\n"), c)

	want := []string{
		"a·b→c¶",
		"next◆word¶",
		"",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, w := range want {
		if got := lineString(lines[i]); got != w {
			t.Errorf("line %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestBuildLinesStyles(t *testing.T) {
	c := classify.NewClassifier()
	lines := buildLines(buffer.New(" \t\u200Bx"), c)

	cells := lines[0]
	wantStyles := []tcell.Style{styleSpace, styleTab, styleWatermark, styleText}
	for i, want := range wantStyles {
		if cells[i].style != want {
			t.Errorf("cell %d: wrong style for %q", i, cells[i].r)
		}
	}
}

func TestBuildLinesEmpty(t *testing.T) {
	lines := buildLines(buffer.Buffer{}, classify.NewClassifier())
	if len(lines) != 1 || len(lines[0]) != 0 {
		t.Errorf("empty buffer should yield one empty line, got %v", lines)
	}
}

func TestScrollClamping(t *testing.T) {
	v := New(buffer.New("a\nb\nc"), nil, "test")

	v.scrollBy(-5, -5)
	if v.top != 0 || v.left != 0 {
		t.Errorf("scroll must not go negative: top=%d left=%d", v.top, v.left)
	}

	v.scrollBy(100, 0)
	if v.top != 2 {
		t.Errorf("scroll must stop at the last line, got top=%d", v.top)
	}

	v.scrollBy(0, 3)
	if v.left != 3 {
		t.Errorf("expected left=3, got %d", v.left)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"", 5, ""},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d): expected %q, got %q", tt.in, tt.width, tt.want, got)
		}
	}
}

func TestRunQuitsOnQ(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	v := New(buffer.New("some text\nmore text"), nil, "test.txt")

	done := make(chan error, 1)
	go func() {
		done <- v.run(screen)
	}()

	// Let the event loop start before injecting keys.
	time.Sleep(50 * time.Millisecond)
	screen.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("view did not quit on q")
	}
}
