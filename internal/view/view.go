// Package view shows a buffer in the terminal with whitespace and
// watermark characters replaced by colored markers. It is a read-only
// scrollable preview; the keyboard only moves the viewport.
package view

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/textwash/internal/engine/buffer"
	"github.com/dshills/textwash/internal/engine/classify"
	"github.com/dshills/textwash/internal/render"
)

var (
	styleText      = tcell.StyleDefault
	styleSpace     = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleTab       = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleNewline   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleWatermark = tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true)
	styleStatus    = tcell.StyleDefault.Reverse(true)
)

// cell is one styled rune of the preview.
type cell struct {
	r     rune
	style tcell.Style
}

// View is a scrollable marker preview of one buffer.
type View struct {
	screen tcell.Screen
	lines  [][]cell
	title  string
	top    int
	left   int
}

// New builds a preview of buf. A nil classifier uses the built-in
// registry.
func New(buf buffer.Buffer, c *classify.Classifier, title string) *View {
	if c == nil {
		c = classify.NewClassifier()
	}
	return &View{lines: buildLines(buf, c), title: title}
}

// buildLines converts the buffer into styled cells, one slice per
// display line. Newlines become a trailing pilcrow on the line they
// terminate, so every source character stays visible.
func buildLines(buf buffer.Buffer, c *classify.Classifier) [][]cell {
	lines := make([][]cell, 0, 16)
	cur := make([]cell, 0, 80)

	for _, r := range buf.String() {
		switch cl := c.ClassifyRune(r); cl.Category {
		case classify.CategorySpace:
			cur = append(cur, cell{render.MarkerSpace, styleSpace})
		case classify.CategoryTab:
			cur = append(cur, cell{render.MarkerTab, styleTab})
		case classify.CategoryNewline:
			cur = append(cur, cell{render.MarkerNewline, styleNewline})
			lines = append(lines, cur)
			cur = make([]cell, 0, 80)
		case classify.CategoryWatermark:
			e, _ := c.Entry(r)
			cur = append(cur, cell{e.Glyph, styleWatermark})
		default:
			cur = append(cur, cell{r, styleText})
		}
	}
	return append(lines, cur)
}

// Run opens the terminal screen and blocks until the user quits with
// q, Escape or Ctrl+C.
func (v *View) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	return v.run(screen)
}

func (v *View) run(screen tcell.Screen) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Fini()
	v.screen = screen

	for {
		v.draw()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
		}
	}
}

// handleKey scrolls the viewport; it reports whether to quit.
func (v *View) handleKey(ev *tcell.EventKey) bool {
	_, h := v.screen.Size()
	page := h - 1
	if page < 1 {
		page = 1
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.scrollBy(-1, 0)
	case tcell.KeyDown:
		v.scrollBy(1, 0)
	case tcell.KeyLeft:
		v.scrollBy(0, -1)
	case tcell.KeyRight:
		v.scrollBy(0, 1)
	case tcell.KeyPgUp:
		v.scrollBy(-page, 0)
	case tcell.KeyPgDn:
		v.scrollBy(page, 0)
	case tcell.KeyHome:
		v.top = 0
		v.left = 0
	case tcell.KeyEnd:
		v.scrollBy(len(v.lines), 0)
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return true
		}
	}
	return false
}

// scrollBy moves the viewport, clamped so the last line can reach the
// top of the screen but never scroll past it.
func (v *View) scrollBy(dy, dx int) {
	v.top += dy
	if max := len(v.lines) - 1; v.top > max {
		v.top = max
	}
	if v.top < 0 {
		v.top = 0
	}
	v.left += dx
	if v.left < 0 {
		v.left = 0
	}
}

func (v *View) draw() {
	w, h := v.screen.Size()
	v.screen.Clear()

	body := h - 1
	for y := 0; y < body; y++ {
		idx := v.top + y
		if idx >= len(v.lines) {
			break
		}
		line := v.lines[idx]
		for x := 0; x < w; x++ {
			i := v.left + x
			if i >= len(line) {
				break
			}
			v.screen.SetContent(x, y, line[i].r, nil, line[i].style)
		}
	}

	v.drawStatus(w, h-1)
	v.screen.Show()
}

func (v *View) drawStatus(w, y int) {
	text := truncate(v.statusText(), w)
	x := 0
	for _, r := range text {
		v.screen.SetContent(x, y, r, nil, styleStatus)
		x++
	}
	for ; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
}

func (v *View) statusText() string {
	return fmt.Sprintf(" %s  line %d/%d  [arrows/pgup/pgdn scroll, q quit] ",
		v.title, v.top+1, len(v.lines))
}

// truncate cuts s to at most width terminal columns, grapheme-aware.
func truncate(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	var out []byte
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cw := g.Width()
		if used+cw > width {
			break
		}
		out = append(out, g.Bytes()...)
		used += cw
	}
	return string(out)
}
