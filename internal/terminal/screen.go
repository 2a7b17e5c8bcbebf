// Package terminal renders a playback session to a text terminal.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/ziadkadry99/css-player/internal/player"
)

const clearScreen = "\x1b[H\x1b[2J"

// Screen draws the CSS being typed. When it is not live nothing is drawn
// and the caller prints the result once playback ends.
type Screen struct {
	w        io.Writer
	rows     int
	live     bool
	css      *Editor
	html     *Editor
	overlay  *Overlay
	controls *Controls
}

// NewScreen creates a Screen rows lines tall writing to w.
func NewScreen(w io.Writer, rows int, live bool) *Screen {
	if rows < 1 {
		rows = 24
	}
	s := &Screen{w: w, rows: rows, live: live}
	s.css = &Editor{screen: s, rows: rows}
	s.html = &Editor{rows: rows}
	s.overlay = &Overlay{screen: s}
	s.controls = &Controls{}
	return s
}

// View returns the sinks an engine writes to.
func (s *Screen) View() player.View {
	return player.View{
		CSS:      s.css,
		HTML:     s.html,
		Overlay:  s.overlay,
		Controls: s.controls,
	}
}

// CSS returns the CSS editor.
func (s *Screen) CSS() *Editor { return s.css }

// HTML returns the HTML editor.
func (s *Screen) HTML() *Editor { return s.html }

// Controls returns the play and stop state.
func (s *Screen) Controls() *Controls { return s.controls }

func (s *Screen) draw() {
	if !s.live {
		return
	}
	markup := s.css.markup
	if s.css.typing {
		markup = s.overlay.markup
	}
	lines := strings.Split(markup, "\n")
	top := s.css.scroll.Top
	if top > len(lines) {
		top = len(lines)
	}
	end := top + s.rows
	if end > len(lines) {
		end = len(lines)
	}
	fmt.Fprint(s.w, clearScreen)
	fmt.Fprint(s.w, strings.Join(lines[top:end], "\n"))
}

// Editor keeps an editor's content in memory.
type Editor struct {
	screen      *Screen
	rows        int
	text        string
	markup      string
	highlighted bool
	editable    bool
	typing      bool
	scroll      player.ScrollMetrics
}

func (e *Editor) Text() string { return e.text }

func (e *Editor) SetText(text string) { e.text = text }

// Markup returns the last highlighted rendering.
func (e *Editor) Markup() string { return e.markup }

func (e *Editor) SetMarkup(markup string) {
	e.markup = markup
	e.redraw()
}

func (e *Editor) Highlighted() bool { return e.highlighted }

func (e *Editor) SetHighlighted(v bool) { e.highlighted = v }

// Editable reports whether the editor accepts input.
func (e *Editor) Editable() bool { return e.editable }

func (e *Editor) SetEditable(v bool) { e.editable = v }

// Typing reports whether a reveal is writing into the editor.
func (e *Editor) Typing() bool { return e.typing }

func (e *Editor) SetTyping(v bool) {
	e.typing = v
	e.redraw()
}

// Scroll measures the editor in lines against the screen height.
func (e *Editor) Scroll() player.ScrollMetrics {
	m := e.scroll
	m.ClientHeight = e.rows
	m.ScrollHeight = strings.Count(e.text, "\n") + 1
	return m
}

// ScrollTo moves the first visible line, keeping the last page in view.
func (e *Editor) ScrollTo(top int) {
	lines := strings.Count(e.text, "\n") + 1
	if last := lines - e.rows; top > last {
		top = last
	}
	if top < 0 {
		top = 0
	}
	e.scroll.Top = top
}

func (e *Editor) redraw() {
	if e.screen != nil {
		e.screen.draw()
	}
}

// Overlay holds the highlighted text drawn while typing.
type Overlay struct {
	screen *Screen
	markup string
}

// Markup returns the overlay's content.
func (o *Overlay) Markup() string { return o.markup }

func (o *Overlay) SetMarkup(markup string) {
	o.markup = markup
	o.screen.draw()
}

func (o *Overlay) SyncScroll(player.ScrollMetrics) {}

// Controls records which actions are available.
type Controls struct {
	Play, Stop bool
}

func (c *Controls) SetPlayEnabled(v bool) { c.Play = v }

func (c *Controls) SetStopEnabled(v bool) { c.Stop = v }
