package player

import (
	"errors"

	"github.com/ziadkadry99/css-player/internal/eventloop"
	"github.com/ziadkadry99/css-player/internal/highlight"
	"github.com/ziadkadry99/css-player/internal/preview"
	"github.com/ziadkadry99/css-player/internal/status"
)

type fakeEditor struct {
	text        string
	markup      string
	highlighted bool
	editable    bool
	typing      bool
	scroll      ScrollMetrics
	scrolledTo  []int
	history     []string
}

func (e *fakeEditor) Text() string          { return e.text }
func (e *fakeEditor) SetMarkup(m string)    { e.markup = m }
func (e *fakeEditor) Highlighted() bool     { return e.highlighted }
func (e *fakeEditor) SetHighlighted(v bool) { e.highlighted = v }
func (e *fakeEditor) SetEditable(v bool)    { e.editable = v }
func (e *fakeEditor) SetTyping(v bool)      { e.typing = v }
func (e *fakeEditor) Scroll() ScrollMetrics { return e.scroll }
func (e *fakeEditor) ScrollTo(top int)      { e.scroll.Top = top; e.scrolledTo = append(e.scrolledTo, top) }
func (e *fakeEditor) SetText(text string)   { e.text = text; e.history = append(e.history, text) }

type fakeOverlay struct {
	markup string
	writes int
	synced []ScrollMetrics
}

func (o *fakeOverlay) SetMarkup(m string)         { o.markup = m; o.writes++ }
func (o *fakeOverlay) SyncScroll(m ScrollMetrics) { o.synced = append(o.synced, m) }

type fakeControls struct {
	play, stop bool
}

func (c *fakeControls) SetPlayEnabled(v bool) { c.play = v }
func (c *fakeControls) SetStopEnabled(v bool) { c.stop = v }

type fakeSheet struct {
	s    *fakeSurface
	live bool
}

func (sh *fakeSheet) SetText(css string) error {
	if !sh.live {
		return preview.ErrNoDocument
	}
	sh.s.styles = append(sh.s.styles, css)
	return nil
}

type fakeSurface struct {
	loads      []string
	blanks     []string
	styles     []string
	background []string
	sheet      *fakeSheet
	loadErr    error
}

func (s *fakeSurface) Load(html, bg string) (preview.StyleSheet, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.sheet != nil {
		s.sheet.live = false
	}
	s.loads = append(s.loads, html)
	s.styles = nil
	s.sheet = &fakeSheet{s: s, live: true}
	return s.sheet, nil
}

func (s *fakeSurface) Blank(bg string) error {
	if s.sheet != nil {
		s.sheet.live = false
		s.sheet = nil
	}
	s.blanks = append(s.blanks, bg)
	return nil
}

func (s *fakeSurface) SetBackground(color string) error {
	if s.sheet == nil {
		return preview.ErrNoDocument
	}
	s.background = append(s.background, color)
	return nil
}

func (s *fakeSurface) Live() bool { return s.sheet != nil }

type recordingNotifier struct {
	messages []string
	levels   []status.Severity
}

func (n *recordingNotifier) Notify(msg string, sev status.Severity) {
	n.messages = append(n.messages, msg)
	n.levels = append(n.levels, sev)
}

func (n *recordingNotifier) last() (string, status.Severity) {
	if len(n.messages) == 0 {
		return "", ""
	}
	return n.messages[len(n.messages)-1], n.levels[len(n.levels)-1]
}

// plainHighlighter wraps text so tests can tell highlighted markup apart.
type plainHighlighter struct {
	fail bool
}

func (plainHighlighter) Highlight(source, lang string) (string, error) {
	return "<" + lang + ">" + source, nil
}

func (h plainHighlighter) Reapply(c highlight.Container, lang string) error {
	if h.fail {
		return errors.New("highlighter unavailable")
	}
	c.SetHighlighted(false)
	markup, _ := h.Highlight(c.Text(), lang)
	c.SetMarkup(markup)
	c.SetHighlighted(true)
	return nil
}

type harness struct {
	engine   *Engine
	clock    *eventloop.Manual
	css      *fakeEditor
	html     *fakeEditor
	overlay  *fakeOverlay
	controls *fakeControls
	surface  *fakeSurface
	notes    *recordingNotifier
	progress []Progress
}

func newHarness(opts ...Option) *harness {
	h := &harness{
		clock:    eventloop.NewManual(),
		css:      &fakeEditor{editable: true},
		html:     &fakeEditor{editable: true},
		overlay:  &fakeOverlay{},
		controls: &fakeControls{},
		surface:  &fakeSurface{},
		notes:    &recordingNotifier{},
	}
	opts = append(opts, WithProgress(func(p Progress) { h.progress = append(h.progress, p) }))
	h.engine = New(Deps{
		View: View{
			CSS:      h.css,
			HTML:     h.html,
			Overlay:  h.overlay,
			Controls: h.controls,
		},
		Surface:     h.surface,
		Highlighter: plainHighlighter{},
		Notifier:    h.notes,
		Scheduler:   h.clock,
	}, opts...)
	return h
}
