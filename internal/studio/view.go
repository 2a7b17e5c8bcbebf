package studio

import (
	"github.com/ziadkadry99/css-player/internal/player"
	"github.com/ziadkadry99/css-player/internal/status"
)

// sender delivers a frame to the browser. A sender deals with its own
// failures (see wsSender), so sinks may drop the returned error.
type sender interface {
	send(frame any) error
}

// view mirrors the browser's widgets server-side and forwards every change
// to it. It implements the engine's sinks, the preview publisher and the
// status display.
type view struct {
	out      sender
	css      *editor
	html     *editor
	overlay  *overlay
	controls *controls
}

func newView(out sender) *view {
	return &view{
		out:      out,
		css:      &editor{out: out, area: player.AreaCSS, editable: true},
		html:     &editor{out: out, area: player.AreaHTML, editable: true},
		overlay:  &overlay{out: out},
		controls: &controls{out: out},
	}
}

func (v *view) playerView() player.View {
	return player.View{
		CSS:      v.css,
		HTML:     v.html,
		Overlay:  v.overlay,
		Controls: v.controls,
	}
}

func (v *view) editor(area player.Area) *editor {
	switch area {
	case player.AreaCSS:
		return v.css
	case player.AreaHTML:
		return v.html
	default:
		return nil
	}
}

func (v *view) PublishDocument(html string) error {
	return v.out.send(valueFrame{Type: "document", Value: html})
}

func (v *view) PublishStyle(css string) error {
	return v.out.send(valueFrame{Type: "style", Value: css})
}

func (v *view) PublishBackground(color string) error {
	return v.out.send(valueFrame{Type: "background", Value: color})
}

func (v *view) ShowStatus(s status.Status) {
	_ = v.out.send(statusFrame{
		Type:     "status",
		Message:  s.Message,
		Severity: string(s.Severity),
		Visible:  s.Visible,
	})
}

type editor struct {
	out         sender
	area        player.Area
	text        string
	highlighted bool
	editable    bool
	typing      bool
	scroll      player.ScrollMetrics
}

func (e *editor) Text() string { return e.text }

// SetText only reaches the browser when the text differs from what it
// already shows.
func (e *editor) SetText(text string) {
	if text == e.text {
		return
	}
	e.text = text
	_ = e.out.send(textFrame{Type: "text", Area: e.area, Text: text})
}

// mirror records text the browser already shows.
func (e *editor) mirror(text string) { e.text = text }

func (e *editor) SetMarkup(markup string) {
	_ = e.out.send(markupFrame{Type: "markup", Area: e.area, Markup: markup})
}

func (e *editor) Highlighted() bool { return e.highlighted }

func (e *editor) SetHighlighted(v bool) { e.highlighted = v }

func (e *editor) SetEditable(v bool) {
	e.editable = v
	_ = e.out.send(flagFrame{Type: "editable", Area: e.area, Value: v})
}

func (e *editor) SetTyping(v bool) {
	e.typing = v
	_ = e.out.send(flagFrame{Type: "typing", Area: e.area, Value: v})
}

func (e *editor) Scroll() player.ScrollMetrics { return e.scroll }

func (e *editor) ScrollTo(top int) {
	e.scroll.Top = top
	_ = e.out.send(scrollFrame{Type: "scroll", Area: e.area, Top: top, Left: e.scroll.Left})
}

type overlay struct {
	out    sender
	markup string
}

func (o *overlay) SetMarkup(markup string) {
	o.markup = markup
	_ = o.out.send(markupFrame{Type: "overlay", Markup: markup})
}

func (o *overlay) SyncScroll(m player.ScrollMetrics) {
	_ = o.out.send(scrollFrame{Type: "overlay_scroll", Top: m.Top, Left: m.Left})
}

type controls struct {
	out        sender
	play, stop bool
}

func (c *controls) SetPlayEnabled(v bool) {
	if c.play == v {
		return
	}
	c.play = v
	c.publish()
}

func (c *controls) SetStopEnabled(v bool) {
	if c.stop == v {
		return
	}
	c.stop = v
	c.publish()
}

func (c *controls) publish() {
	_ = c.out.send(controlsFrame{Type: "controls", Play: c.play, Stop: c.stop})
}
