package player

import "github.com/ziadkadry99/css-player/internal/highlight"

// Area names one of the two code editors.
type Area string

const (
	AreaHTML Area = "html"
	AreaCSS  Area = "css"
)

// Valid reports whether a is a known editor.
func (a Area) Valid() bool { return a == AreaHTML || a == AreaCSS }

// ScrollMetrics describes the scroll position of an editor.
type ScrollMetrics struct {
	Top          int `json:"top"`
	Left         int `json:"left"`
	ClientHeight int `json:"client_height"`
	ScrollHeight int `json:"scroll_height"`
}

// NeedsScroll reports whether content overflows the visible area and the
// view is not already at the bottom.
func (m ScrollMetrics) NeedsScroll() bool {
	if m.ScrollHeight <= m.ClientHeight {
		return false
	}
	return m.Top+m.ClientHeight < m.ScrollHeight
}

// Editor is an editable code area.
type Editor interface {
	highlight.Container
	SetText(text string)
	SetEditable(editable bool)
	// SetTyping marks the editor as the target of a running reveal.
	SetTyping(typing bool)
	Scroll() ScrollMetrics
	ScrollTo(top int)
}

// Overlay is the highlighted layer shown behind the CSS editor while it is
// being typed.
type Overlay interface {
	SetMarkup(markup string)
	SyncScroll(m ScrollMetrics)
}

// Controls are the play and stop affordances.
type Controls interface {
	SetPlayEnabled(enabled bool)
	SetStopEnabled(enabled bool)
}

// View groups the sinks an Engine writes to.
type View struct {
	CSS      Editor
	HTML     Editor
	Overlay  Overlay
	Controls Controls
}

// Editor returns the editor for area, or nil.
func (v View) Editor(area Area) Editor {
	switch area {
	case AreaCSS:
		return v.CSS
	case AreaHTML:
		return v.HTML
	default:
		return nil
	}
}

// Highlighter renders source text as markup.
type Highlighter interface {
	Highlight(source, lang string) (string, error)
	Reapply(c highlight.Container, lang string) error
}

func langFor(area Area) string {
	if area == AreaHTML {
		return highlight.LangHTML
	}
	return highlight.LangCSS
}
