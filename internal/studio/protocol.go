package studio

import "github.com/ziadkadry99/css-player/internal/player"

// inbound is a message from the browser.
type inbound struct {
	Type         string      `json:"type"`
	Area         player.Area `json:"area,omitempty"`
	Value        string      `json:"value,omitempty"`
	Text         string      `json:"text,omitempty"`
	Key          string      `json:"key,omitempty"`
	Ctrl         bool        `json:"ctrl,omitempty"`
	Meta         bool        `json:"meta,omitempty"`
	Top          int         `json:"top,omitempty"`
	Left         int         `json:"left,omitempty"`
	ClientHeight int         `json:"client_height,omitempty"`
	ScrollHeight int         `json:"scroll_height,omitempty"`
}

// Inbound message types.
const (
	msgPlay       = "play"
	msgStop       = "stop"
	msgSpeed      = "speed"
	msgBackground = "background"
	msgTab        = "tab"
	msgEdit       = "edit"
	msgExample    = "example"
	msgKey        = "key"
	msgScroll     = "scroll"
)

// Frames sent to the browser.

type sessionFrame struct {
	Type       string   `json:"type"` // "session"
	ID         string   `json:"id"`
	Examples   []string `json:"examples"`
	Example    string   `json:"example,omitempty"`
	Speed      int      `json:"speed"`
	Background string   `json:"background"`
}

type textFrame struct {
	Type string      `json:"type"` // "text"
	Area player.Area `json:"area"`
	Text string      `json:"text"`
}

type markupFrame struct {
	Type   string      `json:"type"` // "markup" or "overlay"
	Area   player.Area `json:"area,omitempty"`
	Markup string      `json:"markup"`
}

type flagFrame struct {
	Type  string      `json:"type"` // "editable" or "typing"
	Area  player.Area `json:"area"`
	Value bool        `json:"value"`
}

type scrollFrame struct {
	Type string      `json:"type"` // "scroll" or "overlay_scroll"
	Area player.Area `json:"area,omitempty"`
	Top  int         `json:"top"`
	Left int         `json:"left"`
}

type controlsFrame struct {
	Type string `json:"type"` // "controls"
	Play bool   `json:"play"`
	Stop bool   `json:"stop"`
}

type valueFrame struct {
	Type  string `json:"type"` // "tab", "background", "document", "style"
	Value string `json:"value"`
}

type statusFrame struct {
	Type     string `json:"type"` // "status"
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Visible  bool   `json:"visible"`
}

type errorFrame struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}
