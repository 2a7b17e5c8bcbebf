package terminal

import (
	"fmt"
	"io"

	"github.com/ziadkadry99/css-player/internal/status"
)

var severityColor = map[status.Severity]string{
	status.SeverityInfo:    "\x1b[34m",
	status.SeveritySuccess: "\x1b[32m",
	status.SeverityWarning: "\x1b[33m",
	status.SeverityError:   "\x1b[31m",
}

// StatusLine prints notifications as they are shown. Dismissals are not
// printed.
type StatusLine struct {
	w     io.Writer
	color bool
}

// NewStatusLine creates a StatusLine writing to w, with ANSI colours if
// color is set.
func NewStatusLine(w io.Writer, color bool) *StatusLine {
	return &StatusLine{w: w, color: color}
}

// ShowStatus implements status.Display.
func (l *StatusLine) ShowStatus(s status.Status) {
	if !s.Visible {
		return
	}
	if l.color {
		fmt.Fprintf(l.w, "%s%s\x1b[0m\n", severityColor[s.Severity], s.Message)
		return
	}
	fmt.Fprintf(l.w, "[%s] %s\n", s.Severity, s.Message)
}
