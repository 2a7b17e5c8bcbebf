// Package status shows short-lived notifications to the user.
package status

import (
	"time"

	"github.com/ziadkadry99/css-player/internal/eventloop"
)

// Severity indicates how a notification is presented.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DismissAfter is how long a notification stays visible.
const DismissAfter = 3 * time.Second

// Status is a single notification.
type Status struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Visible  bool     `json:"visible"`
}

// Notifier accepts notifications.
type Notifier interface {
	Notify(message string, severity Severity)
}

// Display presents the current status. A Status with Visible false hides it.
type Display interface {
	ShowStatus(s Status)
}

// Board keeps the current notification and hides it once DismissAfter has
// elapsed. A newer notification restarts the window.
type Board struct {
	display Display
	sched   eventloop.Scheduler
	dismiss eventloop.Timer
	current Status
}

// NewBoard creates a Board that renders to display.
func NewBoard(display Display, sched eventloop.Scheduler) *Board {
	return &Board{display: display, sched: sched}
}

// Notify shows message and schedules its dismissal.
func (b *Board) Notify(message string, severity Severity) {
	if b.dismiss != nil {
		b.dismiss.Cancel()
	}
	b.current = Status{Message: message, Severity: severity, Visible: true}
	b.display.ShowStatus(b.current)
	b.dismiss = b.sched.Schedule(DismissAfter, b.hide)
}

func (b *Board) hide() {
	b.dismiss = nil
	b.current.Visible = false
	b.display.ShowStatus(b.current)
}

// Current returns the last notification and whether it is still visible.
func (b *Board) Current() Status { return b.current }
