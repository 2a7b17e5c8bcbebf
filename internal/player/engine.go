// Package player reveals CSS one character at a time into a live preview
// while keeping the editor, its highlighted overlay and the preview's style
// sheet in step.
package player

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ziadkadry99/css-player/internal/eventloop"
	"github.com/ziadkadry99/css-player/internal/highlight"
	"github.com/ziadkadry99/css-player/internal/preview"
	"github.com/ziadkadry99/css-player/internal/status"
)

// Deps are the collaborators of an Engine.
type Deps struct {
	View        View
	Surface     preview.Surface
	Highlighter Highlighter
	Notifier    status.Notifier
	Scheduler   eventloop.Scheduler
	Logger      *slog.Logger
}

// Progress is reported after every tick.
type Progress struct {
	Revealed int
	Total    int
	Ticks    int
}

// Option configures an Engine.
type Option func(*Engine)

// WithSpeed sets the initial delay between ticks.
func WithSpeed(ms int) Option {
	return func(e *Engine) {
		if ms >= 0 && ms <= MaxSpeedMs {
			e.s.speedMs = ms
			e.s.speedInput = strconv.Itoa(ms)
		}
	}
}

// WithBackground sets the initial preview background.
func WithBackground(color string) Option {
	return func(e *Engine) {
		if c, err := NormalizeColor(color); err == nil {
			e.s.background = c
		}
	}
}

// WithProgress registers fn to be called after every tick.
func WithProgress(fn func(Progress)) Option {
	return func(e *Engine) { e.progress = fn }
}

// Engine drives the reveal. All methods must be called from the goroutine
// that runs the Scheduler's callbacks.
type Engine struct {
	view     View
	surface  preview.Surface
	hl       Highlighter
	notify   status.Notifier
	sched    eventloop.Scheduler
	logger   *slog.Logger
	progress func(Progress)

	s     session
	ticks int
}

// New creates an idle Engine.
func New(d Deps, opts ...Option) *Engine {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		view:    d.View,
		surface: d.Surface,
		hl:      d.Highlighter,
		notify:  d.Notifier,
		sched:   d.Scheduler,
		logger:  logger,
		s: session{
			mode:       Idle,
			speedMs:    DefaultSpeedMs,
			speedInput: strconv.Itoa(DefaultSpeedMs),
			background: DefaultBackground,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.setControls(false)
	return e
}

// State returns a copy of the session state.
func (e *Engine) State() Snapshot { return e.s.snapshot() }

// Mode returns the current playback mode.
func (e *Engine) Mode() Mode { return e.s.mode }

// Ticks returns how many ticks ran in the current or last play session.
func (e *Engine) Ticks() int { return e.ticks }

// Play starts playback from the editors' current content and the speed
// field, validating the speed strictly.
func (e *Engine) Play() error {
	if e.s.mode == Playing {
		return nil
	}
	speed, err := ParseSpeed(e.s.speedInput)
	if err != nil {
		e.reject(err)
		return err
	}
	return e.Start(e.view.CSS.Text(), e.view.HTML.Text(), speed)
}

// Start begins revealing cssSource into a preview built from htmlSource.
// It is a no-op while already playing.
func (e *Engine) Start(cssSource, htmlSource string, speedMs int) error {
	if e.s.mode == Playing {
		return nil
	}
	if err := ValidateStart(cssSource, e.s.exampleLoaded, speedMs); err != nil {
		e.reject(err)
		return err
	}

	e.s.originalCSS = cssSource
	e.s.fullCSS = []rune(strings.TrimSpace(cssSource))
	e.s.html = strings.TrimSpace(htmlSource)
	e.s.revealed = 0
	e.s.speedMs = speedMs
	e.s.mode = Playing
	e.s.generation++
	e.ticks = 0

	e.view.CSS.SetText("")
	e.view.CSS.SetTyping(true)
	e.setControls(true)
	e.setEditable(false)

	sheet, err := e.surface.Load(e.s.html, e.s.background)
	if err != nil {
		e.logger.Error("player: setting up preview", "error", err)
		e.notify.Notify("Could not set up the preview", status.SeverityError)
		e.abort()
		return fmt.Errorf("loading preview: %w", err)
	}
	e.s.sheet = sheet

	e.logger.Debug("player: started", "chars", len(e.s.fullCSS), "speed_ms", speedMs)
	e.notify.Notify("Starting animation...", status.SeverityInfo)
	e.tick(e.s.generation)
	return nil
}

// tick reveals the next character. A tick from an earlier play session,
// or one arriving after stop, does nothing.
func (e *Engine) tick(generation uint64) {
	if e.s.mode != Playing || generation != e.s.generation {
		return
	}
	e.s.pending = nil

	typed := string(e.s.fullCSS[:e.s.revealed])

	markup, err := e.hl.Highlight(typed, highlight.LangCSS)
	if err != nil {
		e.logger.Warn("player: highlighting", "error", err)
	} else {
		e.view.Overlay.SetMarkup(markup)
	}
	e.view.CSS.SetText(typed)
	if e.s.sheet != nil {
		if err := e.s.sheet.SetText(typed); err != nil {
			e.logger.Warn("player: applying CSS", "error", err)
		}
	}
	e.autoScroll()

	e.s.revealed++
	e.ticks++
	if e.progress != nil {
		e.progress(Progress{Revealed: e.s.revealed, Total: len(e.s.fullCSS), Ticks: e.ticks})
	}

	// The full text is shown by one last tick before completion is noticed,
	// so a session always runs len+1 ticks.
	if e.s.revealed <= len(e.s.fullCSS) {
		e.scheduleTick()
		return
	}
	e.finish()
}

func (e *Engine) scheduleTick() {
	if e.s.pending != nil {
		e.s.pending.Cancel()
	}
	generation := e.s.generation
	delay := time.Duration(e.s.speedMs) * time.Millisecond
	e.s.pending = e.sched.Schedule(delay, func() { e.tick(generation) })
}

func (e *Engine) autoScroll() {
	m := e.view.CSS.Scroll()
	if m.NeedsScroll() {
		e.view.CSS.ScrollTo(m.ScrollHeight)
	}
}

// finish ends a session that ran to completion.
func (e *Engine) finish() {
	e.s.mode = Idle
	e.s.pending = nil
	e.s.generation++

	e.view.CSS.SetTyping(false)
	e.setEditable(true)
	e.setControls(false)

	// Per-character highlighting leaves the editors with stale markup.
	e.rehighlight(AreaCSS)
	e.rehighlight(AreaHTML)

	e.view.CSS.ScrollTo(e.view.CSS.Scroll().ScrollHeight)
	e.view.Overlay.SyncScroll(e.view.CSS.Scroll())

	if e.s.revealed > len(e.s.fullCSS) {
		e.view.Overlay.SetMarkup("")
		e.logger.Debug("player: finished", "ticks", e.ticks)
		e.notify.Notify("Animation complete!", status.SeveritySuccess)
	}
}

// Stop interrupts playback and puts the editors and preview back as they
// were before it started. It reports whether anything was stopped.
func (e *Engine) Stop() bool {
	if e.s.mode != Playing {
		return false
	}
	if e.s.pending != nil {
		e.s.pending.Cancel()
		e.s.pending = nil
	}
	e.s.mode = Idle
	e.s.generation++

	e.view.CSS.SetTyping(false)
	e.setEditable(true)
	e.setControls(false)

	e.view.CSS.SetText(e.s.originalCSS)
	e.rehighlight(AreaCSS)
	e.view.Overlay.SetMarkup("")

	e.s.sheet = nil
	if err := e.surface.Blank(e.s.background); err != nil {
		e.logger.Error("player: clearing preview", "error", err)
	}

	e.logger.Debug("player: stopped", "revealed", e.s.revealed, "ticks", e.ticks)
	e.notify.Notify("Animation stopped", status.SeverityWarning)
	return true
}

// abort returns to idle after playback could not begin.
func (e *Engine) abort() {
	e.s.mode = Idle
	e.s.generation++
	e.s.sheet = nil
	e.view.CSS.SetTyping(false)
	e.view.CSS.SetText(e.s.originalCSS)
	e.rehighlight(AreaCSS)
	e.setEditable(true)
	e.setControls(false)
}

// SetSpeed stores the raw speed field. Playback uses its lenient reading
// from the next tick on.
func (e *Engine) SetSpeed(raw string) {
	e.s.speedInput = raw
	speed := ReadSpeed(raw)
	if speed < 0 {
		// Kept as typed so the next Play rejects it; ticks keep the last
		// usable speed.
		e.notify.Notify("Speed must be a non-negative number!", status.SeverityWarning)
		return
	}
	e.s.speedMs = speed
	e.notify.Notify(fmt.Sprintf("Speed set to %dms", e.s.speedMs), status.SeverityInfo)
}

// SetBackground changes the preview background, live if a preview exists.
func (e *Engine) SetBackground(color string) error {
	c, err := NormalizeColor(color)
	if err != nil {
		e.notify.Notify(fmt.Sprintf("Invalid colour %q", color), status.SeverityError)
		return err
	}
	e.s.background = c

	if !e.surface.Live() {
		// The blank page carries the background too.
		if err := e.surface.Blank(c); err != nil {
			e.logger.Error("player: changing background", "error", err)
		}
		e.notify.Notify("Background set to "+c, status.SeverityInfo)
		return nil
	}
	if err := e.surface.SetBackground(c); err != nil {
		e.logger.Error("player: changing background", "error", err)
		return nil
	}
	e.notify.Notify("Background changed to "+c, status.SeveritySuccess)
	return nil
}

// LoadExample puts an example into the editors. Starting with an empty CSS
// editor is allowed while an example is loaded.
func (e *Engine) LoadExample(htmlSource, cssSource string) error {
	if e.s.mode == Playing {
		return ErrBusy
	}
	e.view.HTML.SetText(htmlSource)
	e.view.CSS.SetText(cssSource)
	e.rehighlight(AreaHTML)
	e.rehighlight(AreaCSS)
	e.s.exampleLoaded = true
	return nil
}

// Edit records user typing into an editor. Editors are read-only while
// playing.
func (e *Engine) Edit(area Area, text string) error {
	if e.s.mode == Playing {
		return ErrBusy
	}
	ed := e.view.Editor(area)
	if ed == nil {
		return fmt.Errorf("unknown editor %q", area)
	}
	ed.SetText(text)
	e.rehighlight(area)
	if area == AreaCSS {
		e.s.exampleLoaded = false
	}
	return nil
}

func (e *Engine) rehighlight(area Area) {
	ed := e.view.Editor(area)
	if err := e.hl.Reapply(ed, langFor(area)); err != nil {
		e.logger.Warn("player: highlighting editor", "area", area, "error", err)
	}
}

func (e *Engine) setEditable(editable bool) {
	e.view.CSS.SetEditable(editable)
	e.view.HTML.SetEditable(editable)
}

func (e *Engine) setControls(playing bool) {
	e.view.Controls.SetPlayEnabled(!playing)
	e.view.Controls.SetStopEnabled(playing)
}

func (e *Engine) reject(err error) {
	switch {
	case errors.Is(err, ErrEmptyCSS):
		e.notify.Notify("Type some CSS first!", status.SeverityWarning)
	case errors.Is(err, ErrInvalidSpeed):
		e.notify.Notify("Speed must be a non-negative number!", status.SeverityError)
	default:
		e.notify.Notify(err.Error(), status.SeverityError)
	}
}
