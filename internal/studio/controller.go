package studio

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/ziadkadry99/css-player/internal/eventloop"
	"github.com/ziadkadry99/css-player/internal/examples"
	"github.com/ziadkadry99/css-player/internal/player"
	"github.com/ziadkadry99/css-player/internal/preview"
	"github.com/ziadkadry99/css-player/internal/status"
)

// Controller translates browser events for one connection into engine
// calls. Every method runs on the connection's event loop.
type Controller struct {
	id      string
	out     sender
	view    *view
	surface *preview.Frame
	board   *status.Board
	engine  *player.Engine
	library *examples.Library
	logger  *slog.Logger
	tab     player.Area
	example string
}

// Session configures a Controller.
type Session struct {
	Library      *examples.Library
	Highlighter  player.Highlighter
	Scheduler    eventloop.Scheduler
	Logger       *slog.Logger
	SpeedMs      int
	Background   string
	Example      string
	SanitizeHTML bool
}

func newController(out sender, s Session) *Controller {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	logger = logger.With("session", id)

	v := newView(out)
	var opts []preview.Option
	if s.SanitizeHTML {
		opts = append(opts, preview.WithSanitizer())
	}
	surface := preview.NewFrame(v, opts...)
	board := status.NewBoard(v, s.Scheduler)

	engine := player.New(player.Deps{
		View:        v.playerView(),
		Surface:     surface,
		Highlighter: s.Highlighter,
		Notifier:    board,
		Scheduler:   s.Scheduler,
		Logger:      logger,
	}, player.WithSpeed(s.SpeedMs), player.WithBackground(s.Background))

	return &Controller{
		id:      id,
		out:     out,
		view:    v,
		surface: surface,
		board:   board,
		engine:  engine,
		library: s.Library,
		logger:  logger,
		tab:     player.AreaHTML,
		example: s.Example,
	}
}

// Engine returns the controller's engine.
func (c *Controller) Engine() *player.Engine { return c.engine }

// Open greets a freshly connected browser: it announces the session, loads
// the default example and shows an empty preview.
func (c *Controller) Open() error {
	st := c.engine.State()
	var names []string
	if c.library != nil {
		names = c.library.Names()
	}
	if names == nil {
		names = []string{}
	}
	if err := c.out.send(sessionFrame{
		Type:       "session",
		ID:         c.id,
		Examples:   names,
		Example:    c.example,
		Speed:      st.SpeedMs,
		Background: st.Background,
	}); err != nil {
		return err
	}

	if c.example != "" {
		c.OnExampleSelected(c.example)
	}
	if err := c.surface.Blank(st.Background); err != nil {
		c.logger.Error("studio: blank preview", "error", err)
	}
	c.OnTabSelected(string(player.AreaHTML))
	return nil
}

// OnPlayRequested starts playback.
func (c *Controller) OnPlayRequested() {
	if err := c.engine.Play(); err != nil {
		c.logger.Debug("studio: play rejected", "error", err)
	}
}

// OnStopRequested stops playback.
func (c *Controller) OnStopRequested() {
	c.engine.Stop()
}

// OnSpeedChanged records a new value of the speed field.
func (c *Controller) OnSpeedChanged(raw string) {
	c.engine.SetSpeed(raw)
}

// OnBackgroundChanged changes the preview background.
func (c *Controller) OnBackgroundChanged(color string) {
	if err := c.engine.SetBackground(color); err != nil {
		c.logger.Debug("studio: background rejected", "color", color, "error", err)
	}
}

// OnTabSelected shows one of the editors.
func (c *Controller) OnTabSelected(id string) {
	area := player.Area(id)
	if !area.Valid() {
		c.sendError(fmt.Sprintf("unknown tab %q", id))
		return
	}
	c.tab = area
	_ = c.out.send(valueFrame{Type: "tab", Value: string(area)})
}

// OnEdit records text the user typed into an editor.
func (c *Controller) OnEdit(area player.Area, text string) {
	ed := c.view.editor(area)
	if ed == nil {
		c.sendError(fmt.Sprintf("unknown editor %q", area))
		return
	}
	if c.engine.Mode() == player.Playing {
		// The browser should not have let this through; put the editor back.
		_ = c.out.send(textFrame{Type: "text", Area: area, Text: ed.Text()})
		return
	}
	ed.mirror(text)
	if err := c.engine.Edit(area, text); err != nil {
		c.sendError(err.Error())
	}
}

// OnExampleSelected loads a named example into the editors.
func (c *Controller) OnExampleSelected(name string) {
	if c.library == nil {
		c.sendError("no examples available")
		return
	}
	ex, ok := c.library.Get(name)
	if !ok {
		c.sendError(fmt.Sprintf("unknown example %q", name))
		return
	}
	if err := c.engine.LoadExample(ex.HTML, ex.CSS); err != nil {
		if errors.Is(err, player.ErrBusy) {
			c.board.Notify("Stop the animation before loading an example", status.SeverityWarning)
			return
		}
		c.sendError(err.Error())
		return
	}
	c.example = ex.Name
	c.board.Notify("Example loaded: "+ex.Title, status.SeverityInfo)
}

// OnScroll records the browser's scroll position for an editor.
func (c *Controller) OnScroll(area player.Area, m player.ScrollMetrics) {
	ed := c.view.editor(area)
	if ed == nil {
		return
	}
	ed.scroll = m
	if area == player.AreaCSS {
		c.view.overlay.SyncScroll(m)
	}
}

// OnKey handles keyboard shortcuts.
func (c *Controller) OnKey(key string, ctrl, meta bool) {
	switch {
	case key == "Enter" && (ctrl || meta):
		if c.view.controls.play && c.engine.Mode() == player.Idle {
			c.OnPlayRequested()
		}
	case key == "Escape":
		if c.view.controls.stop {
			c.OnStopRequested()
		}
	}
}

// Handle decodes one message from the browser and dispatches it.
func (c *Controller) Handle(raw []byte) {
	var msg inbound
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("invalid message format")
		return
	}
	c.dispatch(msg)
}

func (c *Controller) dispatch(msg inbound) {
	switch msg.Type {
	case msgPlay:
		c.OnPlayRequested()
	case msgStop:
		c.OnStopRequested()
	case msgSpeed:
		c.OnSpeedChanged(msg.Value)
	case msgBackground:
		c.OnBackgroundChanged(msg.Value)
	case msgTab:
		c.OnTabSelected(msg.Value)
	case msgEdit:
		c.OnEdit(msg.Area, msg.Text)
	case msgExample:
		c.OnExampleSelected(msg.Value)
	case msgKey:
		c.OnKey(msg.Key, msg.Ctrl, msg.Meta)
	case msgScroll:
		c.OnScroll(msg.Area, player.ScrollMetrics{
			Top:          msg.Top,
			Left:         msg.Left,
			ClientHeight: msg.ClientHeight,
			ScrollHeight: msg.ScrollHeight,
		})
	default:
		c.sendError("unknown message type: " + strconv.Quote(msg.Type))
	}
}

func (c *Controller) sendError(message string) {
	if err := c.out.send(errorFrame{Type: "error", Message: message}); err != nil {
		c.logger.Warn("studio: sending error", "error", err)
	}
}
