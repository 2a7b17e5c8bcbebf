package studio

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/css-player/internal/eventloop"
)

// writeWait bounds a single frame write.
const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// frameWriter is the part of a websocket connection a wsSender uses.
type frameWriter interface {
	SetWriteDeadline(t time.Time) error
	WriteJSON(v any) error
}

// wsSender writes frames to a connection. Only the session's loop writes.
// After the first failed write nothing more is written and onFail runs
// once, so a dead socket ends the session instead of absorbing ticks.
type wsSender struct {
	conn   frameWriter
	logger *slog.Logger
	onFail func()
	err    error
}

func (s *wsSender) send(frame any) error {
	if s.err != nil {
		return s.err
	}
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(frame); err != nil {
		s.err = fmt.Errorf("writing frame: %w", err)
		s.logger.Debug("studio: websocket write failed, closing session", "error", err)
		if s.onFail != nil {
			s.onFail()
		}
		return s.err
	}
	return nil
}

func (s *Studio) session(sched eventloop.Scheduler) Session {
	return Session{
		Library:      s.library,
		Highlighter:  s.hl,
		Scheduler:    sched,
		Logger:       s.logger,
		SpeedMs:      s.opts.SpeedMs,
		Background:   s.opts.Background,
		Example:      s.opts.Example,
		SanitizeHTML: s.opts.SanitizeHTML,
	}
}

func (s *Studio) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("studio: websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	// The session outlives request-scoped deadlines; it ends with the socket.
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	loop := eventloop.New(s.logger)
	go loop.Run(ctx)
	defer func() {
		cancel()
		<-loop.Done()
	}()

	var ctrl *Controller
	var openErr error
	opened := loop.Call(func() {
		out := &wsSender{
			conn:   conn,
			logger: s.logger,
			onFail: func() {
				// Stops pending ticks and unblocks the read below.
				loop.Close()
				conn.Close()
			},
		}
		ctrl = newController(out, s.session(loop))
		openErr = ctrl.Open()
	})
	if !opened {
		return
	}
	if openErr != nil {
		s.logger.Warn("studio: opening session", "error", openErr)
		return
	}
	s.logger.Info("studio: session opened", "session", ctrl.id)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("studio: websocket read", "session", ctrl.id, "error", err)
			}
			break
		}
		if !loop.Post(func() { ctrl.Handle(msg) }) {
			break
		}
	}

	// Timers still pending find the loop closed and are dropped.
	s.logger.Info("studio: session closed", "session", ctrl.id)
}
