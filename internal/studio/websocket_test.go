package studio

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/ziadkadry99/css-player/internal/eventloop"
	"github.com/ziadkadry99/css-player/internal/examples"
	"github.com/ziadkadry99/css-player/internal/highlight"
	"github.com/ziadkadry99/css-player/internal/player"
)

var errBrokenPipe = errors.New("broken pipe")

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

// flakyWriter accepts limit frames and fails every write after that.
type flakyWriter struct {
	limit  int
	writes int
	failed int
}

func (w *flakyWriter) SetWriteDeadline(time.Time) error { return nil }

func (w *flakyWriter) WriteJSON(any) error {
	if w.writes >= w.limit {
		w.failed++
		return errBrokenPipe
	}
	w.writes++
	return nil
}

func TestSenderStopsAfterWriteFailure(t *testing.T) {
	w := &flakyWriter{limit: 1}
	fails := 0
	s := &wsSender{conn: w, logger: discardLogger(), onFail: func() { fails++ }}

	if err := s.send(errorFrame{Type: "error"}); err != nil {
		t.Fatalf("first send: %v", err)
	}
	err := s.send(errorFrame{Type: "error"})
	if !errors.Is(err, errBrokenPipe) {
		t.Fatalf("second send = %v, want broken pipe", err)
	}
	if err := s.send(errorFrame{Type: "error"}); !errors.Is(err, errBrokenPipe) {
		t.Fatalf("third send = %v, want the stored failure", err)
	}

	if w.failed != 1 {
		t.Errorf("expected one attempted write after the failure, got %d", w.failed)
	}
	if fails != 1 {
		t.Errorf("onFail ran %d times, want 1", fails)
	}
}

func TestDeadSocketEndsPlayback(t *testing.T) {
	lib, err := examples.Builtin(highlight.DefaultStyle)
	if err != nil {
		t.Fatalf("loading examples: %v", err)
	}
	hl, err := highlight.NewHTML(highlight.DefaultStyle)
	if err != nil {
		t.Fatalf("creating highlighter: %v", err)
	}

	loop := eventloop.New(discardLogger())
	go loop.Run(t.Context())
	t.Cleanup(loop.Close)

	w := &flakyWriter{limit: 1 << 20}
	out := &wsSender{conn: w, logger: discardLogger(), onFail: loop.Close}

	var ctrl *Controller
	loop.Call(func() {
		ctrl = newController(out, Session{
			Library:     lib,
			Highlighter: hl,
			Scheduler:   loop,
			SpeedMs:     1,
			Example:     "bounce",
		})
		if err := ctrl.Open(); err != nil {
			t.Errorf("Open: %v", err)
		}
		ctrl.OnPlayRequested()
		if ctrl.engine.Mode() != player.Playing {
			t.Error("expected playback to start")
		}
		// The socket dies a few frames into playback.
		w.limit = w.writes + 5
	})

	select {
	case <-loop.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("session loop kept running after the socket failed")
	}
	if w.failed != 1 {
		t.Errorf("expected writes to stop after the first failure, %d were attempted", w.failed)
	}
}
