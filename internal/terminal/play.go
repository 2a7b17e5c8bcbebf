package terminal

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ziadkadry99/css-player/internal/eventloop"
	"github.com/ziadkadry99/css-player/internal/player"
	"github.com/ziadkadry99/css-player/internal/preview"
	"github.com/ziadkadry99/css-player/internal/progress"
	"github.com/ziadkadry99/css-player/internal/status"
)

// Playback describes one run of the player in a terminal.
type Playback struct {
	CSS        string
	HTML       string
	SpeedMs    int
	Background string
	Sanitize   bool

	Screen      *Screen
	Highlighter player.Highlighter
	Status      status.Display
	Reporter    progress.Reporter
	Logger      *slog.Logger
}

// Result is what a finished or interrupted playback left behind.
type Result struct {
	CSS         string
	Ticks       int
	Interrupted bool
	Document    *Document
}

// Play types p.CSS into the screen and blocks until every character has
// been revealed or ctx is cancelled, in which case playback is stopped.
func Play(ctx context.Context, p Playback) (Result, error) {
	if err := player.ValidateStart(p.CSS, false, p.SpeedMs); err != nil {
		return Result{}, err
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loop := eventloop.New(logger)
	loopCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(loopCtx)

	doc := &Document{}
	finished := make(chan struct{})
	total := utf8.RuneCountInString(strings.TrimSpace(p.CSS))

	var engine *player.Engine
	var startErr error
	loop.Call(func() {
		var opts []preview.Option
		if p.Sanitize {
			opts = append(opts, preview.WithSanitizer())
		}
		engine = player.New(player.Deps{
			View:        p.Screen.View(),
			Surface:     preview.NewFrame(doc, opts...),
			Highlighter: p.Highlighter,
			Notifier:    status.NewBoard(p.Status, loop),
			Scheduler:   loop,
			Logger:      logger,
		},
			player.WithBackground(p.Background),
			player.WithProgress(func(pr player.Progress) {
				if p.Reporter != nil {
					p.Reporter.Update(min(pr.Revealed, pr.Total), "Playing CSS")
				}
				if pr.Revealed > pr.Total {
					close(finished)
				}
			}),
		)
		if p.Reporter != nil {
			p.Reporter.Start(total)
		}
		startErr = engine.Start(p.CSS, p.HTML, p.SpeedMs)
	})
	if startErr != nil {
		return Result{}, startErr
	}

	res := Result{Document: doc}
	select {
	case <-finished:
	case <-ctx.Done():
		loop.Call(func() { res.Interrupted = engine.Stop() })
	}
	if p.Reporter != nil {
		p.Reporter.Finish()
	}
	loop.Call(func() {
		res.CSS = p.Screen.CSS().Text()
		res.Ticks = engine.Ticks()
	})
	return res, nil
}
