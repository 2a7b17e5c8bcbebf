// Package studio serves the browser front end of the player and drives one
// playback engine per WebSocket connection.
package studio

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ziadkadry99/css-player/internal/examples"
	"github.com/ziadkadry99/css-player/internal/highlight"
	"github.com/ziadkadry99/css-player/internal/player"
)

// Options are the defaults each new session starts with.
type Options struct {
	SpeedMs      int
	Background   string
	Example      string
	SanitizeHTML bool
}

// Studio serves the player UI.
type Studio struct {
	library *examples.Library
	hl      *highlight.Highlighter
	opts    Options
	logger  *slog.Logger
}

// New creates a Studio. A nil logger means slog.Default().
func New(library *examples.Library, hl *highlight.Highlighter, opts Options, logger *slog.Logger) *Studio {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Background == "" {
		opts.Background = player.DefaultBackground
	}
	return &Studio{
		library: library,
		hl:      hl,
		opts:    opts,
		logger:  logger,
	}
}

// RegisterRoutes mounts all studio routes onto the given router.
func (s *Studio) RegisterRoutes(r chi.Router) {
	r.Get("/", s.ServeIndex)
	r.Get("/highlight.css", s.handleHighlightCSS)
	r.Get("/ws/player", s.handleWebSocket)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Get("/api/examples", s.handleListExamples)
		r.Get("/api/examples/{name}", s.handleGetExample)
		r.Post("/api/highlight", s.handleHighlight)
	})
}
