package player

import (
	"github.com/ziadkadry99/css-player/internal/eventloop"
	"github.com/ziadkadry99/css-player/internal/preview"
)

// Mode is the playback mode of a session.
type Mode int

const (
	Idle Mode = iota
	Playing
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}

// DefaultBackground is the preview background before the user picks one.
const DefaultBackground = "#161616"

// session is the mutable state owned by an Engine.
type session struct {
	mode Mode

	// fullCSS is captured at start and never changes during playback.
	fullCSS []rune
	// revealed is the cursor into fullCSS. It only grows while playing.
	revealed int
	// originalCSS is the editor content before playback, byte for byte.
	originalCSS string
	html        string

	speedMs    int
	speedInput string
	background string

	exampleLoaded bool

	pending eventloop.Timer
	// generation changes whenever a play session starts or ends so a tick
	// belonging to an earlier session is ignored.
	generation uint64
	sheet      preview.StyleSheet
}

// Snapshot is a read-only copy of a session's state.
type Snapshot struct {
	Mode          Mode
	FullCSS       string
	Revealed      int
	OriginalCSS   string
	HTML          string
	SpeedMs       int
	Background    string
	ExampleLoaded bool
	TickPending   bool
}

func (s *session) snapshot() Snapshot {
	return Snapshot{
		Mode:          s.mode,
		FullCSS:       string(s.fullCSS),
		Revealed:      s.revealed,
		OriginalCSS:   s.originalCSS,
		HTML:          s.html,
		SpeedMs:       s.speedMs,
		Background:    s.background,
		ExampleLoaded: s.exampleLoaded,
		TickPending:   s.pending != nil,
	}
}
