package player

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultSpeedMs is the delay between revealed characters when the speed
// field is empty or unreadable.
const DefaultSpeedMs = 25

// MaxSpeedMs is the longest accepted delay between revealed characters.
const MaxSpeedMs = math.MaxInt32

var (
	// ErrEmptyCSS means there is nothing to play.
	ErrEmptyCSS = errors.New("no CSS to play")
	// ErrInvalidSpeed means the speed is not a non-negative integer.
	ErrInvalidSpeed = errors.New("speed must be a non-negative number")
	// ErrInvalidColor means a background colour could not be parsed.
	ErrInvalidColor = errors.New("invalid colour")
	// ErrBusy means the operation is not allowed while playing.
	ErrBusy = errors.New("animation is playing")
)

// ReadSpeed is the lenient reading of the speed field: it takes the leading
// integer of raw and falls back to DefaultSpeedMs when there is none.
func ReadSpeed(raw string) int {
	n, ok := leadingInt(raw)
	if !ok {
		return DefaultSpeedMs
	}
	return n
}

// ParseSpeed is the strict reading used before playback starts. An empty
// field means the default; anything that is not a non-negative integer is
// rejected.
func ParseSpeed(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultSpeedMs, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSpeed, raw)
	}
	if n < 0 || n > MaxSpeedMs {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSpeed, n)
	}
	return n, nil
}

// ValidateStart checks whether playback may begin.
func ValidateStart(css string, exampleLoaded bool, speedMs int) error {
	if strings.TrimSpace(css) == "" && !exampleLoaded {
		return ErrEmptyCSS
	}
	if speedMs < 0 || speedMs > MaxSpeedMs {
		return fmt.Errorf("%w: %d", ErrInvalidSpeed, speedMs)
	}
	return nil
}

// NormalizeColor parses a #rgb or #rrggbb colour and returns it as
// lower-case #rrggbb.
func NormalizeColor(raw string) (string, error) {
	c, err := colorful.Hex(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w %q", ErrInvalidColor, raw)
	}
	return c.Hex(), nil
}

// leadingInt parses optional whitespace, an optional sign and at least one
// digit, ignoring whatever follows.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		if n < MaxSpeedMs {
			n = n*10 + int(r-'0')
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if n > MaxSpeedMs {
		n = MaxSpeedMs
	}
	if neg {
		n = -n
	}
	return n, true
}
