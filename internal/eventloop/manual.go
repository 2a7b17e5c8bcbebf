package eventloop

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by a virtual clock. Nothing fires until the
// caller steps or advances it. It is not safe for concurrent use.
type Manual struct {
	now   time.Duration
	seq   int
	queue []*manualTimer
}

// NewManual returns a Manual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

type manualTimer struct {
	m   *Manual
	due time.Duration
	seq int
	fn  func()
}

func (t *manualTimer) Cancel() bool {
	return t.m.remove(t)
}

// Schedule implements Scheduler.
func (m *Manual) Schedule(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	t := &manualTimer{m: m, due: m.now + d, seq: m.seq, fn: fn}
	m.seq++
	m.queue = append(m.queue, t)
	sort.SliceStable(m.queue, func(i, j int) bool {
		if m.queue[i].due != m.queue[j].due {
			return m.queue[i].due < m.queue[j].due
		}
		return m.queue[i].seq < m.queue[j].seq
	})
	return t
}

func (m *Manual) remove(t *manualTimer) bool {
	for i, q := range m.queue {
		if q == t {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return true
		}
	}
	return false
}

// Now returns the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration { return m.now }

// Pending returns the number of callbacks waiting to fire.
func (m *Manual) Pending() int { return len(m.queue) }

// Step fires the earliest pending callback, moving the clock to its due
// time. It reports whether anything fired.
func (m *Manual) Step() bool {
	if len(m.queue) == 0 {
		return false
	}
	t := m.queue[0]
	m.queue = m.queue[1:]
	if t.due > m.now {
		m.now = t.due
	}
	t.fn()
	return true
}

// Advance moves the clock forward by d, firing every callback that becomes
// due, including ones scheduled by earlier callbacks. It returns how many
// fired.
func (m *Manual) Advance(d time.Duration) int {
	until := m.now + d
	n := 0
	for len(m.queue) > 0 && m.queue[0].due <= until {
		m.Step()
		n++
	}
	m.now = until
	return n
}

// RunAll steps until nothing is pending or limit callbacks have fired.
func (m *Manual) RunAll(limit int) int {
	n := 0
	for n < limit && m.Step() {
		n++
	}
	return n
}
