package clock

import "time"

// Clock is the session time. It only moves forward, and only while running.
type Clock struct {
	now      time.Duration
	paused   bool
	skipNext bool
}

// Advance moves the clock by delta and returns how far it actually moved.
// Nothing moves while paused, and the first delta after Resume is dropped
// because it contains the time spent paused.
func (c *Clock) Advance(delta time.Duration) time.Duration {
	if c.paused || delta <= 0 {
		return 0
	}
	if c.skipNext {
		c.skipNext = false
		return 0
	}
	c.now += delta
	return delta
}

func (c *Clock) Pause() {
	c.paused = true
}

func (c *Clock) Resume() {
	if !c.paused {
		return
	}
	c.paused = false
	c.skipNext = true
}

func (c *Clock) Reset() {
	*c = Clock{}
}

func (c *Clock) Now() time.Duration {
	return c.now
}

func (c *Clock) Paused() bool {
	return c.paused
}

// Stopwatch turns wall time into per frame deltas for the host loop.
type Stopwatch struct {
	now  func() time.Time
	last time.Time
}

func NewStopwatch() *Stopwatch {
	return &Stopwatch{now: time.Now}
}

// Lap returns the time since the previous Lap, zero on the first call.
func (s *Stopwatch) Lap() time.Duration {
	t := s.now()
	if s.last.IsZero() {
		s.last = t
		return 0
	}
	d := t.Sub(s.last)
	s.last = t
	return d
}
