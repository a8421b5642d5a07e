package system

import "time"

// DefaultTPS matches ebiten's default tick rate.
const DefaultTPS = 60

// Clock is game time advanced by a fixed step per frame. It never reads the
// wall clock, so a paused game does not end loops.
type Clock struct {
	step time.Duration
	now  time.Duration
}

func NewClock(tps int) *Clock {
	if tps <= 0 {
		tps = DefaultTPS
	}
	return &Clock{step: time.Second / time.Duration(tps)}
}

func (c *Clock) Now() time.Duration {
	return c.now
}

func (c *Clock) Step() time.Duration {
	return c.step
}

// Tick advances the clock by one frame.
func (c *Clock) Tick() {
	c.now += c.step
}

// ClockSystem ticks the world clock. It should run first.
type ClockSystem struct{}

func NewClockSystem() *ClockSystem {
	return &ClockSystem{}
}

func (s *ClockSystem) Update(w *World) {
	if w == nil || w.Clock == nil {
		return
	}
	w.Clock.Tick()
}
