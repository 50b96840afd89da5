package pipeline

import (
	"errors"
	"time"
)

// FrameClock paces a loop at a fixed FPS. If a frame overruns its slot the
// next tick is rescheduled from the current time instead of accumulating
// debt.
type FrameClock struct {
	interval time.Duration
	nextTick time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewFrameClock returns a clock ticking at fps frames per second.
func NewFrameClock(fps float64) (*FrameClock, error) {
	if fps <= 0 {
		return nil, errors.New("pipeline: fps must be greater than 0")
	}
	c := &FrameClock{
		interval: time.Duration(float64(time.Second) / fps),
		now:      time.Now,
		sleep:    time.Sleep,
	}
	c.nextTick = c.now()
	return c, nil
}

// Tick blocks until the next frame slot.
func (c *FrameClock) Tick() {
	now := c.now()
	if now.Before(c.nextTick) {
		c.sleep(c.nextTick.Sub(now))
	}
	next := c.nextTick.Add(c.interval)
	if cur := c.now(); next.Before(cur) {
		next = cur
	}
	c.nextTick = next
}

// Interval returns the configured frame interval.
func (c *FrameClock) Interval() time.Duration { return c.interval }
