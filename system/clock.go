// Package system holds the system clock: the process-wide tick counter
// and the configured core clock frequency.
package system

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/zmij/armpp/freq"
)

// ErrZeroFrequency is returned when a clock is configured with 0 Hz.
var ErrZeroFrequency = errors.New("system: zero clock frequency")

// Clock counts periodic timer ticks and knows the configured core clock
// frequency. The frequency is set once by platform start-up code; the
// tick counter is incremented from exactly one call site, the periodic
// timer interrupt, through the handler returned by TickHandler. Readers
// are safe from any context. This single-writer discipline is the
// concurrency contract; there is no lock.
type Clock struct {
	frequency freq.Hertz
	ticks     atomic.Uint32
}

// NewClock returns a clock configured for the given core frequency.
func NewClock(f freq.Hertz) (*Clock, error) {
	if f == 0 {
		return nil, ErrZeroFrequency
	}
	return &Clock{frequency: f}, nil
}

// TickFn increments its clock's tick counter. It must be invoked solely
// from the periodic timer interrupt entry point.
type TickFn func()

// TickHandler returns the tick mutator. Obtaining the mutator through
// here, and installing it only in the SysTick handler, keeps the counter
// single-writer.
func (c *Clock) TickHandler() TickFn {
	return func() { c.ticks.Add(1) }
}

// Ticks returns the number of periodic interrupts observed so far.
func (c *Clock) Ticks() uint32 { return c.ticks.Load() }

// Frequency returns the configured core frequency. It never changes
// after construction.
func (c *Clock) Frequency() freq.Hertz { return c.frequency }

// TicksPerMillisecond returns the core cycles in one millisecond.
func (c *Clock) TicksPerMillisecond() uint32 { return c.frequency.Count() / 1000 }

// Uptime converts the tick count to a duration, assuming one tick per
// millisecond (the reload value SysTick is normally configured with).
func (c *Clock) Uptime() time.Duration {
	return time.Duration(c.Ticks()) * time.Millisecond
}
