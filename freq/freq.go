// Package freq provides a thin typed wrapper for clock frequencies.
package freq

// Hertz is a clock frequency in Hz.
type Hertz uint32

func Hz(n uint32) Hertz  { return Hertz(n) }
func KHz(n uint32) Hertz { return Hertz(n * 1000) }
func MHz(n uint32) Hertz { return Hertz(n * 1000_000) }

// Count returns the frequency as a plain Hz count.
func (f Hertz) Count() uint32 { return uint32(f) }
