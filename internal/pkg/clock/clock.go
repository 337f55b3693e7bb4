package clock

import "time"

// Clock supplies the current time. Services read "now" through this interface
// so tests can pin check-in/check-out times deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by the ambient system clock.
func System() Clock { return systemClock{} }

// Fixed is a Clock frozen at a settable instant.
type Fixed struct {
	Instant time.Time
}

func (f *Fixed) Now() time.Time { return f.Instant }

// Set moves the fixed clock to t.
func (f *Fixed) Set(t time.Time) { f.Instant = t }

// Advance moves the fixed clock forward by d.
func (f *Fixed) Advance(d time.Duration) { f.Instant = f.Instant.Add(d) }
