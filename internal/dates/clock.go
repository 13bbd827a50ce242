package dates

import "time"

// Clock abstracts time-dependent functionality for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the standard library.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock struct {
	Instant time.Time
}

// Now returns the configured instant.
func (clock FixedClock) Now() time.Time {
	return clock.Instant
}

// ResolveClock returns the provided clock or the system clock when none is configured.
func ResolveClock(clock Clock) Clock {
	if clock == nil {
		return SystemClock{}
	}
	return clock
}
