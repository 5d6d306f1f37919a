package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze "yesterday".
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for default reference dates. Pass nil
// to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Yesterday returns the calendar day before the current day, at midnight UTC.
// It is evaluated on every call.
func Yesterday() time.Time {
	y, m, d := clock.Now().Date()
	return time.Date(y, m, d-1, 0, 0, 0, 0, time.UTC)
}
