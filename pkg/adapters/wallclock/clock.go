// Package wallclock implements ports.Clock over real time.
package wallclock

import (
	"time"

	"github.com/aretw0/kinetic/pkg/ports"
)

// Clock schedules with time.AfterFunc.
type Clock struct{}

// New returns the wall clock.
func New() Clock {
	return Clock{}
}

// Now implements ports.Clock.
func (Clock) Now() time.Time {
	return time.Now()
}

// AfterFunc implements ports.Clock.
func (Clock) AfterFunc(d time.Duration, fn func()) ports.CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
