package clock

import "time"

// Clock abstracts time for services so command timestamps and date
// preconditions are testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// New returns the wall clock.
func New() Clock { return systemClock{} }
