package export

import "time"

// Clock abstracts time.Now() to allow deterministic testing. It determines
// "today" and the year range of generated events.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
