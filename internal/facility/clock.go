package facility

import "time"

// Clock supplies the current time to duty checks and audit entries.
// Production wiring uses RealClock; tests pin a fixed instant.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock in a fixed location.
type RealClock struct {
	Location *time.Location
}

// Now returns the current time in the clock's location (UTC when none
// is configured).
func (c RealClock) Now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc)
}
