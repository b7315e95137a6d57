// Package clock supplies the current instant and the local time zone that
// calendar-day calculations are made in.
package clock

import "time"

// Clock returns the current time in the user's local zone.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock and converts it to Location.
// A nil Location means time.Local.
type System struct {
	Location *time.Location
}

// Now implements Clock.
func (c System) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// Fixed always returns the same instant. Advance moves it.
type Fixed struct {
	T time.Time
}

// Now implements Clock.
func (c *Fixed) Now() time.Time {
	return c.T
}

// Advance moves the clock forward by d.
func (c *Fixed) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}

// LoadLocation resolves an IANA zone name. Empty means time.Local.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
