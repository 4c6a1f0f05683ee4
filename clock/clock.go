// Package clock provides the time sources and timezone helpers behind
// the server's tools.
package clock

import (
	"fmt"
	"time"
)

// Clock is the time source the server reads from
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns the current system time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant. It backs the "fixed"
// time source used for deterministic tests and replay sessions.
type FixedClock struct {
	t time.Time
}

// NewFixedClock creates a FixedClock pinned to t
func NewFixedClock(t time.Time) FixedClock {
	return FixedClock{t: t}
}

// Now returns the pinned instant
func (c FixedClock) Now() time.Time {
	return c.t
}

// LoadZone resolves an IANA timezone name to a location
func LoadZone(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone name: %s, use a standard IANA name such as 'Asia/Shanghai', 'UTC' or 'America/New_York'", name)
	}
	return loc, nil
}

// FromUnix converts a Unix timestamp in seconds to a time value.
// Timestamps whose year falls outside 1-9999 are rejected so that
// formatted output stays within the four-digit layout.
func FromUnix(ts int64) (time.Time, error) {
	t := time.Unix(ts, 0)
	if year := t.UTC().Year(); year < 1 || year > 9999 {
		return time.Time{}, fmt.Errorf("invalid timestamp: %d, out of representable range", ts)
	}
	return t, nil
}
