package clock

import "time"

// DefaultTimezone is the civil zone everything runs in (WIB). All schedule
// matching happens against wall-clock time in this one zone.
const DefaultTimezone = "Asia/Jakarta"

// Clock supplies the current time. The scheduler and services depend on this
// interface so tests can pin "now".
type Clock interface {
	Now() time.Time
}

// System is the real clock, fixed to one civil zone.
type System struct {
	loc *time.Location
}

// NewSystem returns a clock for the named timezone. An unknown name falls
// back to UTC rather than failing startup.
func NewSystem(timezone string) *System {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return &System{loc: loc}
}

func (c *System) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location exposes the zone, for handlers that render wall-clock timestamps.
func (c *System) Location() *time.Location { return c.loc }

// Fixed is a Clock pinned to a single instant, for tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
