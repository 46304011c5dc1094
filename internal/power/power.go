// Package power converts on-duration into accumulated energy.
package power

import "time"

// DefaultRate is the nominal draw of one LED fixture, in energy units per
// hour of on-time.
const DefaultRate = 5.0

// Energy returns the energy consumed between prev and cur at the given
// hourly rate. A non-positive duration (clock skew, duplicate tick) yields 0,
// so accumulated totals can only grow.
func Energy(prev, cur time.Time, rate float64) float64 {
	seconds := cur.Sub(prev).Seconds()
	if seconds <= 0 {
		return 0
	}
	return seconds / 3600 * rate
}
