package service

import (
	"time"

	"github.com/ariandto/iotskripsinew/internal/models"
)

const secondsPerDay = 24 * 60 * 60

// parseTimeOfDay converts "HH:MM:SS" into seconds since midnight.
func parseTimeOfDay(s string) (int, error) {
	t, err := time.Parse(models.TimeOfDayLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}

// DueEntries selects the schedules whose time-of-day falls within ±window of
// now's wall clock. Entries with malformed times are skipped, not errored.
// Order is preserved, so when several entries hit the same room the last one
// listed wins the room's final state.
func DueEntries(now time.Time, entries []models.ScheduleEntry, window time.Duration) []models.ScheduleEntry {
	nowSec := now.Hour()*3600 + now.Minute()*60 + now.Second()
	w := int(window / time.Second)

	due := make([]models.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		sec, err := parseTimeOfDay(e.Time)
		if err != nil {
			continue
		}
		if withinWindow(nowSec, sec, w) {
			due = append(due, e)
		}
	}
	return due
}

// withinWindow compares two seconds-of-day values on the day circle, so a
// 23:59:45 schedule is still due at 00:00:10.
func withinWindow(nowSec, sec, window int) bool {
	d := nowSec - sec
	if d < 0 {
		d = -d
	}
	if d > secondsPerDay/2 {
		d = secondsPerDay - d
	}
	return d <= window
}
