package models

import "time"

// Execution results recorded after each reconciliation attempt. A new entry
// starts with ResultUnset until the scheduler first picks it up.
const (
	ResultUnset   = ""
	ResultSuccess = "success"
	ResultFailed  = "failed"
)

// TimeOfDayLayout is the wall-clock format schedules are stored in. Entries
// recur every day at this time; there is no date component.
const TimeOfDayLayout = "15:04:05"

// ScheduleEntry is a recurring daily trigger: switch Room to Action at Time.
type ScheduleEntry struct {
	ID           int64     `json:"id"`
	Room         string    `json:"room"`
	Action       int       `json:"action"` // 0 = OFF, 1 = ON
	Time         string    `json:"time"`   // "HH:MM:SS" wall clock in the configured zone
	StatusResult string    `json:"statusresult"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
