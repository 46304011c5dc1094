package models

import "time"

// Sources of a reconciliation attempt.
const (
	SourceSchedule = "schedule"
	SourceManual   = "manual"
	SourceRefresh  = "refresh"
)

// ReconciliationEvent is the audit record written for every attempt to bring
// a room's state in line with an intended action, successful or not.
type ReconciliationEvent struct {
	EventID     string    `json:"event_id"`
	Room        string    `json:"room"`
	Action      int       `json:"action"`
	PrevStatus  int       `json:"prev_status"`
	Result      string    `json:"result"` // success | failed
	EnergyDelta float64   `json:"energy_delta"`
	Source      string    `json:"source"` // schedule | manual | refresh
	OccurredAt  time.Time `json:"occurred_at"`
}
