package models

import "time"

// Light status / schedule action values. Stored as 0/1 in SQLite, same as the
// ESP firmware expects on the wire.
const (
	StatusOff = 0
	StatusOn  = 1
)

// DeviceState is the persisted on/off state and energy ledger for one room.
// There is exactly one row per room; Version backs optimistic concurrency on
// every read-modify-write.
type DeviceState struct {
	ID               int64     `json:"id"`
	Room             string    `json:"room"`
	Status           int       `json:"status"` // 0 = OFF, 1 = ON
	Timestamp        time.Time `json:"timestamp"`
	PowerConsumption float64   `json:"power_consumption"` // accumulated, unit-hours * rate
	Version          int64     `json:"-"`
}

// IsOn reports whether the light is currently on.
func (s DeviceState) IsOn() bool { return s.Status == StatusOn }

// StatusLabel renders a status value for logs and responses.
func StatusLabel(status int) string {
	if status == StatusOn {
		return "ON"
	}
	return "OFF"
}
