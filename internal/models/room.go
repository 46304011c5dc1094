package models

import "time"

// Room is a named lighting zone, the unit everything else references by name.
type Room struct {
	ID        int64     `json:"idmyroom"`
	Name      string    `json:"room"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomPower is the accumulated energy total for one room.
type RoomPower struct {
	Room       string  `json:"room"`
	TotalPower float64 `json:"total_power"`
}
