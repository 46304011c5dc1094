package service

import "errors"

// Domain errors the handlers map onto HTTP status codes.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidRoom       = errors.New("room must be a non-empty string")
	ErrInvalidStatus     = errors.New("status must be 0 (OFF) or 1 (ON)")
	ErrInvalidAction     = errors.New("invalid action: use ON or OFF")
	ErrInvalidTime       = errors.New("time must be in HH:MM:SS format")
	ErrDuplicateSchedule = errors.New("schedule already exists for this room at this time")
	ErrRoomLimit         = errors.New("room limit reached (maximum 6 rooms)")
	ErrDeviceOff         = errors.New("device is OFF or not found")
)
