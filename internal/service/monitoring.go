package service

import (
	"context"

	"github.com/ariandto/iotskripsinew/internal/models"
	"github.com/ariandto/iotskripsinew/internal/repository"
)

const defaultPageSize = 10

type MonitoringService struct {
	states repository.DeviceStates
}

func NewMonitoringService(states repository.DeviceStates) *MonitoringService {
	return &MonitoringService{states: states}
}

// ListStates pages through all device states.
func (s *MonitoringService) ListStates(ctx context.Context, page, limit int) ([]models.DeviceState, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	return s.states.List(ctx, (page-1)*limit, limit)
}

// StatusByRoom returns the current state of every room. The room column is
// unique, so the list is already one authoritative row per room.
func (s *MonitoringService) StatusByRoom(ctx context.Context) ([]models.DeviceState, error) {
	return s.states.List(ctx, 0, maxRooms)
}

// PowerByRoom returns accumulated energy totals per room.
func (s *MonitoringService) PowerByRoom(ctx context.Context) ([]models.RoomPower, error) {
	return s.states.PowerByRoom(ctx)
}
