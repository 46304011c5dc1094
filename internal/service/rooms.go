package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/ariandto/iotskripsinew/internal/models"
	"github.com/ariandto/iotskripsinew/internal/repository"
)

// maxRooms is the hard cap on lighting zones; the deployment has six
// controller channels.
const maxRooms = 6

type RoomService struct {
	rooms  repository.Rooms
	states repository.DeviceStates
}

func NewRoomService(rooms repository.Rooms, states repository.DeviceStates) *RoomService {
	return &RoomService{rooms: rooms, states: states}
}

func (s *RoomService) Create(ctx context.Context, name string) (models.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Room{}, ErrInvalidRoom
	}
	n, err := s.rooms.Count(ctx)
	if err != nil {
		return models.Room{}, err
	}
	if n >= maxRooms {
		return models.Room{}, ErrRoomLimit
	}
	return s.rooms.Create(ctx, name)
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	return s.rooms.List(ctx)
}

func (s *RoomService) Get(ctx context.Context, id int64) (models.Room, error) {
	rm, found, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return models.Room{}, err
	}
	if !found {
		return models.Room{}, ErrNotFound
	}
	return rm, nil
}

func (s *RoomService) Rename(ctx context.Context, id int64, name string) (models.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Room{}, ErrInvalidRoom
	}
	if err := s.rooms.Rename(ctx, id, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Room{}, ErrNotFound
		}
		return models.Room{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes a room and cascades to its device state.
func (s *RoomService) Delete(ctx context.Context, id int64) error {
	rm, found, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	if err := s.rooms.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.states.DeleteByRoom(ctx, rm.Name)
}
