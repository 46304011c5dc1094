package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/ariandto/iotskripsinew/internal/clock"
	"github.com/ariandto/iotskripsinew/internal/models"
	"github.com/ariandto/iotskripsinew/internal/repository"
)

// ScheduleInput is the CRUD payload. On update, empty fields keep the stored
// value.
type ScheduleInput struct {
	Room   string `json:"room"`
	Action string `json:"action"` // "ON" | "OFF"
	Time   string `json:"time"`   // "HH:MM:SS"
}

type ScheduleService struct {
	repo repository.Schedules
	clk  clock.Clock
}

func NewScheduleService(repo repository.Schedules, clk clock.Clock) *ScheduleService {
	return &ScheduleService{repo: repo, clk: clk}
}

func parseAction(s string) (int, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ON":
		return models.StatusOn, nil
	case "OFF":
		return models.StatusOff, nil
	default:
		return 0, ErrInvalidAction
	}
}

func validateTimeOfDay(s string) error {
	if _, err := time.Parse(models.TimeOfDayLayout, s); err != nil {
		return ErrInvalidTime
	}
	return nil
}

func (s *ScheduleService) Create(ctx context.Context, in ScheduleInput) (models.ScheduleEntry, error) {
	room := strings.TrimSpace(in.Room)
	if room == "" {
		return models.ScheduleEntry{}, ErrInvalidRoom
	}
	action, err := parseAction(in.Action)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	if err := validateTimeOfDay(in.Time); err != nil {
		return models.ScheduleEntry{}, err
	}

	// One entry per (room, time) pair; checked here, not a hard constraint.
	exists, err := s.repo.ExistsAt(ctx, room, in.Time, 0)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	if exists {
		return models.ScheduleEntry{}, ErrDuplicateSchedule
	}

	now := s.clk.Now().UTC()
	entry := models.ScheduleEntry{
		Room:         room,
		Action:       action,
		Time:         in.Time,
		StatusResult: models.ResultUnset,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	id, err := s.repo.Create(ctx, entry)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	entry.ID = id
	return entry, nil
}

func (s *ScheduleService) Get(ctx context.Context, id int64) (models.ScheduleEntry, error) {
	e, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	if !found {
		return models.ScheduleEntry{}, ErrNotFound
	}
	return e, nil
}

func (s *ScheduleService) List(ctx context.Context) ([]models.ScheduleEntry, error) {
	return s.repo.List(ctx)
}

func (s *ScheduleService) Update(ctx context.Context, id int64, in ScheduleInput) (models.ScheduleEntry, error) {
	e, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	if !found {
		return models.ScheduleEntry{}, ErrNotFound
	}

	if room := strings.TrimSpace(in.Room); room != "" {
		e.Room = room
	}
	if in.Action != "" {
		action, err := parseAction(in.Action)
		if err != nil {
			return models.ScheduleEntry{}, err
		}
		e.Action = action
	}
	if in.Time != "" {
		if err := validateTimeOfDay(in.Time); err != nil {
			return models.ScheduleEntry{}, err
		}
		e.Time = in.Time
	}

	exists, err := s.repo.ExistsAt(ctx, e.Room, e.Time, e.ID)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	if exists {
		return models.ScheduleEntry{}, ErrDuplicateSchedule
	}

	e.UpdatedAt = s.clk.Now().UTC()
	if err := s.repo.Update(ctx, e); err != nil {
		return models.ScheduleEntry{}, err
	}
	return e, nil
}

func (s *ScheduleService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
