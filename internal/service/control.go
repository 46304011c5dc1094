package service

import (
	"context"
	"strings"
	"time"

	"github.com/ariandto/iotskripsinew/internal/clock"
	"github.com/ariandto/iotskripsinew/internal/models"
)

// ControlResult is what the manual entry point reports back to the caller.
type ControlResult struct {
	Room        string    `json:"room"`
	Status      int       `json:"status"`
	PrevStatus  int       `json:"prev_status"`
	EnergyDelta float64   `json:"power_consumption"`
	Timestamp   time.Time `json:"timestamp"`
}

// ControlService handles manual ON/OFF requests. It funnels through the same
// Reconciler as the scheduler, so a manual toggle and a scheduled action
// racing on one room cannot lose each other's energy increments.
type ControlService struct {
	reconciler *Reconciler
	clk        clock.Clock
}

func NewControlService(rec *Reconciler, clk clock.Clock) *ControlService {
	return &ControlService{reconciler: rec, clk: clk}
}

func (s *ControlService) SetStatus(ctx context.Context, room string, status int) (ControlResult, error) {
	room = strings.TrimSpace(room)
	if room == "" {
		return ControlResult{}, ErrInvalidRoom
	}
	if status != models.StatusOff && status != models.StatusOn {
		return ControlResult{}, ErrInvalidStatus
	}

	now := s.clk.Now()
	out, err := s.reconciler.Apply(ctx, room, status, now, models.SourceManual)
	if err != nil {
		return ControlResult{}, err
	}
	return ControlResult{
		Room:        room,
		Status:      out.Status,
		PrevStatus:  out.PrevStatus,
		EnergyDelta: out.EnergyDelta,
		Timestamp:   now,
	}, nil
}
