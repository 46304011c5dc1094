package service

import (
	"context"
	"errors"
	"time"

	"github.com/ariandto/iotskripsinew/internal/clock"
	"github.com/ariandto/iotskripsinew/internal/logger"
	"github.com/ariandto/iotskripsinew/internal/models"
	"github.com/ariandto/iotskripsinew/internal/power"
	"github.com/ariandto/iotskripsinew/internal/repository"
)

// PowerRefreshService is the energy-refresh driver: every few seconds it
// folds the elapsed on-time of every lit room into its accumulated energy,
// so totals stay current between state transitions.
type PowerRefreshService struct {
	states    repository.DeviceStates
	clk       clock.Clock
	log       *logger.Logger
	rate      float64
	opTimeout time.Duration
}

func NewPowerRefreshService(states repository.DeviceStates, clk clock.Clock,
	log *logger.Logger, rate float64, opTimeout time.Duration) *PowerRefreshService {
	return &PowerRefreshService{states: states, clk: clk, log: log, rate: rate, opTimeout: opTimeout}
}

// Run ticks at the given interval until ctx is canceled.
func (s *PowerRefreshService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.refreshOnce(ctx)
		}
	}
}

// refreshOnce advances the ledger for every room that is currently ON. Rooms
// are handled independently; one room's failure never blocks the rest.
func (s *PowerRefreshService) refreshOnce(ctx context.Context) {
	tctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	now := s.clk.Now()

	lit, err := s.states.ListByStatus(tctx, models.StatusOn)
	if err != nil {
		s.log.Errorw("power_refresh_list_failed", "err", err)
		return
	}

	for _, d := range lit {
		if _, err := s.refreshRoomAt(tctx, d.Room, now); err != nil {
			if errors.Is(err, repository.ErrVersionConflict) {
				// a toggle won the race; next tick picks up from its timestamp
				continue
			}
			s.log.Errorw("power_refresh_failed", "room", d.Room, "err", err)
		}
	}
}

// RefreshRoom folds elapsed on-time for a single room on demand and returns
// the energy added. ErrDeviceOff when the room is absent or not ON.
func (s *PowerRefreshService) RefreshRoom(ctx context.Context, room string) (float64, error) {
	return s.refreshRoomAt(ctx, room, s.clk.Now())
}

func (s *PowerRefreshService) refreshRoomAt(ctx context.Context, room string, now time.Time) (float64, error) {
	// Re-fetch the authoritative row; the listing that led here may be stale.
	latest, found, err := s.states.GetByRoom(ctx, room)
	if err != nil {
		return 0, err
	}
	if !found || !latest.IsOn() {
		return 0, ErrDeviceOff
	}

	delta := power.Energy(latest.Timestamp, now, s.rate)
	if delta <= 0 {
		return 0, nil
	}

	latest.PowerConsumption += delta
	latest.Timestamp = now
	if err := s.states.UpdateVersioned(ctx, latest); err != nil {
		return 0, err
	}
	return delta, nil
}
