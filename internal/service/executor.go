package service

import (
	"context"
	"time"

	"github.com/ariandto/iotskripsinew/internal/clock"
	"github.com/ariandto/iotskripsinew/internal/logger"
	"github.com/ariandto/iotskripsinew/internal/models"
	"github.com/ariandto/iotskripsinew/internal/repository"
)

// ExecutorService is the schedule driver: once a minute it matches the
// schedule table against the wall clock and reconciles every due entry.
type ExecutorService struct {
	schedules  repository.Schedules
	reconciler *Reconciler
	clk        clock.Clock
	log        *logger.Logger
	window     time.Duration
	opTimeout  time.Duration
}

func NewExecutorService(schedules repository.Schedules, rec *Reconciler, clk clock.Clock,
	log *logger.Logger, window, opTimeout time.Duration) *ExecutorService {
	return &ExecutorService{
		schedules:  schedules,
		reconciler: rec,
		clk:        clk,
		log:        log,
		window:     window,
		opTimeout:  opTimeout,
	}
}

// Run ticks at the given interval until ctx is canceled. The first tick is
// aligned to the next interval boundary, mirroring the legacy minute cron.
func (s *ExecutorService) Run(ctx context.Context, tick time.Duration) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(alignDelay(s.clk.Now(), tick)):
	}

	t := time.NewTicker(tick)
	defer t.Stop()

	s.runTick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.runTick(ctx)
		}
	}
}

// runTick processes one pass. A failed pass is logged and dropped; the ticker
// fires again regardless.
func (s *ExecutorService) runTick(ctx context.Context) {
	tctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	now := s.clk.Now()

	entries, err := s.schedules.List(tctx)
	if err != nil {
		s.log.Errorw("schedule_list_failed", "err", err)
		return
	}

	due := DueEntries(now, entries, s.window)
	if len(due) == 0 {
		return
	}

	for _, e := range due {
		out, err := s.reconciler.ExecuteSchedule(tctx, e, now)
		if err != nil {
			s.log.Errorw("schedule_execution_failed",
				"schedule_id", e.ID, "room", e.Room,
				"action", models.StatusLabel(e.Action), "err", err)
			continue
		}
		s.log.Infow("schedule_executed",
			"schedule_id", e.ID, "room", e.Room,
			"action", models.StatusLabel(e.Action),
			"prev_status", models.StatusLabel(out.PrevStatus),
			"energy_delta", out.EnergyDelta)
	}
}

// alignDelay returns the wait until the next tick boundary (e.g. the top of
// the next minute for a 1m tick).
func alignDelay(now time.Time, tick time.Duration) time.Duration {
	if tick <= 0 {
		return 0
	}
	return now.Truncate(tick).Add(tick).Sub(now)
}
