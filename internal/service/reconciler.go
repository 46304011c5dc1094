package service

import (
	"context"
	"errors"
	"time"

	"github.com/ariandto/iotskripsinew/internal/logger"
	"github.com/ariandto/iotskripsinew/internal/models"
	"github.com/ariandto/iotskripsinew/internal/power"
	"github.com/ariandto/iotskripsinew/internal/repository"
)

// stateWriteRetries bounds how often a read-modify-write is replayed after
// losing a version race before the attempt is recorded as failed.
const stateWriteRetries = 3

// Outcome describes one applied (or attempted) state change.
type Outcome struct {
	PrevStatus  int
	Status      int
	EnergyDelta float64
	Created     bool
}

// Reconciler brings a room's persisted state in line with an intended action.
// It is shared by the schedule executor and the manual control path, so both
// follow identical rules: lazy row creation, no-op skip, and the ON→OFF
// energy fold, all under optimistic concurrency.
type Reconciler struct {
	states    repository.DeviceStates
	schedules repository.Schedules
	events    repository.Events
	log       *logger.Logger
	rate      float64
}

func NewReconciler(states repository.DeviceStates, schedules repository.Schedules,
	events repository.Events, log *logger.Logger, rate float64) *Reconciler {
	return &Reconciler{states: states, schedules: schedules, events: events, log: log, rate: rate}
}

// Apply switches room to action as of now. Each attempt, successful or not,
// leaves an audit event behind.
func (r *Reconciler) Apply(ctx context.Context, room string, action int, now time.Time, source string) (Outcome, error) {
	var lastErr error

	for attempt := 0; attempt < stateWriteRetries; attempt++ {
		st, found, err := r.states.GetByRoom(ctx, room)
		if err != nil {
			lastErr = err
			break
		}

		if !found {
			// First reference to this room: create its state with the
			// requested action and an empty energy ledger.
			_, err := r.states.Insert(ctx, models.DeviceState{
				Room:      room,
				Status:    action,
				Timestamp: now,
			})
			if err != nil {
				lastErr = err
				break
			}
			out := Outcome{PrevStatus: models.StatusOff, Status: action, Created: true}
			r.audit(ctx, room, action, out, models.ResultSuccess, source, now)
			return out, nil
		}

		if st.Status == action {
			// Already in the desired state; no write, no energy.
			out := Outcome{PrevStatus: st.Status, Status: st.Status}
			r.audit(ctx, room, action, out, models.ResultSuccess, source, now)
			return out, nil
		}

		prev := st.Status
		var delta float64
		if st.IsOn() && action == models.StatusOff {
			delta = power.Energy(st.Timestamp, now, r.rate)
		}
		st.Status = action
		st.Timestamp = now
		st.PowerConsumption += delta

		err = r.states.UpdateVersioned(ctx, st)
		if err == nil {
			out := Outcome{PrevStatus: prev, Status: action, EnergyDelta: delta}
			r.audit(ctx, room, action, out, models.ResultSuccess, source, now)
			return out, nil
		}
		lastErr = err
		if errors.Is(err, repository.ErrVersionConflict) {
			continue // somebody else won; reload and recompute
		}
		break
	}

	r.audit(ctx, room, action, Outcome{}, models.ResultFailed, source, now)
	return Outcome{}, lastErr
}

// ExecuteSchedule applies one due entry and records its executionResult.
// Errors are returned for logging only; the caller keeps processing the rest
// of the batch.
func (r *Reconciler) ExecuteSchedule(ctx context.Context, e models.ScheduleEntry, now time.Time) (Outcome, error) {
	out, err := r.Apply(ctx, e.Room, e.Action, now, models.SourceSchedule)

	result := models.ResultSuccess
	if err != nil {
		result = models.ResultFailed
	}
	if mErr := r.schedules.UpdateResult(ctx, e.ID, result); mErr != nil {
		r.log.Errorw("schedule_result_write_failed", "schedule_id", e.ID, "err", mErr)
		if err == nil {
			err = mErr
		}
	}
	return out, err
}

// audit appends the per-attempt event; failures to write it are logged, never
// propagated, so bookkeeping cannot take down a reconciliation.
func (r *Reconciler) audit(ctx context.Context, room string, action int, out Outcome, result, source string, now time.Time) {
	err := r.events.Append(ctx, models.ReconciliationEvent{
		Room:        room,
		Action:      action,
		PrevStatus:  out.PrevStatus,
		Result:      result,
		EnergyDelta: out.EnergyDelta,
		Source:      source,
		OccurredAt:  now,
	})
	if err != nil {
		r.log.Errorw("audit_append_failed", "room", room, "err", err)
	}
}
