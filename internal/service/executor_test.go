package service

import (
	"context"
	"testing"
	"time"

	"github.com/ariandto/iotskripsinew/internal/logger"
	"github.com/ariandto/iotskripsinew/internal/models"
)

func newTestExecutor(states *fakeStateStore, schedules *fakeScheduleStore, events *fakeEventStore, now time.Time) *ExecutorService {
	log := logger.Get(logger.ErrorLevel)
	rec := NewReconciler(states, schedules, events, log, testRate)
	return NewExecutorService(schedules, rec, fixedClock(now), log, 30*time.Second, 30*time.Second)
}

func TestRunTick_ExecutesOnlyDueEntries(t *testing.T) {
	states := newFakeStateStore()
	schedules := newFakeScheduleStore()
	ctx := context.Background()
	dueID, _ := schedules.Create(ctx, models.ScheduleEntry{Room: "Kitchen", Action: models.StatusOn, Time: "18:00:00"})
	farID, _ := schedules.Create(ctx, models.ScheduleEntry{Room: "Bedroom", Action: models.StatusOn, Time: "06:00:00"})
	s := newTestExecutor(states, schedules, &fakeEventStore{}, at(18, 0, 10))

	s.runTick(ctx)

	if got := schedules.resultOf(dueID); got != models.ResultSuccess {
		t.Fatalf("due entry result = %q", got)
	}
	if got := schedules.resultOf(farID); got != "" {
		t.Fatalf("entry outside window was executed: %q", got)
	}
	if _, found, _ := states.GetByRoom(ctx, "Bedroom"); found {
		t.Fatalf("room outside window got a state row")
	}
	if states.row("Kitchen").Status != models.StatusOn {
		t.Fatalf("due entry did not switch the room on")
	}
}

func TestRunTick_OneFailureDoesNotStopTheBatch(t *testing.T) {
	states := newFakeStateStore()
	// Second entry's room exists with a permanently conflicting row, so its
	// reconciliation fails; the first and third still go through.
	states.seed(models.DeviceState{Room: "Porch", Status: models.StatusOn, Timestamp: at(17, 0, 0)})
	states.forceConflicts = stateWriteRetries

	schedules := newFakeScheduleStore()
	ctx := context.Background()
	firstID, _ := schedules.Create(ctx, models.ScheduleEntry{Room: "Kitchen", Action: models.StatusOn, Time: "18:00:00"})
	badID, _ := schedules.Create(ctx, models.ScheduleEntry{Room: "Porch", Action: models.StatusOff, Time: "18:00:00"})
	lastID, _ := schedules.Create(ctx, models.ScheduleEntry{Room: "Garage", Action: models.StatusOn, Time: "18:00:00"})

	s := newTestExecutor(states, schedules, &fakeEventStore{}, at(18, 0, 0))
	s.runTick(ctx)

	if got := schedules.resultOf(firstID); got != models.ResultSuccess {
		t.Fatalf("first entry result = %q", got)
	}
	if got := schedules.resultOf(badID); got != models.ResultFailed {
		t.Fatalf("conflicting entry result = %q, want failed", got)
	}
	if got := schedules.resultOf(lastID); got != models.ResultSuccess {
		t.Fatalf("entry after the failure was skipped: %q", got)
	}
}

func TestRunTick_ListFailureDropsThePass(t *testing.T) {
	states := newFakeStateStore()
	schedules := newFakeScheduleStore()
	schedules.listErr = context.DeadlineExceeded

	s := newTestExecutor(states, schedules, &fakeEventStore{}, at(18, 0, 0))
	s.runTick(context.Background())

	if states.inserts != 0 || states.updates != 0 {
		t.Fatalf("failed pass must not touch state")
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	states := newFakeStateStore()
	schedules := newFakeScheduleStore()
	s := newTestExecutor(states, schedules, &fakeEventStore{}, at(18, 0, 0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Hour) // aligned first tick is far away
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
