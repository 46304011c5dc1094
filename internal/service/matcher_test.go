package service

import (
	"testing"
	"time"

	"github.com/ariandto/iotskripsinew/internal/models"
)

func at(hh, mm, ss int) time.Time {
	return time.Date(2025, 8, 10, hh, mm, ss, 0, time.UTC)
}

func entry(id int64, room, tod string) models.ScheduleEntry {
	return models.ScheduleEntry{ID: id, Room: room, Action: models.StatusOn, Time: tod}
}

func TestDueEntries_WindowEdges(t *testing.T) {
	window := 30 * time.Second
	entries := []models.ScheduleEntry{
		entry(1, "Kitchen", "18:00:00"),
		entry(2, "Bedroom", "18:00:30"), // exactly at the edge: due
		entry(3, "Garage", "18:00:31"),  // one past the edge: not due
		entry(4, "Porch", "17:59:30"),   // trailing edge: due
		entry(5, "Attic", "17:59:29"),   // one before: not due
	}

	due := DueEntries(at(18, 0, 0), entries, window)
	if len(due) != 3 {
		t.Fatalf("expected 3 due entries, got %d: %+v", len(due), due)
	}
	wantIDs := []int64{1, 2, 4}
	for i, e := range due {
		if e.ID != wantIDs[i] {
			t.Fatalf("due order: got id %d at %d, want %d", e.ID, i, wantIDs[i])
		}
	}
}

func TestDueEntries_MidnightWrap(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry(1, "Kitchen", "23:59:45"),
		entry(2, "Bedroom", "00:00:05"),
		entry(3, "Garage", "12:00:00"),
	}

	// At 00:00:10 both entries around midnight are within 30s on the day
	// circle; noon is not.
	due := DueEntries(at(0, 0, 10), entries, 30*time.Second)
	if len(due) != 2 {
		t.Fatalf("expected 2 due entries across midnight, got %d", len(due))
	}
	if due[0].ID != 1 || due[1].ID != 2 {
		t.Fatalf("unexpected due set: %+v", due)
	}
}

func TestDueEntries_SkipsMalformedTimes(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry(1, "Kitchen", "18:00:00"),
		entry(2, "Bedroom", "25:99:00"),
		entry(3, "Garage", "6pm"),
		entry(4, "Porch", ""),
	}

	due := DueEntries(at(18, 0, 0), entries, 30*time.Second)
	if len(due) != 1 || due[0].ID != 1 {
		t.Fatalf("malformed entries leaked through: %+v", due)
	}
}

func TestDueEntries_SameRoomKeepsListedOrder(t *testing.T) {
	// Both hit the same room inside one window. Execution order decides the
	// room's final state, so the listed order must be preserved.
	entries := []models.ScheduleEntry{
		{ID: 1, Room: "Kitchen", Action: models.StatusOn, Time: "18:00:00"},
		{ID: 2, Room: "Kitchen", Action: models.StatusOff, Time: "18:00:10"},
	}

	due := DueEntries(at(18, 0, 5), entries, 30*time.Second)
	if len(due) != 2 || due[0].ID != 1 || due[1].ID != 2 {
		t.Fatalf("order not preserved: %+v", due)
	}
}

func TestAlignDelay(t *testing.T) {
	now := time.Date(2025, 8, 10, 18, 0, 42, 500_000_000, time.UTC)
	d := alignDelay(now, time.Minute)
	if d != 17*time.Second+500*time.Millisecond {
		t.Fatalf("align delay = %v", d)
	}
	if alignDelay(now, 0) != 0 {
		t.Fatalf("zero tick should not wait")
	}
}
