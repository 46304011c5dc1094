package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ariandto/iotskripsinew/internal/models"
)

func TestRoomService_CapEnforced(t *testing.T) {
	rooms := newFakeRoomStore()
	s := NewRoomService(rooms, newFakeStateStore())
	ctx := context.Background()

	for i := 0; i < maxRooms; i++ {
		if _, err := s.Create(ctx, fmt.Sprintf("Room %d", i+1)); err != nil {
			t.Fatalf("create %d failed: %v", i+1, err)
		}
	}
	if _, err := s.Create(ctx, "One Too Many"); !errors.Is(err, ErrRoomLimit) {
		t.Fatalf("got %v, want ErrRoomLimit", err)
	}

	// Deleting frees a slot.
	if err := s.Delete(ctx, 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := s.Create(ctx, "Replacement"); err != nil {
		t.Fatalf("create after delete failed: %v", err)
	}
}

func TestRoomService_DeleteCascadesToDeviceState(t *testing.T) {
	rooms := newFakeRoomStore()
	states := newFakeStateStore()
	s := NewRoomService(rooms, states)
	ctx := context.Background()

	rm, err := s.Create(ctx, "Kitchen")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	states.seed(models.DeviceState{Room: "Kitchen", Status: models.StatusOn, Timestamp: at(17, 0, 0)})

	if err := s.Delete(ctx, rm.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found, _ := states.GetByRoom(ctx, "Kitchen"); found {
		t.Fatalf("device state survived the room delete")
	}
}

func TestRoomService_RenameAndErrors(t *testing.T) {
	rooms := newFakeRoomStore()
	s := NewRoomService(rooms, newFakeStateStore())
	ctx := context.Background()

	rm, _ := s.Create(ctx, "Kitchen")

	got, err := s.Rename(ctx, rm.ID, "Pantry")
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if got.Name != "Pantry" {
		t.Fatalf("rename not applied: %+v", got)
	}

	if _, err := s.Rename(ctx, 99, "Ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("rename unknown: got %v, want ErrNotFound", err)
	}
	if _, err := s.Create(ctx, "   "); !errors.Is(err, ErrInvalidRoom) {
		t.Fatalf("blank name: got %v, want ErrInvalidRoom", err)
	}
	if err := s.Delete(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete unknown: got %v, want ErrNotFound", err)
	}
}
