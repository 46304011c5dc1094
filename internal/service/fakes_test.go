package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/ariandto/iotskripsinew/internal/clock"
	"github.com/ariandto/iotskripsinew/internal/models"
	"github.com/ariandto/iotskripsinew/internal/repository"
)

func fixedClock(t time.Time) clock.Clock { return clock.Fixed{T: t} }

// fakeStateStore is a map-backed DeviceStates with real optimistic-version
// semantics, so the retry paths are exercised the same way SQLite would.
type fakeStateStore struct {
	mu     sync.Mutex
	rows   map[string]models.DeviceState
	nextID int64

	getErr    error
	insertErr error
	updateErr error

	// forceConflicts makes the next N versioned writes lose the race: the
	// stored version advances (as if another writer won) and the write fails.
	forceConflicts int

	inserts int
	updates int
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{rows: make(map[string]models.DeviceState)}
}

func (f *fakeStateStore) seed(st models.DeviceState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	st.ID = f.nextID
	f.rows[st.Room] = st
}

func (f *fakeStateStore) GetByRoom(ctx context.Context, room string) (models.DeviceState, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return models.DeviceState{}, false, f.getErr
	}
	st, ok := f.rows[room]
	return st, ok, nil
}

func (f *fakeStateStore) Insert(ctx context.Context, st models.DeviceState) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.nextID++
	st.ID = f.nextID
	f.rows[st.Room] = st
	f.inserts++
	return st.ID, nil
}

func (f *fakeStateStore) UpdateVersioned(ctx context.Context, st models.DeviceState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	cur, ok := f.rows[st.Room]
	if !ok || cur.Version != st.Version {
		return repository.ErrVersionConflict
	}
	if f.forceConflicts > 0 {
		f.forceConflicts--
		cur.Version++
		f.rows[st.Room] = cur
		return repository.ErrVersionConflict
	}
	st.Version++
	f.rows[st.Room] = st
	f.updates++
	return nil
}

func (f *fakeStateStore) List(ctx context.Context, offset, limit int) ([]models.DeviceState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.DeviceState, 0, len(f.rows))
	for _, st := range f.rows {
		out = append(out, st)
	}
	return out, nil
}

func (f *fakeStateStore) ListByStatus(ctx context.Context, status int) ([]models.DeviceState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DeviceState
	for _, st := range f.rows {
		if st.Status == status {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeStateStore) PowerByRoom(ctx context.Context) ([]models.RoomPower, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.RoomPower
	for _, st := range f.rows {
		out = append(out, models.RoomPower{Room: st.Room, TotalPower: st.PowerConsumption})
	}
	return out, nil
}

func (f *fakeStateStore) DeleteByRoom(ctx context.Context, room string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, room)
	return nil
}

func (f *fakeStateStore) row(room string) models.DeviceState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[room]
}

// fakeScheduleStore backs the Schedules repository with a map.
type fakeScheduleStore struct {
	mu      sync.Mutex
	entries map[int64]models.ScheduleEntry
	nextID  int64

	listErr         error
	updateResultErr error

	results map[int64]string // last result written per schedule id
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{
		entries: make(map[int64]models.ScheduleEntry),
		results: make(map[int64]string),
	}
}

func (f *fakeScheduleStore) Create(ctx context.Context, e models.ScheduleEntry) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e.ID = f.nextID
	f.entries[e.ID] = e
	return e.ID, nil
}

func (f *fakeScheduleStore) GetByID(ctx context.Context, id int64) (models.ScheduleEntry, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	return e, ok, nil
}

func (f *fakeScheduleStore) List(ctx context.Context) ([]models.ScheduleEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.ScheduleEntry, 0, len(f.entries))
	for id := int64(1); id <= f.nextID; id++ {
		if e, ok := f.entries[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeScheduleStore) ExistsAt(ctx context.Context, room, timeOfDay string, excludeID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID != excludeID && e.Room == room && e.Time == timeOfDay {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeScheduleStore) Update(ctx context.Context, e models.ScheduleEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[e.ID]; !ok {
		return sql.ErrNoRows
	}
	f.entries[e.ID] = e
	return nil
}

func (f *fakeScheduleStore) UpdateResult(ctx context.Context, id int64, result string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateResultErr != nil {
		return f.updateResultErr
	}
	e, ok := f.entries[id]
	if !ok {
		return sql.ErrNoRows
	}
	e.StatusResult = result
	f.entries[id] = e
	f.results[id] = result
	return nil
}

func (f *fakeScheduleStore) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeScheduleStore) resultOf(id int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.results[id]
}

// fakeEventStore records appended audit events in order.
type fakeEventStore struct {
	mu        sync.Mutex
	events    []models.ReconciliationEvent
	appendErr error
}

func (f *fakeEventStore) Append(ctx context.Context, e models.ReconciliationEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.events = append(f.events, e)
	return nil
}

func (f *fakeEventStore) List(ctx context.Context, from, to time.Time, room string) ([]models.ReconciliationEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ReconciliationEvent
	for _, e := range f.events {
		if !from.IsZero() && e.OccurredAt.Before(from) {
			continue
		}
		if !to.IsZero() && e.OccurredAt.After(to) {
			continue
		}
		if room != "" && e.Room != room {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventStore) all() []models.ReconciliationEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ReconciliationEvent(nil), f.events...)
}

// fakeRoomStore backs the Rooms repository with a slice.
type fakeRoomStore struct {
	mu     sync.Mutex
	rooms  map[int64]models.Room
	nextID int64
}

func newFakeRoomStore() *fakeRoomStore {
	return &fakeRoomStore{rooms: make(map[int64]models.Room)}
}

func (f *fakeRoomStore) Create(ctx context.Context, name string) (models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	rm := models.Room{ID: f.nextID, Name: name, CreatedAt: time.Now().UTC()}
	f.rooms[rm.ID] = rm
	return rm, nil
}

func (f *fakeRoomStore) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rooms), nil
}

func (f *fakeRoomStore) List(ctx context.Context) ([]models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Room, 0, len(f.rooms))
	for id := int64(1); id <= f.nextID; id++ {
		if rm, ok := f.rooms[id]; ok {
			out = append(out, rm)
		}
	}
	return out, nil
}

func (f *fakeRoomStore) GetByID(ctx context.Context, id int64) (models.Room, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rm, ok := f.rooms[id]
	return rm, ok, nil
}

func (f *fakeRoomStore) Rename(ctx context.Context, id int64, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rm, ok := f.rooms[id]
	if !ok {
		return sql.ErrNoRows
	}
	rm.Name = name
	f.rooms[id] = rm
	return nil
}

func (f *fakeRoomStore) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rooms[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.rooms, id)
	return nil
}
