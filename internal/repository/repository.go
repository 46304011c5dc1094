package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ariandto/iotskripsinew/internal/models"
)

// nowUTC stamps bookkeeping columns the repositories own themselves.
func nowUTC() time.Time { return time.Now().UTC() }

// ErrVersionConflict reports a lost-update race: the row changed between the
// caller's read and its versioned write. Callers reload and retry.
var ErrVersionConflict = errors.New("device state version conflict")

type DeviceStates interface {
	// GetByRoom returns the authoritative row for a room, or found=false.
	GetByRoom(ctx context.Context, room string) (models.DeviceState, bool, error)
	Insert(ctx context.Context, st models.DeviceState) (int64, error)
	// UpdateVersioned writes status/timestamp/power only if st.Version still
	// matches the stored row; otherwise ErrVersionConflict.
	UpdateVersioned(ctx context.Context, st models.DeviceState) error
	List(ctx context.Context, offset, limit int) ([]models.DeviceState, error)
	ListByStatus(ctx context.Context, status int) ([]models.DeviceState, error)
	PowerByRoom(ctx context.Context) ([]models.RoomPower, error)
	DeleteByRoom(ctx context.Context, room string) error
}

type Schedules interface {
	Create(ctx context.Context, e models.ScheduleEntry) (int64, error)
	GetByID(ctx context.Context, id int64) (models.ScheduleEntry, bool, error)
	List(ctx context.Context) ([]models.ScheduleEntry, error)
	// ExistsAt reports whether another entry targets the same room and
	// time-of-day. excludeID skips the entry being updated.
	ExistsAt(ctx context.Context, room, timeOfDay string, excludeID int64) (bool, error)
	Update(ctx context.Context, e models.ScheduleEntry) error
	UpdateResult(ctx context.Context, id int64, result string) error
	Delete(ctx context.Context, id int64) error
}

type Events interface {
	Append(ctx context.Context, e models.ReconciliationEvent) error
	List(ctx context.Context, from, to time.Time, room string) ([]models.ReconciliationEvent, error)
}

type Rooms interface {
	Create(ctx context.Context, name string) (models.Room, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]models.Room, error)
	GetByID(ctx context.Context, id int64) (models.Room, bool, error)
	Rename(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

type Repository struct {
	DeviceStates DeviceStates
	Schedules    Schedules
	Events       Events
	Rooms        Rooms
	Auth         Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		DeviceStates: NewDeviceStateSQLite(db),
		Schedules:    NewScheduleSQLite(db),
		Events:       NewEventSQLite(db),
		Rooms:        NewRoomSQLite(db),
		Auth:         NewUserRepository(db),
	}
}
