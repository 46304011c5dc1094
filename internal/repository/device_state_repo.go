package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ariandto/iotskripsinew/internal/models"
)

type DeviceStateSQLite struct {
	db *sql.DB
}

func NewDeviceStateSQLite(db *sql.DB) *DeviceStateSQLite {
	return &DeviceStateSQLite{db: db}
}

var _ DeviceStates = (*DeviceStateSQLite)(nil)

const (
	selectStateByRoomSQL = `
		SELECT id, room, status, timestamp, power_consumption, version
		FROM led_status WHERE room = ?
	`

	insertStateSQL = `
		INSERT INTO led_status (room, status, timestamp, power_consumption, version)
		VALUES (?, ?, ?, ?, 0)
	`

	// The version predicate makes every update a compare-and-swap; a stale
	// writer touches zero rows and gets ErrVersionConflict instead of
	// silently clobbering a concurrent increment.
	updateStateVersionedSQL = `
		UPDATE led_status
		SET status = ?, timestamp = ?, power_consumption = ?, version = version + 1
		WHERE room = ? AND version = ?
	`

	listStatesSQL = `
		SELECT id, room, status, timestamp, power_consumption, version
		FROM led_status ORDER BY room ASC LIMIT ? OFFSET ?
	`

	listStatesByStatusSQL = `
		SELECT id, room, status, timestamp, power_consumption, version
		FROM led_status WHERE status = ? ORDER BY room ASC
	`

	powerByRoomSQL = `
		SELECT room, SUM(power_consumption) FROM led_status GROUP BY room ORDER BY room ASC
	`

	deleteStateByRoomSQL = `DELETE FROM led_status WHERE room = ?`
)

func scanDeviceState(row interface{ Scan(...any) error }) (models.DeviceState, error) {
	var st models.DeviceState
	err := row.Scan(&st.ID, &st.Room, &st.Status, &st.Timestamp, &st.PowerConsumption, &st.Version)
	if err != nil {
		return models.DeviceState{}, err
	}
	st.Timestamp = st.Timestamp.UTC()
	return st, nil
}

// GetByRoom fetches the single row for a room. Absence is not an error.
func (r *DeviceStateSQLite) GetByRoom(ctx context.Context, room string) (models.DeviceState, bool, error) {
	st, err := scanDeviceState(r.db.QueryRowContext(ctx, selectStateByRoomSQL, room))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DeviceState{}, false, nil
		}
		return models.DeviceState{}, false, fmt.Errorf("select led_status for %q: %w", room, err)
	}
	return st, true, nil
}

// Insert creates the row for a room that has never been referenced before.
func (r *DeviceStateSQLite) Insert(ctx context.Context, st models.DeviceState) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertStateSQL,
		st.Room, st.Status, st.Timestamp.UTC(), st.PowerConsumption)
	if err != nil {
		return 0, fmt.Errorf("insert led_status for %q: %w", st.Room, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id for %q: %w", st.Room, err)
	}
	return id, nil
}

// UpdateVersioned writes back a read-modify-write result. The caller passes
// the version it read; a mismatch means somebody else won the race.
func (r *DeviceStateSQLite) UpdateVersioned(ctx context.Context, st models.DeviceState) error {
	res, err := r.db.ExecContext(ctx, updateStateVersionedSQL,
		st.Status, st.Timestamp.UTC(), st.PowerConsumption, st.Room, st.Version)
	if err != nil {
		return fmt.Errorf("update led_status for %q: %w", st.Room, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %q: %w", st.Room, err)
	}
	if n == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *DeviceStateSQLite) List(ctx context.Context, offset, limit int) ([]models.DeviceState, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return r.queryStates(ctx, listStatesSQL, limit, offset)
}

func (r *DeviceStateSQLite) ListByStatus(ctx context.Context, status int) ([]models.DeviceState, error) {
	return r.queryStates(ctx, listStatesByStatusSQL, status)
}

func (r *DeviceStateSQLite) queryStates(ctx context.Context, q string, args ...any) ([]models.DeviceState, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query led_status: %w", err)
	}
	defer rows.Close()

	out := make([]models.DeviceState, 0, 8)
	for rows.Next() {
		st, err := scanDeviceState(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// PowerByRoom sums accumulated energy per room.
func (r *DeviceStateSQLite) PowerByRoom(ctx context.Context) ([]models.RoomPower, error) {
	rows, err := r.db.QueryContext(ctx, powerByRoomSQL)
	if err != nil {
		return nil, fmt.Errorf("sum power_consumption: %w", err)
	}
	defer rows.Close()

	out := make([]models.RoomPower, 0, 8)
	for rows.Next() {
		var rp models.RoomPower
		if err := rows.Scan(&rp.Room, &rp.TotalPower); err != nil {
			return nil, err
		}
		out = append(out, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByRoom removes a room's state when the room itself is deleted.
func (r *DeviceStateSQLite) DeleteByRoom(ctx context.Context, room string) error {
	if _, err := r.db.ExecContext(ctx, deleteStateByRoomSQL, room); err != nil {
		return fmt.Errorf("delete led_status for %q: %w", room, err)
	}
	return nil
}
