package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ariandto/iotskripsinew/internal/models"
)

type ScheduleSQLite struct {
	db *sql.DB
}

func NewScheduleSQLite(db *sql.DB) *ScheduleSQLite { return &ScheduleSQLite{db: db} }

var _ Schedules = (*ScheduleSQLite)(nil)

const (
	insertScheduleSQL = `
		INSERT INTO schedule (room, action, time, statusresult, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	selectScheduleSQL = `
		SELECT id, room, action, time, statusresult, created_at, updated_at
		FROM schedule
	`

	existsScheduleAtSQL = `
		SELECT COUNT(1) FROM schedule WHERE room = ? AND time = ? AND id != ?
	`

	updateScheduleSQL = `
		UPDATE schedule SET room = ?, action = ?, time = ?, updated_at = ? WHERE id = ?
	`

	updateScheduleResultSQL = `
		UPDATE schedule SET statusresult = ?, updated_at = ? WHERE id = ?
	`

	deleteScheduleSQL = `DELETE FROM schedule WHERE id = ?`
)

func (r *ScheduleSQLite) Create(ctx context.Context, e models.ScheduleEntry) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertScheduleSQL,
		e.Room, e.Action, e.Time, e.StatusResult, e.CreatedAt.UTC(), e.UpdatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert schedule for %q at %s: %w", e.Room, e.Time, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id for schedule: %w", err)
	}
	return id, nil
}

func (r *ScheduleSQLite) GetByID(ctx context.Context, id int64) (models.ScheduleEntry, bool, error) {
	row := r.db.QueryRowContext(ctx, selectScheduleSQL+" WHERE id = ?", id)
	e, err := scanSchedule(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ScheduleEntry{}, false, nil
		}
		return models.ScheduleEntry{}, false, fmt.Errorf("select schedule %d: %w", id, err)
	}
	return e, true, nil
}

// List returns every entry in insertion order. Matching against "now" is the
// matcher's job, not the store's.
func (r *ScheduleSQLite) List(ctx context.Context) ([]models.ScheduleEntry, error) {
	rows, err := r.db.QueryContext(ctx, selectScheduleSQL+" ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	out := make([]models.ScheduleEntry, 0, 16)
	for rows.Next() {
		e, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ScheduleSQLite) ExistsAt(ctx context.Context, room, timeOfDay string, excludeID int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, existsScheduleAtSQL, room, timeOfDay, excludeID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check schedule at %q/%s: %w", room, timeOfDay, err)
	}
	return n > 0, nil
}

func (r *ScheduleSQLite) Update(ctx context.Context, e models.ScheduleEntry) error {
	if _, err := r.db.ExecContext(ctx, updateScheduleSQL,
		e.Room, e.Action, e.Time, e.UpdatedAt.UTC(), e.ID); err != nil {
		return fmt.Errorf("update schedule %d: %w", e.ID, err)
	}
	return nil
}

// UpdateResult records the outcome of an execution attempt; the only writer
// is the reconciliation engine.
func (r *ScheduleSQLite) UpdateResult(ctx context.Context, id int64, result string) error {
	res, err := r.db.ExecContext(ctx, updateScheduleResultSQL, result, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("update schedule %d result: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for schedule %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("schedule %d vanished before result write", id)
	}
	return nil
}

func (r *ScheduleSQLite) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteScheduleSQL, id)
	if err != nil {
		return fmt.Errorf("delete schedule %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for schedule %d: %w", id, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanSchedule(row interface{ Scan(...any) error }) (models.ScheduleEntry, error) {
	var e models.ScheduleEntry
	err := row.Scan(&e.ID, &e.Room, &e.Action, &e.Time, &e.StatusResult, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return e, nil
}
