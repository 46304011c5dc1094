package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ariandto/iotskripsinew/internal/models"
)

type RoomSQLite struct {
	db *sql.DB
}

func NewRoomSQLite(db *sql.DB) *RoomSQLite { return &RoomSQLite{db: db} }

var _ Rooms = (*RoomSQLite)(nil)

const (
	insertRoomSQL     = `INSERT INTO rooms (room, created_at) VALUES (?, ?)`
	countRoomsSQL     = `SELECT COUNT(1) FROM rooms`
	listRoomsSQL      = `SELECT id, room, created_at FROM rooms ORDER BY id ASC`
	selectRoomByIDSQL = `SELECT id, room, created_at FROM rooms WHERE id = ?`
	renameRoomSQL     = `UPDATE rooms SET room = ? WHERE id = ?`
	deleteRoomSQL     = `DELETE FROM rooms WHERE id = ?`
)

func (r *RoomSQLite) Create(ctx context.Context, name string) (models.Room, error) {
	createdAt := nowUTC()
	res, err := r.db.ExecContext(ctx, insertRoomSQL, name, createdAt)
	if err != nil {
		return models.Room{}, fmt.Errorf("insert room %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Room{}, fmt.Errorf("last insert id for room %q: %w", name, err)
	}
	return models.Room{ID: id, Name: name, CreatedAt: createdAt}, nil
}

func (r *RoomSQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countRoomsSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	return n, nil
}

func (r *RoomSQLite) List(ctx context.Context) ([]models.Room, error) {
	rows, err := r.db.QueryContext(ctx, listRoomsSQL)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	out := make([]models.Room, 0, 6)
	for rows.Next() {
		var rm models.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.CreatedAt); err != nil {
			return nil, err
		}
		rm.CreatedAt = rm.CreatedAt.UTC()
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RoomSQLite) GetByID(ctx context.Context, id int64) (models.Room, bool, error) {
	var rm models.Room
	err := r.db.QueryRowContext(ctx, selectRoomByIDSQL, id).Scan(&rm.ID, &rm.Name, &rm.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Room{}, false, nil
		}
		return models.Room{}, false, fmt.Errorf("select room %d: %w", id, err)
	}
	rm.CreatedAt = rm.CreatedAt.UTC()
	return rm, true, nil
}

func (r *RoomSQLite) Rename(ctx context.Context, id int64, name string) error {
	res, err := r.db.ExecContext(ctx, renameRoomSQL, name, id)
	if err != nil {
		return fmt.Errorf("rename room %d: %w", id, err)
	}
	return requireRow(res, id)
}

func (r *RoomSQLite) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteRoomSQL, id)
	if err != nil {
		return fmt.Errorf("delete room %d: %w", id, err)
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for room %d: %w", id, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
