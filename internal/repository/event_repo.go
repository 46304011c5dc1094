package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ariandto/iotskripsinew/internal/models"
)

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

var _ Events = (*EventSQLite)(nil)

// Append inserts a reconciliation audit record. EventID and OccurredAt are
// filled in when the caller left them empty.
func (r *EventSQLite) Append(ctx context.Context, e models.ReconciliationEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reconciliation_events (id, room, action, prev_status, result, energy_delta, source, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.EventID,
		e.Room,
		e.Action,
		e.PrevStatus,
		strings.ToLower(strings.TrimSpace(e.Result)),
		e.EnergyDelta,
		strings.ToLower(strings.TrimSpace(e.Source)),
		e.OccurredAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("insert reconciliation event for %q: %w", e.Room, err)
	}
	return nil
}

// List returns events filtered by [from, to] (inclusive) and/or room, ordered ASC.
func (r *EventSQLite) List(ctx context.Context, from, to time.Time, room string) ([]models.ReconciliationEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}
	if room = strings.TrimSpace(room); room != "" {
		conds = append(conds, "room = ?")
		args = append(args, room)
	}

	q := `SELECT id, room, action, prev_status, result, energy_delta, source, occurred_at FROM reconciliation_events`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list reconciliation events: %w", err)
	}
	defer rows.Close()

	out := make([]models.ReconciliationEvent, 0, 64)
	for rows.Next() {
		var ev models.ReconciliationEvent
		if err := rows.Scan(&ev.EventID, &ev.Room, &ev.Action, &ev.PrevStatus,
			&ev.Result, &ev.EnergyDelta, &ev.Source, &ev.OccurredAt); err != nil {
			return nil, err
		}
		ev.OccurredAt = ev.OccurredAt.UTC()
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
