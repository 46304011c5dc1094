package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ariandto/iotskripsinew/internal/models"
	"github.com/ariandto/iotskripsinew/internal/repository"
)

// EventFilter narrows the reconciliation audit log by time range and room.
type EventFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Room string    // "" means all rooms
}

type AuditService struct {
	events repository.Events
}

func NewAuditService(events repository.Events) *AuditService {
	return &AuditService{events: events}
}

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func (s *AuditService) List(ctx context.Context, f EventFilter) ([]models.ReconciliationEvent, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errInvalidTimeRange
	}
	return s.events.List(ctx, from, to, strings.TrimSpace(f.Room))
}
