package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/ariandto/iotskripsinew/internal/models"
	"github.com/ariandto/iotskripsinew/internal/service"
)

func TestEventsHandler_Filters(t *testing.T) {
	auth := &mockAuth{parseID: 1}
	audit := &mockAudit{resp: []models.ReconciliationEvent{
		{EventID: "ev-1", Room: "Kitchen", Action: models.StatusOn, Result: models.ResultSuccess},
	}}
	s := &service.Service{Authorization: auth, Audit: audit}
	r := newTestRouter(s)

	// Date-only range: 'to' becomes end of that day
	w := doRequest(r, http.MethodGet, "/api/v1/events?from=2025-08-01&to=2025-08-31&room=Kitchen", nil, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	wantFrom := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	if !audit.lastFrom.Equal(wantFrom) {
		t.Fatalf("from=%v, want %v", audit.lastFrom, wantFrom)
	}
	if audit.lastTo.Day() != 31 || audit.lastTo.Hour() != 23 || audit.lastTo.Minute() != 59 {
		t.Fatalf("'to' not extended to end of day: %v", audit.lastTo)
	}
	if audit.lastRoom != "Kitchen" {
		t.Fatalf("room=%q", audit.lastRoom)
	}

	// RFC3339 timestamps pass through
	w = doRequest(r, http.MethodGet, "/api/v1/events?from=2025-08-01T10:00:00Z&to=2025-08-01T12:00:00Z", nil, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if audit.lastTo.Hour() != 12 {
		t.Fatalf("RFC3339 'to' mangled: %v", audit.lastTo)
	}

	// Inverted range → 400
	w = doRequest(r, http.MethodGet, "/api/v1/events?from=2025-08-31&to=2025-08-01", nil, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", w.Code)
	}

	// Garbage 'from' → 400
	w = doRequest(r, http.MethodGet, "/api/v1/events?from=yesterday", nil, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad 'from', got %d", w.Code)
	}
}
