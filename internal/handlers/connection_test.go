package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/ariandto/iotskripsinew/internal/clock"
	"github.com/ariandto/iotskripsinew/internal/service"
)

func TestConnectionHandlers_HeartbeatRoundtrip(t *testing.T) {
	auth := &mockAuth{parseID: 1}
	clk := clock.Fixed{T: time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC)}
	s := &service.Service{
		Authorization: auth,
		Connections:   service.NewConnectionRegistry(clk, 30*time.Second),
	}
	r := newTestRouter(s)

	// Unknown device → 404
	w := doRequest(r, http.MethodGet, "/api/v1/connection/status/esp32-1", nil, "valid")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown device, got %d", w.Code)
	}

	// Heartbeat → 200
	body := []byte(`{"deviceId":"esp32-1","rssi":-61,"ipAddress":"192.168.1.20"}`)
	w = doRequest(r, http.MethodPost, "/api/v1/connection/status", body, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("heartbeat status=%d, body=%s", w.Code, w.Body.String())
	}

	// Now known, connected, with masked IP
	w = doRequest(r, http.MethodGet, "/api/v1/connection/status/esp32-1", nil, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("get status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Data service.ConnectionStatus `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Data.Connected {
		t.Fatalf("expected connected, got %+v", resp.Data)
	}
	if resp.Data.IPAddress != "192.xxx.xxx.xxx" {
		t.Fatalf("IP not masked: %q", resp.Data.IPAddress)
	}
	if resp.Data.RSSI == nil || *resp.Data.RSSI != -61 {
		t.Fatalf("rssi not preserved: %+v", resp.Data.RSSI)
	}

	// List includes the device and a count
	w = doRequest(r, http.MethodGet, "/api/v1/connection/status", nil, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d, body=%s", w.Code, w.Body.String())
	}
	var listResp struct {
		Data struct {
			Count   int                        `json:"count"`
			Devices []service.ConnectionStatus `json:"devices"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if listResp.Data.Count != 1 || len(listResp.Data.Devices) != 1 {
		t.Fatalf("unexpected list: %+v", listResp.Data)
	}

	// Missing deviceId → 400
	w = doRequest(r, http.MethodPost, "/api/v1/connection/status", []byte(`{"rssi":-61}`), "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing deviceId, got %d", w.Code)
	}
}
