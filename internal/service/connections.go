package service

import (
	"strings"
	"sync"
	"time"

	"github.com/ariandto/iotskripsinew/internal/clock"
)

// evictFactor: entries untouched for this many TTL windows are dropped
// entirely, keeping the registry bounded. Within the window a device merely
// reports connected=false.
const evictFactor = 10

// ConnectionStatus is the reachability snapshot of one controller board.
type ConnectionStatus struct {
	DeviceID  string    `json:"deviceId"`
	Connected bool      `json:"connected"`
	LastSeen  time.Time `json:"lastSeen"`
	RSSI      *int      `json:"rssi,omitempty"`
	IPAddress string    `json:"ipAddress,omitempty"` // stored masked
}

type connEntry struct {
	lastSeen time.Time
	rssi     *int
	ip       string
}

// ConnectionRegistry tracks which device boards have recently phoned home.
// Purely in-memory; reachability is advisory and rebuilt after a restart.
type ConnectionRegistry struct {
	mu      sync.RWMutex
	clk     clock.Clock
	ttl     time.Duration
	devices map[string]connEntry
}

func NewConnectionRegistry(clk clock.Clock, ttl time.Duration) *ConnectionRegistry {
	return &ConnectionRegistry{
		clk:     clk,
		ttl:     ttl,
		devices: make(map[string]connEntry),
	}
}

// Update records a heartbeat from a device and prunes long-dead entries.
func (r *ConnectionRegistry) Update(deviceID string, rssi *int, ipAddress string) {
	now := r.clk.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.devices[deviceID] = connEntry{
		lastSeen: now,
		rssi:     rssi,
		ip:       maskIPAddress(ipAddress),
	}

	cutoff := now.Add(-evictFactor * r.ttl)
	for id, e := range r.devices {
		if e.lastSeen.Before(cutoff) {
			delete(r.devices, id)
		}
	}
}

// Get returns a device's status; found=false if it never connected (or was
// evicted).
func (r *ConnectionRegistry) Get(deviceID string) (ConnectionStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.devices[deviceID]
	if !ok {
		return ConnectionStatus{}, false
	}
	return r.status(deviceID, e), true
}

// List returns the status of every known device.
func (r *ConnectionRegistry) List() []ConnectionStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ConnectionStatus, 0, len(r.devices))
	for id, e := range r.devices {
		out = append(out, r.status(id, e))
	}
	return out
}

func (r *ConnectionRegistry) status(id string, e connEntry) ConnectionStatus {
	return ConnectionStatus{
		DeviceID:  id,
		Connected: r.clk.Now().Sub(e.lastSeen) < r.ttl,
		LastSeen:  e.lastSeen,
		RSSI:      e.rssi,
		IPAddress: e.ip,
	}
}

// maskIPAddress keeps only the first octet; the rest never leaves the box.
func maskIPAddress(ip string) string {
	if ip == "" {
		return ""
	}
	if i := strings.Index(ip, "."); i != -1 {
		return ip[:i] + ".xxx.xxx.xxx"
	}
	return ip
}
