package service

import (
	"context"
	"time"

	"github.com/ariandto/iotskripsinew/internal/clock"
	"github.com/ariandto/iotskripsinew/internal/logger"
	"github.com/ariandto/iotskripsinew/internal/models"
	"github.com/ariandto/iotskripsinew/internal/power"
	"github.com/ariandto/iotskripsinew/internal/repository"
)

// Config carries the tunables the services need beyond their repositories.
type Config struct {
	PowerRate     float64       // energy units per hour of on-time
	MatchWindow   time.Duration // schedule due-window around "now"
	TickTimeout   time.Duration // upper bound for one driver tick's store work
	ConnectionTTL time.Duration // inactivity window before a device counts as disconnected
	SigningKey    string
	TokenTTL      time.Duration
}

// Defaults applied by NewService for zero Config fields.
const (
	defaultMatchWindow   = 30 * time.Second
	defaultTickTimeout   = 30 * time.Second
	defaultConnectionTTL = 30 * time.Second
	defaultTokenTTL      = time.Hour
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Control is the manual entry point for switching a room on or off. It goes
// through the same read-modify-write discipline as the scheduler.
type Control interface {
	SetStatus(ctx context.Context, room string, status int) (ControlResult, error)
}

// Schedules exposes CRUD over the daily trigger table.
type Schedules interface {
	Create(ctx context.Context, in ScheduleInput) (models.ScheduleEntry, error)
	Get(ctx context.Context, id int64) (models.ScheduleEntry, error)
	List(ctx context.Context) ([]models.ScheduleEntry, error)
	Update(ctx context.Context, id int64, in ScheduleInput) (models.ScheduleEntry, error)
	Delete(ctx context.Context, id int64) error
}

// Rooms manages the capped set of lighting zones.
type Rooms interface {
	Create(ctx context.Context, name string) (models.Room, error)
	List(ctx context.Context) ([]models.Room, error)
	Get(ctx context.Context, id int64) (models.Room, error)
	Rename(ctx context.Context, id int64, name string) (models.Room, error)
	Delete(ctx context.Context, id int64) error
}

// Monitoring exposes read-only views over device state and energy totals.
type Monitoring interface {
	ListStates(ctx context.Context, page, limit int) ([]models.DeviceState, error)
	StatusByRoom(ctx context.Context) ([]models.DeviceState, error)
	PowerByRoom(ctx context.Context) ([]models.RoomPower, error)
}

// Audit exposes the reconciliation event log with filtering access.
type Audit interface {
	List(ctx context.Context, f EventFilter) ([]models.ReconciliationEvent, error)
}

// Executor runs the schedule driver until ctx is canceled.
type Executor interface {
	Run(ctx context.Context, tick time.Duration)
}

// PowerRefresh runs the energy-refresh driver, and serves the on-demand
// single-room refresh endpoint.
type PowerRefresh interface {
	Run(ctx context.Context, tick time.Duration)
	RefreshRoom(ctx context.Context, room string) (float64, error)
}

// Service aggregates all sub-services behind one wiring point.
type Service struct {
	Control
	Schedules
	Rooms
	Monitoring
	Audit
	Authorization
	Executor     Executor
	PowerRefresh PowerRefresh
	Connections  *ConnectionRegistry
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, clk clock.Clock, log *logger.Logger, cfg Config) *Service {
	if cfg.PowerRate <= 0 {
		cfg.PowerRate = power.DefaultRate
	}
	if cfg.MatchWindow <= 0 {
		cfg.MatchWindow = defaultMatchWindow
	}
	if cfg.TickTimeout <= 0 {
		cfg.TickTimeout = defaultTickTimeout
	}
	if cfg.ConnectionTTL <= 0 {
		cfg.ConnectionTTL = defaultConnectionTTL
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	rec := NewReconciler(repos.DeviceStates, repos.Schedules, repos.Events, log, cfg.PowerRate)
	refresh := NewPowerRefreshService(repos.DeviceStates, clk, log, cfg.PowerRate, cfg.TickTimeout)

	return &Service{
		Control:       NewControlService(rec, clk),
		Schedules:     NewScheduleService(repos.Schedules, clk),
		Rooms:         NewRoomService(repos.Rooms, repos.DeviceStates),
		Monitoring:    NewMonitoringService(repos.DeviceStates),
		Audit:         NewAuditService(repos.Events),
		Authorization: NewAuthService(repos.Auth, cfg.SigningKey, cfg.TokenTTL),
		Executor:      NewExecutorService(repos.Schedules, rec, clk, log, cfg.MatchWindow, cfg.TickTimeout),
		PowerRefresh:  refresh,
		Connections:   NewConnectionRegistry(clk, cfg.ConnectionTTL),
	}
}
