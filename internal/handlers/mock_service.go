package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/ariandto/iotskripsinew/internal/models"
	"github.com/ariandto/iotskripsinew/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockControl struct {
	result     service.ControlResult
	err        error
	calls      int
	lastRoom   string
	lastStatus int
}

func (m *mockControl) SetStatus(ctx context.Context, room string, status int) (service.ControlResult, error) {
	m.calls++
	m.lastRoom = room
	m.lastStatus = status
	return m.result, m.err
}

type mockSchedules struct {
	created   models.ScheduleEntry
	createErr error
	got       models.ScheduleEntry
	getErr    error
	list      []models.ScheduleEntry
	listErr   error
	updated   models.ScheduleEntry
	updateErr error
	deleteErr error

	lastCreate service.ScheduleInput
	lastUpdate service.ScheduleInput
	lastID     int64
}

func (m *mockSchedules) Create(ctx context.Context, in service.ScheduleInput) (models.ScheduleEntry, error) {
	m.lastCreate = in
	return m.created, m.createErr
}
func (m *mockSchedules) Get(ctx context.Context, id int64) (models.ScheduleEntry, error) {
	m.lastID = id
	return m.got, m.getErr
}
func (m *mockSchedules) List(ctx context.Context) ([]models.ScheduleEntry, error) {
	return m.list, m.listErr
}
func (m *mockSchedules) Update(ctx context.Context, id int64, in service.ScheduleInput) (models.ScheduleEntry, error) {
	m.lastID = id
	m.lastUpdate = in
	return m.updated, m.updateErr
}
func (m *mockSchedules) Delete(ctx context.Context, id int64) error {
	m.lastID = id
	return m.deleteErr
}

type mockRooms struct {
	created   models.Room
	createErr error
	list      []models.Room
	listErr   error
	got       models.Room
	getErr    error
	renamed   models.Room
	renameErr error
	deleteErr error

	lastName string
	lastID   int64
}

func (m *mockRooms) Create(ctx context.Context, name string) (models.Room, error) {
	m.lastName = name
	return m.created, m.createErr
}
func (m *mockRooms) List(ctx context.Context) ([]models.Room, error) {
	return m.list, m.listErr
}
func (m *mockRooms) Get(ctx context.Context, id int64) (models.Room, error) {
	m.lastID = id
	return m.got, m.getErr
}
func (m *mockRooms) Rename(ctx context.Context, id int64, name string) (models.Room, error) {
	m.lastID = id
	m.lastName = name
	return m.renamed, m.renameErr
}
func (m *mockRooms) Delete(ctx context.Context, id int64) error {
	m.lastID = id
	return m.deleteErr
}

type mockMonitoring struct {
	states    []models.DeviceState
	statesErr error
	power     []models.RoomPower
	powerErr  error

	lastPage  int
	lastLimit int
}

func (m *mockMonitoring) ListStates(ctx context.Context, page, limit int) ([]models.DeviceState, error) {
	m.lastPage = page
	m.lastLimit = limit
	return m.states, m.statesErr
}
func (m *mockMonitoring) StatusByRoom(ctx context.Context) ([]models.DeviceState, error) {
	return m.states, m.statesErr
}
func (m *mockMonitoring) PowerByRoom(ctx context.Context) ([]models.RoomPower, error) {
	return m.power, m.powerErr
}

type mockAudit struct {
	resp     []models.ReconciliationEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastRoom string
}

func (m *mockAudit) List(ctx context.Context, f service.EventFilter) ([]models.ReconciliationEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastRoom = f.Room
	return m.resp, m.err
}

type mockPowerRefresh struct {
	delta    float64
	err      error
	lastRoom string
	calls    int
}

func (m *mockPowerRefresh) Run(ctx context.Context, tick time.Duration) {}
func (m *mockPowerRefresh) RefreshRoom(ctx context.Context, room string) (float64, error) {
	m.calls++
	m.lastRoom = room
	return m.delta, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
