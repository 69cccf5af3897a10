package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-booking/internal/config"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/infra/repository"
	"github.com/BruksfildServices01/salon-booking/internal/logging"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	usecase "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
)

// --------------------------------------------------
// Fakes
// --------------------------------------------------

type stubCatalog struct {
	services []models.Service
	staff    []models.Staff
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{
		services: []models.Service{
			{ID: 1, Name: "Signature Cut", Category: "Cut", DurationMin: 60, Price: 85, Active: true},
			{ID: 2, Name: "Full Color", Category: "Color", DurationMin: 120, Price: 150, Active: true},
			{ID: 3, Name: "Blowout", Category: "Styling", DurationMin: 45, Price: 55, Active: true},
		},
		staff: []models.Staff{
			{ID: 1, Name: "Julio Casillas", Title: "Master Stylist", Active: true},
			{ID: 4, Name: "Sofia Martinez", Title: "Stylist", Active: false},
		},
	}
}

func (s *stubCatalog) ListServices(context.Context) ([]models.Service, error) {
	return s.services, nil
}

func (s *stubCatalog) GetService(_ context.Context, id uint) (*models.Service, error) {
	for i := range s.services {
		if s.services[i].ID == id {
			return &s.services[i], nil
		}
	}
	return nil, httperr.ErrBusiness("service_not_found")
}

func (s *stubCatalog) ListStaff(context.Context) ([]models.Staff, error) {
	return s.staff, nil
}

func (s *stubCatalog) GetStaff(_ context.Context, id uint) (*models.Staff, error) {
	for i := range s.staff {
		if s.staff[i].ID == id {
			return &s.staff[i], nil
		}
	}
	return nil, httperr.ErrBusiness("staff_not_found")
}

type stubSubmitter struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *stubSubmitter) Submit(context.Context, *uint, domain.Aggregate) (*usecase.Submitted, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &usecase.Submitted{Reference: "ref-1", EndTime: "11:00"}, nil
}

type stubSchedule struct {
	busy []domain.Interval
}

func (s *stubSchedule) GetStaffAvailability(context.Context, uint, int) (*models.StaffAvailability, error) {
	return nil, nil
}

func (s *stubSchedule) ListBusyIntervals(context.Context, *uint, time.Time) ([]domain.Interval, error) {
	return s.busy, nil
}

// --------------------------------------------------
// Setup
// --------------------------------------------------

type testServer struct {
	router    *gin.Engine
	submitter *stubSubmitter
	confirm   *usecase.ConfirmBooking
	cfg       *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := logging.NewWithWriter("error", io.Discard)
	cfg := &config.Config{JWTSecret: "test-secret"}
	catalog := newStubCatalog()
	store := repository.NewRedisSessionStore(client, 0)
	submitter := &stubSubmitter{}

	sessions := usecase.NewWizardSessions(store, catalog, nil, "UTC")
	planner := usecase.NewSlotPlanner(
		catalog,
		&stubSchedule{},
		usecase.Hours{Opening: 9, Closing: 19, IntervalMinutes: 30},
		"UTC",
	)
	confirm := usecase.NewConfirmBooking(usecase.ConfirmDeps{
		Store:     store,
		Slots:     planner,
		Submitter: submitter,
		Backend:   config.BackendRelational,
		Logger:    logger,
		SalonName: "Test Salon",
	})

	booking := NewBookingHandler(sessions, nil, confirm)
	catalogHandler := NewCatalogHandler(usecase.NewCatalog(catalog))
	auth := NewAuthHandler(nil, cfg)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/services", catalogHandler.Services)
	api.GET("/staff", catalogHandler.Staff)
	api.GET("/auth/session", middleware.OptionalAuth(cfg), auth.Session)

	book := api.Group("/book/sessions", middleware.OptionalAuth(cfg))
	book.POST("", booking.Start)
	book.GET("/:id", booking.Get)
	book.PATCH("/:id", booking.Update)
	book.POST("/:id/next", booking.Next)
	book.POST("/:id/prev", booking.Prev)
	book.POST("/:id/confirm", booking.Confirm)

	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.RequireRole(models.RoleAdmin))
	admin.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	t.Cleanup(confirm.Wait)
	return &testServer{router: r, submitter: submitter, confirm: confirm, cfg: cfg}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// walkToConfirmation fills every step and returns the session id.
func (s *testServer) walkToConfirmation(t *testing.T) string {
	t.Helper()
	return s.walkToConfirmationAt(t, "2030-05-10", "10:00")
}

func (s *testServer) walkToConfirmationAt(t *testing.T, date, clock string) string {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/book/sessions", nil, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["id"].(string)
	base := "/api/book/sessions/" + id

	updates := []map[string]any{
		{"service_id": 1},
		{"any_staff": true},
		{"date": date, "time": clock},
		{
			"client_info": map[string]any{
				"first_name": "Ana", "last_name": "Lima",
				"email": "ana@example.com", "phone": "555-0100",
			},
			"intake_form": map[string]any{"hair_condition": "healthy", "hair_type": "wavy", "consent": true},
		},
	}
	for _, u := range updates {
		rec = s.do(t, http.MethodPatch, base, u, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = s.do(t, http.MethodPost, base+"/next", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, true, decode(t, rec)["moved"])
	}
	return id
}

// --------------------------------------------------
// Tests
// --------------------------------------------------

func TestServicesCategoryFilter(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/services?category=Color", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["total"])

	rec = s.do(t, http.MethodGet, "/api/services?category=All", nil, "")
	assert.EqualValues(t, 3, decode(t, rec)["total"])
}

func TestStaffIncludesAnyOption(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/staff", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.EqualValues(t, 2, body["total"])
	data := body["data"].([]any)
	last := data[len(data)-1].(map[string]any)
	assert.Equal(t, domain.AnyStylistName, last["name"])
	assert.Equal(t, true, last["any"])
}

func TestNextWithoutSelectionStays(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/book/sessions", nil, "")
	id := decode(t, rec)["id"].(string)

	rec = s.do(t, http.MethodPost, "/api/book/sessions/"+id+"/next", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, false, body["moved"])
	assert.EqualValues(t, 1, body["session"].(map[string]any)["step"])
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/book/sessions/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "session_not_found", decode(t, rec)["error_code"])
}

func TestInactiveStylistRejected(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/book/sessions", nil, "")
	id := decode(t, rec)["id"].(string)

	rec = s.do(t, http.MethodPatch, "/api/book/sessions/"+id, map[string]any{"staff_id": 4}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfirmSuccessOnce(t *testing.T) {
	s := newTestServer(t)
	id := s.walkToConfirmation(t)

	rec := s.do(t, http.MethodPost, "/api/book/sessions/"+id+"/confirm", nil, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode(t, rec)
	note := body["notification"].(map[string]any)
	assert.Equal(t, "success", note["level"])
	assert.Equal(t, usecase.SuccessMessage, note["message"])
	session := body["session"].(map[string]any)
	assert.Equal(t, true, session["is_confirmed"])
	assert.Equal(t, "ref-1", session["reference"])

	rec = s.do(t, http.MethodPost, "/api/book/sessions/"+id+"/confirm", nil, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already_confirmed", decode(t, rec)["error_code"])

	rec = s.do(t, http.MethodPatch, "/api/book/sessions/"+id, map[string]any{"time": "11:00", "date": "2030-05-10"}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/book/sessions/"+id, nil, "")
	assert.Equal(t, true, decode(t, rec)["is_confirmed"])
	assert.Equal(t, 1, s.submitter.calls)
}

func TestConfirmPastDateIsConflict(t *testing.T) {
	s := newTestServer(t)
	id := s.walkToConfirmationAt(t, "2020-05-11", "10:00")

	rec := s.do(t, http.MethodPost, "/api/book/sessions/"+id+"/confirm", nil, "")
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "time_conflict", body["error_code"])
	assert.Equal(t, usecase.ConflictMessage, body["notification"].(map[string]any)["message"])
	assert.Equal(t, 0, s.submitter.calls)
}

func TestConfirmClosedHourIsRejected(t *testing.T) {
	s := newTestServer(t)
	id := s.walkToConfirmationAt(t, "2030-05-10", "21:00")

	rec := s.do(t, http.MethodPost, "/api/book/sessions/"+id+"/confirm", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, "invalid_datetime", decode(t, rec)["error_code"])
	assert.Equal(t, 0, s.submitter.calls)
}

func TestConfirmFailureLeavesSessionOpen(t *testing.T) {
	s := newTestServer(t)
	s.submitter.err = errors.New("db down")
	id := s.walkToConfirmation(t)

	rec := s.do(t, http.MethodPost, "/api/book/sessions/"+id+"/confirm", nil, "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	note := decode(t, rec)["notification"].(map[string]any)
	assert.Equal(t, "error", note["level"])
	assert.Equal(t, usecase.FailureMessage, note["message"])

	rec = s.do(t, http.MethodGet, "/api/book/sessions/"+id, nil, "")
	assert.Equal(t, false, decode(t, rec)["is_confirmed"])

	// retry is the same call
	s.submitter.err = nil
	rec = s.do(t, http.MethodPost, "/api/book/sessions/"+id+"/confirm", nil, "")
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestConfirmConflictNotification(t *testing.T) {
	s := newTestServer(t)
	s.submitter.err = httperr.ErrBusiness("time_conflict")
	id := s.walkToConfirmation(t)

	rec := s.do(t, http.MethodPost, "/api/book/sessions/"+id+"/confirm", nil, "")
	require.Equal(t, http.StatusConflict, rec.Code)
	note := decode(t, rec)["notification"].(map[string]any)
	assert.Equal(t, usecase.ConflictMessage, note["message"])
}

func TestConfirmBeforeLastStep(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/book/sessions", nil, "")
	id := decode(t, rec)["id"].(string)

	rec = s.do(t, http.MethodPost, "/api/book/sessions/"+id+"/confirm", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "not_on_confirmation_step", decode(t, rec)["error_code"])
}

func TestAuthSession(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/auth/session", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["authenticated"])

	token, err := GenerateToken(s.cfg.JWTSecret, &models.User{ID: 7, Email: "ana@example.com", Role: models.RoleClient})
	require.NoError(t, err)

	rec = s.do(t, http.MethodGet, "/api/auth/session", nil, token)
	body := decode(t, rec)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, false, body["loading"])
	user := body["user"].(map[string]any)
	assert.EqualValues(t, 7, user["id"])
	assert.Equal(t, "ana@example.com", user["email"])
}

func TestAdminRequiresRole(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/admin/ping", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	client, err := GenerateToken(s.cfg.JWTSecret, &models.User{ID: 7, Role: models.RoleClient})
	require.NoError(t, err)
	rec = s.do(t, http.MethodGet, "/api/admin/ping", nil, client)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin, err := GenerateToken(s.cfg.JWTSecret, &models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	rec = s.do(t, http.MethodGet, "/api/admin/ping", nil, admin)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
