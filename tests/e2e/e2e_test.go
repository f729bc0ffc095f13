package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sibiria/internal/database"
	"sibiria/internal/domain"
	"sibiria/internal/mailer"
	"sibiria/internal/middleware"
	"sibiria/internal/modules/auth"
	"sibiria/internal/modules/booking"
	"sibiria/internal/modules/catalog"
	"sibiria/internal/modules/stats"
	jwtsvc "sibiria/internal/pkg/jwt"
	"sibiria/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type suite struct {
	router     *gin.Engine
	adminToken string
}

func setupSuite(t *testing.T) *suite {
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	roomTypeRepo := repository.NewRoomTypeRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	statRepo := repository.NewStatisticRepository(db)

	j := jwtsvc.New("e2e-test-secret", time.Hour)
	hub := booking.NewHub()
	t.Cleanup(hub.Close)

	authService := auth.NewService(userRepo, j, mailer.NewDevConsole(), 15*time.Minute)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(roomRepo, roomTypeRepo, serviceRepo, bookingRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo, nil, hub, false)
	bookingHandler := booking.NewHandler(bookingService, hub)

	statsService := stats.NewService(bookingRepo, roomRepo, statRepo)
	statsHandler := stats.NewHandler(statsService)

	r := gin.New()
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		catalogHandler.RegisterPublicRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)
		authHandler.RegisterPublicRoutes(v1)

		admin := v1.Group("/")
		admin.Use(middleware.Auth(j), middleware.AdminOnly())
		{
			catalogHandler.RegisterAdminRoutes(admin)
			bookingHandler.RegisterAdminRoutes(admin)
			statsHandler.RegisterAdminRoutes(admin)
			authHandler.RegisterAdminRoutes(admin)
		}
	}

	// Seed the admin directly; the public create endpoint only makes
	// regular users.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.MinCost)
	require.NoError(t, err)
	adminUser := &domain.User{
		FullName:     "E2E Admin",
		Email:        "admin@sibiria.ru",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, userRepo.Create(context.Background(), adminUser))

	token, err := j.GenerateToken(adminUser.ID, adminUser.Email, string(adminUser.Role))
	require.NoError(t, err)

	return &suite{router: r, adminToken: token}
}

func (s *suite) do(t *testing.T, method, path string, body any, token string) (*httptest.ResponseRecorder, TestResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var out TestResponse
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec, out
}

func (s *suite) createRoom(t *testing.T, title string, capacity int, price int64) int64 {
	t.Helper()

	rec, out := s.do(t, http.MethodPost, "/api/v1/room-types", gin.H{"name": "Type for " + title}, s.adminToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	typeID := int64(out.Data["room_type"].(map[string]interface{})["id"].(float64))

	rec, out = s.do(t, http.MethodPost, "/api/v1/rooms", gin.H{
		"room_type_id": typeID,
		"title":        title,
		"price":        price,
		"capacity":     capacity,
		"amenities":    []string{"WiFi"},
	}, s.adminToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	return int64(out.Data["room"].(map[string]interface{})["id"].(float64))
}

func availableRoomIDs(t *testing.T, out TestResponse) []int64 {
	t.Helper()
	raw, ok := out.Data["rooms"].([]interface{})
	require.True(t, ok)
	ids := make([]int64, 0, len(raw))
	for _, r := range raw {
		ids = append(ids, int64(r.(map[string]interface{})["id"].(float64)))
	}
	return ids
}

func TestBookingFlow(t *testing.T) {
	s := setupSuite(t)
	roomID := s.createRoom(t, "Baikal 201", 2, 5200)

	// Room is free for the whole range.
	rec, out := s.do(t, http.MethodGet,
		"/api/v1/rooms/available?check_in=2026-10-10&check_out=2026-10-14&guests=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, availableRoomIDs(t, out), roomID)

	// Guest books it with a service attached.
	rec, out = s.do(t, http.MethodPost, "/api/v1/bookings", gin.H{
		"guest_first_name": "Ivan",
		"guest_last_name":  "Petrov",
		"contact_type":     "Phone",
		"contact_value":    "+79990001122",
		"room_id":          roomID,
		"check_in":         "2026-10-10T00:00:00Z",
		"check_out":        "2026-10-14T00:00:00Z",
		"total_price":      20800,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	bookingData := out.Data["booking"].(map[string]interface{})
	bookingID := int64(bookingData["id"].(float64))
	assert.Equal(t, "WaitingConfirmation", bookingData["status"])

	// Still available: only Confirmed blocks.
	rec, out = s.do(t, http.MethodGet,
		"/api/v1/rooms/available?check_in=2026-10-10&check_out=2026-10-14&guests=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, availableRoomIDs(t, out), roomID)

	// Admin sees it in the review queue.
	rec, out = s.do(t, http.MethodGet, "/api/v1/bookings/waiting-confirmation", nil, s.adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	queue := out.Data["bookings"].([]interface{})
	require.Len(t, queue, 1)
	assert.Equal(t, "Baikal 201", queue[0].(map[string]interface{})["room_title"])

	// Confirm it.
	rec, _ = s.do(t, http.MethodPatch,
		fmt.Sprintf("/api/v1/bookings/%d/status", bookingID), gin.H{"status": "Confirmed"}, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Overlapping search now excludes the room.
	rec, out = s.do(t, http.MethodGet,
		"/api/v1/rooms/available?check_in=2026-10-12&check_out=2026-10-16&guests=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, availableRoomIDs(t, out), roomID)

	// Back-to-back stay starting on the checkout day is fine.
	rec, out = s.do(t, http.MethodGet,
		"/api/v1/rooms/available?check_in=2026-10-14&check_out=2026-10-18&guests=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, availableRoomIDs(t, out), roomID)
}

func TestAvailabilityFilters(t *testing.T) {
	s := setupSuite(t)
	smallRoom := s.createRoom(t, "Taiga 101", 1, 3500)
	bigRoom := s.createRoom(t, "Sayan Family", 5, 8400)

	rec, out := s.do(t, http.MethodGet,
		"/api/v1/rooms/available?check_in=2026-10-10&check_out=2026-10-12&guests=3", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	ids := availableRoomIDs(t, out)
	assert.NotContains(t, ids, smallRoom)
	assert.Contains(t, ids, bigRoom)

	rec, _ = s.do(t, http.MethodGet,
		"/api/v1/rooms/available?check_in=2026-10-12&check_out=2026-10-10&guests=1", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChangeStatusValidation(t *testing.T) {
	s := setupSuite(t)

	rec, out := s.do(t, http.MethodPatch, "/api/v1/bookings/5/status", gin.H{"status": "Bogus"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, out.Error)
	assert.Equal(t, "VALIDATION_ERROR", out.Error.Code)

	// Missing id is a silent no-op.
	rec, _ = s.do(t, http.MethodPatch, "/api/v1/bookings/9999/status", gin.H{"status": "Cancelled"}, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAdminSurfaceRequiresAuth(t *testing.T) {
	s := setupSuite(t)

	rec, _ := s.do(t, http.MethodGet, "/api/v1/bookings/waiting-confirmation", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/rooms", gin.H{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/statistics", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginAndAdminAccess(t *testing.T) {
	s := setupSuite(t)

	rec, out := s.do(t, http.MethodPost, "/api/v1/users/login", gin.H{
		"email":    "admin@sibiria.ru",
		"password": "admin12345",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token := out.Data["token"].(string)
	require.NotEmpty(t, token)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/users", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/users/login", gin.H{
		"email":    "admin@sibiria.ru",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStatisticsGeneration(t *testing.T) {
	s := setupSuite(t)
	roomID := s.createRoom(t, "Yenisei Suite", 3, 100)

	// One 3-night stay in June at 300 total.
	rec, _ := s.do(t, http.MethodPost, "/api/v1/bookings", gin.H{
		"guest_first_name": "Anna",
		"guest_last_name":  "Orlova",
		"contact_type":     "Email",
		"contact_value":    "anna@example.com",
		"room_id":          roomID,
		"check_in":         "2026-06-10T00:00:00Z",
		"check_out":        "2026-06-13T00:00:00Z",
		"total_price":      300,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, out := s.do(t, http.MethodGet, "/api/v1/statistics/generate?year=2026&month=6", nil, s.adminToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	stat := out.Data["statistic"].(map[string]interface{})
	assert.Equal(t, 10.0, stat["occupancy_rate"])
	assert.Equal(t, 10.0, stat["performance"])
	assert.Equal(t, 300.0, stat["total_revenue"])
	assert.Equal(t, 1.0, stat["total_visitors"])

	// Generating again appends a second identical snapshot.
	rec, _ = s.do(t, http.MethodGet, "/api/v1/statistics/generate?year=2026&month=6", nil, s.adminToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, out = s.do(t, http.MethodGet, "/api/v1/statistics", nil, s.adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, out.Data["statistics"].([]interface{}), 2)
}

func TestRoomUpdateQuirks(t *testing.T) {
	s := setupSuite(t)
	roomID := s.createRoom(t, "Taiga 101", 1, 3500)

	// Updating a missing room succeeds silently.
	rec, _ := s.do(t, http.MethodPut, "/api/v1/rooms/9999", gin.H{
		"room_type_id": 1,
		"title":        "Ghost",
		"price":        100,
		"capacity":     1,
	}, s.adminToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// A real update lands and resets status to Available.
	rec, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/v1/rooms/%d", roomID), gin.H{
		"room_type_id": 1,
		"title":        "Taiga 101 Renovated",
		"price":        3900,
		"capacity":     2,
	}, s.adminToken)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, out := s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/rooms/%d", roomID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	room := out.Data["room"].(map[string]interface{})
	assert.Equal(t, "Taiga 101 Renovated", room["title"])
	assert.Equal(t, "Available", room["status"])

	// Deleting the room cascades its bookings and then vanishes.
	rec, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/rooms/%d", roomID), nil, s.adminToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/rooms/%d", roomID), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
