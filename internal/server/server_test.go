package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CamiloTriana75/ProyectoElden/internal/auth"
	"github.com/CamiloTriana75/ProyectoElden/internal/availability"
	"github.com/CamiloTriana75/ProyectoElden/internal/booking"
	"github.com/CamiloTriana75/ProyectoElden/internal/config"
	"github.com/CamiloTriana75/ProyectoElden/internal/facility"
	"github.com/CamiloTriana75/ProyectoElden/internal/logger"
	"github.com/CamiloTriana75/ProyectoElden/internal/notify"
	"github.com/CamiloTriana75/ProyectoElden/internal/reservation"
	"github.com/CamiloTriana75/ProyectoElden/internal/review"
	"github.com/CamiloTriana75/ProyectoElden/internal/slot"
)

const secret = "test-secret"

func TestMain(m *testing.M) {
	logger.Init("error")
	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.Exit(code)
}

type emptyQueue struct{}

func (emptyQueue) List(context.Context, int64) ([]review.Inconsistency, error) {
	return []review.Inconsistency{}, nil
}

func (emptyQueue) Len(context.Context) (int64, error) { return 0, nil }

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	hub := notify.NewHub()
	facilities := facility.NewService(facility.NewMemoryRepository())
	slotRepo := slot.NewMemoryRepository()
	reservations := reservation.NewMemoryRepository(slotRepo)
	resolver := availability.NewResolver(facilities, slotRepo, reservations)

	cfg := &config.Config{Port: "0", JWTSecret: secret, RateLimitRPS: 1000, RateLimitBurst: 1000}
	srv := New(cfg, Handlers{
		Facility:     facility.NewHandler(facilities),
		Slot:         slot.NewHandler(slot.NewService(slotRepo, facilities, hub)),
		Availability: availability.NewHandler(resolver, resolver),
		Booking:      booking.NewHandler(booking.NewService(booking.NewValidator(resolver, booking.BusinessHours{Open: 8, Close: 22}), reservations, hub)),
		Reservation:  reservation.NewHandler(reservation.NewManager(reservations, hub, nil)),
		Review:       review.NewHandler(emptyQueue{}),
	})
	return srv.Handler()
}

func token(t *testing.T, id string, role auth.Role) string {
	t.Helper()
	tok, err := auth.GenerateAccessToken(id, id+"@example.com", role, secret)
	require.NoError(t, err)
	return tok
}

func call(t *testing.T, h http.Handler, tok, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_BookingFlow(t *testing.T) {
	h := newTestServer(t)
	admin := token(t, "a1", auth.RoleAdmin)
	employee := token(t, "e1", auth.RoleEmployee)
	client := token(t, "u1", auth.RoleClient)

	w := call(t, h, admin, http.MethodPost, "/admin/facilities", facility.CreateFacilityRequest{Name: "Cancha 1", SportID: "futbol"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var f facility.Facility
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &f))

	w = call(t, h, admin, http.MethodPost, "/admin/facilities/"+f.ID+"/slots", slot.CreateSlotRequest{StartTime: "10:00", EndTime: "11:00", Price: 50, AllDays: true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	availabilityPath := "/facilities/" + f.ID + "/availability?date=2025-03-10"
	w = call(t, h, client, http.MethodGet, availabilityPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []availability.SlotAvailability
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.True(t, items[0].IsAvailable)

	w = call(t, h, client, http.MethodPost, "/reservations", booking.CreateReservationRequest{FacilityID: f.ID, Date: "2025-03-10", StartTime: "10:00", EndTime: "11:00"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var res reservation.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "u1", res.RequesterID)

	statusPath := "/staff/reservations/" + res.ID + "/status"
	w = call(t, h, client, http.MethodPatch, statusPath, reservation.UpdateStatusRequest{Status: "confirmed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(t, h, employee, http.MethodPatch, statusPath, reservation.UpdateStatusRequest{Status: "confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(t, h, client, http.MethodGet, availabilityPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Empty(t, items)

	w = call(t, h, client, http.MethodGet, "/reservations/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []reservation.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, reservation.StatusConfirmed, mine[0].Status)
}

func TestServer_AccessControl(t *testing.T) {
	h := newTestServer(t)
	client := token(t, "u1", auth.RoleClient)
	employee := token(t, "e1", auth.RoleEmployee)

	assert.Equal(t, http.StatusOK, call(t, h, "", http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, call(t, h, "", http.MethodGet, "/metrics", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, call(t, h, "", http.MethodGet, "/reservations/me", nil).Code)
	assert.Equal(t, http.StatusForbidden, call(t, h, client, http.MethodGet, "/staff/reservations", nil).Code)
	assert.Equal(t, http.StatusOK, call(t, h, employee, http.MethodGet, "/staff/reservations", nil).Code)
	assert.Equal(t, http.StatusForbidden, call(t, h, employee, http.MethodGet, "/admin/inconsistencies", nil).Code)
}
