package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrental/internal/db"
	"carrental/internal/service"
)

// memStore is a minimal in-memory service.BookingStore for handler tests.
type memStore struct {
	vehicles     map[string]db.Vehicle
	customers    map[string]db.Customer
	reservations []db.Reservation
}

func newMemStore() *memStore {
	return &memStore{
		vehicles: map[string]db.Vehicle{
			"veh-1": {ID: "veh-1", Make: "Ford", Model: "Focus", Status: db.VehicleAvailable},
		},
		customers: map[string]db.Customer{
			"cust-1": {ID: "cust-1", FirstName: "Ana", Email: "ana@example.com", Status: db.CustomerActive},
		},
	}
}

func (m *memStore) FindVehicle(_ context.Context, id string) (*db.Vehicle, error) {
	if v, ok := m.vehicles[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *memStore) FindActiveCustomer(_ context.Context, id string) (*db.Customer, error) {
	if c, ok := m.customers[id]; ok && c.Status == db.CustomerActive {
		return &c, nil
	}
	return nil, nil
}

func (m *memStore) FindOverlappingReservations(_ context.Context, vehicleID string, pickupAt, returnAt time.Time, _ []string) ([]db.Reservation, error) {
	var out []db.Reservation
	for _, res := range m.reservations {
		if res.VehicleID == vehicleID && res.PickupAt.Before(returnAt) && res.ReturnAt.After(pickupAt) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (m *memStore) InsertReservation(_ context.Context, res *db.Reservation) error {
	m.reservations = append(m.reservations, *res)
	return nil
}

func newTestHandler() (*ReservationHandler, *memStore) {
	store := newMemStore()
	bookings := service.NewBookingService(store, nil)
	return NewReservationHandler(bookings, nil), store
}

func postReservation(t *testing.T, h *ReservationHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.CreateReservation(rec, req)
	return rec
}

func TestCreateReservationReturns201(t *testing.T) {
	h, _ := newTestHandler()

	rec := postReservation(t, h, `{
		"customer_id": "cust-1",
		"vehicle_id": "veh-1",
		"pickup_at": "2025-01-01T10:00:00Z",
		"return_at": "2025-01-03T10:00:00Z",
		"total_amount": 150
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp CreateReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "pending", resp.Status)
}

func TestCreateReservationMalformedBody(t *testing.T) {
	h, _ := newTestHandler()
	rec := postReservation(t, h, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReservationInvalidWindow(t *testing.T) {
	h, _ := newTestHandler()
	rec := postReservation(t, h, `{
		"customer_id": "cust-1",
		"vehicle_id": "veh-1",
		"pickup_at": "2025-01-03T10:00:00Z",
		"return_at": "2025-01-01T10:00:00Z",
		"total_amount": 150
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestCreateReservationUnknownVehicle(t *testing.T) {
	h, _ := newTestHandler()
	rec := postReservation(t, h, `{
		"customer_id": "cust-1",
		"vehicle_id": "ghost",
		"pickup_at": "2025-01-01T10:00:00Z",
		"return_at": "2025-01-03T10:00:00Z",
		"total_amount": 150
	}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateReservationUnknownCustomer(t *testing.T) {
	h, _ := newTestHandler()
	rec := postReservation(t, h, `{
		"customer_id": "ghost",
		"vehicle_id": "veh-1",
		"pickup_at": "2025-01-01T10:00:00Z",
		"return_at": "2025-01-03T10:00:00Z",
		"total_amount": 150
	}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateReservationConflictReturns409(t *testing.T) {
	h, _ := newTestHandler()

	body := `{
		"customer_id": "cust-1",
		"vehicle_id": "veh-1",
		"pickup_at": "2025-01-01T10:00:00Z",
		"return_at": "2025-01-03T10:00:00Z",
		"total_amount": 150
	}`
	rec := postReservation(t, h, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postReservation(t, h, body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "already reserved")
}
