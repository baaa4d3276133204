package service

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrental/internal/db"
	"carrental/internal/entities"
	apperrors "carrental/internal/errors"
)

// fakeBookingStore keeps reservations in memory and mirrors the real store's
// transactional guarantee: the overlap condition is re-checked under a lock
// inside InsertReservation, so concurrent inserts cannot both pass.
type fakeBookingStore struct {
	mu           sync.Mutex
	vehicles     map[string]db.Vehicle
	customers    map[string]db.Customer
	reservations []db.Reservation
}

func newFakeStore() *fakeBookingStore {
	return &fakeBookingStore{
		vehicles:  map[string]db.Vehicle{},
		customers: map[string]db.Customer{},
	}
}

func (f *fakeBookingStore) addVehicle(id string) {
	f.vehicles[id] = db.Vehicle{ID: id, Make: "Toyota", Model: "Corolla", Year: 2022,
		LicensePlate: "PLATE-" + id, DailyRate: 50, Status: db.VehicleAvailable}
}

func (f *fakeBookingStore) addCustomer(id, status string) {
	f.customers[id] = db.Customer{ID: id, FirstName: "Ana", LastName: "Lopez",
		Email: id + "@example.com", Status: status}
}

func (f *fakeBookingStore) FindVehicle(_ context.Context, id string) (*db.Vehicle, error) {
	if v, ok := f.vehicles[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (f *fakeBookingStore) FindActiveCustomer(_ context.Context, id string) (*db.Customer, error) {
	c, ok := f.customers[id]
	if !ok || c.Status != db.CustomerActive {
		return nil, nil
	}
	return &c, nil
}

func overlaps(res db.Reservation, pickupAt, returnAt time.Time, statuses []string) bool {
	blocking := false
	for _, s := range statuses {
		if string(res.Status) == s {
			blocking = true
			break
		}
	}
	if !blocking {
		return false
	}
	return res.PickupAt.Before(returnAt) && res.ReturnAt.After(pickupAt)
}

func (f *fakeBookingStore) FindOverlappingReservations(_ context.Context, vehicleID string, pickupAt, returnAt time.Time, statuses []string) ([]db.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Reservation
	for _, res := range f.reservations {
		if res.VehicleID == vehicleID && overlaps(res, pickupAt, returnAt, statuses) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) InsertReservation(_ context.Context, res *db.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.vehicles[res.VehicleID]; !ok {
		return apperrors.ErrVehicleNotFound
	}
	for _, existing := range f.reservations {
		if existing.VehicleID == res.VehicleID && overlaps(existing, res.PickupAt, res.ReturnAt, db.BlockingStatuses) {
			return apperrors.ErrVehicleUnavailable
		}
	}
	f.reservations = append(f.reservations, *res)
	return nil
}

func (f *fakeBookingStore) cancel(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reservations {
		if f.reservations[i].ID == id {
			f.reservations[i].Status = db.StatusCancelled
		}
	}
}

func bookingRequest(customerID, vehicleID, pickup, ret string) entities.BookingRequest {
	pickupAt, _ := time.Parse(time.RFC3339, pickup)
	returnAt, _ := time.Parse(time.RFC3339, ret)
	return entities.BookingRequest{
		CustomerID:  customerID,
		VehicleID:   vehicleID,
		PickupAt:    pickupAt,
		ReturnAt:    returnAt,
		TotalAmount: 100,
	}
}

func TestCreateReservationAdmissible(t *testing.T) {
	store := newFakeStore()
	store.addVehicle("veh-1")
	store.addCustomer("cust-1", db.CustomerActive)
	svc := NewBookingService(store, nil)

	res, err := svc.CreateReservation(context.Background(),
		bookingRequest("cust-1", "veh-1", "2025-01-01T10:00:00Z", "2025-01-03T10:00:00Z"))
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, db.StatusPending, res.Status)
	assert.True(t, res.PickupAt.Before(res.ReturnAt))
}

func TestCreateReservationVehicleNotFound(t *testing.T) {
	store := newFakeStore()
	store.addCustomer("cust-1", db.CustomerActive)
	svc := NewBookingService(store, nil)

	_, err := svc.CreateReservation(context.Background(),
		bookingRequest("cust-1", "ghost", "2025-01-01T10:00:00Z", "2025-01-03T10:00:00Z"))
	assert.ErrorIs(t, err, apperrors.ErrVehicleNotFound)
}

func TestCreateReservationInactiveCustomer(t *testing.T) {
	store := newFakeStore()
	store.addVehicle("veh-1")
	store.addCustomer("cust-1", db.CustomerInactive)
	svc := NewBookingService(store, nil)

	_, err := svc.CreateReservation(context.Background(),
		bookingRequest("cust-1", "veh-1", "2025-01-01T10:00:00Z", "2025-01-03T10:00:00Z"))
	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
}

func TestCreateReservationUnknownCustomer(t *testing.T) {
	store := newFakeStore()
	store.addVehicle("veh-1")
	svc := NewBookingService(store, nil)

	_, err := svc.CreateReservation(context.Background(),
		bookingRequest("ghost", "veh-1", "2025-01-01T10:00:00Z", "2025-01-03T10:00:00Z"))
	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
}

func TestOverlappingBookingRejected(t *testing.T) {
	store := newFakeStore()
	store.addVehicle("veh-1")
	store.addCustomer("cust-1", db.CustomerActive)
	svc := NewBookingService(store, nil)

	_, err := svc.CreateReservation(context.Background(),
		bookingRequest("cust-1", "veh-1", "2025-01-01T10:00:00Z", "2025-01-03T10:00:00Z"))
	require.NoError(t, err)

	_, err = svc.CreateReservation(context.Background(),
		bookingRequest("cust-1", "veh-1", "2025-01-02T00:00:00Z", "2025-01-04T00:00:00Z"))
	assert.ErrorIs(t, err, apperrors.ErrVehicleUnavailable)
}

func TestBackToBackBookingsAdmitted(t *testing.T) {
	store := newFakeStore()
	store.addVehicle("veh-1")
	store.addCustomer("cust-1", db.CustomerActive)
	svc := NewBookingService(store, nil)

	first, err := svc.CreateReservation(context.Background(),
		bookingRequest("cust-1", "veh-1", "2025-01-01T10:00:00Z", "2025-01-03T10:00:00Z"))
	require.NoError(t, err)

	// Starts exactly when the first one ends: no overlap under [pickup, return).
	second, err := svc.CreateReservation(context.Background(),
		bookingRequest("cust-1", "veh-1", "2025-01-03T10:00:00Z", "2025-01-05T10:00:00Z"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCancelledReservationFreesWindow(t *testing.T) {
	store := newFakeStore()
	store.addVehicle("veh-1")
	store.addCustomer("cust-1", db.CustomerActive)
	svc := NewBookingService(store, nil)

	first, err := svc.CreateReservation(context.Background(),
		bookingRequest("cust-1", "veh-1", "2025-01-01T10:00:00Z", "2025-01-03T10:00:00Z"))
	require.NoError(t, err)
	store.cancel(first.ID)

	second, err := svc.CreateReservation(context.Background(),
		bookingRequest("cust-1", "veh-1", "2025-01-01T10:00:00Z", "2025-01-03T10:00:00Z"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID, "resubmission must create a fresh reservation, not reuse the old id")
}

// TestDuplicateSubmissionConflicts records the behavior without an idempotency
// key: a duplicate of a still-pending booking is a fresh booking attempt and
// collides with itself on the overlap check.
func TestDuplicateSubmissionConflicts(t *testing.T) {
	store := newFakeStore()
	store.addVehicle("veh-1")
	store.addCustomer("cust-1", db.CustomerActive)
	svc := NewBookingService(store, nil)

	req := bookingRequest("cust-1", "veh-1", "2025-01-01T10:00:00Z", "2025-01-03T10:00:00Z")
	_, err := svc.CreateReservation(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateReservation(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrVehicleUnavailable)
	assert.Len(t, store.reservations, 1)
}

// TestConcurrentBookingsSameWindow hammers one vehicle with identical windows
// from many goroutines. Exactly one may win.
func TestConcurrentBookingsSameWindow(t *testing.T) {
	store := newFakeStore()
	store.addVehicle("veh-1")
	store.addCustomer("cust-1", db.CustomerActive)
	svc := NewBookingService(store, nil)

	const workers = 32
	var wg sync.WaitGroup
	var okCount, conflictCount int64
	var mu sync.Mutex

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateReservation(context.Background(),
				bookingRequest("cust-1", "veh-1", "2025-06-01T09:00:00Z", "2025-06-02T09:00:00Z"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				okCount++
			default:
				conflictCount++
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, okCount)
	assert.EqualValues(t, workers-1, conflictCount)
	assert.Len(t, store.reservations, 1)
}

// TestConcurrentBookingsNeverOverlap is the core safety property: whatever
// subset of random concurrent requests gets admitted, no two admitted
// reservations for the same vehicle may intersect.
func TestConcurrentBookingsNeverOverlap(t *testing.T) {
	store := newFakeStore()
	store.addVehicle("veh-1")
	store.addCustomer("cust-1", db.CustomerActive)
	svc := NewBookingService(store, nil)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(42))

	type window struct{ start, end time.Time }
	windows := make([]window, 64)
	for i := range windows {
		startHour := rng.Intn(24 * 6)
		durHours := 1 + rng.Intn(48)
		windows[i] = window{
			start: base.Add(time.Duration(startHour) * time.Hour),
			end:   base.Add(time.Duration(startHour+durHours) * time.Hour),
		}
	}

	var wg sync.WaitGroup
	for _, w := range windows {
		wg.Add(1)
		go func(w window) {
			defer wg.Done()
			svc.CreateReservation(context.Background(), entities.BookingRequest{
				CustomerID:  "cust-1",
				VehicleID:   "veh-1",
				PickupAt:    w.start,
				ReturnAt:    w.end,
				TotalAmount: 10,
			})
		}(w)
	}
	wg.Wait()

	store.mu.Lock()
	defer store.mu.Unlock()
	for i := 0; i < len(store.reservations); i++ {
		for j := i + 1; j < len(store.reservations); j++ {
			a, b := store.reservations[i], store.reservations[j]
			intersect := a.PickupAt.Before(b.ReturnAt) && a.ReturnAt.After(b.PickupAt)
			assert.False(t, intersect, "reservations %s and %s overlap", a.ID, b.ID)
		}
	}
}
