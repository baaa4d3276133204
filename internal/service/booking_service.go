package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"carrental/internal/db"
	"carrental/internal/entities"
	apperrors "carrental/internal/errors"
)

// BookingStore is the persistence gateway consumed by the booking flow.
// Lookup methods return (nil, nil) when no matching row exists.
type BookingStore interface {
	FindVehicle(ctx context.Context, id string) (*db.Vehicle, error)
	FindActiveCustomer(ctx context.Context, id string) (*db.Customer, error)
	FindOverlappingReservations(ctx context.Context, vehicleID string, pickupAt, returnAt time.Time, statuses []string) ([]db.Reservation, error)
	InsertReservation(ctx context.Context, res *db.Reservation) error
}

type BookingService struct {
	Store  BookingStore
	sender *SenderService
}

func NewBookingService(store BookingStore, sender *SenderService) *BookingService {
	return &BookingService{Store: store, sender: sender}
}

// CreateReservation decides admissibility of a booking request and persists
// the reservation when it is admissible. Checks run in order and short-circuit
// on the first failure:
//
//  1. vehicle must exist
//  2. customer must exist and be active
//  3. the requested [pickup, return) window must not intersect any pending,
//     confirmed or active reservation for the vehicle
//
// The store re-checks condition 3 inside the insert transaction, so a
// concurrent booking racing past the read-side check still cannot
// double-book the vehicle.
func (s *BookingService) CreateReservation(ctx context.Context, req entities.BookingRequest) (*db.Reservation, error) {
	vehicle, err := s.Store.FindVehicle(ctx, req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("error looking up vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, apperrors.ErrVehicleNotFound
	}

	customer, err := s.Store.FindActiveCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("error looking up customer: %w", err)
	}
	if customer == nil {
		return nil, apperrors.ErrCustomerNotFound
	}

	overlapping, err := s.Store.FindOverlappingReservations(ctx, req.VehicleID, req.PickupAt, req.ReturnAt, db.BlockingStatuses)
	if err != nil {
		return nil, fmt.Errorf("error checking overlapping reservations: %w", err)
	}
	if len(overlapping) > 0 {
		return nil, apperrors.ErrVehicleUnavailable
	}

	now := time.Now().UTC()
	reservation := &db.Reservation{
		ID:          uuid.NewString(),
		CustomerID:  req.CustomerID,
		VehicleID:   req.VehicleID,
		PickupAt:    req.PickupAt,
		ReturnAt:    req.ReturnAt,
		TotalAmount: req.TotalAmount,
		Status:      db.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.InsertReservation(ctx, reservation); err != nil {
		return nil, err
	}

	if s.sender != nil {
		s.sender.SendReservationNotifications(*reservation, *customer, *vehicle)
	}
	log.Printf("Reservation %s created for vehicle %s (%s - %s)",
		reservation.ID, reservation.VehicleID,
		reservation.PickupAt.Format(time.RFC3339), reservation.ReturnAt.Format(time.RFC3339))

	return reservation, nil
}
