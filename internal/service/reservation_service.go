package service

import (
	"context"
	"fmt"
	"log"

	"carrental/internal/db"
	"carrental/internal/entities"
	apperrors "carrental/internal/errors"
	"carrental/internal/repository"
)

// ReservationService covers the back-office side of reservations: listing,
// lookup and lifecycle changes. New bookings go through BookingService.
type ReservationService struct {
	Repo      *repository.ReservationRepository
	Customers *repository.CustomerRepository
	Vehicles  *repository.VehicleRepository
	sender    *SenderService
}

func NewReservationService(repo *repository.ReservationRepository, customers *repository.CustomerRepository, vehicles *repository.VehicleRepository, sender *SenderService) *ReservationService {
	return &ReservationService{Repo: repo, Customers: customers, Vehicles: vehicles, sender: sender}
}

func (s *ReservationService) ListReservations(ctx context.Context, filter entities.ReservationFilter) ([]entities.ReservationDetail, error) {
	return s.Repo.ListReservations(ctx, filter)
}

func (s *ReservationService) GetReservation(ctx context.Context, id string) (*db.Reservation, error) {
	return s.Repo.GetReservationByID(ctx, id)
}

// UpdateStatus advances a reservation through its lifecycle. Transitions not
// allowed by the status machine are rejected, never written blindly.
func (s *ReservationService) UpdateStatus(ctx context.Context, id string, to db.ReservationStatus) (*db.Reservation, error) {
	if !db.ValidReservationStatus(to) {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidTransition, to)
	}

	reservation, err := s.Repo.GetReservationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !db.CanTransition(reservation.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, reservation.Status, to)
	}

	if err := s.Repo.UpdateReservationStatus(ctx, id, to); err != nil {
		return nil, err
	}
	reservation.Status = to
	return reservation, nil
}

// CancelReservation short-circuits a reservation to cancelled and notifies the
// customer. Completed and already cancelled reservations cannot be cancelled.
func (s *ReservationService) CancelReservation(ctx context.Context, id string) error {
	reservation, err := s.UpdateStatus(ctx, id, db.StatusCancelled)
	if err != nil {
		return err
	}

	if s.sender == nil {
		return nil
	}
	customer, err := s.Customers.GetByID(ctx, reservation.CustomerID)
	if err != nil {
		log.Printf("Reservation %s cancelled, but customer lookup for notification failed: %v", id, err)
		return nil
	}
	vehicle, err := s.Vehicles.GetByID(ctx, reservation.VehicleID)
	if err != nil {
		log.Printf("Reservation %s cancelled, but vehicle lookup for notification failed: %v", id, err)
		return nil
	}
	s.sender.SendReservationNotifications(*reservation, *customer, *vehicle)
	return nil
}
