package service

import (
	"fmt"
	"log"
	"time"

	"carrental/internal/db"
	"carrental/internal/repository"
)

// JobService runs the reservation lifecycle sweeps. Reservations are only
// ever advanced along the status machine: confirmed ones start at pickup
// time, active ones complete after return time, and pending ones that were
// never confirmed expire to cancelled.
type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

func (s *JobService) ActivateDueReservations() error {
	ids, err := s.Repo.GetConfirmedReservationIDsPastPickup()
	if err != nil {
		return fmt.Errorf("cron job: failed to get confirmed reservations past pickup: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	log.Printf("Cron Job: Found %d reservations to mark as 'active'. IDs: %v", len(ids), ids)
	if err := s.Repo.UpdateReservationStatuses(ids, string(db.StatusActive)); err != nil {
		return fmt.Errorf("cron job: failed to activate reservations: %w", err)
	}
	return nil
}

func (s *JobService) CompleteFinishedReservations() error {
	ids, err := s.Repo.GetActiveReservationIDsPastReturn()
	if err != nil {
		return fmt.Errorf("cron job: failed to get active reservations past return time: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	log.Printf("Cron Job: Found %d reservations to mark as 'completed'. IDs: %v", len(ids), ids)
	if err := s.Repo.UpdateReservationStatuses(ids, string(db.StatusCompleted)); err != nil {
		return fmt.Errorf("cron job: failed to complete reservations: %w", err)
	}
	return nil
}

// CancelStalePendingReservations cancels pending reservations created before
// the given time. They still blocked the vehicle while pending; expiring them
// releases the window.
func (s *JobService) CancelStalePendingReservations(before time.Time) error {
	ids, err := s.Repo.GetPendingReservationIDsOlderThan(before)
	if err != nil {
		return fmt.Errorf("cron job: failed to get stale pending reservations: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	log.Printf("Cron Job: Expiring %d stale pending reservations. IDs: %v", len(ids), ids)
	if err := s.Repo.UpdateReservationStatuses(ids, string(db.StatusCancelled)); err != nil {
		return fmt.Errorf("cron job: failed to cancel stale pending reservations: %w", err)
	}
	return nil
}

func (s *JobService) SyncVehicleStatuses() error {
	if err := s.Repo.SyncVehicleStatuses(); err != nil {
		return fmt.Errorf("cron job: failed to sync vehicle statuses: %w", err)
	}
	return nil
}
