package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"carrental/internal/db"
	apperrors "carrental/internal/errors"
	"carrental/internal/repository"
)

type MaintenanceService struct {
	Repo     *repository.MaintenanceRepository
	Vehicles *repository.VehicleRepository
}

func NewMaintenanceService(repo *repository.MaintenanceRepository, vehicles *repository.VehicleRepository) *MaintenanceService {
	return &MaintenanceService{Repo: repo, Vehicles: vehicles}
}

func (s *MaintenanceService) ListRecords(ctx context.Context, vehicleID string) ([]db.MaintenanceRecord, error) {
	return s.Repo.List(ctx, vehicleID)
}

func (s *MaintenanceService) GetRecord(ctx context.Context, id string) (*db.MaintenanceRecord, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *MaintenanceService) CreateRecord(ctx context.Context, m *db.MaintenanceRecord) error {
	if m.ServiceType == "" {
		return fmt.Errorf("%w: service_type is required", apperrors.ErrInvalidInput)
	}
	if m.ScheduledDate.IsZero() {
		return fmt.Errorf("%w: scheduled_date is required", apperrors.ErrInvalidInput)
	}
	// The vehicle must exist; a record for an unknown vehicle is a 404.
	if _, err := s.Vehicles.GetByID(ctx, m.VehicleID); err != nil {
		return err
	}

	now := time.Now().UTC()
	m.ID = uuid.NewString()
	if m.Status == "" {
		m.Status = db.MaintenanceScheduled
	}
	m.CreatedAt = now
	m.UpdatedAt = now
	return s.Repo.Create(ctx, m)
}

func (s *MaintenanceService) UpdateRecord(ctx context.Context, m *db.MaintenanceRecord) error {
	existing, err := s.Repo.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	if m.ServiceType == "" {
		m.ServiceType = existing.ServiceType
	}
	if m.Description == "" {
		m.Description = existing.Description
	}
	if m.ScheduledDate.IsZero() {
		m.ScheduledDate = existing.ScheduledDate
	}
	if m.CompletedDate == nil {
		m.CompletedDate = existing.CompletedDate
	}
	if m.EstimatedCost == 0 {
		m.EstimatedCost = existing.EstimatedCost
	}
	if m.ActualCost == nil {
		m.ActualCost = existing.ActualCost
	}
	if m.Status == "" {
		m.Status = existing.Status
	}
	return s.Repo.Update(ctx, m)
}

func (s *MaintenanceService) DeleteRecord(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
