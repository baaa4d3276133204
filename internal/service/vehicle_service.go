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

type VehicleService struct {
	Repo *repository.VehicleRepository
}

func NewVehicleService(repo *repository.VehicleRepository) *VehicleService {
	return &VehicleService{Repo: repo}
}

func (s *VehicleService) ListVehicles(ctx context.Context) ([]db.Vehicle, error) {
	return s.Repo.List(ctx)
}

func (s *VehicleService) GetVehicle(ctx context.Context, id string) (*db.Vehicle, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *VehicleService) CreateVehicle(ctx context.Context, v *db.Vehicle) error {
	if v.Make == "" || v.Model == "" || v.LicensePlate == "" {
		return fmt.Errorf("%w: make, model and license_plate are required", apperrors.ErrInvalidInput)
	}
	if v.Year <= 0 {
		return fmt.Errorf("%w: year is required", apperrors.ErrInvalidInput)
	}
	if v.DailyRate < 0 {
		return fmt.Errorf("%w: daily_rate must be non-negative", apperrors.ErrInvalidInput)
	}

	now := time.Now().UTC()
	v.ID = uuid.NewString()
	if v.Status == "" {
		v.Status = db.VehicleAvailable
	}
	v.CreatedAt = now
	v.UpdatedAt = now
	return s.Repo.Create(ctx, v)
}

func (s *VehicleService) UpdateVehicle(ctx context.Context, v *db.Vehicle) error {
	existing, err := s.Repo.GetByID(ctx, v.ID)
	if err != nil {
		return err
	}
	if v.Make == "" {
		v.Make = existing.Make
	}
	if v.Model == "" {
		v.Model = existing.Model
	}
	if v.Year == 0 {
		v.Year = existing.Year
	}
	if v.LicensePlate == "" {
		v.LicensePlate = existing.LicensePlate
	}
	if v.DailyRate == 0 {
		v.DailyRate = existing.DailyRate
	}
	if v.Status == "" {
		v.Status = existing.Status
	}
	return s.Repo.Update(ctx, v)
}

func (s *VehicleService) DeleteVehicle(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
