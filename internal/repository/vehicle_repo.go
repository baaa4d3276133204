package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carrental/internal/db"
	apperrors "carrental/internal/errors"
)

type VehicleRepository struct {
	DB *sql.DB
}

func NewVehicleRepository(database *sql.DB) *VehicleRepository {
	return &VehicleRepository{DB: database}
}

func (r *VehicleRepository) List(ctx context.Context) ([]db.Vehicle, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, make, model, year, license_plate, daily_rate, status, created_at, updated_at
		FROM vehicles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []db.Vehicle
	for rows.Next() {
		var v db.Vehicle
		if err := rows.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.LicensePlate,
			&v.DailyRate, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*db.Vehicle, error) {
	var v db.Vehicle
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, make, model, year, license_plate, daily_rate, status, created_at, updated_at
		FROM vehicles WHERE id = $1`, id).
		Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &v.DailyRate, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error querying vehicle: %w", err)
	}
	return &v, nil
}

func (r *VehicleRepository) Create(ctx context.Context, v *db.Vehicle) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO vehicles (id, make, model, year, license_plate, daily_rate, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		v.ID, v.Make, v.Model, v.Year, v.LicensePlate, v.DailyRate, v.Status, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting vehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepository) Update(ctx context.Context, v *db.Vehicle) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE vehicles
		SET make = $1, model = $2, year = $3, license_plate = $4, daily_rate = $5, status = $6, updated_at = NOW()
		WHERE id = $7`,
		v.Make, v.Model, v.Year, v.LicensePlate, v.DailyRate, v.Status, v.ID)
	if err != nil {
		return fmt.Errorf("error updating vehicle: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting vehicle: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
