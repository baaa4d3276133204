package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carrental/internal/db"
	apperrors "carrental/internal/errors"
)

type MaintenanceRepository struct {
	DB *sql.DB
}

func NewMaintenanceRepository(database *sql.DB) *MaintenanceRepository {
	return &MaintenanceRepository{DB: database}
}

func (r *MaintenanceRepository) List(ctx context.Context, vehicleID string) ([]db.MaintenanceRecord, error) {
	query := `
		SELECT id, vehicle_id, service_type, description, scheduled_date, completed_date,
			estimated_cost, actual_cost, status, created_at, updated_at
		FROM maintenance_records`
	args := []interface{}{}
	if vehicleID != "" {
		query += ` WHERE vehicle_id = $1`
		args = append(args, vehicleID)
	}
	query += ` ORDER BY scheduled_date DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing maintenance records: %w", err)
	}
	defer rows.Close()

	var records []db.MaintenanceRecord
	for rows.Next() {
		var m db.MaintenanceRecord
		if err := rows.Scan(&m.ID, &m.VehicleID, &m.ServiceType, &m.Description, &m.ScheduledDate,
			&m.CompletedDate, &m.EstimatedCost, &m.ActualCost, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning maintenance record: %w", err)
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

func (r *MaintenanceRepository) GetByID(ctx context.Context, id string) (*db.MaintenanceRecord, error) {
	var m db.MaintenanceRecord
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, vehicle_id, service_type, description, scheduled_date, completed_date,
			estimated_cost, actual_cost, status, created_at, updated_at
		FROM maintenance_records WHERE id = $1`, id).
		Scan(&m.ID, &m.VehicleID, &m.ServiceType, &m.Description, &m.ScheduledDate,
			&m.CompletedDate, &m.EstimatedCost, &m.ActualCost, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error querying maintenance record: %w", err)
	}
	return &m, nil
}

func (r *MaintenanceRepository) Create(ctx context.Context, m *db.MaintenanceRecord) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO maintenance_records
		(id, vehicle_id, service_type, description, scheduled_date, completed_date, estimated_cost, actual_cost, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, m.VehicleID, m.ServiceType, m.Description, m.ScheduledDate, m.CompletedDate,
		m.EstimatedCost, m.ActualCost, m.Status, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting maintenance record: %w", err)
	}
	return nil
}

func (r *MaintenanceRepository) Update(ctx context.Context, m *db.MaintenanceRecord) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE maintenance_records
		SET service_type = $1, description = $2, scheduled_date = $3, completed_date = $4,
			estimated_cost = $5, actual_cost = $6, status = $7, updated_at = NOW()
		WHERE id = $8`,
		m.ServiceType, m.Description, m.ScheduledDate, m.CompletedDate,
		m.EstimatedCost, m.ActualCost, m.Status, m.ID)
	if err != nil {
		return fmt.Errorf("error updating maintenance record: %w", err)
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

func (r *MaintenanceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM maintenance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting maintenance record: %w", err)
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
