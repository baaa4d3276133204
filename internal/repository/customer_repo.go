package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carrental/internal/db"
	apperrors "carrental/internal/errors"
)

type CustomerRepository struct {
	DB *sql.DB
}

func NewCustomerRepository(database *sql.DB) *CustomerRepository {
	return &CustomerRepository{DB: database}
}

func (r *CustomerRepository) List(ctx context.Context) ([]db.Customer, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, first_name, last_name, email, phone, date_of_birth, license_number, status, created_at, updated_at
		FROM customers ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing customers: %w", err)
	}
	defer rows.Close()

	var customers []db.Customer
	for rows.Next() {
		var c db.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
			&c.DateOfBirth, &c.LicenseNumber, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*db.Customer, error) {
	var c db.Customer
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, phone, date_of_birth, license_number, status, created_at, updated_at
		FROM customers WHERE id = $1`, id).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
			&c.DateOfBirth, &c.LicenseNumber, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error querying customer: %w", err)
	}
	return &c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *db.Customer) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO customers (id, first_name, last_name, email, phone, date_of_birth, license_number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.DateOfBirth, c.LicenseNumber,
		c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *db.Customer) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE customers
		SET first_name = $1, last_name = $2, email = $3, phone = $4, date_of_birth = $5,
			license_number = $6, status = $7, updated_at = NOW()
		WHERE id = $8`,
		c.FirstName, c.LastName, c.Email, c.Phone, c.DateOfBirth, c.LicenseNumber, c.Status, c.ID)
	if err != nil {
		return fmt.Errorf("error updating customer: %w", err)
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

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting customer: %w", err)
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
