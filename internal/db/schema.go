package db

import (
	"database/sql"
	"fmt"
)

// CreateTables ensures the rental schema exists. Safe to run on every start.
func CreateTables(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS vehicles (
			id VARCHAR(36) PRIMARY KEY,
			make VARCHAR(100) NOT NULL,
			model VARCHAR(100) NOT NULL,
			year INT NOT NULL,
			license_plate VARCHAR(20) UNIQUE NOT NULL,
			daily_rate NUMERIC(10,2) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'available',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id VARCHAR(36) PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			phone VARCHAR(20),
			date_of_birth DATE,
			license_number VARCHAR(50),
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS reservations (
			id VARCHAR(36) PRIMARY KEY,
			customer_id VARCHAR(36) NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
			vehicle_id VARCHAR(36) NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
			pickup_at TIMESTAMPTZ NOT NULL,
			return_at TIMESTAMPTZ NOT NULL,
			total_amount NUMERIC(10,2) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (pickup_at < return_at)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_vehicle_window
			ON reservations (vehicle_id, pickup_at, return_at)`,
		`CREATE TABLE IF NOT EXISTS maintenance_records (
			id VARCHAR(36) PRIMARY KEY,
			vehicle_id VARCHAR(36) NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
			service_type VARCHAR(100) NOT NULL,
			description TEXT,
			scheduled_date DATE NOT NULL,
			completed_date DATE,
			estimated_cost NUMERIC(10,2),
			actual_cost NUMERIC(10,2),
			status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS financial_transactions (
			id VARCHAR(36) PRIMARY KEY,
			payment_type VARCHAR(30) NOT NULL,
			customer_id VARCHAR(36) REFERENCES customers(id) ON DELETE SET NULL,
			amount NUMERIC(10,2) NOT NULL,
			description TEXT,
			transaction_date DATE NOT NULL,
			payment_method VARCHAR(50) NOT NULL DEFAULT 'cash',
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS admins (
			id SERIAL PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("error creating schema: %w", err)
		}
	}
	return nil
}
