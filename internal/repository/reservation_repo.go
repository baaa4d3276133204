package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"

	"carrental/internal/db"
	"carrental/internal/entities"
	apperrors "carrental/internal/errors"
)

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: database}
}

func (r *ReservationRepository) FindVehicle(ctx context.Context, id string) (*db.Vehicle, error) {
	var v db.Vehicle
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, make, model, year, license_plate, daily_rate, status, created_at, updated_at
		FROM vehicles WHERE id = $1`, id).
		Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &v.DailyRate, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying vehicle: %w", err)
	}
	return &v, nil
}

// FindActiveCustomer returns the customer only when it exists and has status
// 'active'. Missing and inactive customers both come back as nil.
func (r *ReservationRepository) FindActiveCustomer(ctx context.Context, id string) (*db.Customer, error) {
	var c db.Customer
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, phone, date_of_birth, license_number, status, created_at, updated_at
		FROM customers WHERE id = $1 AND status = 'active'`, id).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.DateOfBirth, &c.LicenseNumber, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying customer: %w", err)
	}
	return &c, nil
}

// overlapCondition implements the half-open [pickup, return) interval test:
// an existing reservation conflicts iff it starts before the proposed return
// and ends after the proposed pickup. A reservation ending exactly at the
// proposed pickup does not conflict, so back-to-back bookings are allowed.
const overlapCondition = `vehicle_id = $1 AND status = ANY($2) AND pickup_at < $4 AND return_at > $3`

func (r *ReservationRepository) FindOverlappingReservations(ctx context.Context, vehicleID string, pickupAt, returnAt time.Time, statuses []string) ([]db.Reservation, error) {
	query := `
		SELECT id, customer_id, vehicle_id, pickup_at, return_at, total_amount, status, created_at, updated_at
		FROM reservations WHERE ` + overlapCondition + ` ORDER BY pickup_at`

	rows, err := r.DB.QueryContext(ctx, query, vehicleID, pq.Array(statuses), pickupAt, returnAt)
	if err != nil {
		return nil, fmt.Errorf("error querying overlapping reservations: %w", err)
	}
	defer rows.Close()

	var reservations []db.Reservation
	for rows.Next() {
		var res db.Reservation
		if err := rows.Scan(&res.ID, &res.CustomerID, &res.VehicleID, &res.PickupAt, &res.ReturnAt,
			&res.TotalAmount, &res.Status, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservations: %w", err)
	}
	return reservations, nil
}

// InsertReservation persists a validated reservation. The overlap condition is
// re-checked inside the transaction under a row lock on the vehicle, so two
// concurrent bookings for the same window cannot both commit. The whole
// operation is all-or-nothing: a cancelled context rolls everything back.
func (r *ReservationRepository) InsertReservation(ctx context.Context, res *db.Reservation) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	var vehicleID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM vehicles WHERE id = $1 FOR UPDATE`, res.VehicleID).Scan(&vehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrVehicleNotFound
		}
		return fmt.Errorf("error locking vehicle row: %w", err)
	}

	var conflicts int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM reservations WHERE `+overlapCondition,
		res.VehicleID, pq.Array(db.BlockingStatuses), res.PickupAt, res.ReturnAt).Scan(&conflicts)
	if err != nil {
		return fmt.Errorf("error re-checking overlap: %w", err)
	}
	if conflicts > 0 {
		return apperrors.ErrVehicleUnavailable
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reservations (id, customer_id, vehicle_id, pickup_at, return_at, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		res.ID, res.CustomerID, res.VehicleID, res.PickupAt, res.ReturnAt, res.TotalAmount,
		res.Status, res.CreatedAt, res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) GetReservationByID(ctx context.Context, id string) (*db.Reservation, error) {
	var res db.Reservation
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, customer_id, vehicle_id, pickup_at, return_at, total_amount, status, created_at, updated_at
		FROM reservations WHERE id = $1`, id).
		Scan(&res.ID, &res.CustomerID, &res.VehicleID, &res.PickupAt, &res.ReturnAt,
			&res.TotalAmount, &res.Status, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error querying reservation: %w", err)
	}
	return &res, nil
}

func (r *ReservationRepository) ListReservations(ctx context.Context, filter entities.ReservationFilter) ([]entities.ReservationDetail, error) {
	query := `
	SELECT
		r.id, r.customer_id, c.first_name || ' ' || c.last_name AS customer_name,
		r.vehicle_id, v.make || ' ' || v.model AS vehicle_name, v.license_plate,
		r.pickup_at, r.return_at, r.total_amount, r.status, r.created_at
	FROM reservations r
	JOIN customers c ON c.id = r.customer_id
	JOIN vehicles v ON v.id = r.vehicle_id
	WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter.Status != "" {
		query += " AND r.status = $" + strconv.Itoa(idx)
		args = append(args, filter.Status)
		idx++
	}
	if filter.VehicleID != "" {
		query += " AND r.vehicle_id = $" + strconv.Itoa(idx)
		args = append(args, filter.VehicleID)
		idx++
	}
	if filter.Date != "" {
		query += " AND DATE(r.pickup_at) = $" + strconv.Itoa(idx)
		args = append(args, filter.Date)
		idx++
	}
	query += " ORDER BY r.created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing reservations: %w", err)
	}
	defer rows.Close()

	var details []entities.ReservationDetail
	for rows.Next() {
		var d entities.ReservationDetail
		if err := rows.Scan(&d.ID, &d.CustomerID, &d.CustomerName, &d.VehicleID, &d.VehicleName,
			&d.LicensePlate, &d.PickupAt, &d.ReturnAt, &d.TotalAmount, &d.Status, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning reservation detail: %w", err)
		}
		details = append(details, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservation details: %w", err)
	}
	return details, nil
}

func (r *ReservationRepository) UpdateReservationStatus(ctx context.Context, id string, status db.ReservationStatus) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("error updating reservation status: %w", err)
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
