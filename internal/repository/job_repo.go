package repository

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// GetConfirmedReservationIDsPastPickup returns confirmed reservations whose
// pickup time has arrived.
func (r *JobRepository) GetConfirmedReservationIDsPastPickup() ([]string, error) {
	return r.reservationIDs(`SELECT id FROM reservations WHERE status = 'confirmed' AND pickup_at <= NOW()`)
}

// GetActiveReservationIDsPastReturn returns active reservations whose return
// time has passed.
func (r *JobRepository) GetActiveReservationIDsPastReturn() ([]string, error) {
	return r.reservationIDs(`SELECT id FROM reservations WHERE status = 'active' AND return_at < NOW()`)
}

// GetPendingReservationIDsOlderThan returns pending reservations created
// before the cutoff. These were never confirmed and get swept to cancelled.
func (r *JobRepository) GetPendingReservationIDsOlderThan(before time.Time) ([]string, error) {
	return r.reservationIDs(`SELECT id FROM reservations WHERE status = 'pending' AND created_at < $1`, before)
}

func (r *JobRepository) reservationIDs(query string, args ...interface{}) ([]string, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reservation ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning reservation ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

func (r *JobRepository) UpdateReservationStatuses(ids []string, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.DB.Exec(query, newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating reservation statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d reservations to '%s'", rowsAffected, newStatus)
	}
	return nil
}

// SyncVehicleStatuses recomputes vehicle.status from current reservations and
// open maintenance records. Maintenance wins over rented, rented over
// available. The column is advisory: bookings are decided by the overlap
// check, never by this flag.
func (r *JobRepository) SyncVehicleStatuses() error {
	query := `
	UPDATE vehicles v SET status = CASE
		WHEN EXISTS (
			SELECT 1 FROM maintenance_records m
			WHERE m.vehicle_id = v.id AND m.status IN ('scheduled', 'in_progress')
				AND m.scheduled_date <= CURRENT_DATE
		) THEN 'maintenance'
		WHEN EXISTS (
			SELECT 1 FROM reservations r
			WHERE r.vehicle_id = v.id AND r.status = 'active'
		) THEN 'rented'
		ELSE 'available'
	END,
	updated_at = NOW()`
	if _, err := r.DB.Exec(query); err != nil {
		return fmt.Errorf("error syncing vehicle statuses: %w", err)
	}
	return nil
}
