package entities

import "time"

// ReservationDetail is a reservation row joined with its customer and vehicle,
// as the back office lists them.
type ReservationDetail struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	VehicleID    string    `json:"vehicle_id"`
	VehicleName  string    `json:"vehicle_name"`
	LicensePlate string    `json:"license_plate"`
	PickupAt     time.Time `json:"pickup_at"`
	ReturnAt     time.Time `json:"return_at"`
	TotalAmount  float64   `json:"total_amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReservationFilter narrows the back-office reservation listing.
type ReservationFilter struct {
	Status    string
	VehicleID string
	Date      string // YYYY-MM-DD, matches the pickup day
}
