package entities

import (
	"fmt"
	"time"

	apperrors "carrental/internal/errors"
)

// CreateReservationRequest is the wire shape of a booking request. Timestamps
// are RFC 3339 strings and the amount is a pointer so a missing field can be
// told apart from an explicit zero.
type CreateReservationRequest struct {
	CustomerID  string   `json:"customer_id"`
	VehicleID   string   `json:"vehicle_id"`
	PickupAt    string   `json:"pickup_at"`
	ReturnAt    string   `json:"return_at"`
	TotalAmount *float64 `json:"total_amount"`
}

// BookingRequest is the validated, typed form handed to the booking service.
type BookingRequest struct {
	CustomerID  string
	VehicleID   string
	PickupAt    time.Time
	ReturnAt    time.Time
	TotalAmount float64
}

// Parse validates the wire request and converts it into a BookingRequest.
// Every failure wraps ErrInvalidInput.
func (r CreateReservationRequest) Parse() (BookingRequest, error) {
	var out BookingRequest

	if r.CustomerID == "" {
		return out, fmt.Errorf("%w: customer_id is required", apperrors.ErrInvalidInput)
	}
	if r.VehicleID == "" {
		return out, fmt.Errorf("%w: vehicle_id is required", apperrors.ErrInvalidInput)
	}
	if r.PickupAt == "" {
		return out, fmt.Errorf("%w: pickup_at is required", apperrors.ErrInvalidInput)
	}
	if r.ReturnAt == "" {
		return out, fmt.Errorf("%w: return_at is required", apperrors.ErrInvalidInput)
	}
	if r.TotalAmount == nil {
		return out, fmt.Errorf("%w: total_amount is required", apperrors.ErrInvalidInput)
	}
	if *r.TotalAmount < 0 {
		return out, fmt.Errorf("%w: total_amount must be non-negative", apperrors.ErrInvalidInput)
	}

	pickup, err := time.Parse(time.RFC3339, r.PickupAt)
	if err != nil {
		return out, fmt.Errorf("%w: pickup_at must be RFC 3339", apperrors.ErrInvalidInput)
	}
	ret, err := time.Parse(time.RFC3339, r.ReturnAt)
	if err != nil {
		return out, fmt.Errorf("%w: return_at must be RFC 3339", apperrors.ErrInvalidInput)
	}
	if !pickup.Before(ret) {
		return out, fmt.Errorf("%w: return_at must be after pickup_at", apperrors.ErrInvalidInput)
	}

	out = BookingRequest{
		CustomerID:  r.CustomerID,
		VehicleID:   r.VehicleID,
		PickupAt:    pickup.UTC(),
		ReturnAt:    ret.UTC(),
		TotalAmount: *r.TotalAmount,
	}
	return out, nil
}
