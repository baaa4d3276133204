package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "carrental/internal/errors"
)

func validWireRequest() CreateReservationRequest {
	amount := 250.0
	return CreateReservationRequest{
		CustomerID:  "cust-1",
		VehicleID:   "veh-1",
		PickupAt:    "2025-01-01T10:00:00Z",
		ReturnAt:    "2025-01-03T10:00:00Z",
		TotalAmount: &amount,
	}
}

func TestParseValidRequest(t *testing.T) {
	req, err := validWireRequest().Parse()
	require.NoError(t, err)
	assert.Equal(t, "cust-1", req.CustomerID)
	assert.Equal(t, "veh-1", req.VehicleID)
	assert.True(t, req.PickupAt.Before(req.ReturnAt))
	assert.Equal(t, 250.0, req.TotalAmount)
	assert.Equal(t, time.UTC, req.PickupAt.Location())
}

func TestParseZeroAmountAllowed(t *testing.T) {
	wire := validWireRequest()
	zero := 0.0
	wire.TotalAmount = &zero
	_, err := wire.Parse()
	assert.NoError(t, err)
}

func TestParseRejections(t *testing.T) {
	negative := -1.0

	tests := []struct {
		name   string
		mutate func(*CreateReservationRequest)
	}{
		{"missing customer", func(r *CreateReservationRequest) { r.CustomerID = "" }},
		{"missing vehicle", func(r *CreateReservationRequest) { r.VehicleID = "" }},
		{"missing pickup", func(r *CreateReservationRequest) { r.PickupAt = "" }},
		{"missing return", func(r *CreateReservationRequest) { r.ReturnAt = "" }},
		{"missing amount", func(r *CreateReservationRequest) { r.TotalAmount = nil }},
		{"negative amount", func(r *CreateReservationRequest) { r.TotalAmount = &negative }},
		{"malformed pickup", func(r *CreateReservationRequest) { r.PickupAt = "2025-01-01 10:00:00" }},
		{"malformed return", func(r *CreateReservationRequest) { r.ReturnAt = "not-a-time" }},
		{"return before pickup", func(r *CreateReservationRequest) {
			r.PickupAt = "2025-01-03T10:00:00Z"
			r.ReturnAt = "2025-01-01T10:00:00Z"
		}},
		{"return equals pickup", func(r *CreateReservationRequest) {
			r.ReturnAt = r.PickupAt
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wire := validWireRequest()
			tc.mutate(&wire)
			_, err := wire.Parse()
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}
