package db

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusActive    ReservationStatus = "active"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// BlockingStatuses are the reservation states that hold a vehicle for their
// time window. Completed and cancelled reservations never block a booking.
var BlockingStatuses = []string{
	string(StatusPending),
	string(StatusConfirmed),
	string(StatusActive),
}

// allowedTransitions encodes the reservation lifecycle:
// pending -> confirmed -> active -> completed, with cancellation possible
// from any non-terminal state. Completed and cancelled are terminal.
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusActive, StatusCancelled},
	StatusActive:    {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

func ValidReservationStatus(s ReservationStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether from -> to is an allowed status change.
func CanTransition(from, to ReservationStatus) bool {
	allowed, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}
