package errors

import (
	"errors"
	"net/http"
)

// Rejection reasons for the booking flow. Every failure is a named outcome;
// callers translate them into HTTP status codes with StatusFor.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrCustomerNotFound   = errors.New("customer not found or inactive")
	ErrVehicleUnavailable = errors.New("vehicle is already reserved for the selected dates")

	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnauthorized      = errors.New("unauthorized")
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// StatusFor maps a booking error to its HTTP status code. Unknown errors are
// persistence or transport faults and map to 500.
func StatusFor(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidTransition):
		return http.StatusBadRequest
	case errors.Is(err, ErrVehicleNotFound), errors.Is(err, ErrCustomerNotFound), errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrVehicleUnavailable):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
