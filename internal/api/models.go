package api

import (
	"encoding/json"
	"log"
	"net/http"

	apperrors "carrental/internal/errors"
)

// Reservation
type CreateReservationResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status"`
}

// Auth
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps an error to its HTTP status. Storage faults are logged and
// surfaced as a generic 500 without internal detail.
func writeError(w http.ResponseWriter, err error) {
	code := apperrors.StatusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		message = "internal server error, please retry"
	}
	writeJSON(w, code, ErrorResponse{Error: message})
}
