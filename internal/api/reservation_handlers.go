package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"carrental/internal/db"
	"carrental/internal/entities"
	apperrors "carrental/internal/errors"
	"carrental/internal/service"
)

type ReservationHandler struct {
	Bookings     *service.BookingService
	Reservations *service.ReservationService
}

func NewReservationHandler(bookings *service.BookingService, reservations *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Bookings: bookings, Reservations: reservations}
}

// CreateReservation is the booking entry point. A malformed body or an
// inadmissible request never reaches the store's insert path.
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ErrInvalidInput)
		return
	}

	booking, err := req.Parse()
	if err != nil {
		writeError(w, err)
		return
	}

	reservation, err := h.Bookings.CreateReservation(r.Context(), booking)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CreateReservationResponse{
		ID:     reservation.ID,
		Status: string(reservation.Status),
	})
}

func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	reservation, err := h.Reservations.GetReservation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	filter := entities.ReservationFilter{
		Status:    r.URL.Query().Get("status"),
		VehicleID: r.URL.Query().Get("vehicle_id"),
		Date:      r.URL.Query().Get("date"),
	}
	reservations, err := h.Reservations.ListReservations(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if reservations == nil {
		reservations = []entities.ReservationDetail{}
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *ReservationHandler) UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req UpdateReservationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ErrInvalidInput)
		return
	}

	reservation, err := h.Reservations.UpdateStatus(r.Context(), id, db.ReservationStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Reservations.CancelReservation(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reservation cancelled"})
}
