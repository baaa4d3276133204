package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"carrental/internal/db"
	apperrors "carrental/internal/errors"
	"carrental/internal/service"
)

type VehicleHandler struct {
	Service *service.VehicleService
}

func NewVehicleHandler(svc *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{Service: svc}
}

func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Service.ListVehicles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if vehicles == nil {
		vehicles = []db.Vehicle{}
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.Service.GetVehicle(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle db.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		writeError(w, apperrors.ErrInvalidInput)
		return
	}
	if err := h.Service.CreateVehicle(r.Context(), &vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle db.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		writeError(w, apperrors.ErrInvalidInput)
		return
	}
	vehicle.ID = mux.Vars(r)["id"]
	if err := h.Service.UpdateVehicle(r.Context(), &vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteVehicle(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle deleted"})
}
