package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"carrental/internal/db"
	apperrors "carrental/internal/errors"
	"carrental/internal/service"
)

type MaintenanceHandler struct {
	Service *service.MaintenanceService
}

func NewMaintenanceHandler(svc *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{Service: svc}
}

func (h *MaintenanceHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.ListRecords(r.Context(), r.URL.Query().Get("vehicle_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []db.MaintenanceRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *MaintenanceHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.Service.GetRecord(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *MaintenanceHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var record db.MaintenanceRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeError(w, apperrors.ErrInvalidInput)
		return
	}
	if err := h.Service.CreateRecord(r.Context(), &record); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *MaintenanceHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	var record db.MaintenanceRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeError(w, apperrors.ErrInvalidInput)
		return
	}
	record.ID = mux.Vars(r)["id"]
	if err := h.Service.UpdateRecord(r.Context(), &record); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *MaintenanceHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteRecord(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Maintenance record deleted"})
}
