package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"carrental/internal/db"
	apperrors "carrental/internal/errors"
	"carrental/internal/service"
)

type CustomerHandler struct {
	Service *service.CustomerService
}

func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{Service: svc}
}

func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Service.ListCustomers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if customers == nil {
		customers = []db.Customer{}
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.Service.GetCustomer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer db.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		writeError(w, apperrors.ErrInvalidInput)
		return
	}
	if err := h.Service.CreateCustomer(r.Context(), &customer); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer db.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		writeError(w, apperrors.ErrInvalidInput)
		return
	}
	customer.ID = mux.Vars(r)["id"]
	if err := h.Service.UpdateCustomer(r.Context(), &customer); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteCustomer(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Customer deleted"})
}
