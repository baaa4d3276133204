package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"carrental/internal/db"
	apperrors "carrental/internal/errors"
	"carrental/internal/service"
)

type FinanceHandler struct {
	Service *service.FinanceService
}

func NewFinanceHandler(svc *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{Service: svc}
}

func (h *FinanceHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.Service.ListTransactions(r.Context(),
		r.URL.Query().Get("payment_type"), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}
	if transactions == nil {
		transactions = []db.FinancialTransaction{}
	}
	writeJSON(w, http.StatusOK, transactions)
}

func (h *FinanceHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, err := h.Service.GetTransaction(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transaction)
}

func (h *FinanceHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var transaction db.FinancialTransaction
	if err := json.NewDecoder(r.Body).Decode(&transaction); err != nil {
		writeError(w, apperrors.ErrInvalidInput)
		return
	}
	if err := h.Service.CreateTransaction(r.Context(), &transaction); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, transaction)
}

func (h *FinanceHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var transaction db.FinancialTransaction
	if err := json.NewDecoder(r.Body).Decode(&transaction); err != nil {
		writeError(w, apperrors.ErrInvalidInput)
		return
	}
	transaction.ID = mux.Vars(r)["id"]
	if err := h.Service.UpdateTransaction(r.Context(), &transaction); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transaction)
}

func (h *FinanceHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteTransaction(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted"})
}
