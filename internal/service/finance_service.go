package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"carrental/internal/db"
	apperrors "carrental/internal/errors"
	"carrental/internal/repository"
)

var paymentTypes = map[string]bool{
	"rental_payment":   true,
	"maintenance_cost": true,
	"fuel_cost":        true,
	"insurance":        true,
	"other_income":     true,
	"other_expense":    true,
}

type FinanceService struct {
	Repo *repository.FinanceRepository
}

func NewFinanceService(repo *repository.FinanceRepository) *FinanceService {
	return &FinanceService{Repo: repo}
}

func (s *FinanceService) ListTransactions(ctx context.Context, paymentType, status string) ([]db.FinancialTransaction, error) {
	return s.Repo.List(ctx, paymentType, status)
}

func (s *FinanceService) GetTransaction(ctx context.Context, id string) (*db.FinancialTransaction, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *FinanceService) CreateTransaction(ctx context.Context, t *db.FinancialTransaction) error {
	if !paymentTypes[t.PaymentType] {
		return fmt.Errorf("%w: unknown payment_type %q", apperrors.ErrInvalidInput, t.PaymentType)
	}
	if t.TransactionDate.IsZero() {
		return fmt.Errorf("%w: transaction_date is required", apperrors.ErrInvalidInput)
	}

	now := time.Now().UTC()
	t.ID = uuid.NewString()
	if t.PaymentMethod == "" {
		t.PaymentMethod = "cash"
	}
	if t.Status == "" {
		t.Status = db.TransactionPending
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.Repo.Create(ctx, t)
}

func (s *FinanceService) UpdateTransaction(ctx context.Context, t *db.FinancialTransaction) error {
	existing, err := s.Repo.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	if t.PaymentType == "" {
		t.PaymentType = existing.PaymentType
	} else if !paymentTypes[t.PaymentType] {
		return fmt.Errorf("%w: unknown payment_type %q", apperrors.ErrInvalidInput, t.PaymentType)
	}
	if t.CustomerID == nil {
		t.CustomerID = existing.CustomerID
	}
	if t.Amount == 0 {
		t.Amount = existing.Amount
	}
	if t.Description == "" {
		t.Description = existing.Description
	}
	if t.TransactionDate.IsZero() {
		t.TransactionDate = existing.TransactionDate
	}
	if t.PaymentMethod == "" {
		t.PaymentMethod = existing.PaymentMethod
	}
	if t.Status == "" {
		t.Status = existing.Status
	}
	return s.Repo.Update(ctx, t)
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
