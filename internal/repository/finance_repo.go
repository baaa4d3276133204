package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"carrental/internal/db"
	apperrors "carrental/internal/errors"
)

type FinanceRepository struct {
	DB *sql.DB
}

func NewFinanceRepository(database *sql.DB) *FinanceRepository {
	return &FinanceRepository{DB: database}
}

func (r *FinanceRepository) List(ctx context.Context, paymentType, status string) ([]db.FinancialTransaction, error) {
	query := `
		SELECT id, payment_type, customer_id, amount, description, transaction_date,
			payment_method, status, created_at, updated_at
		FROM financial_transactions WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if paymentType != "" {
		query += " AND payment_type = $" + strconv.Itoa(idx)
		args = append(args, paymentType)
		idx++
	}
	if status != "" {
		query += " AND status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}
	query += " ORDER BY transaction_date DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}
	defer rows.Close()

	var transactions []db.FinancialTransaction
	for rows.Next() {
		var t db.FinancialTransaction
		if err := rows.Scan(&t.ID, &t.PaymentType, &t.CustomerID, &t.Amount, &t.Description,
			&t.TransactionDate, &t.PaymentMethod, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (r *FinanceRepository) GetByID(ctx context.Context, id string) (*db.FinancialTransaction, error) {
	var t db.FinancialTransaction
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, payment_type, customer_id, amount, description, transaction_date,
			payment_method, status, created_at, updated_at
		FROM financial_transactions WHERE id = $1`, id).
		Scan(&t.ID, &t.PaymentType, &t.CustomerID, &t.Amount, &t.Description,
			&t.TransactionDate, &t.PaymentMethod, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error querying transaction: %w", err)
	}
	return &t, nil
}

func (r *FinanceRepository) Create(ctx context.Context, t *db.FinancialTransaction) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO financial_transactions
		(id, payment_type, customer_id, amount, description, transaction_date, payment_method, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.ID, t.PaymentType, t.CustomerID, t.Amount, t.Description, t.TransactionDate,
		t.PaymentMethod, t.Status, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting transaction: %w", err)
	}
	return nil
}

func (r *FinanceRepository) Update(ctx context.Context, t *db.FinancialTransaction) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE financial_transactions
		SET payment_type = $1, customer_id = $2, amount = $3, description = $4,
			transaction_date = $5, payment_method = $6, status = $7, updated_at = NOW()
		WHERE id = $8`,
		t.PaymentType, t.CustomerID, t.Amount, t.Description, t.TransactionDate,
		t.PaymentMethod, t.Status, t.ID)
	if err != nil {
		return fmt.Errorf("error updating transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *FinanceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM financial_transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
