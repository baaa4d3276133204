package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"carrental/internal/db"
	apperrors "carrental/internal/errors"
	"carrental/internal/repository"
)

type CustomerService struct {
	Repo *repository.CustomerRepository
}

func NewCustomerService(repo *repository.CustomerRepository) *CustomerService {
	return &CustomerService{Repo: repo}
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]db.Customer, error) {
	return s.Repo.List(ctx)
}

func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*db.Customer, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *CustomerService) CreateCustomer(ctx context.Context, c *db.Customer) error {
	if c.FirstName == "" || c.LastName == "" {
		return fmt.Errorf("%w: first_name and last_name are required", apperrors.ErrInvalidInput)
	}
	if !strings.Contains(c.Email, "@") {
		return fmt.Errorf("%w: a valid email is required", apperrors.ErrInvalidInput)
	}

	now := time.Now().UTC()
	c.ID = uuid.NewString()
	if c.Status == "" {
		c.Status = db.CustomerActive
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.Repo.Create(ctx, c)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, c *db.Customer) error {
	existing, err := s.Repo.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if c.FirstName == "" {
		c.FirstName = existing.FirstName
	}
	if c.LastName == "" {
		c.LastName = existing.LastName
	}
	if c.Email == "" {
		c.Email = existing.Email
	}
	if c.Phone == "" {
		c.Phone = existing.Phone
	}
	if c.DateOfBirth == nil {
		c.DateOfBirth = existing.DateOfBirth
	}
	if c.LicenseNumber == "" {
		c.LicenseNumber = existing.LicenseNumber
	}
	if c.Status == "" {
		c.Status = existing.Status
	}
	return s.Repo.Update(ctx, c)
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
