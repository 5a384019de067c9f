package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/storelabs/commerce-api/internal/domains/customers/domain"
	"github.com/storelabs/commerce-api/internal/domains/customers/ports"
)

// Service exposes customer bounded context use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new customer after checking the email is not taken.
// The repository's unique index backs the same rule under concurrent inserts.
func (s *Service) Create(ctx context.Context, name, email string) (*domain.Customer, error) {
	customer, err := domain.NewCustomer(name, email)
	if err != nil {
		return nil, mapError(err)
	}
	existing, err := s.repo.GetByEmail(ctx, customer.Email)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, customer.Email)
	}
	saved, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads a single customer.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

var _ ports.Service = (*Service)(nil)
