package application

import (
	"context"

	"github.com/storelabs/commerce-api/internal/domains/products/domain"
	"github.com/storelabs/commerce-api/internal/domains/products/ports"
)

// Service exposes product catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new catalog product with its initial stock.
func (s *Service) Create(ctx context.Context, name string, price float64, quantity int32) (*domain.Product, error) {
	product, err := domain.NewProduct(name, price, quantity)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// List returns the full catalog.
func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
