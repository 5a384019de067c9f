package ports

import (
	"context"

	"github.com/storelabs/commerce-api/internal/domains/products/domain"
)

// Service exposes product catalog use cases to adapters.
type Service interface {
	Create(ctx context.Context, name string, price float64, quantity int32) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}
