package ports

import (
	"context"

	"github.com/storelabs/commerce-api/internal/domains/customers/domain"
)

// Service exposes customer use cases to adapters.
type Service interface {
	Create(ctx context.Context, name, email string) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}
