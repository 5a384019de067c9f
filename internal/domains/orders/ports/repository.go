package ports

import (
	"context"
	"errors"

	"github.com/storelabs/commerce-api/internal/domains/orders/domain"
)

// ErrNotFound signals the order does not exist.
var ErrNotFound = errors.New("order not found")

// Repository persists orders.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// Delete removes an order. Used as the compensating write when the stock
	// decrement that follows order persistence fails.
	Delete(ctx context.Context, id string) error
}
