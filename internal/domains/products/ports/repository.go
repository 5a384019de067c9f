package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/storelabs/commerce-api/internal/domains/products/domain"
)

// ErrNotFound signals the product does not exist.
var ErrNotFound = errors.New("product not found")

// StockDemand asks for a quantity to be subtracted from a product's stock.
type StockDemand struct {
	ProductID string
	Quantity  int32
}

// InsufficientStockError reports a demand that would drop a product's stock
// below zero. Implementations must leave all stock untouched when returning it.
type InsufficientStockError struct {
	ProductID string
	Available int32
	Requested int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: %d available, %d requested", e.ProductID, e.Available, e.Requested)
}

// Repository persists products and their stock counts.
type Repository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// FindAllByID batch-fetches products for a deduplicated id set.
	// Missing ids are simply absent from the result; order is not significant.
	FindAllByID(ctx context.Context, ids []string) ([]*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	// DecrementStock atomically subtracts each demand from the matching
	// product, failing the whole batch with *InsufficientStockError (or
	// ErrNotFound) without partial mutation.
	DecrementStock(ctx context.Context, demands []StockDemand) error
}
