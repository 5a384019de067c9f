package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/storelabs/commerce-api/internal/domains/products/domain"
	"github.com/storelabs/commerce-api/internal/domains/products/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[string]*domain.Product{}}
}

func (r *Repository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	r.products[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) FindAllByID(_ context.Context, ids []string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{}, len(ids))
	result := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if product, ok := r.products[id]; ok {
			clone := *product
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		clone := *product
		list = append(list, &clone)
	}
	return list, nil
}

// DecrementStock verifies every demand under the lock before mutating, so a
// failed batch leaves all stock untouched.
func (r *Repository) DecrementStock(_ context.Context, demands []ports.StockDemand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, demand := range demands {
		product, ok := r.products[demand.ProductID]
		if !ok {
			return ports.ErrNotFound
		}
		if product.Quantity < demand.Quantity {
			return &ports.InsufficientStockError{
				ProductID: demand.ProductID,
				Available: product.Quantity,
				Requested: demand.Quantity,
			}
		}
	}
	for _, demand := range demands {
		r.products[demand.ProductID].Quantity -= demand.Quantity
	}
	return nil
}
