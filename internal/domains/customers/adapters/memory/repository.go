package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/storelabs/commerce-api/internal/domains/customers/domain"
	"github.com/storelabs/commerce-api/internal/domains/customers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory customer persistence adapter.
type Repository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Customer
	byEmail map[string]string
}

func NewRepository() *Repository {
	return &Repository{
		byID:    map[string]*domain.Customer{},
		byEmail: map[string]string{},
	}
}

func (r *Repository) Create(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	clone := *customer
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := emailKey(clone.Email)
	if _, ok := r.byEmail[key]; ok {
		return nil, ports.ErrDuplicateEmail
	}
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	r.byID[clone.ID] = &clone
	r.byEmail[key] = clone.ID
	result := clone
	return &result, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.byID[id]
	return &clone, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customer, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *customer
	return &clone, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
