package ports

import (
	"context"
	"errors"

	"github.com/storelabs/commerce-api/internal/domains/customers/domain"
)

var (
	// ErrNotFound signals the customer does not exist.
	ErrNotFound = errors.New("customer not found")
	// ErrDuplicateEmail signals the unique email constraint was violated on insert.
	ErrDuplicateEmail = errors.New("customer email already registered")
)

// Repository persists customers. Email is unique across all customers.
type Repository interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}
