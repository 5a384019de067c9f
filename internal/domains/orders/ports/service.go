package ports

import (
	"context"

	"github.com/storelabs/commerce-api/internal/domains/orders/domain"
)

// ItemRequest names a product and the quantity a caller wants to buy.
type ItemRequest struct {
	ProductID string
	Quantity  int32
}

// Service exposes order use cases to adapters.
type Service interface {
	// PlaceOrder runs the full placement: validation, persistence, and stock
	// decrement with a compensating delete if the decrement fails.
	PlaceOrder(ctx context.Context, customerID string, items []ItemRequest) (*domain.Order, error)
	// PersistOrder runs validation and persistence only. The caller owns the
	// follow-up stock decrement (durable workflow path).
	PersistOrder(ctx context.Context, customerID string, items []ItemRequest) (*domain.Order, error)
	// CancelOrder removes an order whose stock decrement never completed.
	CancelOrder(ctx context.Context, id string) error
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
}

// WorkflowOrchestrator starts the order placement flow, either inline or on a
// durable execution engine.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, customerID string, items []ItemRequest) (*domain.Order, error)
}
