package domain

import (
	"errors"
	"time"

	customerdomain "github.com/storelabs/commerce-api/internal/domains/customers/domain"
)

var (
	ErrMissingCustomer = errors.New("order customer is required")
	ErrNoItems         = errors.New("order must contain at least one item")
	ErrInvalidItem     = errors.New("order item must reference a product with a positive quantity and price")
)

// OrderItem is the per-product line entry of an order. Price is a unit price
// snapshot taken at order time; later catalog changes do not affect it.
type OrderItem struct {
	ProductID string
	Price     float64
	Quantity  int32
}

// Order models a confirmed purchase. Immutable once persisted.
type Order struct {
	ID        string
	Customer  customerdomain.Customer
	Items     []OrderItem
	CreatedAt time.Time
}

// NewOrder validates and constructs a new order for the given customer.
// The identifier and creation time are assigned by the persistence adapter.
func NewOrder(customer customerdomain.Customer, items []OrderItem) (*Order, error) {
	order := &Order{
		Customer: customer,
		Items:    append([]OrderItem{}, items...),
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.Customer.ID == "" {
		return ErrMissingCustomer
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range o.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.Price <= 0 {
			return ErrInvalidItem
		}
	}
	return nil
}

// Total sums the item price snapshots times their quantities.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
