package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName        = errors.New("product name is required")
	ErrInvalidPrice     = errors.New("product price must be greater than zero")
	ErrNegativeQuantity = errors.New("product quantity cannot be negative")
)

// Product models a sellable catalog item with its available stock.
type Product struct {
	ID       string
	Name     string
	Price    float64
	Quantity int32
}

// NewProduct validates and constructs a new product.
func NewProduct(name string, price float64, quantity int32) (*Product, error) {
	product := &Product{Price: price, Quantity: quantity}
	if err := product.Rename(name); err != nil {
		return nil, err
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Rename trims and validates the product name.
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// Validate enforces invariants on the product.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price <= 0 {
		return ErrInvalidPrice
	}
	if p.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}
