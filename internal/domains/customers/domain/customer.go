package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName    = errors.New("customer name is required")
	ErrEmptyEmail   = errors.New("customer email is required")
	ErrInvalidEmail = errors.New("customer email must contain '@'")
)

// Customer represents a registered buyer.
type Customer struct {
	ID    string
	Name  string
	Email string
}

// NewCustomer builds a customer ensuring required invariants.
// The identifier is assigned by the persistence adapter.
func NewCustomer(name, email string) (*Customer, error) {
	customer := &Customer{}
	if err := customer.SetName(name); err != nil {
		return nil, err
	}
	if err := customer.SetEmail(email); err != nil {
		return nil, err
	}
	return customer, nil
}

// SetName trims and validates the customer name.
func (c *Customer) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	c.Name = name
	return nil
}

// SetEmail trims and applies a minimal shape check. Full format validation
// belongs to the transport layer.
func (c *Customer) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	c.Email = email
	return nil
}

// Validate re-applies core invariants for persistence.
func (c *Customer) Validate() error {
	if err := c.SetName(c.Name); err != nil {
		return err
	}
	return c.SetEmail(c.Email)
}
