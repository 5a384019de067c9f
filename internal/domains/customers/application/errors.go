package application

import (
	"errors"
	"fmt"

	"github.com/storelabs/commerce-api/internal/domains/customers/domain"
	"github.com/storelabs/commerce-api/internal/domains/customers/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid customer input")
	// ErrEmailTaken signals a customer with the informed email already exists.
	ErrEmailTaken = errors.New("a customer with the informed email already exists")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptyEmail) ||
		errors.Is(err, domain.ErrInvalidEmail) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrDuplicateEmail) {
		return fmt.Errorf("%w: %w", ErrEmailTaken, err)
	}
	return err
}
