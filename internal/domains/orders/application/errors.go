package application

import (
	"errors"
	"fmt"

	"github.com/storelabs/commerce-api/internal/domains/orders/domain"
	productports "github.com/storelabs/commerce-api/internal/domains/products/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrCustomerNotFound signals the order's customer id does not resolve.
	ErrCustomerNotFound = errors.New("order customer does not exist")
	// ErrNoProductsFound signals none of the requested product ids resolve.
	ErrNoProductsFound = errors.New("none of the requested products exist")
	// ErrProductsNotFound signals some requested product ids do not resolve.
	ErrProductsNotFound = errors.New("requested products do not exist")
	// ErrInvalidQuantity signals a requested quantity of zero or less.
	ErrInvalidQuantity = errors.New("requested quantity must be greater than zero")
	// ErrInsufficientStock signals a product cannot cover the requested quantity.
	ErrInsufficientStock = errors.New("insufficient product stock")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingCustomer) ||
		errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrInvalidItem) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

// mapStockError translates the repository-level stock failure into the
// service taxonomy while keeping the original error in the chain.
func mapStockError(err error) error {
	var stockErr *productports.InsufficientStockError
	if errors.As(err, &stockErr) {
		return fmt.Errorf("%w: %w", ErrInsufficientStock, err)
	}
	return err
}

func insufficientStock(productID string, available, requested int32) error {
	return fmt.Errorf("%w: product %s has %d available, %d requested", ErrInsufficientStock, productID, available, requested)
}
