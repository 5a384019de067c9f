package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	customermemory "github.com/storelabs/commerce-api/internal/domains/customers/adapters/memory"
	"github.com/storelabs/commerce-api/internal/domains/customers/domain"
	"github.com/storelabs/commerce-api/internal/domains/customers/ports"
)

func TestCreateCustomer_Success(t *testing.T) {
	repo := customermemory.NewRepository()
	svc := NewService(repo)

	customer, err := svc.Create(context.Background(), "Ada Lovelace", "ada@example.com")

	require.NoError(t, err)
	require.NotNil(t, customer)
	require.NotEmpty(t, customer.ID)
	require.Equal(t, "Ada Lovelace", customer.Name)
	require.Equal(t, "ada@example.com", customer.Email)
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	repo := customermemory.NewRepository()
	svc := NewService(repo)

	first, err := svc.Create(context.Background(), "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "Someone Else", "ada@example.com")
	require.ErrorIs(t, err, ErrEmailTaken)

	// The original registration is untouched.
	kept, err := svc.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", kept.Name)
}

func TestCreateCustomer_DuplicateEmailDifferentCase(t *testing.T) {
	repo := customermemory.NewRepository()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "Someone Else", "ADA@Example.com")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateCustomer_InvalidInput(t *testing.T) {
	repo := customermemory.NewRepository()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), "", "ada@example.com")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = svc.Create(context.Background(), "Ada Lovelace", "")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyEmail)

	_, err = svc.Create(context.Background(), "Ada Lovelace", "not-an-email")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestGetCustomerByID_NotFound(t *testing.T) {
	repo := customermemory.NewRepository()
	svc := NewService(repo)

	_, err := svc.GetByID(context.Background(), "9f1d9f4e-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
