package workflows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	customermemory "github.com/storelabs/commerce-api/internal/domains/customers/adapters/memory"
	customerdomain "github.com/storelabs/commerce-api/internal/domains/customers/domain"
	ordermemory "github.com/storelabs/commerce-api/internal/domains/orders/adapters/memory"
	orderapp "github.com/storelabs/commerce-api/internal/domains/orders/application"
	"github.com/storelabs/commerce-api/internal/domains/orders/ports"
	productmemory "github.com/storelabs/commerce-api/internal/domains/products/adapters/memory"
	productdomain "github.com/storelabs/commerce-api/internal/domains/products/domain"
)

func TestInlineOrderWorkflows_PlaceOrder(t *testing.T) {
	customers := customermemory.NewRepository()
	products := productmemory.NewRepository()
	orders := ordermemory.NewRepository()
	service := orderapp.NewService(orders, customers, products)

	customer, err := customerdomain.NewCustomer("Ada Lovelace", "ada@example.com")
	require.NoError(t, err)
	customer, err = customers.Create(context.Background(), customer)
	require.NoError(t, err)

	product, err := productdomain.NewProduct("Keyboard", 10, 5)
	require.NoError(t, err)
	product, err = products.Create(context.Background(), product)
	require.NoError(t, err)

	orchestrator := NewInlineOrderWorkflows(service)
	order, err := orchestrator.PlaceOrder(context.Background(), customer.ID, []ports.ItemRequest{
		{ProductID: product.ID, Quantity: 2},
	})

	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	require.Equal(t, customer.ID, order.Customer.ID)

	remaining, err := products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, int32(3), remaining.Quantity)
}

func TestInlineOrderWorkflows_NotConfigured(t *testing.T) {
	var orchestrator *InlineOrderWorkflows
	_, err := orchestrator.PlaceOrder(context.Background(), "any", nil)
	require.Error(t, err)
}
