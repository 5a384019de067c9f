package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	customerports "github.com/storelabs/commerce-api/internal/domains/customers/ports"
	"github.com/storelabs/commerce-api/internal/domains/orders/domain"
	"github.com/storelabs/commerce-api/internal/domains/orders/ports"
	productdomain "github.com/storelabs/commerce-api/internal/domains/products/domain"
	productports "github.com/storelabs/commerce-api/internal/domains/products/ports"
)

// Service orchestrates order placement across the customer, product, and
// order stores.
type Service struct {
	orders    ports.Repository
	customers customerports.Repository
	products  productports.Repository
}

func NewService(orders ports.Repository, customers customerports.Repository, products productports.Repository) *Service {
	return &Service{orders: orders, customers: customers, products: products}
}

// PlaceOrder validates the request, persists the order, and decrements stock.
// A decrement failure after persistence triggers a compensating delete so no
// order survives without its stock reservation.
func (s *Service) PlaceOrder(ctx context.Context, customerID string, items []ports.ItemRequest) (*domain.Order, error) {
	order, demands, err := s.prepare(ctx, customerID, items)
	if err != nil {
		return nil, err
	}
	saved, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.products.DecrementStock(ctx, demands); err != nil {
		if delErr := s.orders.Delete(ctx, saved.ID); delErr != nil {
			err = errors.Join(err, delErr)
		}
		return nil, mapStockError(err)
	}
	return saved, nil
}

// PersistOrder runs validation and order persistence without touching stock.
// The durable workflow path decrements stock in a separate activity.
func (s *Service) PersistOrder(ctx context.Context, customerID string, items []ports.ItemRequest) (*domain.Order, error) {
	order, _, err := s.prepare(ctx, customerID, items)
	if err != nil {
		return nil, err
	}
	saved, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// CancelOrder removes a persisted order whose stock decrement never completed.
func (s *Service) CancelOrder(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}

// GetOrderByID loads a single order with its customer and items.
func (s *Service) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// prepare resolves the customer, batch-fetches the requested products, and
// reconciles quantities against available stock. It returns the order ready
// for persistence along with the stock demands for the decrement step.
func (s *Service) prepare(ctx context.Context, customerID string, items []ports.ItemRequest) (*domain.Order, []productports.StockDemand, error) {
	if len(items) == 0 {
		return nil, nil, mapError(domain.ErrNoItems)
	}
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customerports.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
		}
		return nil, nil, err
	}

	// Duplicate product ids merge into a single requested quantity.
	requested := make(map[string]int32, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, nil, fmt.Errorf("%w: product %s", ErrInvalidQuantity, item.ProductID)
		}
		if _, ok := requested[item.ProductID]; !ok {
			ids = append(ids, item.ProductID)
		}
		requested[item.ProductID] += item.Quantity
	}

	products, err := s.products.FindAllByID(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if len(products) == 0 {
		return nil, nil, ErrNoProductsFound
	}
	if len(products) < len(ids) {
		return nil, nil, fmt.Errorf("%w: %s", ErrProductsNotFound, strings.Join(missingIDs(ids, products), ", "))
	}

	orderItems := make([]domain.OrderItem, 0, len(products))
	demands := make([]productports.StockDemand, 0, len(products))
	for _, product := range products {
		// The resolved set equals the requested set after the missing-id
		// check, so the lookup cannot miss.
		quantity := requested[product.ID]
		if product.Quantity < quantity {
			return nil, nil, insufficientStock(product.ID, product.Quantity, quantity)
		}
		orderItems = append(orderItems, domain.OrderItem{
			ProductID: product.ID,
			Price:     product.Price,
			Quantity:  quantity,
		})
		demands = append(demands, productports.StockDemand{ProductID: product.ID, Quantity: quantity})
	}

	order, err := domain.NewOrder(*customer, orderItems)
	if err != nil {
		return nil, nil, mapError(err)
	}
	return order, demands, nil
}

func missingIDs(ids []string, products []*productdomain.Product) []string {
	resolved := make(map[string]struct{}, len(products))
	for _, product := range products {
		resolved[product.ID] = struct{}{}
	}
	missing := make([]string, 0, len(ids)-len(products))
	for _, id := range ids {
		if _, ok := resolved[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

var _ ports.Service = (*Service)(nil)
