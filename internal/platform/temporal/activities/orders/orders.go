package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	orderdomain "github.com/storelabs/commerce-api/internal/domains/orders/domain"
	orderports "github.com/storelabs/commerce-api/internal/domains/orders/ports"
	productports "github.com/storelabs/commerce-api/internal/domains/products/ports"
)

const (
	// PersistOrderActivityName validates and persists an order without touching stock.
	PersistOrderActivityName = "orders.activities.PersistOrder"
	// DecrementStockActivityName subtracts a persisted order's quantities from stock.
	DecrementStockActivityName = "orders.activities.DecrementStock"
	// CancelOrderActivityName removes an order whose stock decrement failed.
	CancelOrderActivityName = "orders.activities.CancelOrder"
)

// PlacementCommand is the serializable order placement request.
type PlacementCommand struct {
	CustomerID string
	Items      []orderports.ItemRequest
}

// OrderIdentifier addresses a persisted order in follow-up activities.
type OrderIdentifier struct {
	ID string
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service  orderports.Service
	products productports.Repository
}

// NewActivities wires the order collaborators into the Temporal activities bundle.
func NewActivities(service orderports.Service, products productports.Repository) *Activities {
	return &Activities{service: service, products: products}
}

// PersistOrder validates the placement request and stores the order.
func (a *Activities) PersistOrder(ctx context.Context, cmd PlacementCommand) (*orderdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order persist activity not initialized", "customerId", cmd.CustomerID)
		return nil, errors.New("order persist activity not initialized")
	}
	logger.Info("PersistOrder activity started", "customerId", cmd.CustomerID)
	order, err := a.service.PersistOrder(ctx, cmd.CustomerID, cmd.Items)
	if err != nil {
		logger.Error("PersistOrder activity failed", "customerId", cmd.CustomerID, "error", err)
		return nil, err
	}
	logger.Info("PersistOrder activity completed", "orderId", order.ID)
	return order, nil
}

// DecrementStock loads the persisted order and subtracts its quantities from
// stock. A heartbeat marker keeps a retried attempt from decrementing twice
// when the previous attempt succeeded but failed to report.
func (a *Activities) DecrementStock(ctx context.Context, input OrderIdentifier) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil || a.products == nil {
		logger.Error("stock decrement activity not initialized", "orderId", input.ID)
		return errors.New("stock decrement activity not initialized")
	}

	var hb decrementHeartbeat
	if activity.HasHeartbeatDetails(ctx) {
		_ = activity.GetHeartbeatDetails(ctx, &hb)
	}
	if hb.Completed {
		logger.Info("DecrementStock already completed in prior attempt; skipping", "orderId", input.ID)
		return nil
	}

	logger.Info("DecrementStock activity started", "orderId", input.ID)
	order, err := a.service.GetOrderByID(ctx, input.ID)
	if err != nil {
		logger.Error("DecrementStock failed to load order", "orderId", input.ID, "error", err)
		return err
	}
	demands := make([]productports.StockDemand, 0, len(order.Items))
	for _, item := range order.Items {
		demands = append(demands, productports.StockDemand{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	if err := a.products.DecrementStock(ctx, demands); err != nil {
		logger.Error("DecrementStock activity failed", "orderId", input.ID, "error", err)
		var stockErr *productports.InsufficientStockError
		if errors.As(err, &stockErr) {
			// Retrying cannot create stock; fail fast so the workflow compensates.
			return temporal.NewNonRetryableApplicationError(stockErr.Error(), "InsufficientStock", err)
		}
		return err
	}
	activity.RecordHeartbeat(ctx, decrementHeartbeat{Completed: true})
	logger.Info("DecrementStock activity completed", "orderId", input.ID)
	return nil
}

// CancelOrder removes the order as compensation for a failed stock decrement.
func (a *Activities) CancelOrder(ctx context.Context, input OrderIdentifier) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order cancel activity not initialized", "orderId", input.ID)
		return errors.New("order cancel activity not initialized")
	}
	logger.Info("CancelOrder activity started", "orderId", input.ID)
	if err := a.service.CancelOrder(ctx, input.ID); err != nil {
		if errors.Is(err, orderports.ErrNotFound) {
			logger.Info("CancelOrder found nothing to remove", "orderId", input.ID)
			return nil
		}
		logger.Error("CancelOrder activity failed", "orderId", input.ID, "error", err)
		return err
	}
	logger.Info("CancelOrder activity completed", "orderId", input.ID)
	return nil
}

type decrementHeartbeat struct {
	Completed bool
}
