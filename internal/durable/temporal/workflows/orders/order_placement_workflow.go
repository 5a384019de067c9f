package orders

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/storelabs/commerce-api/internal/domains/orders/domain"
	orderactivities "github.com/storelabs/commerce-api/internal/platform/temporal/activities/orders"
)

const (
	// OrderPlacementWorkflowName is the public identifier for registering the workflow.
	OrderPlacementWorkflowName = "orders.workflows.Placement"
	// OrderPlacementTaskQueue is the queue consumed by the worker processing order workflows.
	OrderPlacementTaskQueue = "ORDER_PLACEMENT"
)

// OrderPlacementWorkflowInput captures the payload required to place an order.
type OrderPlacementWorkflowInput struct {
	Command orderactivities.PlacementCommand
	TraceID string
}

// OrderPlacementWorkflow persists the order, decrements stock, and removes the
// order again if the decrement cannot complete.
func OrderPlacementWorkflow(ctx workflow.Context, input OrderPlacementWorkflowInput) (*orderdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	customerID := input.Command.CustomerID
	logger.Info("OrderPlacementWorkflow started", withTraceID(input.TraceID, "customerId", customerID)...)

	persistOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    3,
		},
	}
	decrementOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		HeartbeatTimeout:    15 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    5,
		},
	}
	cancelOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    5,
		},
	}

	var order orderdomain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, persistOptions), orderactivities.PersistOrderActivityName, input.Command).Get(ctx, &order)
	if err != nil {
		logger.Error("OrderPlacementWorkflow failed to persist order", withTraceID(input.TraceID, "customerId", customerID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderPlacementWorkflow persisted order", withTraceID(input.TraceID, "orderId", order.ID)...)

	identifier := orderactivities.OrderIdentifier{ID: order.ID}
	if err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, decrementOptions), orderactivities.DecrementStockActivityName, identifier).Get(ctx, nil); err != nil {
		logger.Error("OrderPlacementWorkflow stock decrement failed, compensating", withTraceID(input.TraceID, "orderId", order.ID, "error", err)...)
		// The compensation must run even when the workflow context is cancelled.
		compensateCtx, cancel := workflow.NewDisconnectedContext(ctx)
		defer cancel()
		if cerr := workflow.ExecuteActivity(workflow.WithActivityOptions(compensateCtx, cancelOptions), orderactivities.CancelOrderActivityName, identifier).Get(compensateCtx, nil); cerr != nil {
			logger.Error("OrderPlacementWorkflow compensation failed", withTraceID(input.TraceID, "orderId", order.ID, "error", cerr)...)
		}
		return nil, err
	}

	logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	return &order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
