package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	orderdomain "github.com/storelabs/commerce-api/internal/domains/orders/domain"
	orderports "github.com/storelabs/commerce-api/internal/domains/orders/ports"
)

const tracerName = "github.com/storelabs/commerce-api/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   orderports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner orderports.Service, opts ...Option) orderports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, customerID string, items []orderports.ItemRequest) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder",
		trace.WithAttributes(
			attribute.String("order.customer_id", customerID),
			attribute.Int("order.item_count", len(items)),
		))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.String("customer.id", customerID), slog.Int("items", len(items)))
	result, err := s.inner.PlaceOrder(ctx, customerID, items)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("customer.id", customerID))
	}
	span.SetAttributes(attribute.String("order.id", result.ID))
	s.metrics.recordPlaced(ctx, len(result.Items))
	s.logInfo(ctx, "order placed", slog.String("order.id", result.ID), slog.Float64("order.total", result.Total()))
	return result, nil
}

func (s *Service) PersistOrder(ctx context.Context, customerID string, items []orderports.ItemRequest) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PersistOrder",
		trace.WithAttributes(attribute.String("order.customer_id", customerID)))
	defer span.End()

	result, err := s.inner.PersistOrder(ctx, customerID, items)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to persist order", slog.String("customer.id", customerID))
	}
	span.SetAttributes(attribute.String("order.id", result.ID))
	return result, nil
}

func (s *Service) CancelOrder(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.CancelOrder",
		trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "cancelling order", slog.String("order.id", id))
	if err := s.inner.CancelOrder(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to cancel order", slog.String("order.id", id))
	}
	s.metrics.recordCancelled(ctx)
	return nil
}

func (s *Service) GetOrderByID(ctx context.Context, id string) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrderByID",
		trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrderByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	ordersPlaced    metric.Int64Counter
	orderItems      metric.Int64Counter
	ordersCancelled metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	orderItems, _ := m.Int64Counter("orders.service.items", metric.WithDescription("Number of order line items placed"))
	ordersCancelled, _ := m.Int64Counter("orders.service.cancelled", metric.WithDescription("Number of orders cancelled by compensation"))
	return serviceMetrics{ordersPlaced: ordersPlaced, orderItems: orderItems, ordersCancelled: ordersCancelled}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, items int) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
	if m.orderItems != nil {
		m.orderItems.Add(ctx, int64(items))
	}
}

func (m serviceMetrics) recordCancelled(ctx context.Context) {
	if m.ordersCancelled != nil {
		m.ordersCancelled.Add(ctx, 1)
	}
}

var _ orderports.Service = (*Service)(nil)
