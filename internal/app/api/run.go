package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	customerhttp "github.com/storelabs/commerce-api/internal/domains/customers/adapters/http"
	customermemory "github.com/storelabs/commerce-api/internal/domains/customers/adapters/memory"
	customerobs "github.com/storelabs/commerce-api/internal/domains/customers/adapters/observability"
	customerpostgres "github.com/storelabs/commerce-api/internal/domains/customers/adapters/persistence/postgres"
	customerapp "github.com/storelabs/commerce-api/internal/domains/customers/application"
	customerports "github.com/storelabs/commerce-api/internal/domains/customers/ports"

	producthttp "github.com/storelabs/commerce-api/internal/domains/products/adapters/http"
	productmemory "github.com/storelabs/commerce-api/internal/domains/products/adapters/memory"
	productpostgres "github.com/storelabs/commerce-api/internal/domains/products/adapters/persistence/postgres"
	productapp "github.com/storelabs/commerce-api/internal/domains/products/application"
	productports "github.com/storelabs/commerce-api/internal/domains/products/ports"

	orderhttp "github.com/storelabs/commerce-api/internal/domains/orders/adapters/http"
	ordermemory "github.com/storelabs/commerce-api/internal/domains/orders/adapters/memory"
	orderobs "github.com/storelabs/commerce-api/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/storelabs/commerce-api/internal/domains/orders/adapters/persistence/postgres"
	orderworkflowadapters "github.com/storelabs/commerce-api/internal/domains/orders/adapters/workflows"
	orderapp "github.com/storelabs/commerce-api/internal/domains/orders/application"
	orderports "github.com/storelabs/commerce-api/internal/domains/orders/ports"

	"github.com/storelabs/commerce-api/internal/platform/migrations"
	platformobservability "github.com/storelabs/commerce-api/internal/platform/observability"
	platformpostgres "github.com/storelabs/commerce-api/internal/platform/postgres"
)

const serviceName = "commerce-api"

// Run boots the commerce HTTP API with observability, repositories, and
// workflows wired.
func Run(ctx context.Context) error {
	cfg := LoadConfig()

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	customerRepo, productRepo, orderRepo := buildRepositories(db, logger)

	customerService := customerobs.New(
		customerapp.NewService(customerRepo),
		customerobs.WithLogger(logger),
		customerobs.WithTracer(instruments.Tracer("internal.customers.application")),
		customerobs.WithMeter(instruments.Meter("internal.customers.application")),
	)
	productService := productapp.NewService(productRepo)
	orderService := orderobs.New(
		orderapp.NewService(orderRepo, customerRepo, productRepo),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderWorkflows orderports.WorkflowOrchestrator = orderworkflowadapters.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = orderworkflowadapters.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	router := NewRouter(
		customerhttp.NewHandler(customerService),
		producthttp.NewHandler(productService),
		orderhttp.NewHandler(orderWorkflows, orderService),
	)

	addr := ":" + cfg.Port
	logger.Info("commerce API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("commerce API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Registrar mounts a set of routes on the router.
type Registrar interface {
	Register(r gin.IRouter)
}

// NewRouter assembles the gin engine with middleware and all context handlers.
func NewRouter(handlers ...Registrar) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	for _, handler := range handlers {
		handler.Register(router)
	}
	return router
}

func buildRepositories(db *gorm.DB, logger *slog.Logger) (customerports.Repository, productports.Repository, orderports.Repository) {
	if db == nil {
		logger.Warn("using in-memory repositories; data will not survive restarts")
		return customermemory.NewRepository(), productmemory.NewRepository(), ordermemory.NewRepository()
	}
	logger.Info("repositories configured with postgres")
	return customerpostgres.NewRepository(db), productpostgres.NewRepository(db), orderpostgres.NewRepository(db)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
