package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"gorm.io/gorm"

	appapi "github.com/storelabs/commerce-api/internal/app/api"
	customerports "github.com/storelabs/commerce-api/internal/domains/customers/ports"
	orderapp "github.com/storelabs/commerce-api/internal/domains/orders/application"
	orderports "github.com/storelabs/commerce-api/internal/domains/orders/ports"
	productports "github.com/storelabs/commerce-api/internal/domains/products/ports"
	orderworkflows "github.com/storelabs/commerce-api/internal/durable/temporal/workflows/orders"
	"github.com/storelabs/commerce-api/internal/platform/migrations"
	platformobservability "github.com/storelabs/commerce-api/internal/platform/observability"
	platformpostgres "github.com/storelabs/commerce-api/internal/platform/postgres"
	orderactivities "github.com/storelabs/commerce-api/internal/platform/temporal/activities/orders"

	customermemory "github.com/storelabs/commerce-api/internal/domains/customers/adapters/memory"
	customerpostgres "github.com/storelabs/commerce-api/internal/domains/customers/adapters/persistence/postgres"
	ordermemory "github.com/storelabs/commerce-api/internal/domains/orders/adapters/memory"
	orderpostgres "github.com/storelabs/commerce-api/internal/domains/orders/adapters/persistence/postgres"
	productmemory "github.com/storelabs/commerce-api/internal/domains/products/adapters/memory"
	productpostgres "github.com/storelabs/commerce-api/internal/domains/products/adapters/persistence/postgres"
)

func main() {
	ctx := context.Background()
	const serviceName = "commerce-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg := appapi.LoadConfig()
	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Error("worker failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	customerRepo, productRepo, orderRepo := buildRepositories(db, logger)

	orderService := orderapp.NewService(orderRepo, customerRepo, productRepo)
	activities := orderactivities.NewActivities(orderService, productRepo)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.PersistOrder, activity.RegisterOptions{Name: orderactivities.PersistOrderActivityName})
	w.RegisterActivityWithOptions(activities.DecrementStock, activity.RegisterOptions{Name: orderactivities.DecrementStockActivityName})
	w.RegisterActivityWithOptions(activities.CancelOrder, activity.RegisterOptions{Name: orderactivities.CancelOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildRepositories(db *gorm.DB, logger *slog.Logger) (customerports.Repository, productports.Repository, orderports.Repository) {
	if db == nil {
		logger.Warn("worker using in-memory repositories")
		return customermemory.NewRepository(), productmemory.NewRepository(), ordermemory.NewRepository()
	}
	logger.Info("worker repositories configured with postgres")
	return customerpostgres.NewRepository(db), productpostgres.NewRepository(db), orderpostgres.NewRepository(db)
}
