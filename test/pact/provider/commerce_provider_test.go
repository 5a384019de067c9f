//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	pacttest "github.com/storelabs/commerce-api/test/pact"

	appapi "github.com/storelabs/commerce-api/internal/app/api"
	customermemory "github.com/storelabs/commerce-api/internal/domains/customers/adapters/memory"
	customerhttp "github.com/storelabs/commerce-api/internal/domains/customers/adapters/http"
	customerapp "github.com/storelabs/commerce-api/internal/domains/customers/application"
	customerdomain "github.com/storelabs/commerce-api/internal/domains/customers/domain"
	customerports "github.com/storelabs/commerce-api/internal/domains/customers/ports"
	orderhttp "github.com/storelabs/commerce-api/internal/domains/orders/adapters/http"
	ordermemory "github.com/storelabs/commerce-api/internal/domains/orders/adapters/memory"
	orderworkflowadapters "github.com/storelabs/commerce-api/internal/domains/orders/adapters/workflows"
	orderapp "github.com/storelabs/commerce-api/internal/domains/orders/application"
	orderdomain "github.com/storelabs/commerce-api/internal/domains/orders/domain"
	orderports "github.com/storelabs/commerce-api/internal/domains/orders/ports"
	producthttp "github.com/storelabs/commerce-api/internal/domains/products/adapters/http"
	productmemory "github.com/storelabs/commerce-api/internal/domains/products/adapters/memory"
	productapp "github.com/storelabs/commerce-api/internal/domains/products/application"
	productdomain "github.com/storelabs/commerce-api/internal/domains/products/domain"
	productports "github.com/storelabs/commerce-api/internal/domains/products/ports"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestCommerceProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCustomersBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			return nil, nil
		},
		pacttest.StateCustomerEmailTaken: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedCustomer(t)
			}
			return nil, nil
		},
		pacttest.StateOrderReady: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedCustomer(t)
				app.seedProducts(t)
			}
			return nil, nil
		},
		pacttest.StateCustomerMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedProducts(t)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset()
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp serves the API over swappable in-memory repositories so
// each provider state starts from a clean slate.
type contractProviderApp struct {
	mu        sync.RWMutex
	customers *customermemory.Repository
	products  *productmemory.Repository
	orders    *ordermemory.Repository
	server    *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	app := &contractProviderApp{
		customers: customermemory.NewRepository(),
		products:  productmemory.NewRepository(),
		orders:    ordermemory.NewRepository(),
	}

	customerRepo := &swappableCustomerRepo{app: app}
	productRepo := &swappableProductRepo{app: app}
	orderRepo := &swappableOrderRepo{app: app}

	customerService := customerapp.NewService(customerRepo)
	productService := productapp.NewService(productRepo)
	orderService := orderapp.NewService(orderRepo, customerRepo, productRepo)
	workflows := orderworkflowadapters.NewInlineOrderWorkflows(orderService)

	router := appapi.NewRouter(
		customerhttp.NewHandler(customerService),
		producthttp.NewHandler(productService),
		orderhttp.NewHandler(workflows, orderService),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	app.server = server
	return app
}

func (a *contractProviderApp) reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.customers = customermemory.NewRepository()
	a.products = productmemory.NewRepository()
	a.orders = ordermemory.NewRepository()
}

func (a *contractProviderApp) seedCustomer(t testing.TB) {
	t.Helper()
	customer, err := customerdomain.NewCustomer(pacttest.CustomerName, pacttest.CustomerEmail)
	require.NoError(t, err)
	customer.ID = pacttest.ExistingCustomerID
	a.mu.RLock()
	repo := a.customers
	a.mu.RUnlock()
	_, err = repo.Create(context.Background(), customer)
	require.NoError(t, err)
}

func (a *contractProviderApp) seedProducts(t testing.TB) {
	t.Helper()
	a.mu.RLock()
	repo := a.products
	a.mu.RUnlock()
	keyboard, err := productdomain.NewProduct("Pact Keyboard", 49.9, 10)
	require.NoError(t, err)
	keyboard.ID = pacttest.KeyboardProductID
	_, err = repo.Create(context.Background(), keyboard)
	require.NoError(t, err)

	mouse, err := productdomain.NewProduct("Pact Mouse", 19.9, 10)
	require.NoError(t, err)
	mouse.ID = pacttest.MouseProductID
	_, err = repo.Create(context.Background(), mouse)
	require.NoError(t, err)
}

type swappableCustomerRepo struct {
	app *contractProviderApp
}

func (r *swappableCustomerRepo) inner() customerports.Repository {
	r.app.mu.RLock()
	defer r.app.mu.RUnlock()
	return r.app.customers
}

func (r *swappableCustomerRepo) Create(ctx context.Context, customer *customerdomain.Customer) (*customerdomain.Customer, error) {
	return r.inner().Create(ctx, customer)
}

func (r *swappableCustomerRepo) GetByEmail(ctx context.Context, email string) (*customerdomain.Customer, error) {
	return r.inner().GetByEmail(ctx, email)
}

func (r *swappableCustomerRepo) GetByID(ctx context.Context, id string) (*customerdomain.Customer, error) {
	return r.inner().GetByID(ctx, id)
}

type swappableProductRepo struct {
	app *contractProviderApp
}

func (r *swappableProductRepo) inner() productports.Repository {
	r.app.mu.RLock()
	defer r.app.mu.RUnlock()
	return r.app.products
}

func (r *swappableProductRepo) Create(ctx context.Context, product *productdomain.Product) (*productdomain.Product, error) {
	return r.inner().Create(ctx, product)
}

func (r *swappableProductRepo) GetByID(ctx context.Context, id string) (*productdomain.Product, error) {
	return r.inner().GetByID(ctx, id)
}

func (r *swappableProductRepo) FindAllByID(ctx context.Context, ids []string) ([]*productdomain.Product, error) {
	return r.inner().FindAllByID(ctx, ids)
}

func (r *swappableProductRepo) List(ctx context.Context) ([]*productdomain.Product, error) {
	return r.inner().List(ctx)
}

func (r *swappableProductRepo) DecrementStock(ctx context.Context, demands []productports.StockDemand) error {
	return r.inner().DecrementStock(ctx, demands)
}

type swappableOrderRepo struct {
	app *contractProviderApp
}

func (r *swappableOrderRepo) inner() orderports.Repository {
	r.app.mu.RLock()
	defer r.app.mu.RUnlock()
	return r.app.orders
}

func (r *swappableOrderRepo) Create(ctx context.Context, order *orderdomain.Order) (*orderdomain.Order, error) {
	return r.inner().Create(ctx, order)
}

func (r *swappableOrderRepo) GetByID(ctx context.Context, id string) (*orderdomain.Order, error) {
	return r.inner().GetByID(ctx, id)
}

func (r *swappableOrderRepo) Delete(ctx context.Context, id string) error {
	return r.inner().Delete(ctx, id)
}
