//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/storelabs/commerce-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type customerPayload struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type orderProductPayload struct {
	ID       string `json:"id"`
	Quantity int32  `json:"quantity"`
}

type orderRequestPayload struct {
	CustomerID string                `json:"customer_id"`
	Products   []orderProductPayload `json:"products"`
}

type orderPayload struct {
	ID       string          `json:"id"`
	Customer customerPayload `json:"customer"`
	Items    []struct {
		ProductID string  `json:"product_id"`
		Price     float64 `json:"price"`
		Quantity  int32   `json:"quantity"`
	} `json:"order_products"`
	Total     float64 `json:"total"`
	CreatedAt string  `json:"created_at"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestStorefrontContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	uuidTerm := matchers.Term(pacttest.ExistingCustomerID, `[0-9a-fA-F]{8}(-[0-9a-fA-F]{4}){3}-[0-9a-fA-F]{12}`)
	customerBodyMatcher := matchers.Map{
		"id":    uuidTerm,
		"name":  matchers.Like(pacttest.CustomerName),
		"email": matchers.Like(pacttest.CustomerEmail),
	}
	orderBodyMatcher := matchers.Map{
		"id":       uuidTerm,
		"customer": customerBodyMatcher,
		"order_products": matchers.EachLike(matchers.Map{
			"product_id": matchers.Like(pacttest.KeyboardProductID),
			"price":      matchers.Like(49.9),
			"quantity":   matchers.Like(2),
		}, 1),
		"total":      matchers.Like(99.8),
		"created_at": matchers.Like("2025-06-12T10:00:00Z"),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	problemContentType := matchers.S("application/problem+json")

	pact.AddInteraction().
		Given(pacttest.StateCustomersBaseline).
		UponReceiving("a request to register a customer").
		WithRequest("POST", "/customers", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"name":  matchers.Like(pacttest.CustomerName),
				"email": matchers.Like(pacttest.CustomerEmail),
			})
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(customerBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateCustomerEmailTaken).
		UponReceiving("a request to register a customer with a taken email").
		WithRequest("POST", "/customers", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"name":  matchers.Like("Someone Else"),
				"email": matchers.Like(pacttest.CustomerEmail),
			})
		}).
		WillRespondWith(http.StatusConflict, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/conflict"),
				"title":  matchers.S("Conflict"),
				"status": matchers.Like(http.StatusConflict),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderReady).
		UponReceiving("a request to place an order").
		WithRequest("POST", "/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"customer_id": matchers.Like(pacttest.ExistingCustomerID),
				"products": matchers.EachLike(matchers.Map{
					"id":       matchers.Like(pacttest.KeyboardProductID),
					"quantity": matchers.Like(2),
				}, 1),
			})
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(orderBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateCustomerMissing).
		UponReceiving("a request to place an order for a missing customer").
		WithRequest("POST", "/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"customer_id": matchers.Like(pacttest.MissingCustomerID),
				"products": matchers.EachLike(matchers.Map{
					"id":       matchers.Like(pacttest.KeyboardProductID),
					"quantity": matchers.Like(2),
				}, 1),
			})
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newStorefrontClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		created, err := client.CreateCustomer(ctx, customerPayload{Name: pacttest.CustomerName, Email: pacttest.CustomerEmail})
		if err != nil {
			return fmt.Errorf("create customer: %w", err)
		}
		if created == nil || created.ID == "" {
			return fmt.Errorf("expected created customer ID to be set")
		}

		if _, err := client.CreateCustomer(ctx, customerPayload{Name: "Someone Else", Email: pacttest.CustomerEmail}); err == nil {
			return fmt.Errorf("expected 409 for taken email")
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusConflict {
			return fmt.Errorf("expected 409, got %d", apiErr.Status())
		}

		order, err := client.PlaceOrder(ctx, orderRequestPayload{
			CustomerID: pacttest.ExistingCustomerID,
			Products:   []orderProductPayload{{ID: pacttest.KeyboardProductID, Quantity: 2}},
		})
		if err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if order == nil || order.ID == "" || len(order.Items) == 0 {
			return fmt.Errorf("expected placed order with items, got %+v", order)
		}

		if _, err := client.PlaceOrder(ctx, orderRequestPayload{
			CustomerID: pacttest.MissingCustomerID,
			Products:   []orderProductPayload{{ID: pacttest.KeyboardProductID, Quantity: 2}},
		}); err == nil {
			return fmt.Errorf("expected 404 for missing customer")
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		return nil
	})
	require.NoError(t, err)
}

type storefrontClient struct {
	baseURL    string
	httpClient *http.Client
}

func newStorefrontClient(config pactconsumer.MockServerConfig) *storefrontClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &storefrontClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *storefrontClient) CreateCustomer(ctx context.Context, customer customerPayload) (*customerPayload, error) {
	var payload customerPayload
	if err := c.postJSON(ctx, "/customers", customer, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *storefrontClient) PlaceOrder(ctx context.Context, order orderRequestPayload) (*orderPayload, error) {
	var payload orderPayload
	if err := c.postJSON(ctx, "/orders", order, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *storefrontClient) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
