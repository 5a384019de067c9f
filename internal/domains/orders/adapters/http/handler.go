// Package http exposes the orders bounded context over gin handlers.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storelabs/commerce-api/internal/domains/orders/application"
	"github.com/storelabs/commerce-api/internal/domains/orders/domain"
	"github.com/storelabs/commerce-api/internal/domains/orders/ports"
	sharederrors "github.com/storelabs/commerce-api/internal/shared/errors"
)

// Handler adapts the order placement flow to HTTP. Placement goes through the
// workflow orchestrator so the durable path is used when configured; reads go
// straight to the service.
type Handler struct {
	workflows ports.WorkflowOrchestrator
	service   ports.Service
	respond   *sharederrors.ChainedResponder
}

func NewHandler(workflows ports.WorkflowOrchestrator, service ports.Service) *Handler {
	return &Handler{
		workflows: workflows,
		service:   service,
		respond:   sharederrors.NewChainedResponder("", mapServiceError),
	}
}

// Register mounts the order routes on the router.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/orders", h.create)
	r.GET("/orders/:id", h.getByID)
}

type orderItemRequest struct {
	ID       string `json:"id" binding:"required"`
	Quantity int32  `json:"quantity" binding:"required"`
}

type orderRequest struct {
	CustomerID string             `json:"customer_id" binding:"required"`
	Products   []orderItemRequest `json:"products" binding:"required"`
}

type orderItemResponse struct {
	ProductID string  `json:"product_id"`
	Price     float64 `json:"price"`
	Quantity  int32   `json:"quantity"`
}

type orderCustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type orderResponse struct {
	ID        string                `json:"id"`
	Customer  orderCustomerResponse `json:"customer"`
	Items     []orderItemResponse   `json:"order_products"`
	Total     float64               `json:"total"`
	CreatedAt time.Time             `json:"created_at"`
}

func (h *Handler) create(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond.BadRequest(c, err.Error())
		return
	}
	items := make([]ports.ItemRequest, 0, len(req.Products))
	for _, product := range req.Products {
		items = append(items, ports.ItemRequest{ProductID: product.ID, Quantity: product.Quantity})
	}
	order, err := h.workflows.PlaceOrder(c.Request.Context(), req.CustomerID, items)
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(order))
}

func (h *Handler) getByID(c *gin.Context) {
	id := c.Param("id")
	order, err := h.service.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			h.respond.NotFound(c, "order", id)
			return
		}
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(order))
}

func toResponse(order *domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return orderResponse{
		ID: order.ID,
		Customer: orderCustomerResponse{
			ID:    order.Customer.ID,
			Name:  order.Customer.Name,
			Email: order.Customer.Email,
		},
		Items:     items,
		Total:     order.Total(),
		CreatedAt: order.CreatedAt,
	}
}

func mapServiceError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrCustomerNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "customer"), true
	case errors.Is(err, application.ErrNoProductsFound),
		errors.Is(err, application.ErrProductsNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "product"), true
	case errors.Is(err, application.ErrInsufficientStock):
		return sharederrors.ErrUnprocessable.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidQuantity),
		errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}
