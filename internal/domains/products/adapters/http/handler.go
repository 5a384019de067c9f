// Package http exposes the product catalog over gin handlers.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storelabs/commerce-api/internal/domains/products/application"
	"github.com/storelabs/commerce-api/internal/domains/products/domain"
	"github.com/storelabs/commerce-api/internal/domains/products/ports"
	sharederrors "github.com/storelabs/commerce-api/internal/shared/errors"
)

// Handler adapts the product service to HTTP.
type Handler struct {
	service ports.Service
	respond *sharederrors.ChainedResponder
}

func NewHandler(service ports.Service) *Handler {
	return &Handler{
		service: service,
		respond: sharederrors.NewChainedResponder("", mapServiceError),
	}
}

// Register mounts the product routes on the router.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/products", h.create)
	r.GET("/products", h.list)
}

type productRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required"`
	Quantity int32   `json:"quantity"`
}

type productResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int32   `json:"quantity"`
}

func (h *Handler) create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond.BadRequest(c, err.Error())
		return
	}
	product, err := h.service.Create(c.Request.Context(), req.Name, req.Price, req.Quantity)
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(product))
}

func (h *Handler) list(c *gin.Context) {
	products, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	payload := make([]productResponse, 0, len(products))
	for _, product := range products {
		payload = append(payload, toResponse(product))
	}
	c.JSON(http.StatusOK, payload)
}

func toResponse(product *domain.Product) productResponse {
	return productResponse{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Quantity: product.Quantity,
	}
}

func mapServiceError(err error) (sharederrors.ProblemDetail, bool) {
	if errors.Is(err, application.ErrInvalidInput) {
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}
