// Package http exposes the customers bounded context over gin handlers.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storelabs/commerce-api/internal/domains/customers/application"
	"github.com/storelabs/commerce-api/internal/domains/customers/ports"
	sharederrors "github.com/storelabs/commerce-api/internal/shared/errors"
)

// Handler adapts the customer service to HTTP.
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

// Register mounts the customer routes on the router.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/customers", h.create)
	r.GET("/customers/:id", h.getByID)
}

type customerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

type customerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) create(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond.BadRequest(c, err.Error())
		return
	}
	customer, err := h.service.Create(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customerResponse{ID: customer.ID, Name: customer.Name, Email: customer.Email})
}

func (h *Handler) getByID(c *gin.Context) {
	id := c.Param("id")
	customer, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			h.respond.NotFound(c, "customer", id)
			return
		}
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customerResponse{ID: customer.ID, Name: customer.Name, Email: customer.Email})
}

func mapServiceError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrEmailTaken):
		return sharederrors.NewConflictProblem("customer", err.Error()), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.NewNotFoundProblem("customer", "unknown"), true
	}
	return sharederrors.ProblemDetail{}, false
}
