package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"go.uber.org/zap"
)

type OrderService interface {
	ListOrders(ctx context.Context, actor domain.Actor) ([]domain.Order, error)
	ListAllOrders(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error
}

type orderHandler struct {
	orders OrderService
	logger *zap.Logger
}

// GET /orders
func (h *orderHandler) listOrders(c *gin.Context) {
	actor, _ := actorFrom(c)

	orders, err := h.orders.ListOrders(c.Request.Context(), actor)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": toOrderResponses(orders)})
}

// GET /admin/view_orders
func (h *orderHandler) listAllOrders(c *gin.Context) {
	orders, err := h.orders.ListAllOrders(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": toOrderResponses(orders)})
}

// GET /admin/update_order/:id shows the order, POST updates its status.
func (h *orderHandler) updateOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		renderNotFound(c)
		return
	}

	if c.Request.Method == http.MethodGet {
		order, err := h.orders.Get(c.Request.Context(), orderID)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": toOrderResponses([]domain.Order{order})[0]})
		return
	}

	status := c.PostForm("order_status")
	if err := h.orders.UpdateStatus(c.Request.Context(), orderID, status); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Redirect(http.StatusFound, "/admin/view_orders")
}
