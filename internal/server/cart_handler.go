package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"go.uber.org/zap"
)

type CartService interface {
	AddToCart(ctx context.Context, actor domain.Actor, productID uuid.UUID) error
	ViewCart(ctx context.Context, actor domain.Actor) (domain.CartView, error)
	IncrementLine(ctx context.Context, actor domain.Actor, lineID uuid.UUID) (domain.CartMutation, error)
	DecrementLine(ctx context.Context, actor domain.Actor, lineID uuid.UUID) (domain.CartMutation, error)
	RemoveLine(ctx context.Context, actor domain.Actor, lineID uuid.UUID) (domain.CartMutation, error)
}

type cartHandler struct {
	cart   CartService
	logger *zap.Logger
}

// GET /add-to-cart/:id
func (h *cartHandler) addToCart(c *gin.Context) {
	actor, _ := actorFrom(c)

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		renderNotFound(c)
		return
	}

	if err := h.cart.AddToCart(c.Request.Context(), actor, productID); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Redirect(http.StatusFound, "/home")
}

// GET /cart
func (h *cartHandler) viewCart(c *gin.Context) {
	actor, _ := actorFrom(c)

	view, err := h.cart.ViewCart(c.Request.Context(), actor)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toCartViewResponse(view))
}

// GET /pluscart?cart_id=
func (h *cartHandler) plusCart(c *gin.Context) {
	h.adjustCart(c, h.cart.IncrementLine)
}

// GET /minuscart?cart_id=
func (h *cartHandler) minusCart(c *gin.Context) {
	h.adjustCart(c, h.cart.DecrementLine)
}

func (h *cartHandler) adjustCart(c *gin.Context, adjust func(context.Context, domain.Actor, uuid.UUID) (domain.CartMutation, error)) {
	actor, _ := actorFrom(c)

	lineID, err := uuid.Parse(c.Query("cart_id"))
	if err != nil {
		renderNotFound(c)
		return
	}

	mutation, err := adjust(c.Request.Context(), actor, lineID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toCartMutationResponse(mutation))
}

// GET /removecart/:id
func (h *cartHandler) removeCart(c *gin.Context) {
	actor, _ := actorFrom(c)

	lineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		renderNotFound(c)
		return
	}

	mutation, err := h.cart.RemoveLine(c.Request.Context(), actor, lineID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toCartMutationResponse(mutation))
}
