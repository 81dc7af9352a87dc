package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/storefront/internal/domain"
	"go.uber.org/zap"
)

type CheckoutService interface {
	InitiateCheckout(ctx context.Context, actor domain.Actor) (string, error)
	CompleteCheckout(ctx context.Context, actor domain.Actor, sessionID string) error
}

type checkoutHandler struct {
	checkout CheckoutService
	logger   *zap.Logger
}

// POST /create-checkout-session
//
// Whatever goes wrong here, the customer lands back on the cart page; the
// underlying cause only reaches the log.
func (h *checkoutHandler) createCheckoutSession(c *gin.Context) {
	actor, _ := actorFrom(c)

	redirectURL, err := h.checkout.InitiateCheckout(c.Request.Context(), actor)
	if err != nil {
		h.logger.Warn("checkout initiation failed", zap.Error(err))
		c.Redirect(http.StatusFound, "/cart")
		return
	}

	c.Redirect(http.StatusSeeOther, redirectURL)
}

// GET /payment-success?session_id=
func (h *checkoutHandler) paymentSuccess(c *gin.Context) {
	actor, _ := actorFrom(c)

	if err := h.checkout.CompleteCheckout(c.Request.Context(), actor, c.Query("session_id")); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notice": "Payment successful! Your order has been placed."})
}
