package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/storefront/internal/domain"
	"go.uber.org/zap"
)

// renderNotFound is shared by the NoRoute handler and the admin gate, so a
// denied admin request is indistinguishable from an unknown route.
func renderNotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
}

// writeError maps domain errors to HTTP responses. The raw error is only
// ever logged, never shown to the customer.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		renderNotFound(c)
	case errors.Is(err, domain.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrEmailTaken):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": userMessage(err)})
	case errors.Is(err, domain.ErrInvalidState), errors.Is(err, domain.ErrConflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": userMessage(err)})
	case errors.Is(err, domain.ErrProviderFailure):
		logger.Warn("payment provider failure", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "payment failed, please contact support"})
	default:
		logger.Error("request failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}

// userMessage keeps validation feedback useful while hiding wrap chains.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return "email already exists, please use a different email"
	case errors.Is(err, domain.ErrInvalidState):
		return "the request cannot be applied to the current cart"
	case errors.Is(err, domain.ErrConflict):
		return "the item is still referenced and cannot be removed"
	default:
		return err.Error()
	}
}
