package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uni-match/internal/service"
)

// writeServiceError traduce errores de servicio a status HTTP en un solo
// lugar, para que los handlers no repitan el mapeo.
//
// InsufficientCredit es 402: el cliente debe redirigir al flujo de compra.
func writeServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInsufficientCredit):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient credit"})
	case errors.Is(err, service.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
	case errors.Is(err, service.ErrInvalidProfile):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile"})
	case errors.Is(err, service.ErrNoSuchProfile):
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limited"})
	case errors.Is(err, service.ErrUpstreamUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream unavailable"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})
	default:
		if logger != nil {
			logger.Error("internal error", zap.Error(err))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
