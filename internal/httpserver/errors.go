package httpserver

import (
	"errors"
	"net/http"

	"agrimart/internal/domain"
	"agrimart/internal/service/cart"
	"agrimart/internal/service/order"
	"github.com/gin-gonic/gin"
)

// writeError maps service errors onto HTTP responses.
func writeError(c *gin.Context, err error) {
	var (
		verr *order.ValidationError
		cerr *order.CreationError
		serr *domain.StoreError
	)
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty_cart", "message": "Your cart is empty"})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_checkout", "message": verr.Error(), "fields": verr.Fields})
	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_quantity", "message": err.Error()})
	case errors.Is(err, cart.ErrOutOfStock):
		c.JSON(http.StatusConflict, gin.H{"error": "out_of_stock", "message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "not found"})
	case errors.As(err, &cerr), errors.Is(err, order.ErrCartNotCleared):
		c.JSON(http.StatusBadGateway, gin.H{"error": "order_failed", "message": "Your order could not be placed, please try again"})
	case errors.As(err, &serr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store_unavailable", "message": "store temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": msg})
}
