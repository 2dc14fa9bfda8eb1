package handlers

import (
	"errors"
	"net/http"

	"github.com/arnavshah/sandwich-orders-api/pkg/models"
	"github.com/arnavshah/sandwich-orders-api/pkg/orders"
	"github.com/gin-gonic/gin"
)

// ValidateOrder checks an order the way CreateOrder would, without storing it.
// Rule failures answer 200 with valid=false; anything else goes through respondError.
func (h *Handler) ValidateOrder(c *gin.Context) {
	var input models.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	err := h.Orders.Check(c.Request.Context(), accountID(c), input, h.now())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"valid": true})
	case errors.Is(err, orders.ErrInvalidOrder), errors.Is(err, orders.ErrDateUnavailable):
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
	default:
		h.respondError(c, err)
	}
}
