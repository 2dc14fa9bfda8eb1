package handlers

import (
	"net/http"

	"github.com/arnavshah/sandwich-orders-api/pkg/models"
	"github.com/gin-gonic/gin"
)

// GetMenu returns the current order form
func (h *Handler) GetMenu(c *gin.Context) {
	schema, err := h.Menu.Current(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schema)
}

// GetDateOptions lists the dates the caller may order on.
// ?focus=<order id> keeps that order's own date selectable.
func (h *Handler) GetDateOptions(c *gin.Context) {
	focus := c.Query("focus")
	opts, err := h.Orders.DateOptions(c.Request.Context(), accountID(c), focus, h.now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := models.DateOptionsResponse{
		Cutoff:  h.Orders.Calculator.Cutoff.String(),
		Focus:   focus,
		Options: make([]models.DateOption, len(opts)),
	}
	for i, o := range opts {
		resp.Options[i] = models.DateOption{Date: o.Date, Label: o.Label}
	}
	c.JSON(http.StatusOK, resp)
}

// ListOrders returns the caller's orders, oldest date first
func (h *Handler) ListOrders(c *gin.Context) {
	list, err := h.Orders.List(c.Request.Context(), accountID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

// GetOrder returns one of the caller's orders
func (h *Handler) GetOrder(c *gin.Context) {
	o, err := h.Orders.Get(c.Request.Context(), accountID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// CreateOrder places a new order
func (h *Handler) CreateOrder(c *gin.Context) {
	var input models.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.Orders.Place(c.Request.Context(), accountID(c), input, h.now())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.recordOrder(c)
	c.JSON(http.StatusCreated, o)
}

// UpdateOrder changes an existing order
func (h *Handler) UpdateOrder(c *gin.Context) {
	var input models.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.Orders.Change(c.Request.Context(), accountID(c), c.Param("id"), input, h.now())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// DeleteOrder cancels an order
func (h *Handler) DeleteOrder(c *gin.Context) {
	if err := h.Orders.Cancel(c.Request.Context(), accountID(c), c.Param("id"), h.now()); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}
