package handlers

import (
	"encoding/csv"
	"net/http"
	"strings"

	"github.com/arnavshah/sandwich-orders-api/pkg/models"
	"github.com/gin-gonic/gin"
)

// PublishMenu stores a new version of the order form
func (h *Handler) PublishMenu(c *gin.Context) {
	var schema models.FormSchema
	if err := c.ShouldBindJSON(&schema); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	published, err := h.Menu.Publish(c.Request.Context(), schema, h.now())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, published)
}

// KitchenSheet lists all orders for ?date=YYYY-MM-DD
func (h *Handler) KitchenSheet(c *gin.Context) {
	sheet, err := h.Orders.KitchenSheet(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sheet)
}

// ExportKitchenCSV returns the kitchen sheet for ?date= as CSV
func (h *Handler) ExportKitchenCSV(c *gin.Context) {
	sheet, err := h.Orders.KitchenSheet(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	var out strings.Builder
	writer := csv.NewWriter(&out)
	writer.Write([]string{"order_id", "account_id", "student_name", "sandwich", "bread", "extras", "notes"})
	for _, o := range sheet.Orders {
		writer.Write([]string{
			o.ID,
			o.AccountID,
			o.StudentName,
			o.Sandwich,
			o.Bread,
			strings.Join(o.Extras, "|"),
			o.Notes,
		})
	}
	writer.Flush()

	c.Header("Content-Disposition", `attachment; filename="orders-`+sheet.Date+`.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(out.String()))
}
