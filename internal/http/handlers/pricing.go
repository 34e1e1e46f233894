package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPricing returns the active pricing config the funnel renders from.
// Falls back to defaults when no admin override is stored.
func (h *Handler) GetPricing(c *gin.Context) {
	c.JSON(http.StatusOK, h.Pricing.Resolve(c.Request.Context()))
}
