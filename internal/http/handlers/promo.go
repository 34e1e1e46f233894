package handlers

import (
	"net/http"
	"strings"

	"astrorekha_backend/internal/http/middleware"
	"astrorekha_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type promoValidateRequest struct {
	Code string `json:"code"`
}

// PromoValidate checks a promo code and, on success, consumes one use and
// returns the grant. The outcomes feed the promo_validations_total counter.
func (h *Handler) PromoValidate(c *gin.Context) {
	var req promoValidateRequest
	if err := c.BindJSON(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		middleware.PromoValidations.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "Promo code is required"})
		return
	}

	grant, err := h.Promo.Validate(c.Request.Context(), strings.TrimSpace(req.Code))
	if err != nil {
		switch err {
		case service.ErrPromoNotFound:
			middleware.PromoValidations.WithLabelValues("not_found").Inc()
			c.JSON(http.StatusNotFound, gin.H{"valid": false, "error": err.Error()})
		case service.ErrPromoInactive:
			middleware.PromoValidations.WithLabelValues("inactive").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
		case service.ErrPromoExpired:
			middleware.PromoValidations.WithLabelValues("expired").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
		case service.ErrPromoLimitReached:
			middleware.PromoValidations.WithLabelValues("limit_reached").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
		default:
			middleware.PromoValidations.WithLabelValues("error").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"valid": false, "error": "Failed to validate promo code"})
		}
		return
	}

	middleware.PromoValidations.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"valid":     true,
		"code":      grant.Code,
		"discount":  grant.Discount,
		"type":      grant.Type,
		"coins":     grant.Coins,
		"plan":      grant.Plan,
		"unlockAll": grant.UnlockAll,
	})
}
