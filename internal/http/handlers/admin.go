package handlers

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"

	"astrorekha_backend/internal/domain"
	"astrorekha_backend/internal/logger"
	"astrorekha_backend/internal/repository"
	"astrorekha_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type adminLoginRequest struct {
	AdminID  string `json:"adminId"`
	Password string `json:"password"`
}

// AdminLogin verifies the admin password and issues a 24h session token.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.BindJSON(&req); err != nil || req.AdminID == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "adminId and password are required"})
		return
	}

	admin, err := h.AdminRepo.GetByID(c.Request.Context(), req.AdminID)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		logger.Error("admin lookup failed", "admin_id", req.AdminID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	sum := sha256.Sum256([]byte(req.Password))
	hashed := hex.EncodeToString(sum[:])
	if subtle.ConstantTimeCompare([]byte(hashed), []byte(admin.PasswordHash)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, expiry, err := service.GenerateAdminToken(admin.ID)
	if err != nil {
		logger.Error("admin token generation failed", "admin_id", admin.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     token,
		"expiresAt": expiry,
		"name":      admin.Name,
	})
}

// AdminRevenue returns the full dashboard rollup. Optional startDate/endDate
// query params (YYYY-MM-DD) add a custom-range section to the payload.
func (h *Handler) AdminRevenue(c *gin.Context) {
	var dr *service.DateRange
	if start := c.Query("startDate"); start != "" {
		dr = &service.DateRange{Start: start, End: c.Query("endDate")}
	}

	summary, err := h.Revenue.Report(c.Request.Context(), dr)
	if err != nil {
		logger.Error("revenue report failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build revenue report"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// AdminGetPricing returns the active pricing config for the admin editor.
func (h *Handler) AdminGetPricing(c *gin.Context) {
	c.JSON(http.StatusOK, h.Pricing.Resolve(c.Request.Context()))
}

// AdminSavePricing replaces the stored pricing config.
func (h *Handler) AdminSavePricing(c *gin.Context) {
	var cfg domain.PricingConfig
	if err := c.BindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if err := h.Pricing.Save(c.Request.Context(), &cfg); err != nil {
		logger.Error("pricing save failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save pricing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminListABTests returns every test with its per-variant stats attached.
func (h *Handler) AdminListABTests(c *gin.Context) {
	tests, err := h.ABTests.List(c.Request.Context())
	if err != nil {
		logger.Error("ab test listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tests"})
		return
	}

	type testWithStats struct {
		*domain.ABTest
		Stats map[string]service.VariantReport `json:"stats"`
	}

	result := make([]testWithStats, 0, len(tests))
	for _, t := range tests {
		stats, err := h.ABTests.Stats(c.Request.Context(), t.ID)
		if err != nil {
			logger.Error("ab test stats failed", "test_id", t.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
			return
		}
		result = append(result, testWithStats{ABTest: t, Stats: stats})
	}
	c.JSON(http.StatusOK, gin.H{"tests": result})
}
