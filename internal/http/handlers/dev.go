package handlers

import (
	"crypto/subtle"
	"net/http"

	"astrorekha_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

type activateTesterRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// ActivateTester unlocks everything for a test account. Gated by a shared
// password; disabled entirely when no password is configured.
func (h *Handler) ActivateTester(c *gin.Context) {
	if h.Cfg.DevTesterPassword == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var req activateTesterRequest
	if err := c.BindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and password are required"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.Cfg.DevTesterPassword)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	if err := h.UserRepo.ActivateTester(c.Request.Context(), req.UserID); err != nil {
		logger.Error("tester activation failed", "user_id", req.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Activation failed"})
		return
	}

	logger.Info("dev tester activated", "user_id", req.UserID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
