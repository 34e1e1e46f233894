package handlers

import (
	"errors"
	"net/http"

	"astrorekha_backend/internal/logger"
	"astrorekha_backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetUser returns a user's entitlement state for the funnel to render from.
func (h *Handler) GetUser(c *gin.Context) {
	id := c.Param("id")

	user, err := h.UserRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error("user lookup failed", "user_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUserByEmail restores entitlements for a returning customer who only has
// their purchase email.
func (h *Handler) GetUserByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	user, err := h.UserRepo.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error("user lookup failed", "email", email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}
	c.JSON(http.StatusOK, user)
}
