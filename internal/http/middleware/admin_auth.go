package middleware

import (
	"net/http"
	"strings"

	"astrorekha_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminAuth guards admin endpoints. The session token is accepted either as a
// bearer header or a ?token= query parameter (the dashboard uses the latter).
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			auth := c.GetHeader("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - No token provided"})
			return
		}

		adminID, err := service.ParseAdminToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - Invalid session"})
			return
		}

		c.Set("admin_id", adminID)
		c.Next()
	}
}
