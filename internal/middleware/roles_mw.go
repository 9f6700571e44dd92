package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware rejects requests whose token is valid but not admin-flagged.
// Must run after JWTAuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminVal, exists := c.Get(AuthAdminKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin flag not found in token, ensure JWT middleware runs first"})
			return
		}

		isAdmin, ok := adminVal.(bool)
		if !ok || !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied!"})
			return
		}

		c.Next()
	}
}
