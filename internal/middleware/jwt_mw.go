package middleware

import (
	"errors"
	"net/http"

	"course_catalog/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthUserKey  = "authUser"
	AuthAdminKey = "authAdmin"
)

// JWTAuthMiddleware creates a middleware for JWT authentication.
// The Authorization header carries the raw signed token (no "Bearer " prefix).
// Every failure is a 403, matching the API contract.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Token is missing!"})
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, utils.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Token has expired!"})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid token!"})
			return
		}

		// Set user information in context
		c.Set(AuthUserKey, claims.UserID)
		c.Set(AuthAdminKey, claims.IsAdmin)

		c.Next()
	}
}
