package middleware

import (
	"net/http"
	"strings"

	"payroll_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys populated by AuthMiddleware.
const (
	ContextUserID      = "userID"
	ContextEmail       = "email"
	ContextIsAnonymous = "isAnonymous"
)

// AuthMiddleware creates a Gin middleware for JWT authentication. The
// authenticated user id is the owner identifier every data-access call is
// scoped by.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		// SSE streams come from EventSource, which cannot set headers;
		// allow the token as a query parameter there.
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format. Use Bearer <token>"})
				c.Abort()
				return
			}
			tokenString = parts[1]
		} else if t := c.Query("access_token"); t != "" {
			tokenString = t
		} else {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(secret, tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextIsAnonymous, claims.IsAnonymous)

		c.Next()
	}
}
