package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	UserContextKey = "userID"
	UserHeader     = "X-User-ID"
)

// AuthMiddleware trusts the X-User-ID header set by the upstream gateway,
// which has already authenticated the caller.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user ID format"})
			return
		}

		c.Set(UserContextKey, userID)
		c.Next()
	}
}

// GetUserID returns 0 when AuthMiddleware did not run.
func GetUserID(c *gin.Context) int64 {
	if val, ok := c.Get(UserContextKey); ok {
		if id, ok := val.(int64); ok {
			return id
		}
	}
	return 0
}
