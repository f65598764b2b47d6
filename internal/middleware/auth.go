package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/promanager/promanager-api/internal/auth"
	"github.com/promanager/promanager-api/internal/constants"
	apierrors "github.com/promanager/promanager-api/internal/errors"
)

// RequireAuth resolves the caller from the Authorization header. The header
// may carry the token bare or with a Bearer prefix; either way an absent or
// unverifiable token ends the request with 401 before any handler runs.
func RequireAuth(tokenManager *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "User is not logged in")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		userID, err := tokenManager.Verify(token)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}

	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
