package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"payment/internal/auth"
)

const userIDKey = "userID"

// ClaimExtractor resolves a caller identity from an Authorization header.
type ClaimExtractor interface {
	Extract(header string) (int64, error)
}

var _ ClaimExtractor = (*auth.Extractor)(nil)

// AuthMiddleware rejects requests without a usable bearer token and stores the
// caller's user id in the context.
func AuthMiddleware(extractor ClaimExtractor, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := extractor.Extract(c.GetHeader("Authorization"))
		if err != nil {
			logger.Warn("Authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by AuthMiddleware.
func UserID(c *gin.Context) (int64, bool) {
	value, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := value.(int64)
	return userID, ok
}
