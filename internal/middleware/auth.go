// Package middleware provides HTTP middleware for the API surface.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sk408/yt-fix/internal/models"
)

const (
	headerAPIKey = "X-API-Key"
	headerAuth   = "Authorization"
	bearerPrefix = "Bearer "
)

// APIKeyAuth validates requests against a configured set of API keys.
// With no keys configured, every request is rejected.
type APIKeyAuth struct {
	apiKeys []string
	logger  *zap.Logger
}

// NewAPIKeyAuth creates API key authentication middleware.
func NewAPIKeyAuth(apiKeys []string, logger *zap.Logger) *APIKeyAuth {
	if logger == nil {
		logger = zap.NewNop()
	}
	keys := make([]string, 0, len(apiKeys))
	for _, key := range apiKeys {
		if key != "" {
			keys = append(keys, key)
		}
	}
	return &APIKeyAuth{apiKeys: keys, logger: logger}
}

// Middleware validates the API key carried in the X-API-Key header or an
// Authorization: Bearer header, in that order.
func (a *APIKeyAuth) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.isValidAPIKey(extractAPIKey(c)) {
			a.logger.Warn("unauthorized request - invalid or missing API key",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("remote_addr", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Status:    http.StatusUnauthorized,
				Error:     "Unauthorized",
				Message:   "valid API key required",
				Timestamp: time.Now(),
				Path:      c.Request.URL.Path,
			})
			return
		}
		c.Next()
	}
}

func extractAPIKey(c *gin.Context) string {
	if apiKey := c.GetHeader(headerAPIKey); apiKey != "" {
		return apiKey
	}
	if auth := c.GetHeader(headerAuth); strings.HasPrefix(auth, bearerPrefix) {
		return strings.TrimPrefix(auth, bearerPrefix)
	}
	return ""
}

// isValidAPIKey compares in constant time against every configured key so
// timing never leaks which key prefix matched.
func (a *APIKeyAuth) isValidAPIKey(apiKey string) bool {
	if apiKey == "" {
		return false
	}
	valid := false
	for _, key := range a.apiKeys {
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(key)) == 1 {
			valid = true
		}
	}
	return valid
}
