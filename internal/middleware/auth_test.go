package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authRouter(keys []string) *gin.Engine {
	router := gin.New()
	router.Use(NewAPIKeyAuth(keys, nil).Middleware())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		header     string
		value      string
		wantStatus int
	}{
		{
			name:       "valid X-API-Key",
			keys:       []string{"secret-1", "secret-2"},
			header:     "X-API-Key",
			value:      "secret-2",
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid bearer token",
			keys:       []string{"secret-1"},
			header:     "Authorization",
			value:      "Bearer secret-1",
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong key",
			keys:       []string{"secret-1"},
			header:     "X-API-Key",
			value:      "wrong",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing key",
			keys:       []string{"secret-1"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "bearer without prefix",
			keys:       []string{"secret-1"},
			header:     "Authorization",
			value:      "secret-1",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no keys configured rejects everything",
			keys:       nil,
			header:     "X-API-Key",
			value:      "anything",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty configured key never matches empty header",
			keys:       []string{""},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := authRouter(tt.keys)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAPIKeyAuthPrefersHeaderOverBearer(t *testing.T) {
	router := authRouter([]string{"secret-1"})

	// A wrong X-API-Key must lose even when the bearer token is valid:
	// the explicit header takes precedence.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-API-Key", "wrong")
	req.Header.Set("Authorization", "Bearer secret-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
