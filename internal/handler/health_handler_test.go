package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLivenessProbe(t *testing.T) {
	h := NewHealthHandler(func() bool { return true })
	router := gin.New()
	router.GET("/healthz", h.LivenessProbe)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "UP", body["status"])
}

func TestReadinessProbe(t *testing.T) {
	tests := []struct {
		name       string
		ready      func() bool
		wantStatus int
	}{
		{name: "upstream ready", ready: func() bool { return true }, wantStatus: http.StatusOK},
		{name: "upstream down", ready: func() bool { return false }, wantStatus: http.StatusServiceUnavailable},
		{name: "nil probe defaults to down", ready: nil, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.ready)
			router := gin.New()
			router.GET("/readyz", h.ReadinessProbe)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
