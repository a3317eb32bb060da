// Package handler provides HTTP request handlers for the ranking API.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sk408/yt-fix/internal/metrics"
	"github.com/sk408/yt-fix/internal/models"
	"github.com/sk408/yt-fix/internal/ranking"
	"github.com/sk408/yt-fix/internal/service"
)

// VideoFetcher is the fetch surface the handler consumes.
type VideoFetcher interface {
	Fetch(ctx context.Context, req models.FetchRequest) ([]models.VideoRecord, error)
}

// RankHandler serves the fetch-and-rank entry point.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type RankHandler struct {
	fetcher        VideoFetcher
	engine         *ranking.Engine
	defaultWeights ranking.Weights
	logger         *zap.Logger
	now            func() time.Time
}

// NewRankHandler creates a new RankHandler instance.
func NewRankHandler(fetcher VideoFetcher, engine *ranking.Engine, defaults ranking.Weights, logger *zap.Logger) *RankHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RankHandler{
		fetcher:        fetcher,
		engine:         engine,
		defaultWeights: defaults,
		logger:         logger,
		now:            time.Now,
	}
}

// RankRequestDTO is the request body of POST /api/v1/rank.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type RankRequestDTO struct {
	Target   string `json:"target" binding:"required"`
	Strategy string `json:"strategy"`

	// Weights overrides the configured defaults when present.
	Weights *ranking.Weights `json:"weights,omitempty"`

	// AcceptPartial ranks whatever was recovered when the fetch fails
	// mid-pagination, instead of failing the request.
	AcceptPartial bool `json:"accept_partial"`

	// Limit truncates the ranked list. 0 means no limit.
	Limit int `json:"limit"`
}

// RankResponseDTO is the response body of POST /api/v1/rank.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type RankResponseDTO struct {
	Count       int                  `json:"count"`
	Partial     bool                 `json:"partial"`
	Videos      []models.VideoRecord `json:"videos"`
	Diagnostics []ranking.Diagnostic `json:"diagnostics,omitempty"`
}

// HandleRank fetches the target's complete video set and returns it ranked.
func (h *RankHandler) HandleRank(c *gin.Context) {
	var req RankRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RankRequestsTotal.WithLabelValues("bad_request").Inc()
		h.writeError(c, http.StatusBadRequest, "Bad Request", "invalid request payload: "+err.Error())
		return
	}

	strategy := models.Strategy(req.Strategy)
	if req.Strategy == "" {
		strategy = models.StrategyUploadsPlaylist
	}

	fetchReq := models.FetchRequest{Target: req.Target, Strategy: strategy}

	videos, err := h.fetcher.Fetch(c.Request.Context(), fetchReq)
	partial := false
	if err != nil {
		var fetchErr *service.FetchError
		if errors.As(err, &fetchErr) && req.AcceptPartial {
			h.logger.Warn("serving partial fetch result",
				zap.String("target", req.Target),
				zap.Int("recovered", len(fetchErr.Partial)),
				zap.Error(err),
			)
			videos = fetchErr.Partial
			partial = true
		} else {
			h.handleError(c, err)
			return
		}
	}

	weights := h.defaultWeights
	if req.Weights != nil {
		weights = *req.Weights
	}

	ranked, diagnostics := h.engine.Rank(videos, h.now(), weights)
	if req.Limit > 0 && len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}

	metrics.RankRequestsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, RankResponseDTO{
		Count:       len(ranked),
		Partial:     partial,
		Videos:      ranked,
		Diagnostics: diagnostics,
	})
}

func (h *RankHandler) handleError(c *gin.Context, err error) {
	var invalidErr *service.InvalidIdentifierError
	var quotaErr *service.UpstreamQuotaError
	var fetchErr *service.FetchError

	switch {
	case errors.As(err, &invalidErr):
		metrics.RankRequestsTotal.WithLabelValues("invalid_identifier").Inc()
		h.logger.Warn("invalid identifier", zap.Error(err), zap.String("path", c.Request.URL.Path))
		h.writeError(c, http.StatusBadRequest, "Bad Request", invalidErr.Error())
	case errors.As(err, &quotaErr):
		metrics.RankRequestsTotal.WithLabelValues("quota").Inc()
		h.logger.Error("upstream quota failure", zap.Error(err), zap.String("path", c.Request.URL.Path))
		h.writeError(c, http.StatusTooManyRequests, "Upstream Quota Exceeded",
			"the upstream API rejected the request for quota or authorization reasons; "+
				"check the configured API key and daily quota")
	case errors.As(err, &fetchErr):
		metrics.RankRequestsTotal.WithLabelValues("fetch_failed").Inc()
		h.logger.Error("fetch failed", zap.Error(err),
			zap.Int("recovered", len(fetchErr.Partial)),
			zap.String("path", c.Request.URL.Path),
		)
		h.writeError(c, http.StatusBadGateway, "Upstream Fetch Failed", fetchErr.Error())
	default:
		metrics.RankRequestsTotal.WithLabelValues("error").Inc()
		h.logger.Error("unexpected error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		h.writeError(c, http.StatusInternalServerError, "Internal Server Error", "an unexpected error occurred")
	}
}

func (h *RankHandler) writeError(c *gin.Context, status int, title, message string) {
	c.JSON(status, models.ErrorResponse{
		Status:    status,
		Error:     title,
		Message:   message,
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
	})
}
