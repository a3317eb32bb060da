package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sk408/yt-fix/internal/models"
	"github.com/sk408/yt-fix/internal/service"
	"github.com/sk408/yt-fix/internal/service/quota"
)

// ChannelDirectory resolves targets to channels and summarizes them.
type ChannelDirectory interface {
	ResolveChannel(ctx context.Context, target string) (string, error)
	ChannelInfo(ctx context.Context, channelID string) (*models.ChannelInfo, error)
}

// EstimateHandler answers how many quota units a full fetch of a channel
// would cost, so callers can decide before spending the budget.
type EstimateHandler struct {
	directory ChannelDirectory
	quota     *quota.Manager
	logger    *zap.Logger
}

// NewEstimateHandler creates a new EstimateHandler instance.
func NewEstimateHandler(directory ChannelDirectory, qm *quota.Manager, logger *zap.Logger) *EstimateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EstimateHandler{directory: directory, quota: qm, logger: logger}
}

// EstimateResponseDTO is the response body of GET /api/v1/estimate.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type EstimateResponseDTO struct {
	Channel        *models.ChannelInfo `json:"channel"`
	EstimatedCost  int                 `json:"estimated_cost"`
	QuotaRemaining int                 `json:"quota_remaining"`
	Affordable     bool                `json:"affordable"`
}

// HandleEstimate resolves the target channel and estimates fetch cost.
func (h *EstimateHandler) HandleEstimate(c *gin.Context) {
	target := c.Query("target")
	if target == "" {
		h.writeError(c, http.StatusBadRequest, "Bad Request", "target query parameter is required")
		return
	}

	ctx := c.Request.Context()
	channelID, err := h.directory.ResolveChannel(ctx, target)
	if err != nil {
		h.handleError(c, err)
		return
	}

	info, err := h.directory.ChannelInfo(ctx, channelID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	cost := h.quota.EstimateChannelCost(info.VideoCount)
	remaining := h.quota.Remaining()

	c.JSON(http.StatusOK, EstimateResponseDTO{
		Channel:        info,
		EstimatedCost:  cost,
		QuotaRemaining: remaining,
		Affordable:     cost <= remaining,
	})
}

func (h *EstimateHandler) handleError(c *gin.Context, err error) {
	var invalidErr *service.InvalidIdentifierError
	var quotaErr *service.UpstreamQuotaError

	switch {
	case errors.As(err, &invalidErr):
		h.logger.Warn("invalid identifier", zap.Error(err), zap.String("path", c.Request.URL.Path))
		h.writeError(c, http.StatusBadRequest, "Bad Request", invalidErr.Error())
	case errors.As(err, &quotaErr):
		h.logger.Error("upstream quota failure", zap.Error(err), zap.String("path", c.Request.URL.Path))
		h.writeError(c, http.StatusTooManyRequests, "Upstream Quota Exceeded", quotaErr.Error())
	default:
		h.logger.Error("estimate failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		h.writeError(c, http.StatusBadGateway, "Upstream Error", "failed to summarize channel")
	}
}

func (h *EstimateHandler) writeError(c *gin.Context, status int, title, message string) {
	c.JSON(status, models.ErrorResponse{
		Status:    status,
		Error:     title,
		Message:   message,
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
	})
}
