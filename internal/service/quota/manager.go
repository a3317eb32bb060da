// Package quota tracks estimated YouTube API quota consumption so fetches
// can stop before exhausting the daily allowance.
package quota

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sk408/yt-fix/internal/metrics"
)

// Per-call quota costs of the YouTube Data API v3 operations in use.
const (
	CostSearchList        = 100
	CostChannelsList      = 1
	CostPlaylistItemsList = 1
	CostVideosList        = 1
)

// Manager tracks quota usage in memory against a daily limit. Usage resets
// 24 hours after the previous reset, mirroring the upstream daily window.
// Nothing is persisted; a restart starts the estimate over.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Manager struct {
	mu               sync.Mutex
	used             int
	lastReset        time.Time
	dailyLimit       int
	thresholdPercent int
	logger           *zap.Logger
	now              func() time.Time
}

// NewManager creates a quota manager. dailyLimit defaults to the upstream
// default of 10000 units; thresholdPercent defaults to 90, leaving headroom
// so a fetch never consumes the very last units.
func NewManager(dailyLimit, thresholdPercent int, logger *zap.Logger) *Manager {
	if dailyLimit <= 0 {
		dailyLimit = 10000
	}
	if thresholdPercent <= 0 || thresholdPercent > 100 {
		thresholdPercent = 90
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		dailyLimit:       dailyLimit,
		thresholdPercent: thresholdPercent,
		lastReset:        time.Now(),
		logger:           logger,
		now:              time.Now,
	}
}

// Record registers quota usage for one upstream operation.
func (m *Manager) Record(cost int, operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maybeReset()

	m.used += cost
	metrics.QuotaUnitsTotal.Add(float64(cost))
	metrics.UpstreamCallsTotal.WithLabelValues(operation).Inc()

	m.logger.Debug("quota usage recorded",
		zap.String("operation", operation),
		zap.Int("cost", cost),
		zap.Int("used", m.used),
		zap.Int("daily_limit", m.dailyLimit),
	)
}

// Available reports whether cost more units fit under the threshold.
func (m *Manager) Available(cost int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maybeReset()
	return m.used+cost <= m.threshold()
}

// Exhausted reports whether usage has reached the threshold.
func (m *Manager) Exhausted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maybeReset()
	return m.used >= m.threshold()
}

// Used returns the units recorded in the current window.
func (m *Manager) Used() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maybeReset()
	return m.used
}

// Remaining returns the units left before the threshold, never negative.
func (m *Manager) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maybeReset()
	remaining := m.threshold() - m.used
	if remaining < 0 {
		return 0
	}
	return remaining
}

// EstimateChannelCost estimates the units a full fetch of a channel with
// videoCount uploads will consume: one channels.list, one playlistItems.list
// per page of 50, and one videos.list per batch of 50.
func (m *Manager) EstimateChannelCost(videoCount int64) int {
	pages := int((videoCount + 49) / 50)
	return CostChannelsList + pages*CostPlaylistItemsList + pages*CostVideosList
}

func (m *Manager) threshold() int {
	return (m.dailyLimit * m.thresholdPercent) / 100
}

// maybeReset starts a new window when 24h have passed. Callers hold mu.
func (m *Manager) maybeReset() {
	if m.now().Sub(m.lastReset) > 24*time.Hour {
		m.logger.Info("quota window reset", zap.Int("used_last_window", m.used))
		m.used = 0
		m.lastReset = m.now()
	}
}
