package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sk408/yt-fix/internal/metrics"
	"github.com/sk408/yt-fix/internal/models"
	"github.com/sk408/yt-fix/internal/validation"
)

// Upstream is the listing surface of the video metadata API consumed by the
// Fetcher. Both collections are paged by continuation cursor.
type Upstream interface {
	// ChannelVideosPage fetches one page of the channel's video listing.
	ChannelVideosPage(ctx context.Context, channelID, cursor string) ([]models.RawEntry, string, error)

	// PlaylistItemsPage fetches one page of a playlist's item listing.
	PlaylistItemsPage(ctx context.Context, playlistID, cursor string) ([]models.RawEntry, string, error)

	// VideoDetails fetches statistics for up to detailBatchSize videos.
	VideoDetails(ctx context.Context, videoIDs []string) ([]models.VideoRecord, error)

	// ResolveChannel resolves a handle, legacy username, or channel URL to
	// a channel ID. Inputs that already are channel IDs pass through
	// without network access.
	ResolveChannel(ctx context.Context, target string) (string, error)
}

// detailBatchSize is the upstream limit on IDs per statistics lookup.
const detailBatchSize = 50

// Fetcher orchestrates resolver, paginator, and deduplicator to produce the
// complete deduplicated video set for a fetch request.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Fetcher struct {
	upstream Upstream
	resolver *ChannelResolver
	logger   *zap.Logger

	maxPages     int
	retryBackoff time.Duration
}

// FetcherOptions configures a Fetcher.
type FetcherOptions struct {
	// MaxPages caps pages per listing. 0 means the paginator default.
	MaxPages int

	// RetryBackoff is the fixed delay before the single page retry.
	// 0 means the paginator default; negative means no delay.
	RetryBackoff time.Duration

	Logger *zap.Logger
}

// NewFetcher creates a Fetcher over the given upstream.
func NewFetcher(upstream Upstream, opts FetcherOptions) *Fetcher {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{
		upstream:     upstream,
		resolver:     NewChannelResolver(),
		logger:       log,
		maxPages:     opts.MaxPages,
		retryBackoff: opts.RetryBackoff,
	}
}

// Fetch retrieves the complete deduplicated video set for the request.
// Malformed targets fail with InvalidIdentifierError before any network
// call. If the single-retry policy is exhausted mid-fetch, the returned
// error is a FetchError carrying the records recovered so far.
func (f *Fetcher) Fetch(ctx context.Context, req models.FetchRequest) ([]models.VideoRecord, error) {
	if !req.Strategy.Valid() {
		return nil, &InvalidIdentifierError{Input: string(req.Strategy), Reason: "unknown retrieval strategy"}
	}

	page, err := f.resolvePageFunc(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	dedup := NewDeduplicator()
	dropped := 0

	// Deduplication runs per page so overlapping pages under retry never
	// accumulate duplicates.
	dedupPage := func(ctx context.Context, cursor string) ([]models.RawEntry, string, error) {
		items, next, err := page(ctx, cursor)
		if err != nil {
			return nil, "", err
		}
		unique := dedup.Filter(items)
		dropped += len(items) - len(unique)
		metrics.FetchPagesTotal.Inc()
		return unique, next, nil
	}

	paginator := NewPaginator(dedupPage, PaginatorOptions{
		MaxPages:     f.maxPages,
		RetryBackoff: f.retryBackoff,
	})

	entries, pageErr := paginator.All(ctx)
	metrics.DedupDroppedTotal.Add(float64(dropped))

	records := entriesToRecords(entries)
	if pageErr != nil {
		var quotaErr *UpstreamQuotaError
		if errors.As(pageErr, &quotaErr) {
			return nil, pageErr
		}
		f.logger.Warn("fetch aborted mid-pagination, returning partial set",
			zap.String("target", req.Target),
			zap.Int("recovered", len(records)),
			zap.Error(pageErr),
		)
		// Best effort: enrich whatever was recovered before failing.
		_ = f.fillDetails(ctx, records)
		return nil, &FetchError{Partial: records, Err: pageErr}
	}

	if err := f.fillDetails(ctx, records); err != nil {
		var quotaErr *UpstreamQuotaError
		if errors.As(err, &quotaErr) {
			return nil, err
		}
		return nil, &FetchError{Partial: records, Err: err}
	}

	metrics.FetchDurationSeconds.Observe(time.Since(start).Seconds())
	f.logger.Info("fetch complete",
		zap.String("target", req.Target),
		zap.String("strategy", string(req.Strategy)),
		zap.Int("videos", len(records)),
		zap.Int("duplicates_dropped", dropped),
	)
	return records, nil
}

// resolvePageFunc maps the request target and strategy to a concrete
// upstream collection reference.
func (f *Fetcher) resolvePageFunc(ctx context.Context, req models.FetchRequest) (PageFunc, error) {
	if strings.TrimSpace(req.Target) == "" {
		return nil, &InvalidIdentifierError{Input: req.Target, Reason: "empty target"}
	}

	if req.Strategy == models.StrategyExplicitPlaylist {
		playlistID, err := f.resolver.PlaylistIDFromTarget(req.Target)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, cursor string) ([]models.RawEntry, string, error) {
			return f.upstream.PlaylistItemsPage(ctx, playlistID, cursor)
		}, nil
	}

	channelID, err := f.upstream.ResolveChannel(ctx, req.Target)
	if err != nil {
		return nil, err
	}

	if req.Strategy == models.StrategyStandardSearch {
		return func(ctx context.Context, cursor string) ([]models.RawEntry, string, error) {
			return f.upstream.ChannelVideosPage(ctx, channelID, cursor)
		}, nil
	}

	uploadsID, err := f.resolver.UploadsPlaylistID(channelID)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, cursor string) ([]models.RawEntry, string, error) {
		return f.upstream.PlaylistItemsPage(ctx, uploadsID, cursor)
	}, nil
}

// fillDetails enriches base records with statistics in batches. Records
// absent from the details response keep their zero counts, so the ranking
// engine never observes missing numeric fields.
func (f *Fetcher) fillDetails(ctx context.Context, records []models.VideoRecord) error {
	byID := make(map[string]int, len(records))
	ids := make([]string, 0, len(records))
	for i, r := range records {
		byID[r.ID] = i
		ids = append(ids, r.ID)
	}

	for start := 0; start < len(ids); start += detailBatchSize {
		end := start + detailBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		details, err := f.upstream.VideoDetails(ctx, ids[start:end])
		if err != nil {
			return err
		}

		for _, d := range details {
			i, ok := byID[d.ID]
			if !ok {
				continue
			}
			merged := d
			if merged.Title == "" {
				merged.Title = records[i].Title
			}
			if merged.PublishedAt.IsZero() {
				merged.PublishedAt = records[i].PublishedAt
			}
			if merged.URL == "" {
				merged.URL = records[i].URL
			}
			records[i] = merged
		}
	}
	return nil
}

// entriesToRecords maps deduplicated raw entries to normalized records,
// preserving order. Counts default to zero until details are filled.
func entriesToRecords(entries []models.RawEntry) []models.VideoRecord {
	records := make([]models.VideoRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, models.VideoRecord{
			ID:          e.ID,
			Title:       e.Title,
			URL:         models.WatchURL(e.ID),
			PublishedAt: e.PublishedAt.UTC(),
		})
	}
	return records
}

// LooksLikeChannelID reports whether the target is already a well-formed
// channel ID, letting callers skip network resolution.
func LooksLikeChannelID(target string) bool {
	return validation.IsChannelID(target)
}
