// Package youtube wraps the YouTube Data API v3 behind the listing surface
// the fetch pipeline consumes.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/sk408/yt-fix/internal/models"
	"github.com/sk408/yt-fix/internal/service"
	"github.com/sk408/yt-fix/internal/service/quota"
	"github.com/sk408/yt-fix/internal/validation"
)

// maxPageSize is the upstream maximum for listing calls.
const maxPageSize = 50

// Client wraps the YouTube Data API v3 client. It implements
// service.Upstream.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Client struct {
	service  *youtube.Service
	quota    *quota.Manager
	logger   *zap.Logger
	pageSize int64
}

// ClientOptions configures a Client.
type ClientOptions struct {
	// PageSize is the number of items requested per listing page,
	// capped at the upstream maximum of 50. 0 means 50.
	PageSize int64

	Logger *zap.Logger
}

// NewClient creates a new YouTube API client authenticated with a static
// API key.
func NewClient(ctx context.Context, apiKey string, qm *quota.Manager, opts ClientOptions) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if qm == nil {
		qm = quota.NewManager(0, 0, log)
	}

	return &Client{
		service:  svc,
		quota:    qm,
		logger:   log,
		pageSize: pageSize,
	}, nil
}

// ChannelVideosPage fetches one page of a channel's video listing via the
// search endpoint. The search index is not guaranteed to enumerate every
// upload; the uploads playlist is the exhaustive source.
func (c *Client) ChannelVideosPage(ctx context.Context, channelID, cursor string) ([]models.RawEntry, string, error) {
	call := c.service.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		Type("video").
		Order("date").
		MaxResults(c.pageSize).
		Context(ctx)
	if cursor != "" {
		call = call.PageToken(cursor)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, "", classify(err, channelID)
	}
	c.quota.Record(quota.CostSearchList, "search.list")

	entries := make([]models.RawEntry, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		entry := models.RawEntry{ID: item.Id.VideoId}
		if item.Snippet != nil {
			entry.Title = item.Snippet.Title
			entry.PublishedAt = parseTimestamp(item.Snippet.PublishedAt)
		}
		entries = append(entries, entry)
	}
	return entries, resp.NextPageToken, nil
}

// PlaylistItemsPage fetches one page of a playlist's item listing.
func (c *Client) PlaylistItemsPage(ctx context.Context, playlistID, cursor string) ([]models.RawEntry, string, error) {
	call := c.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(c.pageSize).
		Context(ctx)
	if cursor != "" {
		call = call.PageToken(cursor)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, "", classify(err, playlistID)
	}
	c.quota.Record(quota.CostPlaylistItemsList, "playlistItems.list")

	entries := make([]models.RawEntry, 0, len(resp.Items))
	for _, item := range resp.Items {
		entry := mapPlaylistItem(item)
		if entry.ID == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, resp.NextPageToken, nil
}

// VideoDetails fetches statistics and content details for up to 50 videos
// in one batch. Statistics withheld by the video's owner come back as zero.
func (c *Client) VideoDetails(ctx context.Context, videoIDs []string) ([]models.VideoRecord, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}
	if len(videoIDs) > maxPageSize {
		return nil, fmt.Errorf("too many video IDs (max %d, got %d)", maxPageSize, len(videoIDs))
	}

	call := c.service.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(videoIDs...).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, classify(err, strings.Join(videoIDs, ","))
	}
	c.quota.Record(quota.CostVideosList, "videos.list")

	records := make([]models.VideoRecord, 0, len(resp.Items))
	for _, item := range resp.Items {
		records = append(records, mapVideo(item))
	}
	return records, nil
}

// ResolveChannel resolves a channel ID, @handle, legacy username, or channel
// URL to a channel ID. Well-formed channel IDs pass through without network
// access.
func (c *Client) ResolveChannel(ctx context.Context, target string) (string, error) {
	target = strings.TrimSpace(target)

	if validation.IsChannelID(target) {
		return target, nil
	}
	if id := channelIDFromURL(target); id != "" {
		return id, nil
	}

	if handle := handleFromTarget(target); handle != "" {
		return c.lookupChannel(ctx, func(call *youtube.ChannelsListCall) *youtube.ChannelsListCall {
			return call.ForHandle(handle)
		}, target)
	}
	if strings.Contains(target, "://") || strings.Contains(target, "youtube.com") {
		return "", &service.InvalidIdentifierError{Input: target, Reason: "unrecognized channel URL"}
	}

	// Legacy usernames predate handles; fall back to channel search when
	// the username lookup comes back empty.
	id, err := c.lookupChannel(ctx, func(call *youtube.ChannelsListCall) *youtube.ChannelsListCall {
		return call.ForUsername(target)
	}, target)
	if err == nil {
		return id, nil
	}
	var invalidErr *service.InvalidIdentifierError
	if !errors.As(err, &invalidErr) {
		return "", err
	}
	return c.searchChannel(ctx, target)
}

// ChannelInfo fetches summary data for a channel, including the uploads
// playlist ID upstream maintains for it.
func (c *Client) ChannelInfo(ctx context.Context, channelID string) (*models.ChannelInfo, error) {
	call := c.service.Channels.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(channelID).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, classify(err, channelID)
	}
	c.quota.Record(quota.CostChannelsList, "channels.list")

	if len(resp.Items) == 0 {
		return nil, &service.InvalidIdentifierError{Input: channelID, Reason: "channel not found"}
	}

	ch := resp.Items[0]
	info := &models.ChannelInfo{ID: ch.Id}
	if ch.Snippet != nil {
		info.Title = ch.Snippet.Title
	}
	if ch.ContentDetails != nil && ch.ContentDetails.RelatedPlaylists != nil {
		info.UploadsPlaylistID = ch.ContentDetails.RelatedPlaylists.Uploads
	}
	if ch.Statistics != nil {
		info.VideoCount = int64(ch.Statistics.VideoCount)
	}
	return info, nil
}

// lookupChannel runs a channels.list call shaped by selector and returns the
// first matching channel ID.
func (c *Client) lookupChannel(ctx context.Context, selector func(*youtube.ChannelsListCall) *youtube.ChannelsListCall, target string) (string, error) {
	call := selector(c.service.Channels.List([]string{"id"})).Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return "", classify(err, target)
	}
	c.quota.Record(quota.CostChannelsList, "channels.list")

	if len(resp.Items) == 0 {
		return "", &service.InvalidIdentifierError{Input: target, Reason: "channel not found"}
	}
	return resp.Items[0].Id, nil
}

// searchChannel resolves a free-form name through channel search. Costly
// (100 units), so it is the last resort.
func (c *Client) searchChannel(ctx context.Context, name string) (string, error) {
	call := c.service.Search.List([]string{"snippet"}).
		Q(name).
		Type("channel").
		MaxResults(5).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return "", classify(err, name)
	}
	c.quota.Record(quota.CostSearchList, "search.list")

	if len(resp.Items) == 0 {
		return "", &service.InvalidIdentifierError{Input: name, Reason: "channel not found"}
	}

	// Prefer an exact title match over the first hit.
	lower := strings.ToLower(name)
	for _, item := range resp.Items {
		if item.Snippet != nil && strings.ToLower(item.Snippet.Title) == lower {
			return item.Snippet.ChannelId, nil
		}
	}
	first := resp.Items[0].Snippet
	if first == nil || first.ChannelId == "" {
		return "", &service.InvalidIdentifierError{Input: name, Reason: "channel not found"}
	}
	c.logger.Debug("channel resolved by search without exact match",
		zap.String("query", name),
		zap.String("channel_id", first.ChannelId),
	)
	return first.ChannelId, nil
}

// mapPlaylistItem extracts the raw entry of a playlist item. The video's own
// publish time lives in contentDetails; the snippet timestamp is when the
// item was added to the playlist.
func mapPlaylistItem(item *youtube.PlaylistItem) models.RawEntry {
	var entry models.RawEntry
	if item.ContentDetails != nil {
		entry.ID = item.ContentDetails.VideoId
		entry.PublishedAt = parseTimestamp(item.ContentDetails.VideoPublishedAt)
	}
	if item.Snippet != nil {
		entry.Title = item.Snippet.Title
		if entry.ID == "" && item.Snippet.ResourceId != nil {
			entry.ID = item.Snippet.ResourceId.VideoId
		}
		if entry.PublishedAt.IsZero() {
			entry.PublishedAt = parseTimestamp(item.Snippet.PublishedAt)
		}
	}
	return entry
}

// mapVideo converts a videos.list item into a normalized record. Absent
// statistics map to zero counts rather than missing fields.
func mapVideo(item *youtube.Video) models.VideoRecord {
	record := models.VideoRecord{
		ID:  item.Id,
		URL: models.WatchURL(item.Id),
	}
	if item.Snippet != nil {
		record.Title = item.Snippet.Title
		record.Description = item.Snippet.Description
		record.PublishedAt = parseTimestamp(item.Snippet.PublishedAt)
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
			record.Thumbnail = item.Snippet.Thumbnails.High.Url
		}
	}
	if item.Statistics != nil {
		record.ViewCount = int64(item.Statistics.ViewCount)
		record.LikeCount = int64(item.Statistics.LikeCount)
		record.CommentCount = int64(item.Statistics.CommentCount)
	}
	if item.ContentDetails != nil {
		record.Duration = item.ContentDetails.Duration
	}
	return record
}

// channelIDFromURL extracts a channel ID from a /channel/ URL, or "" when
// the target is not one.
func channelIDFromURL(target string) string {
	const marker = "youtube.com/channel/"
	idx := strings.Index(target, marker)
	if idx < 0 {
		return ""
	}
	id := target[idx+len(marker):]
	id = strings.SplitN(id, "/", 2)[0]
	id = strings.SplitN(id, "?", 2)[0]
	if validation.IsChannelID(id) {
		return id
	}
	return ""
}

// handleFromTarget extracts an @handle from a bare handle or a handle URL.
func handleFromTarget(target string) string {
	if validation.IsHandle(target) {
		return target
	}
	const marker = "youtube.com/@"
	idx := strings.Index(target, marker)
	if idx < 0 {
		return ""
	}
	handle := "@" + target[idx+len(marker):]
	handle = strings.SplitN(handle, "/", 2)[0]
	handle = strings.SplitN(handle, "?", 2)[0]
	if validation.IsHandle(handle) {
		return handle
	}
	return ""
}

// parseTimestamp parses the RFC3339 timestamps the API returns, in UTC.
// Unparseable input maps to the zero time.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
