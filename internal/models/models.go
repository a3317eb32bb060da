// Package models contains the data models and DTOs for the video ranking service.
package models

import (
	"fmt"
	"time"
)

// Strategy selects how the complete video set for a target is retrieved.
type Strategy string

// Strategy constants define the supported retrieval strategies.
const (
	// StrategyStandardSearch enumerates videos through the per-channel
	// search listing. Known to be incomplete for large channels.
	StrategyStandardSearch Strategy = "standard-search"

	// StrategyUploadsPlaylist enumerates videos through the channel's
	// derived uploads playlist, which paginates exhaustively.
	StrategyUploadsPlaylist Strategy = "uploads-playlist"

	// StrategyExplicitPlaylist enumerates an explicitly given playlist
	// ID or playlist URL.
	StrategyExplicitPlaylist Strategy = "explicit-playlist"
)

// Valid reports whether s is one of the supported strategies.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyStandardSearch, StrategyUploadsPlaylist, StrategyExplicitPlaylist:
		return true
	}
	return false
}

// VideoRecord is the normalized representation of one video. Instances are
// created by the fetcher from raw upstream entries and live only for the
// duration of one fetch-and-rank call.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type VideoRecord struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	URL          string    `json:"url"`
	Thumbnail    string    `json:"thumbnail,omitempty"`
	Duration     string    `json:"duration,omitempty"`
	PublishedAt  time.Time `json:"published_at"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`

	// Score is populated by the ranking engine and is nil before ranking.
	Score *float64 `json:"score,omitempty"`
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}

// RawEntry is one entry of an upstream listing page, before statistics
// lookup and normalization into a VideoRecord.
type RawEntry struct {
	ID          string
	Title       string
	PublishedAt time.Time
}

// FetchRequest describes one fetch of a target's complete video set.
// It is input configuration only and is never persisted.
type FetchRequest struct {
	// Target is a channel ID, @handle, legacy username, channel URL,
	// playlist ID, or playlist URL, depending on Strategy.
	Target string `json:"target"`

	Strategy Strategy `json:"strategy"`
}

// ChannelInfo summarizes a resolved channel.
type ChannelInfo struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	UploadsPlaylistID string `json:"uploads_playlist_id"`
	VideoCount        int64  `json:"video_count"`
}

// ErrorResponse is the standard error body returned by the HTTP API.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ErrorResponse struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
}
