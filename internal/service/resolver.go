// Package service provides the video retrieval pipeline: channel resolution,
// pagination, deduplication, and orchestration into normalized records.
package service

import (
	"net/url"
	"strings"
)

// ChannelResolver maps channel identifiers to the addressable collections of
// their videos. It performs no network access.
type ChannelResolver struct{}

// NewChannelResolver creates a new ChannelResolver.
func NewChannelResolver() *ChannelResolver {
	return &ChannelResolver{}
}

// UploadsPlaylistID derives the uploads playlist ID for a channel by
// replacing the second character of the channel ID with 'U' (UCxxxx becomes
// UUxxxx). The uploads playlist enumerates a channel's uploads exhaustively
// through ordinary playlist pagination, unlike the search listing.
func (r *ChannelResolver) UploadsPlaylistID(channelID string) (string, error) {
	if len(channelID) < 2 {
		return "", &InvalidIdentifierError{Input: channelID, Reason: "channel ID too short"}
	}
	if channelID[0] != 'U' {
		return "", &InvalidIdentifierError{Input: channelID, Reason: "channel ID must start with 'U'"}
	}
	return channelID[:1] + "U" + channelID[2:], nil
}

// PlaylistIDFromTarget extracts a playlist ID from either a bare playlist ID
// or a playlist URL of the form .../playlist?list=<id>.
func (r *ChannelResolver) PlaylistIDFromTarget(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", &InvalidIdentifierError{Input: target, Reason: "empty playlist target"}
	}

	if strings.Contains(target, "youtube.com") || strings.Contains(target, "://") {
		u, err := url.Parse(target)
		if err != nil {
			return "", &InvalidIdentifierError{Input: target, Reason: "unparseable playlist URL"}
		}
		id := u.Query().Get("list")
		if id == "" {
			return "", &InvalidIdentifierError{Input: target, Reason: "playlist URL has no list parameter"}
		}
		return id, nil
	}

	if strings.ContainsAny(target, " /?&") {
		return "", &InvalidIdentifierError{Input: target, Reason: "playlist ID contains invalid characters"}
	}
	return target, nil
}
