// Package validation provides format checks for upstream identifiers.
package validation

import "regexp"

var (
	videoIDRegex   = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	channelIDRegex = regexp.MustCompile(`^UC[a-zA-Z0-9_-]{22}$`)
	// Playlist IDs carry a two-letter kind prefix (PL, UU, FL, OL, LL, RD)
	// followed by an opaque suffix.
	playlistIDRegex = regexp.MustCompile(`^(PL|UU|FL|OL|LL|RD)[a-zA-Z0-9_-]{10,}$`)
	handleRegex     = regexp.MustCompile(`^@[a-zA-Z0-9._-]{3,30}$`)
)

// IsVideoID reports whether s is a well-formed video ID.
func IsVideoID(s string) bool {
	return videoIDRegex.MatchString(s)
}

// IsChannelID reports whether s is a well-formed channel ID.
func IsChannelID(s string) bool {
	return channelIDRegex.MatchString(s)
}

// IsPlaylistID reports whether s is a well-formed playlist ID.
func IsPlaylistID(s string) bool {
	return playlistIDRegex.MatchString(s)
}

// IsHandle reports whether s is a well-formed @handle.
func IsHandle(s string) bool {
	return handleRegex.MatchString(s)
}
