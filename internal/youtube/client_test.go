package youtube

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	youtubeapi "google.golang.org/api/youtube/v3"
)

func TestChannelIDFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{
			name:   "plain channel URL",
			target: "https://www.youtube.com/channel/UCuAXFkgsw1L7xaCfnd5JJOw",
			want:   "UCuAXFkgsw1L7xaCfnd5JJOw",
		},
		{
			name:   "channel URL with trailing path",
			target: "https://www.youtube.com/channel/UCuAXFkgsw1L7xaCfnd5JJOw/videos",
			want:   "UCuAXFkgsw1L7xaCfnd5JJOw",
		},
		{
			name:   "channel URL with query",
			target: "https://youtube.com/channel/UCuAXFkgsw1L7xaCfnd5JJOw?view=0",
			want:   "UCuAXFkgsw1L7xaCfnd5JJOw",
		},
		{
			name:   "channel URL with malformed ID",
			target: "https://www.youtube.com/channel/notachannel",
			want:   "",
		},
		{
			name:   "handle URL is not a channel URL",
			target: "https://www.youtube.com/@veritasium",
			want:   "",
		},
		{
			name:   "bare ID is not a URL",
			target: "UCuAXFkgsw1L7xaCfnd5JJOw",
			want:   "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, channelIDFromURL(tt.target))
		})
	}
}

func TestHandleFromTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{name: "bare handle", target: "@veritasium", want: "@veritasium"},
		{name: "handle URL", target: "https://www.youtube.com/@veritasium", want: "@veritasium"},
		{name: "handle URL with path", target: "https://www.youtube.com/@veritasium/videos", want: "@veritasium"},
		{name: "handle URL with query", target: "https://youtube.com/@veritasium?tab=shorts", want: "@veritasium"},
		{name: "channel URL", target: "https://www.youtube.com/channel/UCabc", want: ""},
		{name: "plain username", target: "veritasium", want: ""},
		{name: "too-short handle", target: "@ab", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, handleFromTarget(tt.target))
		})
	}
}

func TestMapPlaylistItem(t *testing.T) {
	t.Parallel()

	t.Run("prefers video publish time from contentDetails", func(t *testing.T) {
		t.Parallel()

		item := &youtubeapi.PlaylistItem{
			ContentDetails: &youtubeapi.PlaylistItemContentDetails{
				VideoId:          "dQw4w9WgXcQ",
				VideoPublishedAt: "2024-03-01T12:00:00Z",
			},
			Snippet: &youtubeapi.PlaylistItemSnippet{
				Title:       "some title",
				PublishedAt: "2026-01-01T00:00:00Z", // playlist-add time, must lose
			},
		}

		entry := mapPlaylistItem(item)
		assert.Equal(t, "dQw4w9WgXcQ", entry.ID)
		assert.Equal(t, "some title", entry.Title)
		assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), entry.PublishedAt)
	})

	t.Run("falls back to snippet resource and timestamp", func(t *testing.T) {
		t.Parallel()

		item := &youtubeapi.PlaylistItem{
			Snippet: &youtubeapi.PlaylistItemSnippet{
				Title:       "fallback",
				PublishedAt: "2025-06-15T08:30:00Z",
				ResourceId:  &youtubeapi.ResourceId{VideoId: "abc123def45"},
			},
		}

		entry := mapPlaylistItem(item)
		assert.Equal(t, "abc123def45", entry.ID)
		assert.Equal(t, time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC), entry.PublishedAt)
	})

	t.Run("empty item maps to empty entry", func(t *testing.T) {
		t.Parallel()

		entry := mapPlaylistItem(&youtubeapi.PlaylistItem{})
		assert.Empty(t, entry.ID)
	})
}

func TestMapVideo(t *testing.T) {
	t.Parallel()

	item := &youtubeapi.Video{
		Id: "dQw4w9WgXcQ",
		Snippet: &youtubeapi.VideoSnippet{
			Title:       "Never Gonna Give You Up",
			Description: "official video",
			PublishedAt: "2009-10-25T06:57:33Z",
			Thumbnails: &youtubeapi.ThumbnailDetails{
				High: &youtubeapi.Thumbnail{Url: "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"},
			},
		},
		Statistics: &youtubeapi.VideoStatistics{
			ViewCount:    1500000000,
			LikeCount:    17000000,
			CommentCount: 2300000,
		},
		ContentDetails: &youtubeapi.VideoContentDetails{Duration: "PT3M33S"},
	}

	record := mapVideo(item)
	assert.Equal(t, "dQw4w9WgXcQ", record.ID)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", record.URL)
	assert.Equal(t, "Never Gonna Give You Up", record.Title)
	assert.Equal(t, int64(1500000000), record.ViewCount)
	assert.Equal(t, int64(17000000), record.LikeCount)
	assert.Equal(t, int64(2300000), record.CommentCount)
	assert.Equal(t, "PT3M33S", record.Duration)
	assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", record.Thumbnail)
	assert.Nil(t, record.Score)
}

// Statistics withheld by the owner come back absent and must normalize to
// zero counts.
func TestMapVideoWithoutStatistics(t *testing.T) {
	t.Parallel()

	record := mapVideo(&youtubeapi.Video{Id: "abc123def45"})
	assert.Equal(t, "abc123def45", record.ID)
	assert.Equal(t, int64(0), record.ViewCount)
	assert.Equal(t, int64(0), record.LikeCount)
	assert.True(t, record.PublishedAt.IsZero())
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	got := parseTimestamp("2024-03-01T12:00:00+02:00")
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), got)

	assert.True(t, parseTimestamp("").IsZero())
	assert.True(t, parseTimestamp("not a time").IsZero())
}
