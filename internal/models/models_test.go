package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrategyValid(t *testing.T) {
	t.Parallel()

	assert.True(t, StrategyStandardSearch.Valid())
	assert.True(t, StrategyUploadsPlaylist.Valid())
	assert.True(t, StrategyExplicitPlaylist.Valid())

	assert.False(t, Strategy("").Valid())
	assert.False(t, Strategy("uploads").Valid())
	assert.False(t, Strategy("UPLOADS-PLAYLIST").Valid())
}

func TestWatchURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"))
}
