package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"PT1H2M3S", "1:02:03"},
		{"PT15M33S", "15:33"},
		{"PT4M13S", "4:13"},
		{"PT45S", "0:45"},
		{"PT2H", "2:00:00"},
		{"PT1M", "1:00"},
		{"", ""},
		{"live", "live"},
		{"P1DT2H", "P1DT2H"}, // day components are passed through untouched
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Duration(tt.in), "input %q", tt.in)
	}
}

func TestCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1234, "1.2K"},
		{999999, "1000.0K"},
		{1500000, "1.5M"},
		{2300000000, "2.3B"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Count(tt.in), "input %d", tt.in)
	}
}
