// Package format provides display helpers for durations and counts.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Duration converts an ISO 8601 duration ("PT1H2M3S") to a human-readable
// clock form ("1:02:03", or "4:13" under an hour). Input that is not an ISO
// duration is returned unchanged.
func Duration(iso string) string {
	if !strings.HasPrefix(iso, "PT") {
		return iso
	}
	rest := strings.TrimPrefix(iso, "PT")

	var hours, minutes, seconds int
	if idx := strings.Index(rest, "H"); idx != -1 {
		h, err := strconv.Atoi(rest[:idx])
		if err != nil {
			return iso
		}
		hours = h
		rest = rest[idx+1:]
	}
	if idx := strings.Index(rest, "M"); idx != -1 {
		m, err := strconv.Atoi(rest[:idx])
		if err != nil {
			return iso
		}
		minutes = m
		rest = rest[idx+1:]
	}
	if idx := strings.Index(rest, "S"); idx != -1 {
		s, err := strconv.Atoi(rest[:idx])
		if err != nil {
			return iso
		}
		seconds = s
	}

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// Count renders large numbers with K/M/B suffixes ("1.2K", "3.4M").
func Count(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}
