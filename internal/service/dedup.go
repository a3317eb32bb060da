package service

import "github.com/sk408/yt-fix/internal/models"

// Deduplicator filters upstream entries down to first occurrences only,
// preserving input order. Pagination can return overlapping pages under
// retry, and combined strategies can surface the same video twice; the
// deduplicator is the sole enforcer of ID uniqueness in a result set.
type Deduplicator struct {
	seen map[string]struct{}
}

// NewDeduplicator creates an empty Deduplicator. A new instance must be used
// per fetch.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[string]struct{})}
}

// Filter returns the subsequence of entries whose IDs have not been seen
// before, in order of first appearance. Seen IDs accumulate across calls.
func (d *Deduplicator) Filter(entries []models.RawEntry) []models.RawEntry {
	out := make([]models.RawEntry, 0, len(entries))
	for _, e := range entries {
		if _, ok := d.seen[e.ID]; ok {
			continue
		}
		d.seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Seen reports whether an ID has already passed through the filter.
func (d *Deduplicator) Seen(id string) bool {
	_, ok := d.seen[id]
	return ok
}

// Count returns the number of unique IDs observed so far.
func (d *Deduplicator) Count() int {
	return len(d.seen)
}
