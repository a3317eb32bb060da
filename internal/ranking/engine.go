// Package ranking computes composite recency/popularity scores and produces
// a deterministic total ordering over video records.
package ranking

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sk408/yt-fix/internal/models"
)

// Default weight values, matching the tuning the ranking was designed with.
const (
	DefaultLikeWeight   = 1.0
	DefaultViewWeight   = 0.1
	DefaultHalfLifeDays = 90.0
)

// Weights parameterizes the score formula.
type Weights struct {
	// LikeWeight scales the like count in the popularity term.
	LikeWeight float64 `json:"like_weight"`

	// ViewWeight scales the view count in the popularity term.
	ViewWeight float64 `json:"view_weight"`

	// HalfLifeDays is the age at which the decay factor halves. The decay
	// is 2^(-ageDays/HalfLifeDays): exactly 1 at age zero, strictly
	// decreasing, never reaching zero.
	HalfLifeDays float64 `json:"half_life_days"`
}

// DefaultWeights returns the default weight set.
func DefaultWeights() Weights {
	return Weights{
		LikeWeight:   DefaultLikeWeight,
		ViewWeight:   DefaultViewWeight,
		HalfLifeDays: DefaultHalfLifeDays,
	}
}

// normalized fills zero or invalid fields with defaults so a partially
// specified weight set never produces NaN scores.
func (w Weights) normalized() Weights {
	if w.LikeWeight < 0 || math.IsNaN(w.LikeWeight) {
		w.LikeWeight = DefaultLikeWeight
	}
	if w.ViewWeight < 0 || math.IsNaN(w.ViewWeight) {
		w.ViewWeight = DefaultViewWeight
	}
	if w.HalfLifeDays <= 0 || math.IsNaN(w.HalfLifeDays) {
		w.HalfLifeDays = DefaultHalfLifeDays
	}
	return w
}

// Diagnostic reports one record excluded from ranking and why. Data-quality
// problems are recovered locally and reported, never raised as fatal errors.
type Diagnostic struct {
	VideoID string `json:"video_id"`
	Reason  string `json:"reason"`
}

// Engine scores and orders video records. It is stateless; Rank is a pure
// function of its inputs.
type Engine struct{}

// NewEngine creates a ranking engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Rank returns the valid records ordered descending by score, plus
// diagnostics for excluded records. Ties break by more recent PublishedAt,
// then by ID ascending, for full determinism. The input slice and its
// counts are not mutated; only the Score field is written, on copies.
func (e *Engine) Rank(videos []models.VideoRecord, asOf time.Time, w Weights) ([]models.VideoRecord, []Diagnostic) {
	w = w.normalized()

	ranked := make([]models.VideoRecord, 0, len(videos))
	var diagnostics []Diagnostic

	for _, v := range videos {
		if reason := invalidCounts(v); reason != "" {
			diagnostics = append(diagnostics, Diagnostic{VideoID: v.ID, Reason: reason})
			continue
		}

		score := Score(v, asOf, w)
		v.Score = &score
		ranked = append(ranked, v)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := *ranked[i].Score, *ranked[j].Score
		if si != sj {
			return si > sj
		}
		if !ranked[i].PublishedAt.Equal(ranked[j].PublishedAt) {
			return ranked[i].PublishedAt.After(ranked[j].PublishedAt)
		}
		return ranked[i].ID < ranked[j].ID
	})

	return ranked, diagnostics
}

// Score computes the composite score for one record: the linear popularity
// term multiplied by the half-life decay of the video's age.
func Score(v models.VideoRecord, asOf time.Time, w Weights) float64 {
	popularity := float64(v.LikeCount)*w.LikeWeight + float64(v.ViewCount)*w.ViewWeight
	return popularity * DecayFactor(v.PublishedAt, asOf, w.HalfLifeDays)
}

// DecayFactor returns the time decay multiplier in (0, 1]. Ages are clamped
// at zero so clock skew on freshly published videos never boosts a score.
func DecayFactor(publishedAt, asOf time.Time, halfLifeDays float64) float64 {
	ageDays := asOf.Sub(publishedAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Exp2(-ageDays / halfLifeDays)
}

// invalidCounts returns a non-empty reason when a record's popularity
// fields cannot be ranked.
func invalidCounts(v models.VideoRecord) string {
	if v.ViewCount < 0 {
		return fmt.Sprintf("negative view_count %d", v.ViewCount)
	}
	if v.LikeCount < 0 {
		return fmt.Sprintf("negative like_count %d", v.LikeCount)
	}
	return ""
}
