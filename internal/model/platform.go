package model

import (
	"math"
	"time"
)

// Snapshot captures a platform's state at the moment of a stats update
type Snapshot struct {
	Difficulty    float64   `json:"difficulty"`
	Participation float64   `json:"participation"`
	AvgRating     float64   `json:"avg_rating"`
	Timestamp     time.Time `json:"timestamp"`
}

// RatingSample is a single historical rating observation for one user on
// one platform. Samples are append-only: two updates landing on the same
// clock tick produce two samples rather than overwriting one another.
type RatingSample struct {
	Rating     float64   `json:"rating"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Platform represents a competitive programming platform together with the
// derived signals that feed weight computation
type Platform struct {
	Name          string  `json:"name"`
	MaxRating     float64 `json:"max_rating"`
	Difficulty    float64 `json:"difficulty"`    // raw difficulty normalized by MaxRating
	Participation float64 `json:"participation"` // caller-supplied, used as-is
	Drift         float64 `json:"drift"`
	LastUpdate    time.Time `json:"last_update"`
	// History is the append-only sequence of snapshots, one per update call
	History []Snapshot `json:"-"`
	// UserHistory maps user IDs to their rating observations on this platform
	UserHistory map[string][]RatingSample `json:"-"`
}

// NewPlatform creates a platform record with an empty history
func NewPlatform(name string, maxRating float64) *Platform {
	return &Platform{
		Name:        name,
		MaxRating:   maxRating,
		UserHistory: make(map[string][]RatingSample),
	}
}

// Updated reports whether the platform has received at least one snapshot.
// Platforms that were never updated carry no difficulty/participation/drift
// signals and are excluded from weighting entirely.
func (p *Platform) Updated() bool {
	return !p.LastUpdate.IsZero()
}

// ApplySnapshot ingests one stats update. Order matters: the history entry
// is appended before drift is measured, so the drift window includes the
// snapshot being applied.
func (p *Platform) ApplySnapshot(difficulty, participation float64, ratings map[string]float64, now time.Time, driftWindow int) {
	currentAvg := meanOfRatings(ratings)

	p.History = append(p.History, Snapshot{
		Difficulty:    difficulty,
		Participation: participation,
		AvgRating:     currentAvg,
		Timestamp:     now,
	})

	p.Difficulty = difficulty / p.MaxRating
	p.Participation = participation
	p.Drift = p.driftFrom(currentAvg, len(ratings), driftWindow)
	p.LastUpdate = now

	for userID, rating := range ratings {
		p.UserHistory[userID] = append(p.UserHistory[userID], RatingSample{
			Rating:     rating,
			RecordedAt: now,
		})
	}
}

// driftFrom measures how far the current mean rating deviates from the
// trailing historical mean, normalized by the platform's rating scale
func (p *Platform) driftFrom(currentAvg float64, ratingCount, window int) float64 {
	if ratingCount == 0 || len(p.History) == 0 {
		return 0
	}
	histAvg, _ := p.RecentAvgRating(window)
	return math.Abs(currentAvg-histAvg) / p.MaxRating
}

// RecentAvgRating returns the mean of avg_rating over the last window
// history snapshots. The second return value is false when the platform has
// no history at all.
func (p *Platform) RecentAvgRating(window int) (float64, bool) {
	if len(p.History) == 0 {
		return 0, false
	}
	start := len(p.History) - window
	if start < 0 {
		start = 0
	}
	var sum float64
	recent := p.History[start:]
	for _, s := range recent {
		sum += s.AvgRating
	}
	return sum / float64(len(recent)), true
}

func meanOfRatings(ratings map[string]float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	return sum / float64(len(ratings))
}

// PlatformWeights holds the three stages of the weight computation: the raw
// linear combination, its softmax normalization, and the recency-decayed
// weights that fusion actually consumes.
type PlatformWeights struct {
	Raw     map[string]float64 `json:"raw"`
	Softmax map[string]float64 `json:"softmax"`
	Final   map[string]float64 `json:"final"`
}

// PlatformStats summarizes the current rating distribution on a platform
type PlatformStats struct {
	Name          string     `json:"name"`
	Users         int        `json:"users"`
	Average       float64    `json:"average"`
	Median        float64    `json:"median"`
	StdDev        float64    `json:"std_dev"`
	Min           float64    `json:"min"`
	Max           float64    `json:"max"`
	Quartiles     [3]float64 `json:"quartiles"`
	Difficulty    float64    `json:"difficulty"`
	Participation float64    `json:"participation"`
	Weight        float64    `json:"weight"`
}

// Validation constants
const (
	MaxPlatformNameLength = 100
)

// RegisterPlatformRequest is the payload for registering a platform slot.
// Re-registering an existing name silently resets the slot.
type RegisterPlatformRequest struct {
	Name      string  `json:"name"`
	MaxRating float64 `json:"max_rating"`
}

// Validate checks the registration payload
func (r *RegisterPlatformRequest) Validate() []FieldError {
	var errors []FieldError
	if r.Name == "" {
		errors = append(errors, FieldError{Field: "name", Message: "name is required"})
	}
	if len(r.Name) > MaxPlatformNameLength {
		errors = append(errors, FieldError{Field: "name", Message: "name exceeds maximum length"})
	}
	if r.MaxRating <= 0 {
		errors = append(errors, FieldError{Field: "max_rating", Message: "max_rating must be positive"})
	}
	return errors
}

// SnapshotRequest is the payload for applying a platform stats snapshot.
// The engine accepts any numeric input here; empty rating maps are valid
// and simply record a zero average.
type SnapshotRequest struct {
	Difficulty    float64            `json:"difficulty"`
	Participation float64            `json:"participation"`
	Ratings       map[string]float64 `json:"ratings"`
}
