package service

import (
	"math"
	"time"

	"github.com/codeclimb/unirank/api/internal/model"
)

// FusionEngine combines per-user platform ratings (real or imputed) and
// course history into the derived unified/bonus/total scores
type FusionEngine struct {
	imputeWindow        int
	baseBonus           float64
	maxBonus            float64
	courseDecayLambda   float64
	sourceWeights       map[string]float64
	topicWeights        map[string]float64
	defaultSourceWeight float64
	defaultTopicWeight  float64
}

// FusionEngineConfig holds the imputation window, bonus constants, and the
// source/topic credibility tables
type FusionEngineConfig struct {
	ImputeWindow        int
	BaseBonus           float64
	MaxBonus            float64
	CourseDecayLambda   float64
	SourceWeights       map[string]float64
	TopicWeights        map[string]float64
	DefaultSourceWeight float64
	DefaultTopicWeight  float64
}

// NewFusionEngine creates a new fusion engine
func NewFusionEngine(cfg FusionEngineConfig) *FusionEngine {
	if cfg.ImputeWindow == 0 {
		cfg.ImputeWindow = 3
	}
	return &FusionEngine{
		imputeWindow:        cfg.ImputeWindow,
		baseBonus:           cfg.BaseBonus,
		maxBonus:            cfg.MaxBonus,
		courseDecayLambda:   cfg.CourseDecayLambda,
		sourceWeights:       cfg.SourceWeights,
		topicWeights:        cfg.TopicWeights,
		defaultSourceWeight: cfg.DefaultSourceWeight,
		defaultTopicWeight:  cfg.DefaultTopicWeight,
	}
}

// Impute estimates a rating for a platform the user has never appeared on.
// Preference order: the user's mean across all other platforms, then the
// platform's recent average rating, then half the platform's rating scale.
func (e *FusionEngine) Impute(user *model.User, platform *model.Platform) float64 {
	var sum float64
	var count int
	for name, rating := range user.PlatformRatings {
		if name == platform.Name {
			continue
		}
		sum += rating
		count++
	}
	if count > 0 {
		return sum / float64(count)
	}
	if avg, ok := platform.RecentAvgRating(e.imputeWindow); ok {
		return avg
	}
	return platform.MaxRating * 0.5
}

// UnifiedRating computes the weighted average of the user's ratings over
// every platform present in the final weights, imputing where the user has
// no real rating. Returns 0 when the weight sum is 0.
func (e *FusionEngine) UnifiedRating(user *model.User, platforms map[string]*model.Platform, finalWeights map[string]float64) float64 {
	var weighted, totalWeight float64
	for name, weight := range finalWeights {
		rating, ok := user.PlatformRatings[name]
		if !ok {
			rating = e.Impute(user, platforms[name])
		}
		weighted += weight * rating
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0
	}
	return weighted / totalWeight
}

// CourseBonus sums the decayed contributions of the user's verified course
// completions, clamped to the configured maximum. Unverified completions
// contribute nothing.
func (e *FusionEngine) CourseBonus(user *model.User, now time.Time) float64 {
	var bonus float64
	for i := range user.CompletedCourses {
		course := &user.CompletedCourses[i]
		if !course.Verified {
			continue
		}
		sourceWeight := lookupWeight(e.sourceWeights, course.Source, e.defaultSourceWeight)
		topicWeight := lookupWeight(e.topicWeights, course.Topic, e.defaultTopicWeight)
		age := float64(course.DaysSinceCompletion(now))
		bonus += e.baseBonus * sourceWeight * topicWeight * math.Exp(-e.courseDecayLambda*age)
	}
	return math.Min(bonus, e.maxBonus)
}

// Recompute refreshes all three derived scores for a user from scratch,
// maintaining the invariant total == unified + bonus
func (e *FusionEngine) Recompute(user *model.User, platforms map[string]*model.Platform, finalWeights map[string]float64, now time.Time) {
	user.UnifiedRating = e.UnifiedRating(user, platforms, finalWeights)
	user.CourseBonus = e.CourseBonus(user, now)
	user.TotalRating = user.UnifiedRating + user.CourseBonus
}

func lookupWeight(table map[string]float64, key string, fallback float64) float64 {
	if weight, ok := table[key]; ok {
		return weight
	}
	return fallback
}
