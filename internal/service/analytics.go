package service

import (
	"context"
	"math"
	"sort"

	"github.com/codeclimb/unirank/api/internal/model"
)

// AnalyticsService computes descriptive statistics over the registry's
// current state. It reads the registry directly under its read lock and
// never mutates anything.
type AnalyticsService struct {
	registry *RegistryService
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(registry *RegistryService) *AnalyticsService {
	return &AnalyticsService{registry: registry}
}

// PlatformStats summarizes the distribution of user ratings on one platform
func (s *AnalyticsService) PlatformStats(ctx context.Context, name string) (*model.PlatformStats, error) {
	s.registry.mu.RLock()
	defer s.registry.mu.RUnlock()

	platform, ok := s.registry.platforms[name]
	if !ok {
		return nil, ErrPlatformNotFound
	}

	ratings := make([]float64, 0, len(s.registry.users))
	for _, user := range s.registry.users {
		if rating, ok := user.PlatformRatings[name]; ok {
			ratings = append(ratings, rating)
		}
	}
	if len(ratings) == 0 {
		return nil, ErrNoPlatformRatings
	}

	sort.Float64s(ratings)

	stats := &model.PlatformStats{
		Name:          name,
		Users:         len(ratings),
		Average:       mean(ratings),
		Median:        percentile(ratings, 50),
		StdDev:        stddev(ratings),
		Min:           ratings[0],
		Max:           ratings[len(ratings)-1],
		Difficulty:    platform.Difficulty,
		Participation: platform.Participation,
		Weight:        s.registry.weights.Final[name],
	}
	stats.Quartiles = [3]float64{
		percentile(ratings, 25),
		percentile(ratings, 50),
		percentile(ratings, 75),
	}
	return stats, nil
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev is the population standard deviation
func stddev(values []float64) float64 {
	m := mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// percentile linearly interpolates between the two nearest ranks.
// Input must be sorted ascending.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
