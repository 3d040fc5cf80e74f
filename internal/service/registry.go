package service

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/codeclimb/unirank/api/internal/model"
)

// RegistryService owns all platform and user records and orchestrates
// weight and fusion recomputation. It is the only component that mutates
// cross-entity state. Every mutation runs the full recompute before
// returning, and all mutations are serialized behind a single writer lock
// so no reader ever observes a partially-updated state.
type RegistryService struct {
	mu        sync.RWMutex
	platforms map[string]*model.Platform
	users     map[string]*model.User
	userOrder []string // insertion order, used for stable ranking ties
	weights   model.PlatformWeights

	weightEngine *WeightEngine
	fusionEngine *FusionEngine
	verifier     *CourseVerifier
	driftWindow  int
}

// RegistryServiceConfig holds the registry's engine dependencies
type RegistryServiceConfig struct {
	WeightEngine *WeightEngine
	FusionEngine *FusionEngine
	Verifier     *CourseVerifier
	DriftWindow  int
}

// NewRegistryService creates an empty registry
func NewRegistryService(cfg RegistryServiceConfig) *RegistryService {
	driftWindow := cfg.DriftWindow
	if driftWindow == 0 {
		driftWindow = 5
	}
	return &RegistryService{
		platforms:    make(map[string]*model.Platform),
		users:        make(map[string]*model.User),
		weights:      emptyWeights(),
		weightEngine: cfg.WeightEngine,
		fusionEngine: cfg.FusionEngine,
		verifier:     cfg.Verifier,
		driftWindow:  driftWindow,
	}
}

// RegisterPlatform creates a platform slot. Re-registering an existing name
// is a plain overwrite that silently resets the slot.
func (s *RegistryService) RegisterPlatform(ctx context.Context, name string, maxRating float64) (*model.Platform, error) {
	if name == "" {
		return nil, ErrPlatformNameRequired
	}
	if maxRating <= 0 {
		return nil, ErrMaxRatingInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	platform := model.NewPlatform(name, maxRating)
	s.platforms[name] = platform

	snapshot := *platform
	return &snapshot, nil
}

// ApplySnapshot ingests a platform stats snapshot: the platform updates its
// own derived state, any new users are created lazily, then all platform
// weights and every user's scores are recomputed.
func (s *RegistryService) ApplySnapshot(ctx context.Context, name string, difficulty, participation float64, ratings map[string]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	platform, ok := s.platforms[name]
	if !ok {
		return ErrPlatformNotFound
	}

	now := time.Now()
	platform.ApplySnapshot(difficulty, participation, ratings, now, s.driftWindow)

	for userID, rating := range ratings {
		user := s.ensureUser(userID)
		user.PlatformRatings[name] = rating
	}

	s.weights = s.weightEngine.Compute(s.platforms, now)
	s.recomputeAll(now)
	return nil
}

// RecordCompletions appends one completion record per user and re-runs the
// fusion pass. Platform weights are untouched since no platform changed.
func (s *RegistryService) RecordCompletions(ctx context.Context, req *model.RecordCompletionsRequest) ([]model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	verified := true
	if req.Verified != nil {
		verified = *req.Verified
	}

	created := make([]model.Course, 0, len(req.UserIDs))
	for _, userID := range req.UserIDs {
		user := s.ensureUser(userID)

		course := model.Course{
			ID:             uuid.New().String(),
			CourseID:       req.CourseID,
			Name:           req.Name,
			Source:         req.Source,
			Topic:          req.Topic,
			CompletionDate: req.CompletionDate,
			Verified:       verified,
		}
		if len(req.Certificate) > 0 {
			course.Verified = s.verifier.Verify(&course, req.Certificate)
		}
		if course.Verified {
			verifiedOn := now
			course.VerificationDate = &verifiedOn
		}

		user.CompletedCourses = append(user.CompletedCourses, course)
		created = append(created, course)
	}

	s.recomputeAll(now)
	return created, nil
}

// RecordUserRating ingests a single rating observation outside a full
// platform snapshot, recomputing only the affected user against the
// current weights.
func (s *RegistryService) RecordUserRating(ctx context.Context, userID, platformName string, rating float64) error {
	if userID == "" {
		return ErrUserIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	platform, ok := s.platforms[platformName]
	if !ok {
		return ErrPlatformNotFound
	}

	now := time.Now()
	user := s.ensureUser(userID)
	user.PlatformRatings[platformName] = rating
	platform.UserHistory[userID] = append(platform.UserHistory[userID], model.RatingSample{
		Rating:     rating,
		RecordedAt: now,
	})

	s.fusionEngine.Recompute(user, s.platforms, s.weights.Final, now)
	return nil
}

// Rankings returns users ordered by total rating descending. Ties keep
// insertion order. topN <= 0 returns the full leaderboard.
func (s *RegistryService) Rankings(ctx context.Context, topN int) []model.RankingEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]model.RankingEntry, 0, len(s.userOrder))
	for _, userID := range s.userOrder {
		user := s.users[userID]
		entries = append(entries, model.RankingEntry{
			UserID:        user.UserID,
			UnifiedRating: user.UnifiedRating,
			CourseBonus:   user.CourseBonus,
			TotalRating:   user.TotalRating,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalRating > entries[j].TotalRating
	})

	if topN > 0 && topN < len(entries) {
		entries = entries[:topN]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// GetUser returns a copy of a user's record
func (s *RegistryService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}

	snapshot := *user
	snapshot.PlatformRatings = maps.Clone(user.PlatformRatings)
	snapshot.CompletedCourses = slices.Clone(user.CompletedCourses)
	return &snapshot, nil
}

// Weights returns a copy of the current platform weights
func (s *RegistryService) Weights(ctx context.Context) model.PlatformWeights {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return model.PlatformWeights{
		Raw:     maps.Clone(s.weights.Raw),
		Softmax: maps.Clone(s.weights.Softmax),
		Final:   maps.Clone(s.weights.Final),
	}
}

// RefreshScores re-runs weight decay and the fusion pass against the
// current clock. Course bonuses and recency decay drift with wall-clock
// time, so the refresher job calls this periodically even without input.
func (s *RegistryService) RefreshScores(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.weights = s.weightEngine.Compute(s.platforms, now)
	s.recomputeAll(now)
}

// Counts reports the number of registered platforms and known users
func (s *RegistryService) Counts(ctx context.Context) (platforms, users int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.platforms), len(s.users)
}

// ensureUser lazily creates a user record on first appearance.
// Caller must hold the write lock.
func (s *RegistryService) ensureUser(userID string) *model.User {
	if user, ok := s.users[userID]; ok {
		return user
	}
	user := model.NewUser(userID)
	s.users[userID] = user
	s.userOrder = append(s.userOrder, userID)
	return user
}

// recomputeAll runs the full fusion pass over every known user. Always a
// full pass rather than a delta update; this is a deliberate
// simplicity/consistency tradeoff. Caller must hold the write lock.
func (s *RegistryService) recomputeAll(now time.Time) {
	for _, userID := range s.userOrder {
		s.fusionEngine.Recompute(s.users[userID], s.platforms, s.weights.Final, now)
	}
}

func emptyWeights() model.PlatformWeights {
	return model.PlatformWeights{
		Raw:     make(map[string]float64),
		Softmax: make(map[string]float64),
		Final:   make(map[string]float64),
	}
}
