package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/codeclimb/unirank/api/internal/model"
)

func newTestRegistry() *RegistryService {
	return NewRegistryService(RegistryServiceConfig{
		WeightEngine: newTestWeightEngine(),
		FusionEngine: newTestFusionEngine(),
		Verifier:     NewCourseVerifier(),
		DriftWindow:  5,
	})
}

// seedTwoPlatforms registers codeforces and leetcode and applies one
// snapshot each, covering users u1 (both), u2 (codeforces), u3 (leetcode)
func seedTwoPlatforms(t *testing.T, registry *RegistryService) {
	t.Helper()
	ctx := context.Background()

	if _, err := registry.RegisterPlatform(ctx, "codeforces", 3000); err != nil {
		t.Fatalf("register codeforces: %v", err)
	}
	if _, err := registry.RegisterPlatform(ctx, "leetcode", 2500); err != nil {
		t.Fatalf("register leetcode: %v", err)
	}
	if err := registry.ApplySnapshot(ctx, "codeforces", 2100, 0.8, map[string]float64{"u1": 1900, "u2": 2100}); err != nil {
		t.Fatalf("snapshot codeforces: %v", err)
	}
	if err := registry.ApplySnapshot(ctx, "leetcode", 1800, 0.9, map[string]float64{"u1": 2000, "u3": 2200}); err != nil {
		t.Fatalf("snapshot leetcode: %v", err)
	}
}

func TestRegisterPlatformValidation(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()
	ctx := context.Background()

	if _, err := registry.RegisterPlatform(ctx, "", 3000); !errors.Is(err, ErrPlatformNameRequired) {
		t.Errorf("expected ErrPlatformNameRequired, got %v", err)
	}
	if _, err := registry.RegisterPlatform(ctx, "codeforces", 0); !errors.Is(err, ErrMaxRatingInvalid) {
		t.Errorf("expected ErrMaxRatingInvalid for zero max rating, got %v", err)
	}
	if _, err := registry.RegisterPlatform(ctx, "codeforces", -100); !errors.Is(err, ErrMaxRatingInvalid) {
		t.Errorf("expected ErrMaxRatingInvalid for negative max rating, got %v", err)
	}
}

func TestReRegisterResetsPlatform(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()
	ctx := context.Background()

	if _, err := registry.RegisterPlatform(ctx, "codeforces", 3000); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.ApplySnapshot(ctx, "codeforces", 2100, 0.8, map[string]float64{"u1": 1900}); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	platform, err := registry.RegisterPlatform(ctx, "codeforces", 4000)
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if platform.MaxRating != 4000 {
		t.Errorf("max rating = %f, expected 4000", platform.MaxRating)
	}
	if platform.Updated() {
		t.Error("re-registered platform should carry no update state")
	}
	if len(platform.History) != 0 {
		t.Errorf("re-registered platform has %d history entries, expected 0", len(platform.History))
	}
}

func TestApplySnapshotUnregisteredPlatform(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()
	ctx := context.Background()

	err := registry.ApplySnapshot(ctx, "ghost", 2100, 0.8, map[string]float64{"u1": 1900})
	if !errors.Is(err, ErrPlatformNotFound) {
		t.Fatalf("expected ErrPlatformNotFound, got %v", err)
	}

	// no partial mutation: the rating map's users must not have been created
	if _, err := registry.GetUser(ctx, "u1"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("rejected snapshot should not create users, got %v", err)
	}
}

func TestSnapshotFlowUnifiedRatings(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()
	seedTwoPlatforms(t, registry)
	ctx := context.Background()

	u1, err := registry.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("get u1: %v", err)
	}
	// u1 holds real ratings on both platforms, so the weighted average must
	// lie strictly between them
	if u1.UnifiedRating <= 1900 || u1.UnifiedRating >= 2000 {
		t.Errorf("u1 unified rating = %f, expected in (1900, 2000)", u1.UnifiedRating)
	}
	if u1.CourseBonus != 0 {
		t.Errorf("u1 course bonus = %f, expected 0 without completions", u1.CourseBonus)
	}
	if math.Abs(u1.TotalRating-u1.UnifiedRating) > 1e-9 {
		t.Errorf("u1 total = %f, expected to equal unified %f", u1.TotalRating, u1.UnifiedRating)
	}

	// u2's missing leetcode rating imputes to u2's codeforces rating, so the
	// unified rating collapses to it
	u2, err := registry.GetUser(ctx, "u2")
	if err != nil {
		t.Fatalf("get u2: %v", err)
	}
	if math.Abs(u2.UnifiedRating-2100) > 1e-9 {
		t.Errorf("u2 unified rating = %f, expected 2100 via imputation", u2.UnifiedRating)
	}
}

func TestRankingsOrderAndRanks(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()
	seedTwoPlatforms(t, registry)
	ctx := context.Background()

	rankings := registry.Rankings(ctx, 0)

	if len(rankings) != 3 {
		t.Fatalf("expected 3 ranked users, got %d", len(rankings))
	}
	for i, entry := range rankings {
		if entry.Rank != i+1 {
			t.Errorf("entry %d has rank %d", i, entry.Rank)
		}
		if i > 0 && entry.TotalRating > rankings[i-1].TotalRating {
			t.Errorf("rankings not descending at position %d", i)
		}
	}
	if rankings[0].UserID != "u3" {
		t.Errorf("top user = %s, expected u3", rankings[0].UserID)
	}
}

func TestRankingsTopN(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()
	seedTwoPlatforms(t, registry)
	ctx := context.Background()

	rankings := registry.Rankings(ctx, 2)
	if len(rankings) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(rankings))
	}
	if rankings[1].Rank != 2 {
		t.Errorf("second entry rank = %d, expected 2", rankings[1].Rank)
	}

	if got := registry.Rankings(ctx, 100); len(got) != 3 {
		t.Errorf("oversized topN returned %d entries, expected all 3", len(got))
	}
}

func TestRankingsIdempotent(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()
	seedTwoPlatforms(t, registry)
	ctx := context.Background()

	first := registry.Rankings(ctx, 0)
	second := registry.Rankings(ctx, 0)

	if len(first) != len(second) {
		t.Fatalf("ranking sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d changed between reads: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestRecordCompletionsCreatesUsers(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()
	ctx := context.Background()

	created, err := registry.RecordCompletions(ctx, &model.RecordCompletionsRequest{
		CourseID:       "cs101",
		Name:           "Algorithms",
		Source:         "IIT",
		Topic:          "DSA",
		CompletionDate: time.Now(),
		UserIDs:        []string{"fresh1", "fresh2"},
	})
	if err != nil {
		t.Fatalf("record completions: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 course records, got %d", len(created))
	}
	if created[0].ID == created[1].ID {
		t.Error("course records for different users must carry distinct ids")
	}

	user, err := registry.GetUser(ctx, "fresh1")
	if err != nil {
		t.Fatalf("completion should create the user lazily: %v", err)
	}
	if len(user.CompletedCourses) != 1 {
		t.Fatalf("expected 1 completion, got %d", len(user.CompletedCourses))
	}
	if !user.CompletedCourses[0].Verified {
		t.Error("completion without certificate evidence defaults to verified")
	}
	if user.CompletedCourses[0].VerificationDate == nil {
		t.Error("verified completion should carry a verification date")
	}
	// no platforms updated: unified stays 0 while the bonus lands
	if user.UnifiedRating != 0 {
		t.Errorf("unified rating = %f, expected 0 with no platform weights", user.UnifiedRating)
	}
	if math.Abs(user.CourseBonus-50) > 1e-9 {
		t.Errorf("course bonus = %f, expected 50", user.CourseBonus)
	}
	if math.Abs(user.TotalRating-user.CourseBonus) > 1e-9 {
		t.Errorf("total = %f, expected to equal bonus", user.TotalRating)
	}
}

func TestRecordCompletionsCertificateOverridesVerified(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()
	ctx := context.Background()

	created, err := registry.RecordCompletions(ctx, &model.RecordCompletionsRequest{
		CourseID:       "ml1",
		Name:           "Machine Learning",
		Source:         "Coursera",
		Topic:          "AI",
		CompletionDate: time.Now(),
		UserIDs:        []string{"u1"},
		Certificate:    map[string]string{"certificate_url": "http://insecure.example.com"},
	})
	if err != nil {
		t.Fatalf("record completions: %v", err)
	}
	if created[0].Verified {
		t.Error("non-https certificate url should fail verification")
	}
	if created[0].VerificationDate != nil {
		t.Error("unverified completion must not carry a verification date")
	}
}

func TestRecordUserRating(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()
	seedTwoPlatforms(t, registry)
	ctx := context.Background()

	if err := registry.RecordUserRating(ctx, "", "codeforces", 2400); !errors.Is(err, ErrUserIDRequired) {
		t.Errorf("expected ErrUserIDRequired, got %v", err)
	}
	if err := registry.RecordUserRating(ctx, "u1", "ghost", 2400); !errors.Is(err, ErrPlatformNotFound) {
		t.Errorf("expected ErrPlatformNotFound, got %v", err)
	}

	if err := registry.RecordUserRating(ctx, "u1", "codeforces", 2400); err != nil {
		t.Fatalf("record rating: %v", err)
	}
	u1, err := registry.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("get u1: %v", err)
	}
	if u1.PlatformRatings["codeforces"] != 2400 {
		t.Errorf("codeforces rating = %f, expected 2400", u1.PlatformRatings["codeforces"])
	}
	if u1.UnifiedRating <= 2000 {
		t.Errorf("unified rating = %f, expected to rise above 2000 after the update", u1.UnifiedRating)
	}
}

func TestGetUserReturnsCopy(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()
	seedTwoPlatforms(t, registry)
	ctx := context.Background()

	u1, err := registry.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("get u1: %v", err)
	}
	u1.PlatformRatings["codeforces"] = -1

	again, err := registry.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("get u1 again: %v", err)
	}
	if again.PlatformRatings["codeforces"] == -1 {
		t.Error("mutating a returned user leaked into registry state")
	}
}

func TestWeightsSnapshotIsolated(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()
	seedTwoPlatforms(t, registry)
	ctx := context.Background()

	weights := registry.Weights(ctx)
	if len(weights.Final) != 2 {
		t.Fatalf("expected 2 final weights, got %d", len(weights.Final))
	}
	weights.Final["codeforces"] = 99

	if registry.Weights(ctx).Final["codeforces"] == 99 {
		t.Error("mutating returned weights leaked into registry state")
	}
}

func TestRefreshScoresKeepsInvariant(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()
	seedTwoPlatforms(t, registry)
	ctx := context.Background()

	registry.RefreshScores(ctx)

	for _, entry := range registry.Rankings(ctx, 0) {
		if math.Abs(entry.TotalRating-(entry.UnifiedRating+entry.CourseBonus)) > 1e-9 {
			t.Errorf("user %s: total %f != unified %f + bonus %f",
				entry.UserID, entry.TotalRating, entry.UnifiedRating, entry.CourseBonus)
		}
	}
}

func TestCounts(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()
	seedTwoPlatforms(t, registry)

	platforms, users := registry.Counts(context.Background())
	if platforms != 2 {
		t.Errorf("platform count = %d, expected 2", platforms)
	}
	if users != 3 {
		t.Errorf("user count = %d, expected 3", users)
	}
}
