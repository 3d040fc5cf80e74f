package model

// User aggregates a participant's per-platform ratings, completed courses,
// and derived scores. After every recompute pass the invariant
// TotalRating == UnifiedRating + CourseBonus holds.
type User struct {
	UserID           string             `json:"user_id"`
	PlatformRatings  map[string]float64 `json:"platform_ratings"`
	CompletedCourses []Course           `json:"completed_courses"`
	UnifiedRating    float64            `json:"unified_rating"`
	CourseBonus      float64            `json:"course_bonus"`
	TotalRating      float64            `json:"total_rating"`
}

// NewUser creates a user record with zeroed scores
func NewUser(userID string) *User {
	return &User{
		UserID:          userID,
		PlatformRatings: make(map[string]float64),
	}
}

// RankingEntry is one row of the leaderboard
type RankingEntry struct {
	Rank          int     `json:"rank"`
	UserID        string  `json:"user_id"`
	UnifiedRating float64 `json:"unified_rating"`
	CourseBonus   float64 `json:"course_bonus"`
	TotalRating   float64 `json:"total_rating"`
}

// RecordRatingRequest is the payload for ingesting a single rating
// observation outside a full platform snapshot
type RecordRatingRequest struct {
	Rating float64 `json:"rating"`
}
