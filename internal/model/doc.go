// Package model defines domain entities and data structures for the UniRank API.
//
// The model package contains all struct definitions for domain objects,
// request/response types, and error definitions. Models are used across all
// layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - Platform: A competitive programming platform with derived weighting
//     signals (difficulty, participation, drift) and append-only history
//   - Course: An immutable course completion fact with verification state
//   - User: A participant aggregating per-platform ratings, course
//     completions, and the derived unified/bonus/total scores
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type RankingEntry struct {
//	    Rank        int     `json:"rank"`
//	    UserID      string  `json:"user_id"`
//	    TotalRating float64 `json:"total_rating"`
//	}
//
// # Error Types
//
// The package defines RFC 9457 Problem Details for the HTTP surface; see
// errors.go.
package model
