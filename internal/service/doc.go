// Package service implements the rating engine business logic.
//
// The package is organized around three computation layers and one
// orchestrator:
//
//   - WeightEngine: turns platform difficulty/participation/drift signals
//     into softmax-normalized, recency-decayed platform weights
//   - FusionEngine: combines a user's per-platform ratings (imputing
//     missing ones) and verified course completions into unified, bonus,
//     and total scores
//   - CourseVerifier: per-source certificate verification strategies
//   - RegistryService: owns all platform/user state, serializes mutations,
//     and re-runs the weight and fusion passes on every change
//
// AnalyticsService layers read-only descriptive statistics on top of the
// registry.
//
// All state is in memory; nothing survives a restart.
package service
