package service

import (
	"math"
	"time"

	"github.com/codeclimb/unirank/api/internal/model"
)

// softmaxEpsilon floors the softmax denominator so an empty platform set
// cannot divide by zero
const softmaxEpsilon = 1e-8

// WeightEngine converts each platform's (difficulty, participation, drift)
// signals into a probability-like weight over platforms, then applies a
// per-platform recency decay. Recomputation is O(#platforms) and runs in
// full on every platform update, trading efficiency for always-consistent
// global weights.
type WeightEngine struct {
	alpha       float64
	beta        float64
	gamma       float64
	decayLambda float64
}

// WeightEngineConfig holds the raw-weight coefficients and recency decay rate
type WeightEngineConfig struct {
	Alpha       float64 // difficulty coefficient
	Beta        float64 // participation coefficient
	Gamma       float64 // drift coefficient
	DecayLambda float64 // per-day recency decay
}

// NewWeightEngine creates a new weight engine
func NewWeightEngine(cfg WeightEngineConfig) *WeightEngine {
	return &WeightEngine{
		alpha:       cfg.Alpha,
		beta:        cfg.Beta,
		gamma:       cfg.Gamma,
		decayLambda: cfg.DecayLambda,
	}
}

// Compute derives raw, softmax-normalized, and recency-decayed weights for
// every platform that has received at least one snapshot. Platforms never
// updated are absent from all three maps and therefore contribute zero
// weight to fusion.
func (e *WeightEngine) Compute(platforms map[string]*model.Platform, now time.Time) model.PlatformWeights {
	weights := model.PlatformWeights{
		Raw:     make(map[string]float64),
		Softmax: make(map[string]float64),
		Final:   make(map[string]float64),
	}

	for name, platform := range platforms {
		if !platform.Updated() {
			continue
		}
		weights.Raw[name] = e.alpha*platform.Difficulty +
			e.beta*platform.Participation +
			e.gamma*platform.Drift
	}

	expWeights := make(map[string]float64, len(weights.Raw))
	var sumExp float64
	for name, raw := range weights.Raw {
		exp := math.Exp(raw)
		expWeights[name] = exp
		sumExp += exp
	}
	if sumExp == 0 {
		sumExp = softmaxEpsilon
	}
	for name, exp := range expWeights {
		weights.Softmax[name] = exp / sumExp
	}

	// Staleness decay: a platform not updated recently contributes less
	// even if historically important
	for name, platform := range platforms {
		if !platform.Updated() {
			continue
		}
		age := daysSince(platform.LastUpdate, now)
		weights.Final[name] = weights.Softmax[name] * math.Exp(-e.decayLambda*float64(age))
	}

	return weights
}

// daysSince returns the whole days elapsed between t and now
func daysSince(t, now time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}
