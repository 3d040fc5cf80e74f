package handler

import (
	"net/http"
	"strconv"

	"github.com/codeclimb/unirank/api/internal/service"
)

// RankingHandler handles leaderboard and weight HTTP requests
type RankingHandler struct {
	registry *service.RegistryService
}

// NewRankingHandler creates a new ranking handler
func NewRankingHandler(registry *service.RegistryService) *RankingHandler {
	return &RankingHandler{registry: registry}
}

// List handles GET /v1/rankings
func (h *RankingHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	rankings := h.registry.Rankings(ctx, limit)
	WriteCollection(w, http.StatusOK, rankings, len(rankings))
}

// Weights handles GET /v1/weights
func (h *RankingHandler) Weights(w http.ResponseWriter, r *http.Request) {
	weights := h.registry.Weights(r.Context())
	WriteData(w, http.StatusOK, weights, nil)
}
