package main

import (
	"log/slog"
	"net/http"
	"strconv"
)

// StatsAPI holds the dependencies for the statistics endpoints.
type StatsAPI struct {
	model  *SharedModel
	store  *CorpusStore
	logger *slog.Logger
}

// NewStatsAPI creates a new instance of the StatsAPI.
func NewStatsAPI(model *SharedModel, store *CorpusStore, logger *slog.Logger) *StatsAPI {
	return &StatsAPI{
		model:  model,
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes sets up the routing for the /api/stats endpoints.
func (s *StatsAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/generations", s.handleGenerations)
}

// ModelStatsResponse mirrors markov.Stats for JSON output.
type ModelStatsResponse struct {
	VocabularySize             int     `json:"vocabulary_size"`
	TotalTransitions           int     `json:"total_transitions"`
	StartSequences             int     `json:"start_sequences"`
	EndSequences               int     `json:"end_sequences"`
	TotalTokens                int     `json:"total_tokens"`
	AverageTransitionsPerState float64 `json:"average_transitions_per_state"`
}

// StatsResponse aggregates model and store statistics.
type StatsResponse struct {
	Order       int                `json:"order"`
	Model       ModelStatsResponse `json:"model"`
	Documents   int                `json:"documents"`
	Generations int                `json:"generations"`
}

func (s *StatsAPI) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	documents, generations, err := s.store.Counts(r.Context())
	if err != nil {
		s.logger.Error("Failed to query store counts", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}

	stats := s.model.GetStats()
	respondWithJSON(w, http.StatusOK, StatsResponse{
		Order: s.model.Order(),
		Model: ModelStatsResponse{
			VocabularySize:             stats.VocabularySize,
			TotalTransitions:           stats.TotalTransitions,
			StartSequences:             stats.StartSequences,
			EndSequences:               stats.EndSequences,
			TotalTokens:                stats.TotalTokens,
			AverageTransitionsPerState: stats.AverageTransitionsPerState,
		},
		Documents:   documents,
		Generations: generations,
	})
}

func (s *StatsAPI) handleGenerations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := s.store.RecentGenerations(r.Context(), limit)
	if err != nil {
		s.logger.Error("Failed to query generation log", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to query generation log")
		return
	}
	if records == nil {
		records = []GenerationRecord{}
	}
	respondWithJSON(w, http.StatusOK, records)
}
