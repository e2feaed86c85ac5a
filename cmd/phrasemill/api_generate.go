package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrasemill/phrasemill/pkg/markov"
)

// GenerateAPI holds the dependencies for the generation endpoint.
type GenerateAPI struct {
	model    *SharedModel
	store    *CorpusStore
	cache    *GenerationCache
	defaults *GenerationConfig
	logger   *slog.Logger
}

// NewGenerateAPI creates a new instance of the GenerateAPI.
func NewGenerateAPI(model *SharedModel, store *CorpusStore, cache *GenerationCache, defaults *GenerationConfig, logger *slog.Logger) *GenerateAPI {
	return &GenerateAPI{
		model:    model,
		store:    store,
		cache:    cache,
		defaults: defaults,
		logger:   logger,
	}
}

// RegisterRoutes sets up the routing for the /api/generate endpoint.
func (a *GenerateAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/generate", a.handleGenerate)
}

// GenerateRequest is the request body for /api/generate. Unset option
// fields fall back to the configured defaults.
type GenerateRequest struct {
	StartPhrase   string   `json:"start_phrase,omitempty"`
	MinLength     *int     `json:"min_length,omitempty"`
	MaxLength     *int     `json:"max_length,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
	EndOnSentence *bool    `json:"end_on_sentence,omitempty"`
	// Cached opts this request into the short-lived response cache,
	// trading sampling freshness for throughput.
	Cached bool `json:"cached,omitempty"`
}

// GenerateResponse is the response body for /api/generate.
type GenerateResponse struct {
	Output     string `json:"output"`
	TokenCount int    `json:"token_count"`
	Cached     bool   `json:"cached"`
}

func (a *GenerateAPI) options(req *GenerateRequest) markov.GenerateOptions {
	opts := markov.GenerateOptions{
		MinLength:     a.defaults.MinLength,
		MaxLength:     a.defaults.MaxLength,
		Temperature:   a.defaults.Temperature,
		EndOnSentence: a.defaults.EndOnSentence,
	}
	if req.MinLength != nil {
		opts.MinLength = *req.MinLength
	}
	if req.MaxLength != nil {
		opts.MaxLength = *req.MaxLength
	}
	if req.Temperature != nil {
		opts.Temperature = *req.Temperature
	}
	if req.EndOnSentence != nil {
		opts.EndOnSentence = *req.EndOnSentence
	}
	return opts
}

func (a *GenerateAPI) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON request body")
		return
	}

	opts := a.options(&req)

	key := cacheKey(req.StartPhrase, opts)
	if req.Cached {
		if output, ok := a.cache.Get(key); ok {
			respondWithJSON(w, http.StatusOK, GenerateResponse{
				Output:     output,
				TokenCount: len(strings.Fields(output)),
				Cached:     true,
			})
			return
		}
	}

	output, err := a.model.Generate(req.StartPhrase, opts)
	if err != nil {
		if markov.IsValidationError(err) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		a.logger.Error("Generation failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Generation failed")
		return
	}

	tokenCount := len(strings.Fields(output))
	if req.Cached {
		a.cache.Set(key, output)
	}

	// The audit log is best effort; a logging failure must not fail the
	// request that already produced output.
	if err := a.store.LogGeneration(r.Context(), req.StartPhrase, output, tokenCount); err != nil {
		a.logger.Warn("Failed to log generation", "error", err)
	}

	a.logger.Debug("Text generated",
		slog.String("start_phrase", req.StartPhrase),
		slog.Int("token_count", tokenCount),
	)

	respondWithJSON(w, http.StatusOK, GenerateResponse{
		Output:     output,
		TokenCount: tokenCount,
	})
}
