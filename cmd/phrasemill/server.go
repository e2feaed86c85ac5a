package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/phrasemill/phrasemill/pkg/markov"
)

// SharedModel wraps a markov.Model, which is single-threaded by contract,
// with the locking needed to share it across concurrent HTTP handlers.
// Training takes the write lock; generation and stats take read locks.
type SharedModel struct {
	mu    sync.RWMutex
	model *markov.Model
}

// NewSharedModel wraps an already-built model.
func NewSharedModel(model *markov.Model) *SharedModel {
	return &SharedModel{model: model}
}

// Train feeds text to the model under the write lock.
func (s *SharedModel) Train(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Train(text)
}

// Generate produces text under the read lock.
func (s *SharedModel) Generate(startPhrase string, opts markov.GenerateOptions) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model.Generate(startPhrase, opts)
}

// GetStats snapshots the model statistics under the read lock.
func (s *SharedModel) GetStats() markov.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model.GetStats()
}

// TotalTokens returns the trained token count under the read lock.
func (s *SharedModel) TotalTokens() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model.TotalTokens()
}

// Order returns the model order, which is fixed at construction.
func (s *SharedModel) Order() int {
	return s.model.Order()
}

// Server wires the trained model, corpus store, generation cache, and API
// handlers together.
type Server struct {
	config    *Config
	logger    *slog.Logger
	model     *SharedModel
	store     *CorpusStore
	cache     *GenerationCache
	genAPI    *GenerateAPI
	corpusAPI *CorpusAPI
	statsAPI  *StatsAPI
	mux       *http.ServeMux
}

// NewServer builds the model from the stored corpus and registers all API
// routes. Documents that no longer pass validation are skipped with a
// warning rather than failing startup.
func NewServer(ctx context.Context, config *Config, logger *slog.Logger, store *CorpusStore) (*Server, error) {
	model, err := markov.NewModel(config.Server.ModelOrder)
	if err != nil {
		return nil, fmt.Errorf("invalid model order in config: %w", err)
	}
	model.SetLogger(logger)

	docs, err := store.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	for _, doc := range docs {
		if err := model.Train(doc.Content); err != nil {
			logger.Warn("Skipping corpus document during model rebuild",
				slog.String("doc_name", doc.Name),
				slog.Any("error", err),
			)
		}
	}
	logger.Info("Model rebuilt from corpus",
		slog.Int("documents", len(docs)),
		slog.Int("order", model.Order()),
		slog.Int("total_tokens", model.TotalTokens()),
	)

	cache := NewGenerationCache(time.Duration(config.Server.CacheTTLSec) * time.Second)
	shared := NewSharedModel(model)

	server := &Server{
		config:    config,
		logger:    logger,
		model:     shared,
		store:     store,
		cache:     cache,
		genAPI:    NewGenerateAPI(shared, store, cache, config.Generation, logger),
		corpusAPI: NewCorpusAPI(shared, store, logger),
		statsAPI:  NewStatsAPI(shared, store, logger),
		mux:       http.NewServeMux(),
	}

	server.genAPI.RegisterRoutes(server.mux)
	server.corpusAPI.RegisterRoutes(server.mux)
	server.statsAPI.RegisterRoutes(server.mux)

	return server, nil
}

// Close releases the server's store statements and cache loop. The
// database handle is owned by the caller.
func (s *Server) Close() {
	s.store.Close()
	s.cache.Close()
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
