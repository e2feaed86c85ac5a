package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/phrasemill/phrasemill/pkg/markov"
)

// CorpusAPI holds the dependencies for the corpus endpoints.
type CorpusAPI struct {
	model  *SharedModel
	store  *CorpusStore
	logger *slog.Logger
}

// NewCorpusAPI creates a new instance of the CorpusAPI.
func NewCorpusAPI(model *SharedModel, store *CorpusStore, logger *slog.Logger) *CorpusAPI {
	return &CorpusAPI{
		model:  model,
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes sets up the routing for the /api/corpus endpoints.
func (c *CorpusAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/corpus", c.handleCorpus)
}

// AddDocumentRequest is the request body for adding a corpus document.
type AddDocumentRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// handleCorpus handles GET for listing documents and POST for adding one
// and training the model on it.
func (c *CorpusAPI) handleCorpus(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		docs, err := c.store.Documents(r.Context())
		if err != nil {
			c.logger.Error("Failed to list corpus documents", "error", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to list corpus documents")
			return
		}
		if docs == nil {
			docs = []Document{}
		}
		respondWithJSON(w, http.StatusOK, docs)

	case http.MethodPost:
		var req AddDocumentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid JSON request body")
			return
		}
		if req.Name == "" {
			respondWithError(w, http.StatusBadRequest, "Document name is required")
			return
		}

		inserted, err := c.store.AddDocument(r.Context(), req.Name, req.Content)
		if err != nil {
			c.logger.Error("Failed to store corpus document", "name", req.Name, "error", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to store corpus document")
			return
		}
		if !inserted {
			respondWithError(w, http.StatusConflict, "A document with that name already exists")
			return
		}

		// Train after the insert so a name conflict never mutates the
		// model; a failed validation rolls the document back instead.
		if err := c.model.Train(req.Content); err != nil {
			if removeErr := c.store.RemoveDocument(r.Context(), req.Name); removeErr != nil {
				c.logger.Error("Failed to roll back rejected document", "name", req.Name, "error", removeErr)
			}
			if markov.IsValidationError(err) {
				respondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			c.logger.Error("Training failed", "name", req.Name, "error", err)
			respondWithError(w, http.StatusInternalServerError, "Training failed")
			return
		}

		c.logger.Info("Corpus document trained",
			slog.String("doc_name", req.Name),
			slog.Int("total_tokens", c.model.TotalTokens()),
		)
		w.WriteHeader(http.StatusCreated)

	default:
		w.Header().Set("Allow", "GET, POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
