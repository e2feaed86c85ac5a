package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// CorpusManifest describes seed documents to load into the corpus store
// on startup.
type CorpusManifest struct {
	Documents []ManifestDocument `toml:"documents"`
}

// ManifestDocument is one entry of a corpus manifest: a document name and
// the path of the text file holding its content.
type ManifestDocument struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// LoadCorpusManifest parses a corpus manifest TOML file. A missing file
// is not an error; it yields an empty manifest.
func LoadCorpusManifest(path string) (*CorpusManifest, error) {
	var manifest CorpusManifest
	if _, err := toml.DecodeFile(path, &manifest); err != nil {
		if os.IsNotExist(err) {
			return &manifest, nil
		}
		return nil, fmt.Errorf("failed to parse corpus manifest %q: %w", path, err)
	}
	return &manifest, nil
}

// ImportManifest reads each manifest document from disk and inserts it
// into the store. Relative paths are resolved against baseDir. Documents
// already present by name are skipped, so repeated startups do not
// duplicate the corpus.
func ImportManifest(ctx context.Context, store *CorpusStore, manifest *CorpusManifest, baseDir string, logger *slog.Logger) error {
	for _, doc := range manifest.Documents {
		if doc.Name == "" || doc.Path == "" {
			return fmt.Errorf("corpus manifest entry must set both name and path, got %+v", doc)
		}

		path := doc.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read corpus document %q: %w", doc.Name, err)
		}

		inserted, err := store.AddDocument(ctx, doc.Name, string(content))
		if err != nil {
			return err
		}
		if inserted {
			logger.Info("Corpus document imported from manifest",
				slog.String("doc_name", doc.Name),
				slog.String("path", path),
				slog.Int("content_bytes", len(content)),
			)
		} else {
			logger.Debug("Corpus document already present, skipping",
				slog.String("doc_name", doc.Name),
			)
		}
	}
	return nil
}
