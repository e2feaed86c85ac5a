package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// SetupStoreSchema initializes the corpus and generation-log tables. It is
// idempotent and safe to call on an already-initialized database.
func SetupStoreSchema(db *sql.DB) error {

	const (
		schemaDocuments = `
CREATE TABLE IF NOT EXISTS corpus_documents (
    doc_id INTEGER PRIMARY KEY,
    doc_name TEXT NOT NULL UNIQUE,
    content TEXT NOT NULL,
    added_at TEXT NOT NULL
);
`
		schemaGenerations = `
CREATE TABLE IF NOT EXISTS generation_log (
    gen_id INTEGER PRIMARY KEY,
    start_phrase TEXT NOT NULL,
    output TEXT NOT NULL,
    token_count INTEGER NOT NULL,
    created_at TEXT NOT NULL
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaDocuments); err != nil {
		return fmt.Errorf("could not create corpus schema: %w", err)
	}

	if _, err = tx.Exec(schemaGenerations); err != nil {
		return fmt.Errorf("could not create generation log schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// Document is a raw training text stored in the corpus database.
type Document struct {
	Id      int    `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
	AddedAt string `json:"added_at"`
}

// GenerationRecord is one audited generation run.
type GenerationRecord struct {
	Id          int    `json:"id"`
	StartPhrase string `json:"start_phrase"`
	Output      string `json:"output"`
	TokenCount  int    `json:"token_count"`
	CreatedAt   string `json:"created_at"`
}

// CorpusStore persists raw training documents and an audit log of
// generation runs. Only text is stored: the Markov model itself is
// rebuilt from the corpus on startup and never serialized.
type CorpusStore struct {
	db             *sql.DB
	stmtAddDoc     *sql.Stmt
	stmtRemoveDoc  *sql.Stmt
	stmtListDocs   *sql.Stmt
	stmtDocCount   *sql.Stmt
	stmtAddGen     *sql.Stmt
	stmtRecentGens *sql.Stmt
	stmtGenCount   *sql.Stmt
	logger         *slog.Logger
}

// NewCorpusStore creates a CorpusStore over an initialized database,
// pre-compiling all necessary SQL statements.
func NewCorpusStore(db *sql.DB) (*CorpusStore, error) {
	stmtAddDoc, err := db.Prepare(`INSERT INTO corpus_documents (doc_name, content, added_at) VALUES (?, ?, ?) ON CONFLICT(doc_name) DO NOTHING;`)
	if err != nil {
		return nil, err
	}

	stmtRemoveDoc, err := db.Prepare(`DELETE FROM corpus_documents WHERE doc_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtListDocs, err := db.Prepare(`SELECT doc_id, doc_name, content, added_at FROM corpus_documents ORDER BY doc_id;`)
	if err != nil {
		return nil, err
	}

	stmtDocCount, err := db.Prepare(`SELECT COUNT(*) FROM corpus_documents;`)
	if err != nil {
		return nil, err
	}

	stmtAddGen, err := db.Prepare(`INSERT INTO generation_log (start_phrase, output, token_count, created_at) VALUES (?, ?, ?, ?);`)
	if err != nil {
		return nil, err
	}

	stmtRecentGens, err := db.Prepare(`SELECT gen_id, start_phrase, output, token_count, created_at FROM generation_log ORDER BY gen_id DESC LIMIT ?;`)
	if err != nil {
		return nil, err
	}

	stmtGenCount, err := db.Prepare(`SELECT COUNT(*) FROM generation_log;`)
	if err != nil {
		return nil, err
	}

	return &CorpusStore{
		db:             db,
		stmtAddDoc:     stmtAddDoc,
		stmtRemoveDoc:  stmtRemoveDoc,
		stmtListDocs:   stmtListDocs,
		stmtDocCount:   stmtDocCount,
		stmtAddGen:     stmtAddGen,
		stmtRecentGens: stmtRecentGens,
		stmtGenCount:   stmtGenCount,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared SQL statements held by the store.
func (s *CorpusStore) Close() {
	_ = s.stmtAddDoc.Close()
	_ = s.stmtRemoveDoc.Close()
	_ = s.stmtListDocs.Close()
	_ = s.stmtDocCount.Close()
	_ = s.stmtAddGen.Close()
	_ = s.stmtRecentGens.Close()
	_ = s.stmtGenCount.Close()
}

// SetLogger sets the logger for the store. By default, all logs are
// discarded.
func (s *CorpusStore) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// AddDocument inserts a named document, reporting whether a row was
// actually inserted. A false return with a nil error means the name is
// already taken.
func (s *CorpusStore) AddDocument(ctx context.Context, name, content string) (bool, error) {
	res, err := s.stmtAddDoc.ExecContext(ctx, name, content, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("failed to insert corpus document %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		s.logger.Info("Corpus document added",
			slog.String("doc_name", name),
			slog.Int("content_bytes", len(content)),
		)
	}
	return affected > 0, nil
}

// RemoveDocument deletes a document by name. Removing a missing document
// is not an error.
func (s *CorpusStore) RemoveDocument(ctx context.Context, name string) error {
	if _, err := s.stmtRemoveDoc.ExecContext(ctx, name); err != nil {
		return fmt.Errorf("failed to remove corpus document %q: %w", name, err)
	}
	return nil
}

// Documents returns every stored document in insertion order.
func (s *CorpusStore) Documents(ctx context.Context) ([]Document, error) {
	rows, err := s.stmtListDocs.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var docs []Document
	for rows.Next() {
		var doc Document
		if err = rows.Scan(&doc.Id, &doc.Name, &doc.Content, &doc.AddedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// LogGeneration appends one generation run to the audit log.
func (s *CorpusStore) LogGeneration(ctx context.Context, startPhrase, output string, tokenCount int) error {
	_, err := s.stmtAddGen.ExecContext(ctx, startPhrase, output, tokenCount, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to log generation: %w", err)
	}
	return nil
}

// RecentGenerations returns up to limit audit entries, newest first.
func (s *CorpusStore) RecentGenerations(ctx context.Context, limit int) ([]GenerationRecord, error) {
	rows, err := s.stmtRecentGens.QueryContext(ctx, limit)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var records []GenerationRecord
	for rows.Next() {
		var rec GenerationRecord
		if err = rows.Scan(&rec.Id, &rec.StartPhrase, &rec.Output, &rec.TokenCount, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Counts returns the number of stored documents and logged generations.
func (s *CorpusStore) Counts(ctx context.Context) (documents, generations int, err error) {
	if err = s.stmtDocCount.QueryRowContext(ctx).Scan(&documents); err != nil {
		return 0, 0, err
	}
	if err = s.stmtGenCount.QueryRowContext(ctx).Scan(&generations); err != nil {
		return 0, 0, err
	}
	return documents, generations, nil
}
