// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session persists advisor run history in a local SQLite database
// so past recommendations can be listed, inspected, and exported.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-advisor/pkg/types"
)

const (
	dbFile         = "advisor.db"
	exportYAMLFile = "export.yaml"
	exportJSONFile = "export.json"
)

// excerptLen bounds the draft excerpt stored for run listings.
const excerptLen = 80

// Store manages the run-history SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the history database at
// sessionsDir/advisor.db, creating the schema if needed.
func NewStore(cfg types.SessionConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.SessionsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating sessions directory: %w", err)
	}

	dbPath := filepath.Join(cfg.SessionsDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, dir: cfg.SessionsDir, maxResults: maxResults}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			draft TEXT,
			topic_count INTEGER,
			report TEXT,
			narrative TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS topics (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			topic TEXT,
			explanation TEXT,
			categories TEXT,
			refs TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_topics_run_id ON topics(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save persists one pipeline run and its topics in a transaction.
func (s *Store) Save(ctx context.Context, run *types.PipelineRun) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, draft, topic_count, report, narrative)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(time.RFC3339), run.Draft,
		len(run.Topics), run.Report, run.Narrative,
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", run.ID, err)
	}

	for i, t := range run.Topics {
		catsJSON, err := json.Marshal(t.RelatedCategories)
		if err != nil {
			return fmt.Errorf("encoding categories: %w", err)
		}
		refsJSON, err := json.Marshal(t.RecommendedReferences)
		if err != nil {
			return fmt.Errorf("encoding references: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO topics (run_id, position, topic, explanation, categories, refs)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, i, t.Topic, t.Explanation, string(catsJSON), string(refsJSON),
		)
		if err != nil {
			return fmt.Errorf("inserting topic %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// RunSummary is a listing row of the run history.
type RunSummary struct {
	ID           string    `json:"id" yaml:"id"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
	DraftExcerpt string    `json:"draft_excerpt" yaml:"draft_excerpt"`
	TopicCount   int       `json:"topic_count" yaml:"topic_count"`
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, draft, topic_count
		 FROM runs ORDER BY created_at DESC LIMIT ?`, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var (
			sum       RunSummary
			createdAt string
			draft     sql.NullString
		)
		if err := rows.Scan(&sum.ID, &createdAt, &draft, &sum.TopicCount); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		sum.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if draft.Valid {
			sum.DraftExcerpt = excerpt(draft.String)
		}
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// Get returns one persisted run with its topics reassembled in order.
func (s *Store) Get(ctx context.Context, id string) (*types.PipelineRun, error) {
	var (
		run       types.PipelineRun
		createdAt string
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, draft, report, narrative FROM runs WHERE id = ?`, id,
	).Scan(&run.ID, &createdAt, &run.Draft, &run.Report, &run.Narrative)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run %s not found", id)
		}
		return nil, fmt.Errorf("looking up run: %w", err)
	}
	run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	rows, err := s.db.QueryContext(ctx,
		`SELECT topic, explanation, categories, refs
		 FROM topics WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("querying topics: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			t        types.Topic
			catsJSON sql.NullString
			refsJSON sql.NullString
		)
		if err := rows.Scan(&t.Topic, &t.Explanation, &catsJSON, &refsJSON); err != nil {
			return nil, fmt.Errorf("scanning topic: %w", err)
		}
		if catsJSON.Valid {
			json.Unmarshal([]byte(catsJSON.String), &t.RelatedCategories)
		}
		if refsJSON.Valid {
			json.Unmarshal([]byte(refsJSON.String), &t.RecommendedReferences)
		}
		run.Topics = append(run.Topics, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &run, nil
}

// ExportYAML writes the full run history to sessionsDir/export.yaml.
func (s *Store) ExportYAML(ctx context.Context) error {
	runs, err := s.allRuns(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(runs)
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, exportYAMLFile), data, 0o644)
}

// ExportJSON writes the full run history to sessionsDir/export.json.
func (s *Store) ExportJSON(ctx context.Context) error {
	runs, err := s.allRuns(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, exportJSONFile), data, 0o644)
}

// allRuns loads every persisted run, newest first.
func (s *Store) allRuns(ctx context.Context) ([]*types.PipelineRun, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	runs := make([]*types.PipelineRun, 0, len(ids))
	for _, id := range ids {
		run, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// excerpt truncates a draft for listing display.
func excerpt(draft string) string {
	if len(draft) <= excerptLen {
		return draft
	}
	return draft[:excerptLen-3] + "..."
}
