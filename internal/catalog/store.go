// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists term definitions in a SQLite database so that
// builds and queries do not need to re-read the source files.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/schema-builder/internal/termsource"
	"github.com/pdiddy/schema-builder/pkg/types"
)

// DefaultPath is the catalog location when none is configured.
const DefaultPath = "catalog/terms.db"

// Store manages the term catalog SQLite database.
type Store struct {
	db         *sql.DB
	path       string
	maxResults int
}

// NewStore opens or creates the catalog database at cfg.Path, creating
// the parent directory and schema if they do not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, path: path, maxResults: maxResults}
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

// schemaVersion is stored in PRAGMA user_version. Catalogs written with an
// older layout are dropped and rebuilt by the next import.
const schemaVersion = 2

func (s *Store) createSchema() error {
	var version int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	var statements []string
	if version != schemaVersion {
		statements = append(statements,
			`DROP TABLE IF EXISTS terms`,
			`DROP TABLE IF EXISTS indexing_status`,
		)
	}
	statements = append(statements,
		`CREATE TABLE IF NOT EXISTS terms (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			type TEXT NOT NULL,
			label TEXT,
			comment TEXT,
			layer TEXT,
			source_file TEXT NOT NULL,
			position INTEGER NOT NULL,
			definition TEXT NOT NULL,
			UNIQUE (source_file, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_terms_id ON terms(id)`,
		`CREATE INDEX IF NOT EXISTS idx_terms_type ON terms(type)`,
		`CREATE INDEX IF NOT EXISTS idx_terms_source_file ON terms(source_file)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			source_file TEXT PRIMARY KEY,
			file_order INTEGER NOT NULL DEFAULT 0,
			file_mod_time TEXT
		)`,
		fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion),
	)
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from a catalog import run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Removed int
	Failed  int
}

// Total returns the number of files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Removed + s.Failed
}

// Ingest imports the term files matched by patterns. Files whose
// modification time is unchanged since the last import are skipped;
// changed files have their terms replaced; files imported before but no
// longer matched have their terms removed. Every file's position in the
// pattern expansion is recorded so that Terms returns definitions in the
// order LoadFiles would. Per-file progress is written to w.
func (s *Store) Ingest(ctx context.Context, patterns []string, w io.Writer) (IngestSummary, error) {
	files, err := termsource.ExpandPatterns(patterns)
	if err != nil {
		return IngestSummary{}, err
	}

	var summary IngestSummary
	current := make(map[string]bool, len(files))

	for order, path := range files {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}
		current[path] = true

		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE source_file = ?`, path,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			if _, err := s.db.ExecContext(ctx,
				`UPDATE indexing_status SET file_order = ? WHERE source_file = ?`, order, path,
			); err != nil {
				return summary, fmt.Errorf("updating file order: %w", err)
			}
			fmt.Fprintf(w, "skipped %s\n", path)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		terms, err := termsource.LoadFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}

		if err := s.ingestFile(ctx, path, order, terms, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d terms)\n", path, len(terms))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d terms)\n", path, len(terms))
			summary.Indexed++
		}
	}

	stale, err := s.staleFiles(ctx, current)
	if err != nil {
		return summary, err
	}
	for _, path := range stale {
		if err := s.removeFile(ctx, path); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}
		fmt.Fprintf(w, "removed %s\n", path)
		summary.Removed++
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, removed: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Removed, summary.Failed)

	return summary, nil
}

func (s *Store) ingestFile(ctx context.Context, path string, order int, terms []types.Term, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM terms WHERE source_file = ?`, path); err != nil {
		return fmt.Errorf("deleting old terms: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO terms (id, type, label, comment, layer, source_file, position, definition)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for pos, t := range terms {
		if t.ID == "" {
			return fmt.Errorf("term with label %q has no id", t.Label)
		}
		def, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("encoding term %s: %w", t.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			t.ID, string(t.Type), t.Label, t.Comment, t.Layer, path, pos, string(def),
		); err != nil {
			return fmt.Errorf("inserting term %s: %w", t.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (source_file, file_order, file_mod_time) VALUES (?, ?, ?)
		 ON CONFLICT(source_file) DO UPDATE SET
		   file_order=excluded.file_order, file_mod_time=excluded.file_mod_time`,
		path, order, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}

func (s *Store) staleFiles(ctx context.Context, current map[string]bool) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT source_file FROM indexing_status`)
	if err != nil {
		return nil, fmt.Errorf("listing indexed files: %w", err)
	}
	defer rows.Close()

	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if !current[path] {
			stale = append(stale, path)
		}
	}
	sort.Strings(stale)
	return stale, rows.Err()
}

func (s *Store) removeFile(ctx context.Context, path string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM terms WHERE source_file = ?`, path); err != nil {
		return fmt.Errorf("deleting terms: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM indexing_status WHERE source_file = ?`, path); err != nil {
		return fmt.Errorf("deleting indexing status: %w", err)
	}
	return tx.Commit()
}

// Terms returns every stored definition in import order: by the file's
// position in the last import, then by position within the file. Repeated
// definitions are all returned; termsource.New merges them.
func (s *Store) Terms(ctx context.Context) ([]types.Term, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.definition FROM terms t
		 JOIN indexing_status f ON f.source_file = t.source_file
		 ORDER BY f.file_order, t.position`)
	if err != nil {
		return nil, fmt.Errorf("reading terms: %w", err)
	}
	defer rows.Close()

	var terms []types.Term
	for rows.Next() {
		var def string
		if err := rows.Scan(&def); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		var t types.Term
		if err := json.Unmarshal([]byte(def), &t); err != nil {
			return nil, fmt.Errorf("decoding term: %w", err)
		}
		t.Subs = nil
		terms = append(terms, t)
	}
	return terms, rows.Err()
}
