// Package store persists cases, summonses, and sections in SQLite.
// It is the only shared mutable resource in the drafting engine; every
// other component is a pure function of its inputs.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"dagdraft/internal/logging"
)

// LocalStore is the SQLite-backed section store.
//
// Only durable section statuses (pending, draft, approved, needs_changes)
// are ever written; the transient generating status lives in memory inside
// the engine. Section draft updates carry an optimistic generation-count
// check so two overlapping regeneration attempts can never silently clobber
// each other's write.
type LocalStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// ErrStaleGeneration is returned when a draft write loses the optimistic
// generation-count check to a concurrent attempt.
var ErrStaleGeneration = fmt.Errorf("section was regenerated concurrently; reload and retry")

// NewLocalStore initializes the SQLite database at the given path.
func NewLocalStore(path string) (*LocalStore, error) {
	timer := logging.StartTimer(logging.CategoryStore, "NewLocalStore")
	defer timer.Stop()

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logging.StoreDebug("Failed to enable sqlite foreign_keys: %v", err)
	}

	store := &LocalStore{db: db, dbPath: path}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Store("LocalStore initialized at %s", path)
	return store, nil
}

// initialize creates the required tables.
func (s *LocalStore) initialize() error {
	casesTable := `
	CREATE TABLE IF NOT EXISTS cases (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		claimant_name TEXT NOT NULL DEFAULT '',
		claimant_locality TEXT NOT NULL DEFAULT '',
		defendant_name TEXT NOT NULL DEFAULT '',
		defendant_locality TEXT NOT NULL DEFAULT '',
		analysis_status TEXT NOT NULL DEFAULT 'none',
		analysis_json BLOB,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	summonsesTable := `
	CREATE TABLE IF NOT EXISTS summonses (
		id TEXT PRIMARY KEY,
		case_id TEXT NOT NULL REFERENCES cases(id),
		template_id TEXT NOT NULL,
		template_version TEXT NOT NULL DEFAULT '',
		user_fields TEXT NOT NULL DEFAULT '{}',
		status TEXT NOT NULL DEFAULT 'in_progress',
		assembled_text TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	sectionsTable := `
	CREATE TABLE IF NOT EXISTS sections (
		id TEXT PRIMARY KEY,
		summons_id TEXT NOT NULL REFERENCES summonses(id),
		section_key TEXT NOT NULL,
		section_name TEXT NOT NULL DEFAULT '',
		step_order INTEGER NOT NULL,
		kind TEXT NOT NULL DEFAULT 'generic',
		generation_capability TEXT NOT NULL DEFAULT '',
		feedback_capability TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		generated_text TEXT NOT NULL DEFAULT '',
		user_feedback TEXT NOT NULL DEFAULT '',
		generation_count INTEGER NOT NULL DEFAULT 0,
		warnings TEXT NOT NULL DEFAULT '[]',
		UNIQUE(summons_id, section_key),
		UNIQUE(summons_id, step_order)
	);`

	indexes := `
	CREATE INDEX IF NOT EXISTS idx_sections_summons ON sections(summons_id, step_order);
	CREATE INDEX IF NOT EXISTS idx_summonses_case ON summonses(case_id);`

	for _, stmt := range []string{casesTable, summonsesTable, sectionsTable, indexes} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *LocalStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
