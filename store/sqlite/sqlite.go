/*
Package sqlite persists computed quota results.

PURPOSE:
  Every computation is stored as an immutable record: the case facts it
  was made from, the three account views, the standalone bonuses, the
  rule-set version and the audit payload. Re-evaluations append new
  records; the latest record per case is what later computations
  reconcile against.

APPEND-ONLY ENFORCEMENT:
  No UPDATE or DELETE statements on the computations table. A corrected
  result is a new record.

KEY TABLES:
  computations: One row per computation, newest row per case is current

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/quota.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/quota-engine/quota"
)

// ComputationRecord is one persisted computation.
type ComputationRecord struct {
	ID        string
	CaseID    string
	CreatedAt time.Time

	// Facts is the raw rule input the computation was made from, stored
	// verbatim so any snapshot generation can be replayed later.
	Facts json.RawMessage

	Accounts     map[quota.AccountType]int
	KeepOriginal map[quota.AccountType]int
	BeforeMerge  map[quota.AccountType]int

	ExtraMultipleBirthDays int
	ExtraPrematureDays     int

	Version string
	Audit   json.RawMessage
}

// Store persists computation records in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Computations (append-only; newest row per case is current)
	CREATE TABLE IF NOT EXISTS computations (
		id TEXT PRIMARY KEY,
		case_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		facts_json TEXT NOT NULL,
		accounts_json TEXT NOT NULL,
		keep_original_json TEXT NOT NULL,
		before_merge_json TEXT NOT NULL,
		extra_multiple_birth_days INTEGER NOT NULL DEFAULT 0,
		extra_premature_days INTEGER NOT NULL DEFAULT 0,
		version TEXT NOT NULL,
		audit_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_computations_case_created
		ON computations(case_id, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

const computationColumns = `
	id, case_id, created_at, facts_json,
	accounts_json, keep_original_json, before_merge_json,
	extra_multiple_birth_days, extra_premature_days,
	version, audit_json`

// SaveComputation appends one record.
func (s *Store) SaveComputation(ctx context.Context, rec ComputationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := json.Marshal(rec.Accounts)
	if err != nil {
		return fmt.Errorf("failed to marshal accounts: %w", err)
	}
	keepOriginal, err := json.Marshal(rec.KeepOriginal)
	if err != nil {
		return fmt.Errorf("failed to marshal keep-original view: %w", err)
	}
	beforeMerge, err := json.Marshal(rec.BeforeMerge)
	if err != nil {
		return fmt.Errorf("failed to marshal pre-merge view: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO computations (`+computationColumns+`
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.CaseID,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(rec.Facts),
		string(accounts),
		string(keepOriginal),
		string(beforeMerge),
		rec.ExtraMultipleBirthDays,
		rec.ExtraPrematureDays,
		rec.Version,
		string(rec.Audit),
	)
	if err != nil {
		return fmt.Errorf("failed to insert computation: %w", err)
	}
	return nil
}

// LatestByCase returns the most recent record for a case, or nil when the
// case has no computations yet.
func (s *Store) LatestByCase(ctx context.Context, caseID string) (*ComputationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs, err := s.queryComputations(ctx, `
		SELECT `+computationColumns+`
		FROM computations
		WHERE case_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, caseID)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// ListByCase returns every record for a case, newest first.
func (s *Store) ListByCase(ctx context.Context, caseID string) ([]ComputationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryComputations(ctx, `
		SELECT `+computationColumns+`
		FROM computations
		WHERE case_id = ?
		ORDER BY created_at DESC, id DESC`, caseID)
}

// GetComputation returns one record by ID, or nil when absent.
func (s *Store) GetComputation(ctx context.Context, id string) (*ComputationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs, err := s.queryComputations(ctx, `
		SELECT `+computationColumns+`
		FROM computations
		WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

func (s *Store) queryComputations(ctx context.Context, query string, args ...any) ([]ComputationRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query computations: %w", err)
	}
	defer rows.Close()

	var recs []ComputationRecord
	for rows.Next() {
		var rec ComputationRecord
		var createdAt, facts, accounts, keepOriginal, beforeMerge, audit string
		if err := rows.Scan(
			&rec.ID, &rec.CaseID, &createdAt, &facts,
			&accounts, &keepOriginal, &beforeMerge,
			&rec.ExtraMultipleBirthDays, &rec.ExtraPrematureDays,
			&rec.Version, &audit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan computation: %w", err)
		}
		rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		rec.Facts = json.RawMessage(facts)
		rec.Audit = json.RawMessage(audit)
		if err := json.Unmarshal([]byte(accounts), &rec.Accounts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal accounts: %w", err)
		}
		if err := json.Unmarshal([]byte(keepOriginal), &rec.KeepOriginal); err != nil {
			return nil, fmt.Errorf("failed to unmarshal keep-original view: %w", err)
		}
		if err := json.Unmarshal([]byte(beforeMerge), &rec.BeforeMerge); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pre-merge view: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Reset drops all records. Test helper.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM computations`)
	return err
}
