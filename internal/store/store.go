// Package store provides the SQLite-backed append-only judgment log.
//
// The log is the only durable state in the system. One row is one
// completed pairwise judgment; rows are never updated or deleted, and
// duplicate rows for the same (participant, item) pair are legal.
// Reads return schema-agnostic rows so that criteria columns added by
// later versions (and columns absent on older databases) are both
// tolerated.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/studykit/pairwise/internal/judgment"
)

//go:embed schema.sql
var schemaSQL string

// Store is the append-only judgment log. Appends are serialized by an
// internal mutex; reads may run concurrently thanks to WAL mode.
type Store struct {
	db *sql.DB

	// mu serializes the append path. SQLite lacks a usable atomic
	// multi-statement append under connection churn, and a single
	// serving process needs no distributed coordination.
	mu sync.Mutex
}

// Open creates or opens the judgment log at path. Pragmas and schema
// are applied on every open; the call is idempotent, so the schema is
// effectively written lazily on first use.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open judgment log: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to judgment log: %w", err)
	}

	// SQLite supports one writer at a time; a single connection
	// avoids SQLITE_BUSY on the append path.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates the judgments table and adds one INTEGER column
// per configured criterion that the table does not have yet. Criteria
// evolve by appending columns, never by rewriting rows, so older logs
// keep working and older rows read back with NULL for new criteria.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	existing, err := tableColumns(db, "judgments")
	if err != nil {
		return err
	}
	for _, c := range judgment.Criteria {
		col := c.Column()
		if existing[col] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE judgments ADD COLUMN %s INTEGER", col)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("add criterion column %s: %w", col, err)
		}
	}
	return nil
}

func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			name       string
			ctype      string
			notnull    int
			dfltValue  sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &primaryKey); err != nil {
			return nil, fmt.Errorf("scan table_info: %w", err)
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

// count returns the number of rows in the log. Used by tests.
func (s *Store) count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM judgments").Scan(&n)
	return n, err
}
