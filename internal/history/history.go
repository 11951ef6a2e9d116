// Package history persists a local log of scaffold runs in SQLite so past
// generations can be listed. The log is advisory: scaffolding succeeds even
// if recording fails.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DBFileName is the history database file inside the data directory.
const DBFileName = "history.db"

// createScaffolds is the schema for the single log table.
const createScaffolds = `CREATE TABLE IF NOT EXISTS scaffolds (
    scaffold_id TEXT PRIMARY KEY,
    module TEXT NOT NULL,
    check_name TEXT NOT NULL,
    symbol TEXT NOT NULL,
    created_at TEXT NOT NULL,
    files TEXT NOT NULL
);`

// Entry is one recorded scaffold run.
type Entry struct {
	ID        string
	Module    string
	Check     string
	Symbol    string
	CreatedAt time.Time
	Files     []string
}

// Log is a handle to the scaffold history database.
type Log struct {
	db *sql.DB
}

// Open creates the data directory if needed, opens the history database
// inside it, and ensures the schema exists.
func Open(dataDir string) (*Log, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DBFileName))
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(createScaffolds); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Log{db: db}, nil
}

// Close releases the database handle.
func (l *Log) Close() error {
	return l.db.Close()
}

// Record appends one entry. A missing ID gets a fresh uuid and a zero
// CreatedAt becomes the current time.
func (l *Log) Record(e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	files, err := json.Marshal(e.Files)
	if err != nil {
		return fmt.Errorf("marshal files: %w", err)
	}

	_, err = l.db.Exec(
		`INSERT INTO scaffolds (scaffold_id, module, check_name, symbol, created_at, files)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Module, e.Check, e.Symbol, e.CreatedAt.Format(time.RFC3339), string(files),
	)
	if err != nil {
		return fmt.Errorf("insert scaffold record: %w", err)
	}
	return nil
}

// List returns all entries, oldest first.
func (l *Log) List() ([]Entry, error) {
	rows, err := l.db.Query(
		`SELECT scaffold_id, module, check_name, symbol, created_at, files
		 FROM scaffolds ORDER BY created_at, scaffold_id`)
	if err != nil {
		return nil, fmt.Errorf("query scaffolds: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt, files string
		if err := rows.Scan(&e.ID, &e.Module, &e.Check, &e.Symbol, &createdAt, &files); err != nil {
			return nil, fmt.Errorf("scan scaffold record: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		if err := json.Unmarshal([]byte(files), &e.Files); err != nil {
			return nil, fmt.Errorf("unmarshal files: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
