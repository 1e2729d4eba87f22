// Package history keeps a local log of installation attempts so a failed
// first run can be triaged after the fact. Credentials are never stored.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vitrine-cms/vitrine-setup/internal/installer"
)

const dbFile = ".vitrine/setup-history.db"

// Attempt kinds.
const (
	KindProbe   = "probe"
	KindInstall = "install"
)

// Attempt is one recorded probe or install attempt.
type Attempt struct {
	ID        int64
	Kind      string
	Host      string
	Database  string
	Success   bool
	Message   string
	CreatedAt time.Time
}

// Store wraps the attempt-log database.
type Store struct {
	conn *sql.DB
}

// Open opens (creating if needed) the attempt log under baseDir.
func Open(baseDir string) (*Store, error) {
	path := filepath.Join(baseDir, dbFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS attempts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			kind       TEXT NOT NULL,
			host       TEXT NOT NULL,
			db_name    TEXT NOT NULL,
			success    INTEGER NOT NULL,
			message    TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create attempts table: %w", err)
	}

	return &Store{conn: conn}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Record appends one attempt. Only the host and database name of the
// connection are kept.
func (s *Store) Record(kind string, conn installer.DatabaseConnection, success bool, message string) error {
	_, err := s.conn.Exec(
		"INSERT INTO attempts (kind, host, db_name, success, message, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		kind, conn.Host, conn.Database, boolToInt(success), message, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

// Recent returns up to limit attempts, newest first.
func (s *Store) Recent(limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.conn.Query(
		"SELECT id, kind, host, db_name, success, message, created_at FROM attempts ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		var success int
		var created string
		if err := rows.Scan(&a.ID, &a.Kind, &a.Host, &a.Database, &success, &a.Message, &created); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Success = success != 0
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			a.CreatedAt = t
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
