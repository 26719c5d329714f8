package cmdlog

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/smartshell-ai/smartshell/internal/domain"
	"github.com/smartshell-ai/smartshell/internal/ports"
)

const indexSchema = `
CREATE TABLE IF NOT EXISTS commands (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	prompt    TEXT NOT NULL,
	command   TEXT NOT NULL,
	exit_code INTEGER,
	timestamp TEXT NOT NULL,
	status    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_commands_timestamp ON commands(timestamp);
`

// SQLiteIndex is a queryable view over the command log. The JSONL files
// stay canonical; the index can be dropped and rebuilt from them at any
// time via Rebuild.
type SQLiteIndex struct {
	db   *sql.DB
	path string
}

// NewSQLiteIndex opens (or creates) the index database at path.
func NewSQLiteIndex(path string) (*SQLiteIndex, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history index: %w", err)
	}
	if _, err := db.Exec(indexSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history index schema: %w", err)
	}
	return &SQLiteIndex{db: db, path: path}, nil
}

// Insert adds one entry to the index.
func (s *SQLiteIndex) Insert(entry domain.LogEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO commands (prompt, command, exit_code, timestamp, status) VALUES (?, ?, ?, ?, ?)`,
		entry.Prompt, entry.Command, entry.ExitCode, entry.Timestamp, string(entry.Status),
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// Search returns entries newest first whose prompt or command contains
// query. An empty query matches everything; limit <= 0 means no cap.
func (s *SQLiteIndex) Search(query string, limit int) ([]domain.LogEntry, error) {
	if limit <= 0 {
		limit = -1
	}

	var rows *sql.Rows
	var err error
	if query == "" {
		rows, err = s.db.Query(
			`SELECT prompt, command, exit_code, timestamp, status
			 FROM commands ORDER BY datetime(timestamp) DESC, id DESC LIMIT ?`, limit)
	} else {
		pattern := "%" + query + "%"
		rows, err = s.db.Query(
			`SELECT prompt, command, exit_code, timestamp, status
			 FROM commands WHERE prompt LIKE ? OR command LIKE ?
			 ORDER BY datetime(timestamp) DESC, id DESC LIMIT ?`, pattern, pattern, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("query history index: %w", err)
	}
	defer rows.Close()

	var entries []domain.LogEntry
	for rows.Next() {
		var entry domain.LogEntry
		var exit sql.NullInt64
		var status string
		if err := rows.Scan(&entry.Prompt, &entry.Command, &exit, &entry.Timestamp, &status); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		if exit.Valid {
			code := int(exit.Int64)
			entry.ExitCode = &code
		}
		entry.Status = domain.Status(status)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history index: %w", err)
	}
	return entries, nil
}

// Rebuild replaces the index contents with the given entries. Entries are
// expected newest first, as the log reader returns them.
func (s *SQLiteIndex) Rebuild(entries []domain.LogEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM commands`); err != nil {
		return fmt.Errorf("drop old index rows: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO commands (prompt, command, exit_code, timestamp, status) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare rebuild insert: %w", err)
	}
	defer stmt.Close()

	// Insert oldest first so row ids follow chronological order.
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if _, err := stmt.Exec(entry.Prompt, entry.Command, entry.ExitCode, entry.Timestamp, string(entry.Status)); err != nil {
			return fmt.Errorf("insert rebuilt entry: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rebuild: %w", err)
	}
	return nil
}

// Clear drops every row but keeps the database file and schema.
func (s *SQLiteIndex) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM commands`); err != nil {
		return fmt.Errorf("clear history index: %w", err)
	}
	return nil
}

// Path returns the database file location.
func (s *SQLiteIndex) Path() string {
	return s.path
}

// Close releases the underlying database handle.
func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}

var _ ports.HistoryIndex = (*SQLiteIndex)(nil)
