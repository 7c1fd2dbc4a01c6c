// Package history persists the execution journal and the conversation
// transcript under the agent state directory.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// SQLiteJournal records executed commands in a SQLite database.
type SQLiteJournal struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteJournal opens (or creates) the journal database at path. Callers
// fall back to a FileJournal when this fails, so the error carries context
// instead of being swallowed here.
func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	journal := &SQLiteJournal{db: db, path: path}
	if err := journal.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return journal, nil
}

var _ ports.ExecutionJournal = (*SQLiteJournal)(nil)

func (s *SQLiteJournal) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS executions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		session_id TEXT NOT NULL,
		command TEXT NOT NULL,
		work_dir TEXT,
		executed INTEGER NOT NULL,
		cancelled INTEGER NOT NULL,
		exit_code INTEGER,
		danger_reason TEXT,
		duration_ms INTEGER
	);`)
	return err
}

// Record inserts one execution record.
func (s *SQLiteJournal) Record(record domain.ExecutionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO executions
		(timestamp, session_id, command, work_dir, executed, cancelled, exit_code, danger_reason, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Timestamp.Format(domain.TimestampFormat),
		record.SessionID,
		record.Command,
		record.WorkDir,
		boolToInt(record.Executed),
		boolToInt(record.Cancelled),
		record.ExitCode,
		record.DangerReason,
		record.DurationMS,
	)
	return err
}

// Recent returns journal entries newest first. A zero limit means all; a
// non-empty search filters on the command text.
func (s *SQLiteJournal) Recent(limit int, search string) ([]domain.ExecutionRecord, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT timestamp, session_id, command, work_dir, executed, cancelled, exit_code, danger_reason, duration_ms FROM executions")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE command LIKE ?")
		args = append(args, "%"+search+"%")
	}
	builder.WriteString(" ORDER BY datetime(timestamp) DESC, id DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.ExecutionRecord
	for rows.Next() {
		var rec domain.ExecutionRecord
		var ts string
		var executed, cancelled int
		if err := rows.Scan(&ts, &rec.SessionID, &rec.Command, &rec.WorkDir, &executed, &cancelled, &rec.ExitCode, &rec.DangerReason, &rec.DurationMS); err != nil {
			return nil, err
		}
		if t, err := time.Parse(domain.TimestampFormat, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Executed = executed == 1
		rec.Cancelled = cancelled == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes every journal entry.
func (s *SQLiteJournal) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM executions")
	return err
}

// ExportJSON renders the whole journal as an indented JSON array.
func (s *SQLiteJournal) ExportJSON() ([]byte, error) {
	records, err := s.Recent(0, "")
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(records, "", "  ")
}

// Path returns the database file path.
func (s *SQLiteJournal) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteJournal) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
