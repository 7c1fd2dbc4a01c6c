package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// FileJournal appends execution records to a JSONL file. It backs the
// journal when SQLite cannot be opened.
type FileJournal struct {
	path string
	mu   sync.Mutex
}

// NewFileJournal builds a journal writing to path.
func NewFileJournal(path string) *FileJournal {
	return &FileJournal{path: path}
}

var _ ports.ExecutionJournal = (*FileJournal)(nil)

// Record appends one record as a JSON line.
func (f *FileJournal) Record(record domain.ExecutionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.PlainFilePermissions)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

// Recent returns entries newest first, filtered like the SQLite journal.
func (f *FileJournal) Recent(limit int, search string) ([]domain.ExecutionRecord, error) {
	records, err := f.load()
	if err != nil {
		return nil, err
	}
	var matched []domain.ExecutionRecord
	for i := len(records) - 1; i >= 0; i-- {
		if search != "" && !strings.Contains(records[i].Command, search) {
			continue
		}
		matched = append(matched, records[i])
		if limit > 0 && len(matched) == limit {
			break
		}
	}
	return matched, nil
}

// Clear removes the journal file.
func (f *FileJournal) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ExportJSON renders the whole journal as an indented JSON array.
func (f *FileJournal) ExportJSON() ([]byte, error) {
	records, err := f.Recent(0, "")
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(records, "", "  ")
}

// Path returns the backing file path.
func (f *FileJournal) Path() string {
	return f.path
}

// Close is a no-op; the file is opened per write.
func (f *FileJournal) Close() error {
	return nil
}

func (f *FileJournal) load() ([]domain.ExecutionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	var records []domain.ExecutionRecord
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		var rec domain.ExecutionRecord
		if err := json.Unmarshal(line, &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records, nil
}
