package history

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

func sampleRecords() []domain.ExecutionRecord {
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	return []domain.ExecutionRecord{
		{
			Timestamp:  base,
			SessionID:  "s-1",
			Command:    "uptime",
			WorkDir:    "/srv",
			Executed:   true,
			ExitCode:   0,
			DurationMS: 12,
		},
		{
			Timestamp:  base.Add(time.Minute),
			SessionID:  "s-1",
			Command:    "df -h",
			WorkDir:    "/srv",
			Executed:   true,
			ExitCode:   0,
			DurationMS: 30,
		},
		{
			Timestamp:    base.Add(2 * time.Minute),
			SessionID:    "s-1",
			Command:      "rm -rf /tmp/cache",
			WorkDir:      "/srv",
			Cancelled:    true,
			DangerReason: "invokes rm",
		},
	}
}

func journalUnderTest(t *testing.T, name string) ports.ExecutionJournal {
	t.Helper()
	dir := t.TempDir()
	switch name {
	case "sqlite":
		journal, err := NewSQLiteJournal(filepath.Join(dir, "journal.db"))
		if err != nil {
			t.Fatalf("NewSQLiteJournal() error = %v", err)
		}
		t.Cleanup(func() { journal.Close() })
		return journal
	case "file":
		return NewFileJournal(filepath.Join(dir, "journal.jsonl"))
	default:
		t.Fatalf("unknown journal %q", name)
		return nil
	}
}

func TestJournalRecordAndRecent(t *testing.T) {
	for _, backend := range []string{"sqlite", "file"} {
		t.Run(backend, func(t *testing.T) {
			journal := journalUnderTest(t, backend)
			for _, rec := range sampleRecords() {
				if err := journal.Record(rec); err != nil {
					t.Fatalf("Record() error = %v", err)
				}
			}

			got, err := journal.Recent(0, "")
			if err != nil {
				t.Fatalf("Recent() error = %v", err)
			}
			if len(got) != 3 {
				t.Fatalf("Recent() returned %d records, want 3", len(got))
			}
			if got[0].Command != "rm -rf /tmp/cache" {
				t.Errorf("newest first: got %q", got[0].Command)
			}
			if !got[0].Cancelled || got[0].DangerReason != "invokes rm" {
				t.Errorf("cancelled record round trip = %+v", got[0])
			}
			if got[2].Command != "uptime" || !got[2].Executed {
				t.Errorf("oldest record round trip = %+v", got[2])
			}
		})
	}
}

func TestJournalRecentLimitAndSearch(t *testing.T) {
	for _, backend := range []string{"sqlite", "file"} {
		t.Run(backend, func(t *testing.T) {
			journal := journalUnderTest(t, backend)
			for _, rec := range sampleRecords() {
				if err := journal.Record(rec); err != nil {
					t.Fatalf("Record() error = %v", err)
				}
			}

			limited, err := journal.Recent(2, "")
			if err != nil {
				t.Fatalf("Recent(2) error = %v", err)
			}
			if len(limited) != 2 {
				t.Fatalf("Recent(2) returned %d records", len(limited))
			}

			found, err := journal.Recent(0, "df")
			if err != nil {
				t.Fatalf("Recent(search) error = %v", err)
			}
			var commands []string
			for _, rec := range found {
				commands = append(commands, rec.Command)
			}
			if diff := cmp.Diff([]string{"df -h"}, commands); diff != "" {
				t.Errorf("search results mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJournalClear(t *testing.T) {
	for _, backend := range []string{"sqlite", "file"} {
		t.Run(backend, func(t *testing.T) {
			journal := journalUnderTest(t, backend)
			for _, rec := range sampleRecords() {
				if err := journal.Record(rec); err != nil {
					t.Fatalf("Record() error = %v", err)
				}
			}
			if err := journal.Clear(); err != nil {
				t.Fatalf("Clear() error = %v", err)
			}
			got, err := journal.Recent(0, "")
			if err != nil {
				t.Fatalf("Recent() after Clear error = %v", err)
			}
			if len(got) != 0 {
				t.Errorf("journal not empty after Clear: %d records", len(got))
			}
		})
	}
}

func TestJournalExportJSON(t *testing.T) {
	journal := journalUnderTest(t, "sqlite")
	for _, rec := range sampleRecords() {
		if err := journal.Record(rec); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	data, err := journal.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	var decoded []domain.ExecutionRecord
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(decoded) != 3 {
		t.Errorf("export has %d records, want 3", len(decoded))
	}
}

func TestFileJournalEmpty(t *testing.T) {
	journal := NewFileJournal(filepath.Join(t.TempDir(), "journal.jsonl"))
	got, err := journal.Recent(5, "")
	if err != nil {
		t.Fatalf("Recent() on empty journal error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("empty journal returned %d records", len(got))
	}
	if err := journal.Clear(); err != nil {
		t.Errorf("Clear() on missing file error = %v", err)
	}
}
