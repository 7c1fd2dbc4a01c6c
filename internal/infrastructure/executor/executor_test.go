package executor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
)

type stubGuard struct {
	dangerous bool
	reason    string
}

func (s stubGuard) Classify(string) domain.Verdict {
	if !s.dangerous {
		return domain.Verdict{}
	}
	return domain.Verdict{Dangerous: true, Reasons: []string{s.reason}}
}

type stubPrompter struct {
	approve bool
	enabled bool
	called  bool
}

func (s *stubPrompter) Confirm(string, []string) (bool, error) {
	s.called = true
	return s.approve, nil
}

func (s *stubPrompter) Enabled() bool { return s.enabled }

type memJournal struct {
	records []domain.ExecutionRecord
}

func (m *memJournal) Record(r domain.ExecutionRecord) error {
	m.records = append(m.records, r)
	return nil
}

func (m *memJournal) Recent(int, string) ([]domain.ExecutionRecord, error) { return m.records, nil }
func (m *memJournal) Clear() error                                         { m.records = nil; return nil }
func (m *memJournal) ExportJSON() ([]byte, error)                          { return json.Marshal(m.records) }
func (m *memJournal) Path() string                                         { return "memory" }
func (m *memJournal) Close() error                                         { return nil }

func TestEngineRunsCommand(t *testing.T) {
	journal := &memJournal{}
	engine := NewEngine(Options{WorkDir: t.TempDir(), Journal: journal})

	result, err := engine.Execute(context.Background(), "echo hello")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !result.Ran || result.ExitCode != 0 {
		t.Fatalf("expected clean run, got %+v", result)
	}
	if strings.TrimSpace(result.Stdout) != "hello" {
		t.Errorf("unexpected stdout %q", result.Stdout)
	}
	if len(journal.records) != 1 || !journal.records[0].Executed {
		t.Errorf("expected one executed journal record, got %+v", journal.records)
	}
}

func TestEngineNonZeroExitIsNotAnError(t *testing.T) {
	engine := NewEngine(Options{WorkDir: t.TempDir()})

	result, err := engine.Execute(context.Background(), "exit 3")
	if err != nil {
		t.Fatalf("non-zero exit should not surface as error, got %v", err)
	}
	if !result.Ran || result.ExitCode != 3 {
		t.Fatalf("expected ran with exit 3, got %+v", result)
	}
}

func TestEngineTracksWorkDir(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "deploy")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	journal := &memJournal{}
	prompter := &stubPrompter{enabled: true}
	engine := NewEngine(Options{
		WorkDir:  root,
		Guard:    stubGuard{dangerous: true, reason: "always"},
		Prompter: prompter,
		Journal:  journal,
	})

	result, err := engine.Execute(context.Background(), "cd deploy")
	if err != nil {
		t.Fatalf("cd error: %v", err)
	}
	if !result.Ran || engine.WorkDir() != sub {
		t.Fatalf("cd did not move tracked dir: %+v (workdir %s)", result, engine.WorkDir())
	}
	if prompter.called {
		t.Error("cd must never be gated by confirmation")
	}

	if _, err := engine.Execute(context.Background(), "cd .."); err != nil {
		t.Fatalf("cd ..: %v", err)
	}
	if engine.WorkDir() != root {
		t.Errorf("cd .. landed in %s, want %s", engine.WorkDir(), root)
	}

	result, err = engine.Execute(context.Background(), "cd does-not-exist")
	if err != nil {
		t.Fatalf("missing dir should be a recoverable result, got error %v", err)
	}
	if result.Ran || result.ExitCode != 1 || !strings.Contains(result.Stderr, "not found") {
		t.Errorf("unexpected failure result: %+v", result)
	}
	if engine.WorkDir() != root {
		t.Errorf("failed cd moved the tracked dir to %s", engine.WorkDir())
	}

	if len(journal.records) != 3 {
		t.Errorf("expected 3 journal records for 3 cd invocations, got %d", len(journal.records))
	}
}

func TestEngineSpawnUsesTrackedDir(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	engine := NewEngine(Options{WorkDir: root})

	if _, err := engine.Execute(context.Background(), "cd nested"); err != nil {
		t.Fatalf("cd: %v", err)
	}
	result, err := engine.Execute(context.Background(), "pwd")
	if err != nil {
		t.Fatalf("pwd: %v", err)
	}
	if strings.TrimSpace(result.Stdout) != sub {
		t.Errorf("spawn ran in %q, want %q", strings.TrimSpace(result.Stdout), sub)
	}
}

func TestEngineCancelsDeclinedDangerousCommand(t *testing.T) {
	journal := &memJournal{}
	marker := filepath.Join(t.TempDir(), "marker")
	prompter := &stubPrompter{approve: false, enabled: true}
	engine := NewEngine(Options{
		WorkDir:  t.TempDir(),
		Guard:    stubGuard{dangerous: true, reason: "invokes rm"},
		Prompter: prompter,
		Journal:  journal,
	})

	result, err := engine.Execute(context.Background(), "touch "+marker)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !result.Cancelled || result.Ran {
		t.Fatalf("expected cancelled result, got %+v", result)
	}
	if !prompter.called {
		t.Error("prompter was not consulted")
	}
	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Error("declined command still ran")
	}
	if len(journal.records) != 1 || !journal.records[0].Cancelled {
		t.Errorf("cancelled invocation missing from journal: %+v", journal.records)
	}
	if journal.records[0].DangerReason != "invokes rm" {
		t.Errorf("danger reason not journaled: %+v", journal.records[0])
	}
}

func TestEngineRunsApprovedDangerousCommand(t *testing.T) {
	prompter := &stubPrompter{approve: true, enabled: true}
	engine := NewEngine(Options{
		WorkDir:  t.TempDir(),
		Guard:    stubGuard{dangerous: true, reason: "invokes rm"},
		Prompter: prompter,
	})

	result, err := engine.Execute(context.Background(), "echo approved")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !result.Ran || strings.TrimSpace(result.Stdout) != "approved" {
		t.Fatalf("approved command did not run: %+v", result)
	}
}

func TestEngineFailsClosedWithoutPrompter(t *testing.T) {
	engine := NewEngine(Options{
		WorkDir:  t.TempDir(),
		Guard:    stubGuard{dangerous: true, reason: "invokes rm"},
		Prompter: &stubPrompter{approve: true, enabled: false},
	})

	result, err := engine.Execute(context.Background(), "echo nope")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !result.Cancelled {
		t.Fatalf("dangerous command must cancel when prompting is unavailable, got %+v", result)
	}
}

func TestEngineExpandsAliases(t *testing.T) {
	journal := &memJournal{}
	engine := NewEngine(Options{
		WorkDir: t.TempDir(),
		Aliases: map[string]string{"greet": "echo hi"},
		Journal: journal,
	})

	result, err := engine.Execute(context.Background(), "greet there")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if strings.TrimSpace(result.Stdout) != "hi there" {
		t.Errorf("alias not expanded, stdout %q", result.Stdout)
	}
	if journal.records[0].Command != "echo hi there" {
		t.Errorf("journal should record the expanded command, got %q", journal.records[0].Command)
	}
}

func TestEngineTimeout(t *testing.T) {
	engine := NewEngine(Options{WorkDir: t.TempDir(), Timeout: 100 * time.Millisecond})

	start := time.Now()
	result, err := engine.Execute(context.Background(), "sleep 5")
	if err != nil {
		t.Fatalf("timeout should yield a result, got error %v", err)
	}
	if time.Since(start) > 3*time.Second {
		t.Fatal("timeout not enforced")
	}
	if !strings.Contains(result.Notes, "timed out") {
		t.Errorf("expected timeout note, got %+v", result)
	}
}

func TestEngineEmptyCommand(t *testing.T) {
	journal := &memJournal{}
	engine := NewEngine(Options{WorkDir: t.TempDir(), Journal: journal})

	result, err := engine.Execute(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.Ran || result.Cancelled {
		t.Errorf("blank command should be a no-op, got %+v", result)
	}
	if len(journal.records) != 0 {
		t.Errorf("blank command should not be journaled")
	}
}
