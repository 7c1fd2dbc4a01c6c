package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
)

func TestGuardrailFlagsDangerousCommands(t *testing.T) {
	guardrail := NewGuardrailFromRules(DefaultRules())

	tests := []struct {
		command   string
		dangerous bool
	}{
		{"rm -rf /", true},
		{"ls -la", false},
		{"echo hi > /etc/passwd", true},
		{"echo hi > /tmp/out.txt", false},
		{"dd if=/dev/zero of=/dev/sda", true},
		{"systemctl stop nginx", true},
		{"systemctl status nginx", false},
		{"rm -rf $HOME", true},
		{"echo hi >> /var/log/app.log", true},
		{"df -h", false},
		{"git status", false},
		{"shutdown -h now", true},
	}

	for _, tt := range tests {
		verdict := guardrail.Classify(tt.command)
		if verdict.Dangerous != tt.dangerous {
			t.Errorf("%q: got dangerous=%v (reasons %v), want %v",
				tt.command, verdict.Dangerous, verdict.Reasons, tt.dangerous)
		}
		if verdict.Dangerous && verdict.Reason() == "" {
			t.Errorf("%q: dangerous verdict without a reason", tt.command)
		}
	}
}

func TestGuardrailUnparseableFailsClosed(t *testing.T) {
	guardrail := NewGuardrailFromRules(DefaultRules())

	verdict := guardrail.Classify(`echo "unterminated`)
	if !verdict.Dangerous {
		t.Fatalf("expected unparseable command to be dangerous, got %+v", verdict)
	}
}

func TestGuardrailRespectsQuoting(t *testing.T) {
	guardrail := NewGuardrailFromRules(DefaultRules())

	// The dangerous text is an argument, not a command.
	verdict := guardrail.Classify(`echo "rm -rf /"`)
	if verdict.Dangerous {
		t.Fatalf("quoted argument misread as invocation: %+v", verdict)
	}
}

func TestGuardrailPipeWithRemove(t *testing.T) {
	// Isolate the pipe/redirect rule by emptying the command set.
	guardrail := NewGuardrailFromRules(domain.SecurityRules{
		ProtectedPaths: []string{"/etc"},
	})

	if v := guardrail.Classify("ls *.bak | rm -i"); !v.Dangerous {
		t.Errorf("pipe into rm should be dangerous, got %+v", v)
	}
	if v := guardrail.Classify("ls *.bak | wc -l"); v.Dangerous {
		t.Errorf("pipe without rm/mv should be safe, got %+v", v)
	}
	if v := guardrail.Classify("mv a b > moved.log"); !v.Dangerous {
		t.Errorf("redirect combined with mv should be dangerous, got %+v", v)
	}
}

func TestGuardrailRmFlags(t *testing.T) {
	// rm itself removed from the command set so only the flag rule fires.
	guardrail := NewGuardrailFromRules(domain.SecurityRules{
		DangerousFlags: []string{"-rf", "-fr", "--no-preserve-root", "--force"},
	})

	if v := guardrail.Classify("rm -rf /tmp/scratch"); !v.Dangerous {
		t.Errorf("rm -rf should be dangerous, got %+v", v)
	}
	if v := guardrail.Classify("rm -fr build"); !v.Dangerous {
		t.Errorf("rm -fr should be dangerous, got %+v", v)
	}
	if v := guardrail.Classify("rm notes.txt"); v.Dangerous {
		t.Errorf("plain rm should be safe under flag-only rules, got %+v", v)
	}
	if v := guardrail.Classify("tar -rf archive.tar file"); v.Dangerous {
		t.Errorf("-rf on a non-rm command should be safe, got %+v", v)
	}
}

func TestGuardrailLoadsRulesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guardrail.yaml")
	rules := "rules:\n" +
		"  dangerous_commands:\n" +
		"    - foodel\n" +
		"  dangerous_flags:\n" +
		"    - -rf\n" +
		"  protected_paths:\n" +
		"    - /srv\n"
	if err := os.WriteFile(path, []byte(rules), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	guardrail, err := NewGuardrail(path)
	if err != nil {
		t.Fatalf("NewGuardrail error: %v", err)
	}

	if v := guardrail.Classify("foodel everything"); !v.Dangerous {
		t.Errorf("custom rule not honored: %+v", v)
	}
	if v := guardrail.Classify("echo x > /srv/data"); !v.Dangerous {
		t.Errorf("custom protected path not honored: %+v", v)
	}
	// rm is absent from the custom command set.
	if v := guardrail.Classify("rm notes.txt"); v.Dangerous {
		t.Errorf("rule sets should fully replace defaults, got %+v", v)
	}
}

func TestGuardrailEmptyCommand(t *testing.T) {
	guardrail := NewGuardrailFromRules(DefaultRules())

	if v := guardrail.Classify(""); v.Dangerous {
		t.Fatalf("empty command should classify safe, got %+v", v)
	}
}

func TestDefaultRulesEmbedded(t *testing.T) {
	rules := DefaultRules()

	if len(rules.DangerousCommands) == 0 || len(rules.DangerousFlags) == 0 || len(rules.ProtectedPaths) == 0 {
		t.Fatalf("embedded defaults are incomplete: %+v", rules)
	}
	want := map[string][]string{
		"commands": {"rm", "dd", "systemctl stop"},
		"flags":    {"-rf", "--no-preserve-root"},
		"paths":    {"/etc", "/boot"},
	}
	has := func(set []string, entry string) bool {
		for _, s := range set {
			if s == entry {
				return true
			}
		}
		return false
	}
	for _, entry := range want["commands"] {
		if !has(rules.DangerousCommands, entry) {
			t.Errorf("default dangerous_commands missing %q", entry)
		}
	}
	for _, entry := range want["flags"] {
		if !has(rules.DangerousFlags, entry) {
			t.Errorf("default dangerous_flags missing %q", entry)
		}
	}
	for _, entry := range want["paths"] {
		if !has(rules.ProtectedPaths, entry) {
			t.Errorf("default protected_paths missing %q", entry)
		}
	}
}
