package quickcmd

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
)

func TestResolverBindsPositionally(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"service-status", []string{"nginx"}, "systemctl status nginx"},
		{"check-port", []string{"8080"}, "ss -tuln | grep 8080"},
		{"ping-host", []string{"10.0.0.1"}, "ping -c 4 10.0.0.1"},
		{"find-modified", []string{"/etc", "7"}, "find /etc -type f -mtime -7 -ls"},
	}

	for _, tt := range tests {
		got, err := r.Resolve(tt.name, tt.args)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestResolverMissingParameters(t *testing.T) {
	r := NewResolver(nil)

	_, err := r.Resolve("service-status", nil)
	var missing *domain.MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingParameterError, got %v", err)
	}
	if diff := cmp.Diff([]string{"service"}, missing.Missing); diff != "" {
		t.Errorf("missing names mismatch (-want +got):\n%s", diff)
	}

	// Two placeholders, one argument: only the second is reported missing.
	_, err = r.Resolve("find-large-files", []string{"/var"})
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingParameterError, got %v", err)
	}
	if diff := cmp.Diff([]string{"size"}, missing.Missing); diff != "" {
		t.Errorf("missing names mismatch (-want +got):\n%s", diff)
	}
}

func TestResolverUnknownCommand(t *testing.T) {
	r := NewResolver(nil)

	_, err := r.Resolve("no-such-command", nil)
	var unknown *domain.UnknownQuickCommandError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownQuickCommandError, got %v", err)
	}
	if unknown.Name != "no-such-command" {
		t.Errorf("unexpected name %q", unknown.Name)
	}
}

func TestResolverIgnoresSurplusArgs(t *testing.T) {
	r := NewResolver(nil)

	got, err := r.Resolve("docker-ps", []string{"ignored", "also-ignored"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "docker ps" {
		t.Errorf("got %q, want %q", got, "docker ps")
	}
}

func TestResolverFindBracesAreNotPlaceholders(t *testing.T) {
	r := NewResolver(nil)

	got, err := r.Resolve("find-large-files", []string{"/var", "100"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "find /var -type f -size +100M -exec ls -lh {} \\;"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolverRepeatedPlaceholder(t *testing.T) {
	r := NewResolver(map[string]string{
		"bounce": "systemctl stop {svc} && systemctl start {svc}",
	})

	got, err := r.Resolve("bounce", []string{"nginx"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "systemctl stop nginx && systemctl start nginx" {
		t.Errorf("repeated placeholder not bound consistently: %q", got)
	}
}

func TestResolverCustomOverridesBuiltin(t *testing.T) {
	r := NewResolver(map[string]string{"disk-usage": "duf"})

	got, err := r.Resolve("disk-usage", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "duf" {
		t.Errorf("custom command did not shadow built-in: %q", got)
	}

	seen := 0
	for _, qc := range r.List() {
		if qc.Name == "disk-usage" {
			seen++
			if !qc.Custom || qc.Template != "duf" {
				t.Errorf("listing kept the built-in: %+v", qc)
			}
		}
	}
	if seen != 1 {
		t.Errorf("shadowed command listed %d times", seen)
	}
}
