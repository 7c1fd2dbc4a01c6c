package tools

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
)

func TestRegistryKnowsItsTools(t *testing.T) {
	registry := NewRegistry()

	infos := registry.Tools()
	want := []string{
		"monitor_resources", "analyze_logs", "docker_info",
		"k8s_info", "network_scan", "generate_ssl_cert",
	}
	if len(infos) != len(want) {
		t.Fatalf("got %d tools, want %d", len(infos), len(want))
	}
	for i, info := range infos {
		if info.Name != want[i] {
			t.Errorf("tool %d = %q, want %q", i, info.Name, want[i])
		}
		if info.Summary == "" || info.Usage == "" {
			t.Errorf("tool %q missing summary or usage", info.Name)
		}
	}
}

func TestRegistryUnknownTool(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Run(context.Background(), "terraform_apply", nil)
	var unknown *domain.UnknownToolError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want UnknownToolError", err)
	}
	if len(unknown.Known) != 6 {
		t.Errorf("Known lists %d tools", len(unknown.Known))
	}
}

func TestRegistryAcceptsHistoricSpelling(t *testing.T) {
	registry := NewRegistry()

	// Bad duration argument proves dispatch reached monitor_resources.
	_, err := registry.Run(context.Background(), "monitor_ressources", []string{"zero"})
	if err == nil || !strings.Contains(err.Error(), "duration") {
		t.Fatalf("error = %v, want duration complaint", err)
	}
}

func TestAnalyzeLogs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	var lines []string
	for i := 1; i <= 10; i++ {
		level := "INFO"
		if i%3 == 0 {
			level = "ERROR"
		}
		lines = append(lines, fmt.Sprintf("%s event %d", level, i))
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	t.Run("whole file", func(t *testing.T) {
		out, err := analyzeLogs(context.Background(), []string{path})
		if err != nil {
			t.Fatalf("analyzeLogs() error = %v", err)
		}
		if got := len(strings.Split(out, "\n")); got != 10 {
			t.Errorf("got %d lines, want 10", got)
		}
	})

	t.Run("tail", func(t *testing.T) {
		out, err := analyzeLogs(context.Background(), []string{path, "tail=2"})
		if err != nil {
			t.Fatalf("analyzeLogs() error = %v", err)
		}
		if !strings.Contains(out, "event 9") || !strings.Contains(out, "event 10") || strings.Contains(out, "event 8") {
			t.Errorf("tail slice wrong:\n%s", out)
		}
	})

	t.Run("head", func(t *testing.T) {
		out, err := analyzeLogs(context.Background(), []string{path, "head=3"})
		if err != nil {
			t.Fatalf("analyzeLogs() error = %v", err)
		}
		if !strings.Contains(out, "event 1") || strings.Contains(out, "event 4") {
			t.Errorf("head slice wrong:\n%s", out)
		}
	})

	t.Run("pattern with stats", func(t *testing.T) {
		out, err := analyzeLogs(context.Background(), []string{path, "ERROR"})
		if err != nil {
			t.Fatalf("analyzeLogs() error = %v", err)
		}
		if !strings.Contains(out, `pattern "ERROR" matched 3 of 10 lines (30.0%)`) {
			t.Errorf("stats line wrong:\n%s", out)
		}
		if strings.Contains(out, "INFO event") {
			t.Errorf("unmatched lines leaked:\n%s", out)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := analyzeLogs(context.Background(), []string{filepath.Join(dir, "nope.log")})
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("error = %v, want not-found", err)
		}
	})
}

func TestAnalyzeLogsCapsOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.log")
	var sb strings.Builder
	for i := 0; i < 250; i++ {
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	out, err := analyzeLogs(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("analyzeLogs() error = %v", err)
	}
	if !strings.Contains(out, "file has 250 lines (showing first 100)") {
		t.Errorf("cap notice missing:\n%.200s", out)
	}
	if strings.Contains(out, "line 101") {
		t.Errorf("output not capped")
	}
}

func TestNetworkScanValidation(t *testing.T) {
	if _, err := networkScan(context.Background(), nil); err == nil {
		t.Errorf("missing target accepted")
	}
	if _, err := networkScan(context.Background(), []string{"10.0.0.0/24"}); err == nil {
		t.Errorf("CIDR target accepted")
	}
}

func TestProbePortsFindsListener(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()
	port := listener.Addr().(*net.TCPAddr).Port

	open := probePorts(context.Background(), "127.0.0.1", []int{port})
	if len(open) != 1 || open[0] != port {
		t.Errorf("probePorts = %v, want [%d]", open, port)
	}
}

func TestMonitorResourcesBadDuration(t *testing.T) {
	if _, err := monitorResources(context.Background(), []string{"-3"}); err == nil {
		t.Errorf("negative duration accepted")
	}
	if _, err := monitorResources(context.Background(), []string{"soon"}); err == nil {
		t.Errorf("non-numeric duration accepted")
	}
}

func TestMonitorResourcesSamples(t *testing.T) {
	if _, err := os.Stat("/proc/stat"); err != nil {
		t.Skip("needs /proc")
	}
	out, err := monitorResources(context.Background(), []string{"1"})
	if err != nil {
		t.Fatalf("monitorResources() error = %v", err)
	}
	if !strings.Contains(out, "averages over 1 samples") {
		t.Errorf("summary missing:\n%s", out)
	}
}

func TestCPUPercent(t *testing.T) {
	prev := cpuSample{busy: 100, total: 1000}
	cur := cpuSample{busy: 150, total: 1100}
	if got := cpuPercent(prev, cur); got != 50 {
		t.Errorf("cpuPercent = %v, want 50", got)
	}
	if got := cpuPercent(cur, cur); got != 0 {
		t.Errorf("cpuPercent with no delta = %v, want 0", got)
	}
}

func TestGenerateSSLCertValidation(t *testing.T) {
	if _, err := generateSSLCert(context.Background(), nil); err == nil {
		t.Errorf("missing domain accepted")
	}
}
