package sysinfo

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestCollectorReport(t *testing.T) {
	collector := NewCollector(Options{TTL: time.Minute})

	report := collector.Report(context.Background())
	if report.CollectedAt.IsZero() {
		t.Fatalf("report has no collection time")
	}
	if len(report.Facts) != len(probes) {
		t.Fatalf("got %d facts, want %d", len(report.Facts), len(probes))
	}
	for i, fact := range report.Facts {
		if fact.Name != probes[i].name {
			t.Errorf("fact %d = %q, want %q", i, fact.Name, probes[i].name)
		}
		if fact.Output == "" {
			t.Errorf("fact %q has empty output, want text or the unavailable marker", fact.Name)
		}
	}
}

func TestCollectorCachesWithinTTL(t *testing.T) {
	collector := NewCollector(Options{TTL: time.Hour})

	first := collector.Report(context.Background())
	second := collector.Report(context.Background())
	if !first.CollectedAt.Equal(second.CollectedAt) {
		t.Errorf("second report re-collected: %v vs %v", first.CollectedAt, second.CollectedAt)
	}
}

func TestCollectorInvalidate(t *testing.T) {
	collector := NewCollector(Options{TTL: time.Hour})

	first := collector.Report(context.Background())
	collector.Invalidate()
	second := collector.Report(context.Background())
	if first.CollectedAt.Equal(second.CollectedAt) && len(second.Facts) == 0 {
		t.Errorf("Invalidate() did not force a refresh")
	}
	if len(second.Facts) != len(probes) {
		t.Errorf("refreshed report has %d facts, want %d", len(second.Facts), len(probes))
	}
}

func TestCollectorFailedProbesMarkedUnavailable(t *testing.T) {
	collector := NewCollector(Options{Shell: "/nonexistent/shell", TTL: time.Minute})

	report := collector.Report(context.Background())
	for _, fact := range report.Facts {
		if fact.Output != "unavailable" {
			t.Errorf("fact %q = %q, want unavailable", fact.Name, fact.Output)
		}
	}
}

func TestCollectorSummaryUsesFirstLines(t *testing.T) {
	collector := NewCollector(Options{TTL: time.Minute})

	summary := collector.Report(context.Background()).Summary()
	if summary == "" {
		t.Fatalf("empty summary")
	}
	for _, name := range []string{"kernel-version", "uptime", "load-average"} {
		found := false
		for _, line := range strings.Split(summary, "\n") {
			if strings.HasPrefix(line, name+": ") {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("summary missing %q fact:\n%s", name, summary)
		}
	}
}
