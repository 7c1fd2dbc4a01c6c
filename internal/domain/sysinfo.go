package domain

import (
	"fmt"
	"strings"
	"time"
)

// SystemFact is one probe result describing the host environment.
type SystemFact struct {
	Name    string
	Command string
	Output  string
}

// SystemReport aggregates collected host facts. Reports are cached and
// refreshed after commands likely to have changed the system.
type SystemReport struct {
	CollectedAt time.Time
	Facts       []SystemFact
}

// Stale reports whether the facts are older than ttl.
func (r SystemReport) Stale(ttl time.Duration) bool {
	if r.CollectedAt.IsZero() {
		return true
	}
	return time.Since(r.CollectedAt) > ttl
}

// Summary renders the report as a compact block suitable for inclusion in the
// model system prompt.
func (r SystemReport) Summary() string {
	if len(r.Facts) == 0 {
		return ""
	}
	var b strings.Builder
	for _, fact := range r.Facts {
		out := strings.TrimSpace(fact.Output)
		if out == "" {
			continue
		}
		if idx := strings.IndexByte(out, '\n'); idx >= 0 {
			out = out[:idx]
		}
		fmt.Fprintf(&b, "%s: %s\n", fact.Name, out)
	}
	return strings.TrimSpace(b.String())
}
