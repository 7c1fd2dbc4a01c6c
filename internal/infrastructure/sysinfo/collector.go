// Package sysinfo gathers host facts for the system prompt and the /system
// builtin.
package sysinfo

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// probe is one named shell pipeline whose first output line becomes a fact.
type probe struct {
	name    string
	command string
}

// probes run in this order so reports stay stable across refreshes.
var probes = []probe{
	{"os-version", "cat /etc/os-release"},
	{"kernel-version", "uname -a"},
	{"hostname", "hostname -f"},
	{"uptime", "uptime"},
	{"cpu-model", "cat /proc/cpuinfo | grep 'model name' | head -n 1 | cut -d ':' -f 2 | xargs"},
	{"total-memory", "free -h | grep Mem | awk '{print $2}'"},
	{"used-memory", "free -h | grep Mem | awk '{print $3}'"},
	{"disk-usage-root", "df -h / | tail -n 1 | awk '{print $5}'"},
	{"load-average", "cat /proc/loadavg | awk '{print $1, $2, $3}'"},
	{"users-logged-in", "who | wc -l"},
	{"process-count", "ps aux | wc -l"},
	{"network-interfaces", "ip -br addr show"},
}

// Collector caches one SystemReport for a TTL so repeated prompts do not
// re-run a dozen subprocesses.
type Collector struct {
	shell        string
	ttl          time.Duration
	probeTimeout time.Duration

	mu     sync.Mutex
	cached domain.SystemReport
}

// Options tunes the collector; zero values select defaults.
type Options struct {
	Shell        string
	TTL          time.Duration
	ProbeTimeout time.Duration
}

// NewCollector builds a collector.
func NewCollector(opts Options) *Collector {
	shell := opts.Shell
	if shell == "" {
		shell = "sh"
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = domain.DefaultProbeCacheDuration
	}
	probeTimeout := opts.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = domain.DefaultProbeTimeout
	}
	return &Collector{shell: shell, ttl: ttl, probeTimeout: probeTimeout}
}

var _ ports.SystemInspector = (*Collector)(nil)

// Report returns the cached report, refreshing it once it goes stale.
// Probes that fail report "unavailable" instead of failing the whole
// collection.
func (c *Collector) Report(ctx context.Context) domain.SystemReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.cached.CollectedAt.IsZero() && !c.cached.Stale(c.ttl) {
		return c.cached
	}

	report := domain.SystemReport{CollectedAt: time.Now().UTC()}
	for _, p := range probes {
		report.Facts = append(report.Facts, domain.SystemFact{
			Name:    p.name,
			Command: p.command,
			Output:  c.runProbe(ctx, p.command),
		})
	}
	c.cached = report
	return report
}

// Invalidate drops the cache so the next Report re-probes the host.
func (c *Collector) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = domain.SystemReport{}
}

func (c *Collector) runProbe(ctx context.Context, command string) string {
	probeCtx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()
	out, err := exec.CommandContext(probeCtx, c.shell, "-c", command).Output()
	if err != nil {
		return "unavailable"
	}
	text := strings.TrimSpace(string(out))
	if text == "" {
		return "unavailable"
	}
	return text
}
