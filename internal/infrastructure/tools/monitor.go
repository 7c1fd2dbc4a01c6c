package tools

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

const maxMonitorSeconds = 60

// monitorResources samples CPU, memory and root-disk usage once per second
// and appends an averages summary.
func monitorResources(ctx context.Context, args []string) (string, error) {
	duration := 5
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return "", fmt.Errorf("duration must be a positive number of seconds, got %q", args[0])
		}
		duration = n
	}
	if duration > maxMonitorSeconds {
		duration = maxMonitorSeconds
	}

	prev, err := readCPUSample()
	if err != nil {
		return "", fmt.Errorf("read cpu stats: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "sampling for %d seconds...\n", duration)
	var cpuSum, memSum, diskSum float64
	samples := 0
	for i := 0; i < duration; i++ {
		select {
		case <-ctx.Done():
			return sb.String(), ctx.Err()
		case <-time.After(time.Second):
		}

		cur, err := readCPUSample()
		if err != nil {
			return sb.String(), fmt.Errorf("read cpu stats: %w", err)
		}
		cpu := cpuPercent(prev, cur)
		prev = cur
		mem := memoryPercent()
		disk := diskPercent("/")

		fmt.Fprintf(&sb, "cpu %5.1f%% | mem %5.1f%% | disk %5.1f%%\n", cpu, mem, disk)
		cpuSum += cpu
		memSum += mem
		diskSum += disk
		samples++
	}

	fmt.Fprintf(&sb, "\naverages over %d samples:\n", samples)
	fmt.Fprintf(&sb, "- cpu: %.1f%%\n", cpuSum/float64(samples))
	fmt.Fprintf(&sb, "- memory: %.1f%%\n", memSum/float64(samples))
	fmt.Fprintf(&sb, "- disk (/): %.1f%%\n", diskSum/float64(samples))
	return sb.String(), nil
}

type cpuSample struct {
	busy  uint64
	total uint64
}

func readCPUSample() (cpuSample, error) {
	data, err := os.ReadFile("/proc/stat")
	if err != nil {
		return cpuSample{}, err
	}
	line, _, _ := strings.Cut(string(data), "\n")
	fields := strings.Fields(line)
	if len(fields) < 5 || fields[0] != "cpu" {
		return cpuSample{}, fmt.Errorf("unexpected /proc/stat line %q", line)
	}

	var total, idle uint64
	for i, field := range fields[1:] {
		value, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return cpuSample{}, err
		}
		total += value
		// Columns 4 and 5 are idle and iowait.
		if i == 3 || i == 4 {
			idle += value
		}
	}
	return cpuSample{busy: total - idle, total: total}, nil
}

func cpuPercent(prev, cur cpuSample) float64 {
	dTotal := cur.total - prev.total
	if cur.total <= prev.total || dTotal == 0 {
		return 0
	}
	return float64(cur.busy-prev.busy) / float64(dTotal) * 100
}

func memoryPercent() float64 {
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return 0
	}
	var total, available float64
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		switch fields[0] {
		case "MemTotal:":
			total = value
		case "MemAvailable:":
			available = value
		}
	}
	if total == 0 {
		return 0
	}
	return (total - available) / total * 100
}

// diskPercent mirrors df: the denominator is what an unprivileged user can
// actually reach, not the raw block count.
func diskPercent(path string) float64 {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0
	}
	used := st.Blocks - st.Bfree
	reachable := used + st.Bavail
	if reachable == 0 {
		return 0
	}
	return float64(used) / float64(reachable) * 100
}
