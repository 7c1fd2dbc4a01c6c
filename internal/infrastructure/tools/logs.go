package tools

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const maxLogLines = 100

// analyzeLogs slices a log file and optionally filters it for a substring.
// Bare arguments after the filename form the pattern; tail=N and head=N
// bound which lines are considered.
func analyzeLogs(_ context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("analyze_logs needs a log file path")
	}
	path := args[0]
	var pattern string
	tailN, headN := 0, 0
	for _, arg := range args[1:] {
		switch {
		case strings.HasPrefix(arg, "tail="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "tail="))
			if err != nil || n <= 0 {
				return "", fmt.Errorf("bad tail value %q", arg)
			}
			tailN = n
		case strings.HasPrefix(arg, "head="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "head="))
			if err != nil || n <= 0 {
				return "", fmt.Errorf("bad head value %q", arg)
			}
			headN = n
		default:
			if pattern == "" {
				pattern = arg
			} else {
				pattern += " " + arg
			}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("log file not found: %s", path)
		}
		return "", err
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	switch {
	case tailN > 0 && tailN < len(lines):
		lines = lines[len(lines)-tailN:]
	case headN > 0 && headN < len(lines):
		lines = lines[:headN]
	}

	if pattern != "" {
		var matched []string
		for _, line := range lines {
			if strings.Contains(line, pattern) {
				matched = append(matched, line)
			}
		}
		stats := fmt.Sprintf("pattern %q matched %d of %d lines (%.1f%%)",
			pattern, len(matched), len(lines), percentage(len(matched), len(lines)))
		if len(matched) > maxLogLines {
			matched = matched[:maxLogLines]
			stats += fmt.Sprintf(" (showing first %d)", maxLogLines)
		}
		return stats + "\n\n" + strings.Join(matched, "\n"), nil
	}

	if len(lines) > maxLogLines {
		stats := fmt.Sprintf("file has %d lines (showing first %d)", len(lines), maxLogLines)
		return stats + "\n\n" + strings.Join(lines[:maxLogLines], "\n"), nil
	}
	return strings.Join(lines, "\n"), nil
}

func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
