// Package filesystem holds small path helpers shared across the agent.
package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// UserHomeDir returns the current user's home directory, or "." when it
// cannot be determined.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// StateDir returns the agent state directory (~/.opsagent).
func StateDir() string {
	return filepath.Join(UserHomeDir(), ".opsagent")
}

// StatePath joins path elements under the state directory.
func StatePath(elems ...string) string {
	return filepath.Join(append([]string{StateDir()}, elems...)...)
}

// ExpandPath resolves a leading ~ to the user home directory.
func ExpandPath(path string) string {
	if path == "~" {
		return UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(UserHomeDir(), path[2:])
	}
	return path
}
