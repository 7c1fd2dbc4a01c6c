package domain

import "strings"

// Verdict is the guardrail classification for one command line.
type Verdict struct {
	Dangerous bool
	Reasons   []string
}

// Reason flattens the matched reasons into a single prompt-friendly string.
func (v Verdict) Reason() string {
	return strings.Join(v.Reasons, "; ")
}

// SecurityRules is the data the classifier matches against. The sets are
// loaded from the guardrail rules file and may be edited by the user.
type SecurityRules struct {
	// DangerousCommands are command names requiring confirmation. Entries may
	// be a single token ("rm") or a two-token form ("systemctl stop").
	DangerousCommands []string `yaml:"dangerous_commands"`
	// DangerousFlags are rm flags that force confirmation regardless of target.
	DangerousFlags []string `yaml:"dangerous_flags"`
	// ProtectedPaths are directory prefixes that must not be redirect targets.
	ProtectedPaths []string `yaml:"protected_paths"`
}
