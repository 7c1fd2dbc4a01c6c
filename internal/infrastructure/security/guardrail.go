// Package security classifies command lines before they reach the executor.
//
// The classifier is deliberately dumb: it parses the command with real shell
// quoting rules and matches the result against data-driven rule sets. It
// never prompts and never executes; the session decides what to do with a
// dangerous verdict.
package security

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"

	"github.com/BadrBouzakri/AI-Agent/assets"
	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// Guardrail implements the SecurityService port.
type Guardrail struct {
	commands  map[string]struct{}
	pairs     map[string]struct{}
	rmFlags   map[string]struct{}
	protected []string
}

// RulesFile is the YAML schema root of the guardrail rules file.
type RulesFile struct {
	Rules domain.SecurityRules `yaml:"rules"`
}

// NewGuardrail loads rules from disk, falling back to the built-in defaults
// when the file is missing or declares no rules.
func NewGuardrail(path string) (*Guardrail, error) {
	rules, err := loadRules(path)
	if err != nil {
		return nil, err
	}
	return NewGuardrailFromRules(rules), nil
}

// NewGuardrailFromRules builds a classifier directly from rule sets.
func NewGuardrailFromRules(rules domain.SecurityRules) *Guardrail {
	g := &Guardrail{
		commands: make(map[string]struct{}),
		pairs:    make(map[string]struct{}),
		rmFlags:  make(map[string]struct{}),
	}
	for _, entry := range rules.DangerousCommands {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.ContainsRune(entry, ' ') {
			g.pairs[strings.Join(strings.Fields(entry), " ")] = struct{}{}
		} else {
			g.commands[entry] = struct{}{}
		}
	}
	for _, flag := range rules.DangerousFlags {
		if flag = strings.TrimSpace(flag); flag != "" {
			g.rmFlags[flag] = struct{}{}
		}
	}
	for _, prefix := range rules.ProtectedPaths {
		prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
		if prefix != "" {
			g.protected = append(g.protected, prefix)
		}
	}
	return g
}

var _ ports.SecurityService = (*Guardrail)(nil)

// Classify implements ports.SecurityService.
func (g *Guardrail) Classify(command string) domain.Verdict {
	line, err := parseLine(command)
	if err != nil {
		// Fail closed: a command the shell grammar rejects cannot be
		// inspected, so it must be confirmed.
		return domain.Verdict{
			Dangerous: true,
			Reasons:   []string{"command line could not be parsed (unbalanced quoting?)"},
		}
	}

	var reasons []string

	for _, call := range line.calls {
		if _, ok := g.commands[call[0]]; ok {
			reasons = append(reasons, "invokes "+call[0])
			continue
		}
		if len(call) >= 2 {
			if _, ok := g.pairs[call[0]+" "+call[1]]; ok {
				reasons = append(reasons, "invokes "+call[0]+" "+call[1])
			}
		}
	}

	hasWriteRedirect := false
	for _, rd := range line.redirects {
		if !rd.writes {
			continue
		}
		hasWriteRedirect = true
		if prefix := g.protectedPrefix(rd.target); prefix != "" {
			reasons = append(reasons, "redirects output under "+prefix+"/")
		}
	}
	if line.hasPipe || hasWriteRedirect {
		for _, call := range line.calls {
			if call[0] == "rm" || call[0] == "mv" {
				reasons = append(reasons, "combines a pipe or redirect with "+call[0])
				break
			}
		}
	}

	for _, call := range line.calls {
		if call[0] != "rm" {
			continue
		}
		for _, token := range call[1:] {
			if _, ok := g.rmFlags[token]; ok {
				reasons = append(reasons, "rm with "+token)
			}
		}
	}

	return domain.Verdict{Dangerous: len(reasons) > 0, Reasons: dedupe(reasons)}
}

// protectedPrefix returns the matching protected prefix for an absolute
// redirect target, or "" when the target is unguarded.
func (g *Guardrail) protectedPrefix(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") {
		return ""
	}
	clean := filepath.Clean(target)
	for _, prefix := range g.protected {
		if clean == prefix || strings.HasPrefix(clean, prefix+"/") {
			return prefix
		}
	}
	return ""
}

// parsedLine carries the facts classification needs: one token list per
// command invocation, the redirects, and whether a pipe is present.
type parsedLine struct {
	calls     [][]string
	redirects []redirectInfo
	hasPipe   bool
}

type redirectInfo struct {
	target string
	writes bool
}

func parseLine(command string) (parsedLine, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return parsedLine{}, err
	}

	cfg := &expand.Config{Env: expand.FuncEnviron(func(string) string { return "" })}
	var line parsedLine
	syntax.Walk(file, func(node syntax.Node) bool {
		switch n := node.(type) {
		case *syntax.CallExpr:
			var tokens []string
			for _, word := range n.Args {
				tokens = append(tokens, wordText(cfg, word))
			}
			if len(tokens) > 0 {
				line.calls = append(line.calls, tokens)
			}
		case *syntax.Redirect:
			line.redirects = append(line.redirects, redirectInfo{
				target: wordText(cfg, n.Word),
				writes: writesFile(n.Op),
			})
		case *syntax.BinaryCmd:
			if n.Op == syntax.Pipe || n.Op == syntax.PipeAll {
				line.hasPipe = true
			}
		}
		return true
	})
	return line, nil
}

func writesFile(op syntax.RedirOperator) bool {
	switch op {
	case syntax.RdrOut, syntax.AppOut, syntax.RdrAll, syntax.AppAll:
		return true
	}
	return false
}

// wordText expands a word to its literal value; dynamic words (command
// substitution and friends) fall back to their source text.
func wordText(cfg *expand.Config, word *syntax.Word) string {
	if word == nil {
		return ""
	}
	if lit, err := expand.Literal(cfg, word); err == nil {
		return lit
	}
	var sb strings.Builder
	_ = syntax.NewPrinter().Print(&sb, word)
	return sb.String()
}

func dedupe(values []string) []string {
	if len(values) < 2 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func loadRules(path string) (domain.SecurityRules, error) {
	resolved := expandPath(path)
	data, err := os.ReadFile(resolved)
	if err != nil {
		if path == "" && os.IsNotExist(err) {
			// First run: materialize the default rules at the standard
			// location so users have a file to edit.
			if mkErr := os.MkdirAll(filepath.Dir(resolved), domain.DirectoryPermissions); mkErr == nil {
				_ = os.WriteFile(resolved, assets.DefaultGuardrailYAML, domain.PlainFilePermissions)
			}
		}
		return DefaultRules(), nil
	}
	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.SecurityRules{}, err
	}
	defaults := DefaultRules()
	if len(file.Rules.DangerousCommands) == 0 {
		file.Rules.DangerousCommands = defaults.DangerousCommands
	}
	if len(file.Rules.DangerousFlags) == 0 {
		file.Rules.DangerousFlags = defaults.DangerousFlags
	}
	if len(file.Rules.ProtectedPaths) == 0 {
		file.Rules.ProtectedPaths = defaults.ProtectedPaths
	}
	return file.Rules, nil
}

func expandPath(path string) string {
	if path == "" {
		return filepath.Join(userHomeDir(), ".opsagent", "guardrail.yaml")
	}
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Join(userHomeDir(), path)
}

// RulesPath resolves the configured rules file location; empty selects the
// standard ~/.opsagent/guardrail.yaml.
func RulesPath(path string) string {
	return expandPath(path)
}

// DefaultRules returns the rule sets embedded in the binary. The embedded
// file is the single source of truth for the shipped defaults.
func DefaultRules() domain.SecurityRules {
	var file RulesFile
	_ = yaml.Unmarshal(assets.DefaultGuardrailYAML, &file)
	return file.Rules
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
