// Package executor runs shell commands for the session: it owns the tracked
// working directory, expands user aliases, gates dangerous commands behind
// the confirmation prompter, and journals every invocation.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// Engine implements the CommandEngine port on the local host shell.
type Engine struct {
	shell     string
	timeout   time.Duration
	workDir   string
	sessionID string
	aliases   map[string]string

	guard    ports.SecurityService
	prompter ports.ConfirmationPrompter
	journal  ports.ExecutionJournal
	log      ports.Logger
}

// Options configure a new Engine. Zero values fall back to sane defaults:
// $SHELL then /bin/sh, the process working directory, and the default
// execution timeout.
type Options struct {
	Shell     string
	Timeout   time.Duration
	WorkDir   string
	SessionID string
	Aliases   map[string]string
	Guard     ports.SecurityService
	Prompter  ports.ConfirmationPrompter
	Journal   ports.ExecutionJournal
	Logger    ports.Logger
}

// NewEngine builds an Engine from Options.
func NewEngine(opts Options) *Engine {
	shell := opts.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	workDir := opts.WorkDir
	if workDir == "" {
		if wd, err := os.Getwd(); err == nil {
			workDir = wd
		} else {
			workDir = "/"
		}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultExecutionTimeout
	}
	return &Engine{
		shell:     shell,
		timeout:   timeout,
		workDir:   workDir,
		sessionID: opts.SessionID,
		aliases:   opts.Aliases,
		guard:     opts.Guard,
		prompter:  opts.Prompter,
		journal:   opts.Journal,
		log:       opts.Logger,
	}
}

var _ ports.CommandEngine = (*Engine)(nil)

// WorkDir returns the tracked working directory.
func (e *Engine) WorkDir() string {
	return e.workDir
}

// SetWorkDir moves the tracked directory, verifying the target exists.
func (e *Engine) SetWorkDir(dir string) error {
	resolved, err := e.resolveDir(dir)
	if err != nil {
		return err
	}
	e.workDir = resolved
	return nil
}

// Execute implements ports.CommandEngine. The journal entry is written
// before the result is returned, including for cancelled invocations and
// in-process directory changes. A non-zero exit code is a normal result.
func (e *Engine) Execute(ctx context.Context, command string) (domain.ExecutionResult, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return domain.ExecutionResult{WorkDir: e.workDir}, nil
	}
	command = e.expandAlias(command)

	// cd mutates tracked state instead of spawning; it is never gated.
	if target, ok := splitChangeDir(command); ok {
		return e.changeDir(command, target), nil
	}

	var verdict domain.Verdict
	if e.guard != nil {
		verdict = e.guard.Classify(command)
	}
	if verdict.Dangerous {
		approved := false
		if e.prompter != nil && e.prompter.Enabled() {
			ok, err := e.prompter.Confirm(command, verdict.Reasons)
			if err != nil {
				e.warn("confirmation failed", err)
			} else {
				approved = ok
			}
		}
		if !approved {
			result := domain.ExecutionResult{
				Command:   command,
				WorkDir:   e.workDir,
				Cancelled: true,
				Notes:     "cancelled: " + verdict.Reason(),
			}
			e.record(result, verdict.Reason())
			return result, nil
		}
	}

	return e.spawn(ctx, command, verdict.Reason())
}

func (e *Engine) spawn(ctx context.Context, command, dangerReason string) (domain.ExecutionResult, error) {
	runCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, e.shell, "-c", command)
	cmd.Dir = e.workDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	result := domain.ExecutionResult{
		Command:    command,
		WorkDir:    e.workDir,
		Ran:        true,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		DurationMS: time.Since(start).Milliseconds(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		switch {
		case errors.Is(runCtx.Err(), context.DeadlineExceeded):
			result.Notes = fmt.Sprintf("timed out after %s", e.timeout)
		case errors.Is(runCtx.Err(), context.Canceled):
			result.Notes = "interrupted"
		}
	default:
		// The command never started (bad shell, cancelled before spawn).
		result.Ran = false
		result.ExitCode = -1
		result.Notes = err.Error()
		e.record(result, dangerReason)
		return result, err
	}

	e.record(result, dangerReason)
	return result, nil
}

func (e *Engine) changeDir(command, target string) domain.ExecutionResult {
	start := time.Now()
	result := domain.ExecutionResult{Command: command, WorkDir: e.workDir}

	resolved, err := e.resolveDir(target)
	if err != nil {
		result.ExitCode = 1
		result.Stderr = err.Error()
	} else {
		e.workDir = resolved
		result.WorkDir = resolved
		result.Ran = true
		result.Stdout = resolved
	}
	result.DurationMS = time.Since(start).Milliseconds()
	e.record(result, "")
	return result
}

// resolveDir applies home expansion and relative resolution against the
// tracked directory, then verifies the target is an existing directory.
func (e *Engine) resolveDir(target string) (string, error) {
	switch {
	case target == "" || target == "~":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot resolve home directory: %w", err)
		}
		target = home
	case strings.HasPrefix(target, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot resolve home directory: %w", err)
		}
		target = filepath.Join(home, target[2:])
	case !filepath.IsAbs(target):
		target = filepath.Join(e.workDir, target)
	}
	target = filepath.Clean(target)

	info, err := os.Stat(target)
	if err != nil {
		return "", fmt.Errorf("directory not found: %s", target)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", target)
	}
	return target, nil
}

// splitChangeDir recognizes the cd pseudo-command. Everything after the
// first whitespace run is the target path.
func splitChangeDir(command string) (string, bool) {
	if command == "cd" {
		return "", true
	}
	for _, sep := range []string{"cd ", "cd\t"} {
		if strings.HasPrefix(command, sep) {
			return strings.TrimSpace(command[len(sep):]), true
		}
	}
	return "", false
}

func (e *Engine) expandAlias(command string) string {
	if len(e.aliases) == 0 {
		return command
	}
	head, rest := command, ""
	if idx := strings.IndexAny(command, " \t"); idx >= 0 {
		head, rest = command[:idx], command[idx:]
	}
	if expansion, ok := e.aliases[head]; ok {
		return expansion + rest
	}
	return command
}

func (e *Engine) record(result domain.ExecutionResult, dangerReason string) {
	if e.journal == nil {
		return
	}
	err := e.journal.Record(domain.ExecutionRecord{
		Timestamp:    time.Now().UTC(),
		SessionID:    e.sessionID,
		Command:      result.Command,
		WorkDir:      result.WorkDir,
		Executed:     result.Ran,
		Cancelled:    result.Cancelled,
		ExitCode:     result.ExitCode,
		DangerReason: dangerReason,
		DurationMS:   result.DurationMS,
	})
	if err != nil {
		e.warn("journal write failed", err)
	}
}

func (e *Engine) warn(msg string, err error) {
	if e.log != nil {
		e.log.Warn(msg, map[string]interface{}{"error": err.Error()})
	}
}
