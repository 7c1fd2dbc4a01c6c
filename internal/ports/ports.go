// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the application to remain independent of specific
// implementations like databases, HTTP clients, or CLI frameworks.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Provider, ConfigStore)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
)

// ConfigStore loads and persists the configuration file.
// Implementations typically read from ~/.opsagent/config.yaml.
type ConfigStore interface {
	Load(context.Context) (domain.Config, error)
	Save(domain.Config) error
	// Defaults returns the shipped default configuration without touching
	// the user's file. Reset semantics are Defaults followed by Save.
	Defaults() domain.Config
	Path() string
}

// DirectiveParser splits a model reply into ordered directives and the
// residual prose. It is pure: no I/O, no execution decisions.
type DirectiveParser interface {
	Parse(text string) ([]domain.Directive, string)
}

// SecurityService classifies a command line against the guardrail rules.
// Classification is a pure function of the command and the loaded rules.
type SecurityService interface {
	Classify(command string) domain.Verdict
}

// CommandEngine runs shell commands in a tracked working directory and
// journals every invocation. Directory changes happen in-process.
type CommandEngine interface {
	Execute(ctx context.Context, command string) (domain.ExecutionResult, error)
	WorkDir() string
	SetWorkDir(dir string) error
}

// ExecutionJournal persists one record per engine invocation.
type ExecutionJournal interface {
	Record(domain.ExecutionRecord) error
	Recent(limit int, search string) ([]domain.ExecutionRecord, error)
	Clear() error
	ExportJSON() ([]byte, error)
	Path() string
	Close() error
}

// TranscriptStore persists the conversation history between sessions.
type TranscriptStore interface {
	Load() ([]domain.Message, error)
	Save([]domain.Message) error
	Clear() error
	Path() string
}

// SnapshotStore persists named context snapshots.
type SnapshotStore interface {
	Save(domain.ContextSnapshot) error
	Load(name string) (domain.ContextSnapshot, error)
	List() ([]domain.SnapshotInfo, error)
	Delete(name string) error
}

// InstructionStore persists the custom system-instructions override. Load
// reports whether the returned text is a user override or the built-in
// default.
type InstructionStore interface {
	Load() (text string, custom bool, err error)
	Save(text string) error
	Reset() error
	Path() string
}

// QuickCommandResolver expands a named quick command with positional
// arguments into a runnable command line.
type QuickCommandResolver interface {
	Resolve(name string, args []string) (string, error)
	List() []domain.QuickCommand
}

// ScriptWriter materializes model-generated scripts and built-in templates
// under the configured scripts directory.
type ScriptWriter interface {
	SaveScript(kind, filename, body string) (string, error)
	MaterializeTemplate(kind, filename string) (string, error)
	TemplateKinds() []string
	IsExecutableKind(kind string) bool
	Dir() string
}

// ToolRunner dispatches devops tool invocations requested by the model.
type ToolRunner interface {
	Run(ctx context.Context, name string, args []string) (string, error)
	Tools() []domain.ToolInfo
}

// SystemInspector collects host facts for the model system prompt. Reports
// are cached; Invalidate forces the next call to re-probe.
type SystemInspector interface {
	Report(ctx context.Context) domain.SystemReport
	Invalidate()
}

// ProviderFactory builds AI provider instances based on model definitions.
type ProviderFactory interface {
	ForModel(domain.ModelDefinition) (Provider, error)
}

// Provider defines the core AI generation capability.
// Each provider implementation wraps a specific chat-completions endpoint.
type Provider interface {
	Name() string
	Model() domain.ModelDefinition
	Generate(context.Context, ProviderRequest) (ProviderResponse, error)
}

// ProviderRequest contains all data needed to generate an AI response.
type ProviderRequest struct {
	System       string
	History      []domain.Message
	Prompt       string
	Stream       bool
	StreamWriter StreamWriter
}

// ProviderResponse carries the full reply text, directives included.
type ProviderResponse struct {
	Content string
}

// StreamWriter receives incremental chunks of a streamed model reply.
type StreamWriter interface {
	WriteChunk(text string)
	Done()
}

// ProgressIndicator shows activity while a non-streamed model call is in
// flight. Implementations must tolerate Stop without Start.
type ProgressIndicator interface {
	Start()
	Stop()
}

// ConfirmationPrompter handles interactive user confirmations for risky
// operations. Enabled reports whether prompting is possible at all (TTY).
type ConfirmationPrompter interface {
	Confirm(command string, reasons []string) (bool, error)
	Enabled() bool
}

// Display renders user-facing output. Rich and plain implementations exist;
// all session output goes through this boundary.
type Display interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Panel(text string)
}

// Clipboard provides cross-platform clipboard integration.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// ShellIntegrator manages completion script installation (bash, zsh).
type ShellIntegrator interface {
	Install(shell string, force bool) (domain.ShellInstallResult, error)
	Uninstall(shell string) (domain.ShellInstallResult, error)
	Status(shell string) domain.ShellStatus
	DetectShell() string
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
