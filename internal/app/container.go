// Package app wires the dependency graph shared by the CLI entrypoints.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/BadrBouzakri/AI-Agent/internal/application/doctor"
	"github.com/BadrBouzakri/AI-Agent/internal/application/session"
	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/infrastructure/ai"
	"github.com/BadrBouzakri/AI-Agent/internal/infrastructure/config"
	"github.com/BadrBouzakri/AI-Agent/internal/infrastructure/executor"
	"github.com/BadrBouzakri/AI-Agent/internal/infrastructure/history"
	"github.com/BadrBouzakri/AI-Agent/internal/infrastructure/instructions"
	"github.com/BadrBouzakri/AI-Agent/internal/infrastructure/parser"
	"github.com/BadrBouzakri/AI-Agent/internal/infrastructure/quickcmd"
	"github.com/BadrBouzakri/AI-Agent/internal/infrastructure/scripts"
	"github.com/BadrBouzakri/AI-Agent/internal/infrastructure/security"
	"github.com/BadrBouzakri/AI-Agent/internal/infrastructure/shell"
	"github.com/BadrBouzakri/AI-Agent/internal/infrastructure/snapshot"
	"github.com/BadrBouzakri/AI-Agent/internal/infrastructure/sysinfo"
	"github.com/BadrBouzakri/AI-Agent/internal/infrastructure/tools"
	"github.com/BadrBouzakri/AI-Agent/internal/infrastructure/ui"
	"github.com/BadrBouzakri/AI-Agent/internal/pkg/filesystem"
	"github.com/BadrBouzakri/AI-Agent/internal/pkg/logger"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// Options select the config file and log verbosity for a container.
type Options struct {
	ConfigPath string
	Debug      bool
}

// Container wires application services with infrastructure adapters.
type Container struct {
	Config          domain.Config
	ConfigLoader    *config.FileLoader
	Logger          ports.Logger
	Guardrail       ports.SecurityService
	Journal         ports.ExecutionJournal
	Engine          ports.CommandEngine
	Snapshots       ports.SnapshotStore
	ProviderFactory ports.ProviderFactory
	ShellIntegrator ports.ShellIntegrator
	Session         *session.Service
	Doctor          *doctor.Service

	log *logger.ZapLogger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	// API keys may live in the state dir or in a project-local .env. Both
	// loads are best effort; a missing file is the normal case.
	_ = godotenv.Load(filesystem.StatePath(".env"))
	_ = godotenv.Load()

	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	debug := opts.Debug || os.Getenv("OPSAGENT_DEBUG") != ""
	log, err := logger.New(logger.Options{
		FilePath: filesystem.StatePath("logs", "agent.log"),
		Debug:    debug,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	guardrail, err := security.NewGuardrail(cfg.Security.RulesFile)
	if err != nil {
		// A broken rules file falls back to the embedded defaults rather
		// than leaving commands ungated.
		log.Warn("guardrail rules unavailable, using embedded defaults", map[string]interface{}{"error": err.Error()})
		guardrail, err = security.NewGuardrail("")
		if err != nil {
			return nil, err
		}
	}

	var journal ports.ExecutionJournal
	if sqliteJournal, err := history.NewSQLiteJournal(filesystem.StatePath("journal.db")); err == nil {
		journal = sqliteJournal
	} else {
		log.Warn("sqlite journal unavailable, falling back to JSON file", map[string]interface{}{"error": err.Error()})
		journal = history.NewFileJournal(filesystem.StatePath("journal.json"))
	}

	prompter := ui.NewPrompter(nil, nil)

	var guard ports.SecurityService
	if cfg.IsSecurityEnabled() {
		guard = guardrail
	}
	engine := executor.NewEngine(executor.Options{
		Shell:     cfg.GetExecutionShell(),
		Timeout:   cfg.GetExecutionTimeout(),
		SessionID: uuid.NewString(),
		Aliases:   cfg.Aliases,
		Guard:     guard,
		Prompter:  prompter,
		Journal:   journal,
		Logger:    log,
	})

	factory := ai.NewFactory(cfg.GetRequestTimeout())
	model, err := cfg.GetDefaultModel()
	if err != nil {
		return nil, err
	}
	provider, err := factory.ForModel(model)
	if err != nil {
		return nil, err
	}

	snapshots := snapshot.NewFileStore(filesystem.StatePath("contexts"))
	integrator := shell.NewInstaller(log)

	sessionService := &session.Service{
		Config:       cfg,
		ConfigStore:  cfgLoader,
		Factory:      factory,
		Provider:     provider,
		Parser:       parser.NewParser(),
		Engine:       engine,
		Transcripts:  history.NewTranscriptStore(filesystem.StatePath("history.json")),
		Snapshots:    snapshots,
		QuickCmds:    quickcmd.NewResolver(cfg.QuickCommands),
		Scripts:      scripts.NewWriter(filesystem.ExpandPath(cfg.GetScriptsDir())),
		Tools:        tools.NewRegistry(),
		Inspector:    sysinfo.NewCollector(sysinfo.Options{Shell: cfg.GetExecutionShell()}),
		Instructions: instructions.NewStore(filesystem.StatePath("system_prompt.md")),
		Journal:      journal,
		Display:      ui.NewDisplay(os.Stdout, cfg.GetTheme()),
		DisplayFor: func(theme string) ports.Display {
			return ui.NewDisplay(os.Stdout, theme)
		},
		Prompter:  prompter,
		Clipboard: ui.NewClipboard(),
		Stream:    ui.NewStreamWriter(os.Stdout),
		Progress:  ui.NewSpinner(os.Stdout),
		Logger:    log,
	}

	doctorService := &doctor.Service{
		ConfigStore: cfgLoader,
		Guardrail:   guardrail,
		Journal:     journal,
		Shell:       integrator,
		StateDir:    filesystem.StateDir(),
	}

	return &Container{
		Config:          cfg,
		ConfigLoader:    cfgLoader,
		Logger:          log,
		Guardrail:       guardrail,
		Journal:         journal,
		Engine:          engine,
		Snapshots:       snapshots,
		ProviderFactory: factory,
		ShellIntegrator: integrator,
		Session:         sessionService,
		Doctor:          doctorService,
		log:             log,
	}, nil
}

// Close releases the journal handle and flushes buffered log output. Safe to
// call exactly once after the command tree finishes.
func (c *Container) Close() {
	if c.Journal != nil {
		if err := c.Journal.Close(); err != nil && c.log != nil {
			c.log.Warn("journal close failed", map[string]interface{}{"error": err.Error()})
		}
	}
	if c.log != nil {
		c.log.Sync()
	}
}
