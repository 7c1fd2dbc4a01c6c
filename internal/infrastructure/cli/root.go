package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/BadrBouzakri/AI-Agent/internal/app"
)

// Options holds CLI-level configuration resolved before the command tree
// runs.
type Options struct {
	ConfigPath string
	Debug      bool
}

// NewRootCmd builds the dependency container and wires the cobra command
// tree. The bare root starts the interactive session; positional arguments
// are forwarded to ask. The returned cleanup closes the journal and flushes
// the log; call it once the command tree is done.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, func(), error) {
	container, err := app.BuildContainer(ctx, app.Options{
		ConfigPath: opts.ConfigPath,
		Debug:      opts.Debug,
	})
	if err != nil {
		return nil, nil, err
	}

	root := &cobra.Command{
		Use:   "opsagent [question]",
		Short: "opsagent - terminal assistant for sysadmin and DevOps work",
		Long: "opsagent answers operations questions with an AI model and acts on the\n" +
			"reply: it runs proposed commands after a safety check, saves generated\n" +
			"scripts and templates, and keeps the conversation on disk between runs.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare words are a one-shot question; executing the ask child
			// here would bounce back to the root (cobra always re-executes
			// from the root), so the session is called directly.
			if len(args) > 0 {
				return container.Session.RunOnce(cmd.Context(), strings.Join(args, " "))
			}
			return container.Session.Run(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// The value is consumed by main before the container is built; the flag
	// is declared here so cobra accepts and documents it.
	root.PersistentFlags().String("config", "", "Config file path (default ~/.opsagent/config.yaml)")

	root.AddCommand(newAskCommand(container))
	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newContextsCommand(container))
	root.AddCommand(newGuardrailCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newInstallCompletionCommand(container))
	root.AddCommand(newUninstallCompletionCommand(container))
	root.AddCommand(newVersionCommand())

	return root, container.Close, nil
}

func newAskCommand(container *app.Container) *cobra.Command {
	var (
		model   string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask one question and exit",
		Long: "ask runs a single model turn against the persisted conversation history,\n" +
			"acts on any directives in the reply, and returns.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			if model != "" {
				if err := useModel(container, model); err != nil {
					return err
				}
			}
			return container.Session.RunOnce(ctx, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Model name from the config (default from preferences)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort the turn after this duration")

	return cmd
}

// useModel swaps the session provider for this invocation without touching
// the persisted default.
func useModel(container *app.Container, name string) error {
	def, ok := container.Config.FindModelByName(name)
	if !ok {
		return fmt.Errorf("unknown model %q (see opsagent config show)", name)
	}
	provider, err := container.ProviderFactory.ForModel(def)
	if err != nil {
		return err
	}
	container.Session.Provider = provider
	return nil
}
