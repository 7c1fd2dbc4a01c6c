package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/BadrBouzakri/AI-Agent/internal/app"
	appconfig "github.com/BadrBouzakri/AI-Agent/internal/application/config"
	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/infrastructure/security"
	"github.com/BadrBouzakri/AI-Agent/internal/pkg/yamlpath"
	"github.com/BadrBouzakri/AI-Agent/internal/version"
)

func newConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the opsagent configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the full configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get one value by dotted key path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd.Context(), cmd.OutOrStdout(), container, args[0])
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a value by dotted key path (value accepts YAML syntax)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.Context(), cmd.OutOrStdout(), container, args[0], strings.Join(args[1:], " "))
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the configuration to the built-in defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := container.ConfigLoader
			if loader == nil {
				return errors.New("config loader unavailable")
			}
			if err := loader.Save(loader.Defaults()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration reset at %s\n", loader.Path())
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.ConfigLoader == nil {
				return errors.New("config loader unavailable")
			}
			fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
			return nil
		},
	}

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "Show how the configuration differs from the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigDiff(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	configCmd.AddCommand(showCmd, getCmd, setCmd, resetCmd, pathCmd, diffCmd)
	return configCmd
}

func runConfigShow(ctx context.Context, out io.Writer, container *app.Container) error {
	if container.ConfigLoader == nil {
		return errors.New("config loader unavailable")
	}
	cfg, err := container.ConfigLoader.Load(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "# %s\n", container.ConfigLoader.Path())
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigGet(ctx context.Context, out io.Writer, container *app.Container, key string) error {
	if container.ConfigLoader == nil {
		return errors.New("config loader unavailable")
	}
	cfg, err := container.ConfigLoader.Load(ctx)
	if err != nil {
		return err
	}
	cfgMap, err := yamlpath.ToMap(cfg)
	if err != nil {
		return err
	}
	value, ok := yamlpath.Get(cfgMap, key)
	if !ok {
		return fmt.Errorf("no such config key %q", key)
	}
	fmt.Fprintln(out, yamlpath.Render(value))
	return nil
}

func runConfigSet(ctx context.Context, out io.Writer, container *app.Container, key, value string) error {
	loader := container.ConfigLoader
	if loader == nil {
		return errors.New("config loader unavailable")
	}
	cfg, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	cfgMap, err := yamlpath.ToMap(cfg)
	if err != nil {
		return err
	}
	if err := yamlpath.Set(cfgMap, key, yamlpath.ParseValue(value)); err != nil {
		return err
	}
	var updated domain.Config
	if err := yamlpath.FromMap(cfgMap, &updated); err != nil {
		return err
	}
	if err := appconfig.Validate(updated); err != nil {
		return fmt.Errorf("rejected: %w", err)
	}
	if err := loader.Save(updated); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s = %s\n", key, value)
	return nil
}

func runConfigDiff(ctx context.Context, out io.Writer, container *app.Container) error {
	loader := container.ConfigLoader
	if loader == nil {
		return errors.New("config loader unavailable")
	}
	current, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	diff := cmp.Diff(loader.Defaults(), current)
	if diff == "" {
		fmt.Fprintln(out, "Configuration matches the built-in defaults.")
		return nil
	}
	fmt.Fprintln(out, diff)
	return nil
}

func newHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the command execution journal",
	}

	var listLimit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Journal == nil {
				return errors.New("execution journal unavailable")
			}
			records, err := container.Journal.Recent(listLimit, "")
			if err != nil {
				return err
			}
			renderRecords(cmd.OutOrStdout(), records)
			return nil
		},
	}
	listCmd.Flags().IntVar(&listLimit, "limit", domain.DefaultJournalListLimit, "Max entries to show")

	var searchLimit int
	searchCmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search journal entries by command text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Journal == nil {
				return errors.New("execution journal unavailable")
			}
			records, err := container.Journal.Recent(searchLimit, args[0])
			if err != nil {
				return err
			}
			renderRecords(cmd.OutOrStdout(), records)
			return nil
		},
	}
	searchCmd.Flags().IntVar(&searchLimit, "limit", domain.DefaultJournalSearchLimit, "Max entries to show")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Journal == nil {
				return errors.New("execution journal unavailable")
			}
			if err := container.Journal.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Execution journal cleared.")
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Export the journal as a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Journal == nil {
				return errors.New("execution journal unavailable")
			}
			data, err := container.Journal.ExportJSON()
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], data, domain.PlainFilePermissions); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Journal exported to %s\n", args[0])
			return nil
		},
	}

	historyCmd.AddCommand(listCmd, searchCmd, clearCmd, exportCmd)
	return historyCmd
}

func renderRecords(out io.Writer, records []domain.ExecutionRecord) {
	for _, rec := range records {
		fmt.Fprintf(out, "%s | %s | %s | %s\n",
			rec.Timestamp.Format(time.RFC3339),
			recordStatus(rec),
			rec.WorkDir,
			rec.Command)
	}
}

func recordStatus(rec domain.ExecutionRecord) string {
	switch {
	case rec.Cancelled:
		return "cancelled"
	case !rec.Executed:
		return "failed"
	case rec.ExitCode != 0:
		return fmt.Sprintf("exit %d", rec.ExitCode)
	default:
		return "ok"
	}
}

func newContextsCommand(container *app.Container) *cobra.Command {
	contextsCmd := &cobra.Command{
		Use:   "contexts",
		Short: "Manage saved conversation contexts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContextsList(cmd.OutOrStdout(), container)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved contexts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContextsList(cmd.OutOrStdout(), container)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Snapshots == nil {
				return errors.New("context store unavailable")
			}
			if err := container.Snapshots.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Context %q deleted.\n", args[0])
			return nil
		},
	}

	contextsCmd.AddCommand(listCmd, deleteCmd)
	return contextsCmd
}

func runContextsList(out io.Writer, container *app.Container) error {
	if container.Snapshots == nil {
		return errors.New("context store unavailable")
	}
	infos, err := container.Snapshots.List()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Fprintln(out, "No saved contexts.")
		return nil
	}
	for _, info := range infos {
		fmt.Fprintf(out, "%s | %s | %d messages\n", info.Name, humanize.Time(info.SavedAt), info.Messages)
	}
	return nil
}

func newGuardrailCommand(container *app.Container) *cobra.Command {
	guardrailCmd := &cobra.Command{
		Use:   "guardrail",
		Short: "Inspect and control the command safety guardrail",
	}

	checkCmd := &cobra.Command{
		Use:   "check <command>",
		Short: "Classify a command without running it",
		Long: "check classifies the given command line with the loaded guardrail rules\n" +
			"and exits non-zero when it is dangerous, so it can gate scripts.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Guardrail == nil {
				return errors.New("guardrail unavailable")
			}
			command := strings.Join(args, " ")
			verdict := container.Guardrail.Classify(command)
			if !verdict.Dangerous {
				fmt.Fprintf(cmd.OutOrStdout(), "safe: %s\n", command)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "DANGEROUS: %s\n", command)
			for _, reason := range verdict.Reasons {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", reason)
			}
			return errors.New("dangerous command detected")
		},
	}

	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the guardrail rules file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context(), container)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), security.RulesPath(cfg.Security.RulesFile))
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether dangerous-command gating is active",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context(), container)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Guardrail is %s.\n", enabledWord(cfg.Security.Enabled))
			if cfg.Security.Enabled {
				fmt.Fprintf(out, "Rules file: %s\n", security.RulesPath(cfg.Security.RulesFile))
			}
			return nil
		},
	}

	enableCmd := &cobra.Command{
		Use:   "enable",
		Short: "Enable dangerous-command gating",
		RunE: func(cmd *cobra.Command, args []string) error {
			return setGuardrailState(cmd.Context(), cmd.OutOrStdout(), container, true)
		},
	}

	disableCmd := &cobra.Command{
		Use:   "disable",
		Short: "Disable dangerous-command gating (not recommended)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return setGuardrailState(cmd.Context(), cmd.OutOrStdout(), container, false)
		},
	}

	guardrailCmd.AddCommand(checkCmd, rulesCmd, statusCmd, enableCmd, disableCmd)
	return guardrailCmd
}

func setGuardrailState(ctx context.Context, out io.Writer, container *app.Container, enabled bool) error {
	loader := container.ConfigLoader
	if loader == nil {
		return errors.New("config loader unavailable")
	}
	cfg, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	cfg.Security.Enabled = enabled
	if err := loader.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "Guardrail %s.\n", enabledWord(enabled))
	return nil
}

func enabledWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func loadConfig(ctx context.Context, container *app.Container) (domain.Config, error) {
	if container.ConfigLoader == nil {
		return domain.Config{}, errors.New("config loader unavailable")
	}
	return container.ConfigLoader.Load(ctx)
}

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the environment setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Doctor == nil {
				return errors.New("doctor service unavailable")
			}
			report, err := container.Doctor.Run(cmd.Context())
			renderDoctorReport(cmd.OutOrStdout(), report)
			if err != nil {
				return err
			}
			if report.HasFailures() {
				return errors.New("doctor found problems")
			}
			return nil
		},
	}
}

func renderDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
		if check.Hint != "" && check.Status != domain.HealthOK {
			fmt.Fprintf(out, "       hint: %s\n", check.Hint)
		}
	}
}

func newInstallCompletionCommand(container *app.Container) *cobra.Command {
	var shell string
	var force bool
	cmd := &cobra.Command{
		Use:   "install-completion",
		Short: "Install shell completion for bash or zsh",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.ShellIntegrator == nil {
				return errors.New("shell installer unavailable")
			}
			res, err := container.ShellIntegrator.Install(shell, force)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Completion installed for %s\nHook: %s\nRC file: %s\n", res.Shell, res.HookPath, res.RCFile)
			if !res.RCChanged {
				fmt.Fprintln(out, "RC file already references the hook; nothing to change.")
			}
			fmt.Fprintln(out, "Restart your shell or source the RC file to activate it.")
			return nil
		},
	}
	cmd.Flags().StringVar(&shell, "shell", "", "Shell to install for (bash|zsh, auto-detected by default)")
	cmd.Flags().BoolVar(&force, "force", false, "Rewrite the RC entry even if present")
	return cmd
}

func newUninstallCompletionCommand(container *app.Container) *cobra.Command {
	var shell string
	cmd := &cobra.Command{
		Use:   "uninstall-completion",
		Short: "Remove the shell completion hook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.ShellIntegrator == nil {
				return errors.New("shell installer unavailable")
			}
			res, err := container.ShellIntegrator.Uninstall(shell)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed completion hook for %s from %s\n", res.Shell, res.RCFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&shell, "shell", "", "Shell to uninstall (bash|zsh, auto-detected by default)")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show opsagent version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "opsagent version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.BuildDate != "" {
				fmt.Fprintf(out, "Built: %s\n", version.BuildDate)
			}
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			return nil
		},
	}
}
