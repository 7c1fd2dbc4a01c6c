// Package session drives the interactive turn loop: read a line, answer it
// locally when it is a builtin or a shell fast path, otherwise send it to
// the model and act on the directives embedded in the reply.
//
// The loop is single threaded and synchronous. Every transcript mutation is
// persisted before the next prompt; quitting and SIGINT/SIGTERM both pass
// through the same flush path.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// State tracks where the loop is in its lifecycle.
type State int

const (
	StateRunning State = iota
	StateFlushing
	StateTerminated
)

// Service owns one interactive session. Dependency fields are wired by the
// container; zero fields degrade (no clipboard means /copy reports
// unavailability, no inspector means no host facts in the system prompt).
type Service struct {
	Config       domain.Config
	ConfigStore  ports.ConfigStore
	Factory      ports.ProviderFactory
	Provider     ports.Provider
	Parser       ports.DirectiveParser
	Engine       ports.CommandEngine
	Transcripts  ports.TranscriptStore
	Snapshots    ports.SnapshotStore
	QuickCmds    ports.QuickCommandResolver
	Scripts      ports.ScriptWriter
	Tools        ports.ToolRunner
	Inspector    ports.SystemInspector
	Instructions ports.InstructionStore
	Journal      ports.ExecutionJournal
	Display      ports.Display
	DisplayFor   func(theme string) ports.Display
	Prompter     ports.ConfirmationPrompter
	Clipboard    ports.Clipboard
	Stream       ports.StreamWriter
	Progress     ports.ProgressIndicator
	Logger       ports.Logger

	// Input and Output default to stdin/stdout. Tests inject buffers.
	Input  io.Reader
	Output io.Writer

	state              State
	transcript         *domain.Transcript
	instructions       string
	customInstructions bool
	lastReply          string
}

// Run executes the interactive loop until /quit, EOF, or ctx cancellation.
// All exits flush the transcript and config and return nil; only setup
// failures produce an error.
func (s *Service) Run(ctx context.Context) error {
	if err := s.init(); err != nil {
		return err
	}
	s.banner()

	lines := make(chan string)
	go s.readLines(lines)

	for s.state == StateRunning {
		s.printPrompt()
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.Output)
			s.state = StateFlushing
		case line, ok := <-lines:
			if !ok {
				// stdin closed
				s.state = StateFlushing
				break
			}
			s.handle(ctx, line)
		}
	}

	s.flush()
	s.Display.Info("Session saved. Bye.")
	s.state = StateTerminated
	return nil
}

// RunOnce performs a single model turn for `opsagent ask` and flushes. The
// persisted transcript is loaded first so one-shot questions share context
// with interactive sessions.
func (s *Service) RunOnce(ctx context.Context, prompt string) error {
	if err := s.init(); err != nil {
		return err
	}
	s.modelTurn(ctx, prompt)
	s.flush()
	s.state = StateTerminated
	return nil
}

func (s *Service) init() error {
	if s.Input == nil {
		s.Input = os.Stdin
	}
	if s.Output == nil {
		s.Output = os.Stdout
	}
	s.state = StateRunning
	s.transcript = domain.NewTranscript(s.Config.GetHistoryMaxEntries())

	if s.Transcripts != nil {
		messages, err := s.Transcripts.Load()
		if err != nil {
			// A corrupt history file must not block the session.
			s.warnf("could not load history, starting empty", err)
		} else {
			s.transcript.Replace(messages)
		}
	}

	if s.Instructions != nil {
		text, custom, err := s.Instructions.Load()
		if err != nil {
			s.warnf("could not read system prompt override", err)
		}
		s.instructions = text
		s.customInstructions = custom
	}
	return nil
}

func (s *Service) readLines(lines chan<- string) {
	scanner := bufio.NewScanner(s.Input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
	close(lines)
}

func (s *Service) banner() {
	model := s.Config.Preferences.DefaultModel
	provider := ""
	if s.Provider != nil {
		provider = s.Provider.Name()
	}
	s.Display.Info(fmt.Sprintf("opsagent ready (model %s via %s). Type /help for commands, /quit to leave.", model, provider))
}

func (s *Service) printPrompt() {
	fmt.Fprintf(s.Output, "\nopsagent %s> ", s.Engine.WorkDir())
}

// handle routes one input line: builtins first, then the bare fast paths,
// then a model turn.
func (s *Service) handle(ctx context.Context, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	if strings.HasPrefix(line, "/") {
		s.runBuiltin(ctx, line)
		return
	}

	switch first(line) {
	case "exit", "quit":
		s.state = StateFlushing
		return
	case "clear":
		// ANSI clear-screen, not history.
		fmt.Fprint(s.Output, "\033[2J\033[H")
		return
	case "pwd":
		s.Display.Info(s.Engine.WorkDir())
		return
	case "ls", "cd":
		s.runCommand(ctx, line)
		return
	}

	s.modelTurn(ctx, line)
}

func first(line string) string {
	if idx := strings.IndexAny(line, " \t"); idx >= 0 {
		return line[:idx]
	}
	return line
}

// modelTurn sends input to the provider and acts on the reply. On provider
// failure the transcript stays untouched so a retry resends the same
// context.
func (s *Service) modelTurn(ctx context.Context, input string) {
	req := ports.ProviderRequest{
		System:  s.systemPrompt(ctx),
		History: s.transcript.Messages(),
		Prompt:  input,
	}

	streaming := s.Config.Preferences.StreamResponses && s.Stream != nil
	if streaming {
		req.Stream = true
		req.StreamWriter = s.Stream
	} else if s.Progress != nil {
		s.Progress.Start()
	}

	resp, err := s.Provider.Generate(ctx, req)
	if !streaming && s.Progress != nil {
		s.Progress.Stop()
	}
	if err != nil {
		s.Display.Error(fmt.Sprintf("model call failed: %v", err))
		s.errorf("model call failed", err)
		return
	}

	s.transcript.Append(domain.RoleUser, input)
	s.transcript.Append(domain.RoleAssistant, resp.Content)
	s.lastReply = resp.Content
	s.persistTranscript()

	directives, prose := s.Parser.Parse(resp.Content)
	for _, directive := range directives {
		if ctx.Err() != nil {
			return
		}
		s.dispatch(ctx, directive)
	}
	if prose != "" {
		s.Display.Panel(prose)
	}
}

// systemPrompt assembles the system message: instructions, then host facts
// when enabled, then the tracked working directory.
func (s *Service) systemPrompt(ctx context.Context) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(s.instructions))
	if lang := s.Config.Preferences.Language; lang != "" && lang != "en" {
		fmt.Fprintf(&b, "\n\nPreferred response language: %s.", lang)
	}
	if s.Config.Preferences.ShowSystemInfo && s.Inspector != nil {
		if summary := s.Inspector.Report(ctx).Summary(); summary != "" {
			b.WriteString("\n\nHost facts:\n")
			b.WriteString(summary)
		}
	}
	fmt.Fprintf(&b, "\n\nCurrent working directory: %s", s.Engine.WorkDir())
	return b.String()
}

// dispatch executes one parsed directive.
func (s *Service) dispatch(ctx context.Context, d domain.Directive) {
	switch d.Kind {
	case domain.DirectiveExec:
		s.runCommand(ctx, d.Command)

	case domain.DirectiveScript:
		path, err := s.Scripts.SaveScript(d.Language, d.Filename, d.Body)
		if err != nil {
			s.Display.Error(fmt.Sprintf("could not save script: %v", err))
			return
		}
		s.Display.Info(fmt.Sprintf("Script saved: %s", path))
		s.offerScriptRun(ctx, d.Language, path)

	case domain.DirectiveTemplate:
		path, err := s.Scripts.MaterializeTemplate(d.Language, d.Filename)
		if err != nil {
			s.Display.Error(fmt.Sprintf("could not expand template: %v", err))
			return
		}
		s.Display.Info(fmt.Sprintf("Template %s written: %s", d.Language, path))

	case domain.DirectiveQuickCommand:
		resolved, err := s.QuickCmds.Resolve(d.Name, d.Args)
		if err != nil {
			s.Display.Warn(err.Error())
			return
		}
		s.Display.Info(fmt.Sprintf("Quick command %s:", d.Name))
		s.runCommand(ctx, resolved)

	case domain.DirectiveTool:
		output, err := s.Tools.Run(ctx, d.Name, d.Args)
		if err != nil {
			s.Display.Warn(err.Error())
			return
		}
		s.Display.Info(fmt.Sprintf("Tool %s:", d.Name))
		s.Display.Panel(output)
	}
}

// runCommand feeds a command line through the engine and shows the outcome.
func (s *Service) runCommand(ctx context.Context, command string) {
	result, err := s.Engine.Execute(ctx, command)
	if err != nil {
		s.Display.Error(fmt.Sprintf("%s: %v", command, err))
		return
	}
	s.showResult(result)
}

func (s *Service) showResult(result domain.ExecutionResult) {
	switch {
	case result.Cancelled:
		s.Display.Warn("cancelled: " + result.Command)
		return
	case !result.Ran:
		if result.Stderr != "" {
			s.Display.Error(result.Stderr)
		}
		return
	}

	if out := strings.TrimRight(result.Stdout, "\n"); out != "" {
		s.Display.Panel(out)
	}
	if errOut := strings.TrimRight(result.Stderr, "\n"); errOut != "" {
		s.Display.Warn(errOut)
	}
	if result.ExitCode != 0 {
		s.Display.Warn(fmt.Sprintf("exit code %d", result.ExitCode))
	}
	if result.Notes != "" {
		s.Display.Warn(result.Notes)
	}
}

// offerScriptRun asks to execute a just-saved script when the kind is
// executable and the config allows it.
func (s *Service) offerScriptRun(ctx context.Context, kind, path string) {
	if !s.Config.Scripts.OfferExecution || !s.Scripts.IsExecutableKind(kind) {
		return
	}
	if s.Prompter == nil || !s.Prompter.Enabled() {
		return
	}
	ok, err := s.Prompter.Confirm(path, []string{"run the script that was just saved"})
	if err != nil || !ok {
		return
	}
	command := path
	switch strings.ToLower(kind) {
	case "python", "py":
		command = "python3 " + path
	}
	s.runCommand(ctx, command)
}

// flush persists everything worth keeping before exit. Failures are
// reported but never abort the shutdown.
func (s *Service) flush() {
	s.persistTranscript()
	s.saveConfig()
}

func (s *Service) persistTranscript() {
	if s.Transcripts == nil {
		return
	}
	if err := s.Transcripts.Save(s.transcript.Messages()); err != nil {
		s.warnf("could not save history", err)
	}
}

func (s *Service) saveConfig() {
	if s.ConfigStore == nil {
		return
	}
	if err := s.ConfigStore.Save(s.Config); err != nil {
		s.Display.Warn(fmt.Sprintf("could not save config: %v", err))
		s.warnf("could not save config", err)
	}
}

// switchModel makes name the active model for this session and persists the
// preference.
func (s *Service) switchModel(name string) error {
	if err := s.Config.SetDefaultModel(name); err != nil {
		return err
	}
	def, _ := s.Config.FindModelByName(name)
	provider, err := s.Factory.ForModel(def)
	if err != nil {
		return err
	}
	s.Provider = provider
	s.saveConfig()
	return nil
}

func (s *Service) warnf(msg string, err error) {
	if s.Logger != nil {
		s.Logger.Warn(msg, map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) errorf(msg string, err error) {
	if s.Logger != nil {
		s.Logger.Error(msg, err, nil)
	}
}
