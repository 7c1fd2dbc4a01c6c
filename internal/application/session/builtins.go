package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	appconfig "github.com/BadrBouzakri/AI-Agent/internal/application/config"
	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/pkg/yamlpath"
)

var themeNames = []string{"default", "dark", "light", "hacker", "plain"}

// runBuiltin handles lines starting with "/". Unknown names warn instead of
// going to the model; a typo in a slash command is never a prompt.
func (s *Service) runBuiltin(ctx context.Context, line string) {
	fields := strings.Fields(line)
	name := strings.TrimPrefix(fields[0], "/")
	args := fields[1:]

	switch name {
	case "help":
		s.builtinHelp()
	case "quit", "exit":
		s.state = StateFlushing
	case "history":
		s.builtinHistory(args)
	case "save":
		s.builtinSave(args)
	case "load":
		s.builtinLoad(args)
	case "contexts":
		s.builtinContexts()
	case "config":
		s.builtinConfig(args, line)
	case "alias":
		s.builtinAlias(args, line)
	case "theme":
		s.builtinTheme(args)
	case "model":
		s.builtinModel(args)
	case "prompt":
		s.builtinPrompt(args, line)
	case "commands":
		s.builtinCommands()
	case "tools":
		s.builtinTools()
	case "system":
		s.builtinSystem(ctx, args)
	case "journal":
		s.builtinJournal(args)
	case "copy":
		s.builtinCopy()
	default:
		s.Display.Warn(fmt.Sprintf("unknown command %s; try /help", fields[0]))
	}
}

func (s *Service) builtinHelp() {
	entries := []struct{ use, desc string }{
		{"/help", "show this help"},
		{"/history [clear]", "show or clear the conversation history"},
		{"/save [name]", "save the current context as a named snapshot"},
		{"/load [name]", "restore a named context snapshot"},
		{"/contexts", "list saved context snapshots"},
		{"/config [get k | set k v | reset]", "inspect or change the configuration"},
		{"/alias [set n v | remove n | reset]", "manage command aliases"},
		{"/theme [name]", "show or switch the output theme"},
		{"/model [name]", "show configured models or switch the active one"},
		{"/prompt [show | set text | reset]", "manage the system instructions"},
		{"/commands", "list quick commands usable via [QUICKCMD ...]"},
		{"/tools", "list built-in DevOps tools"},
		{"/system [refresh]", "show collected host facts"},
		{"/journal [n]", "show the last n executed commands"},
		{"/copy", "copy the last model reply to the clipboard"},
		{"/quit", "save everything and leave"},
	}

	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "  %-38s %s\n", e.use, e.desc)
	}
	b.WriteString("\nAnything else goes to the model. Bare exit, quit, clear, pwd, ls and cd work too.")
	s.Display.Panel(b.String())
}

func (s *Service) builtinHistory(args []string) {
	if len(args) > 0 && args[0] == "clear" {
		s.transcript.Clear()
		s.persistTranscript()
		s.Display.Info("History cleared.")
		return
	}

	messages := s.transcript.Messages()
	if len(messages) == 0 {
		s.Display.Info("History is empty.")
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d entries kept\n", len(messages), s.transcript.Limit())
	for i, msg := range messages {
		fmt.Fprintf(&b, "%2d. [%s] %s: %s\n", i+1, humanize.Time(msg.Timestamp), msg.Role, excerpt(msg.Content, 90))
	}
	s.Display.Panel(strings.TrimRight(b.String(), "\n"))
}

func (s *Service) builtinSave(args []string) {
	name := "default"
	if len(args) > 0 {
		name = args[0]
	}
	snap := domain.ContextSnapshot{
		Name:               name,
		History:            s.transcript.Messages(),
		WorkDir:            s.Engine.WorkDir(),
		SystemInstructions: s.instructions,
	}
	if err := s.Snapshots.Save(snap); err != nil {
		s.Display.Error(fmt.Sprintf("could not save context: %v", err))
		return
	}
	s.Display.Info(fmt.Sprintf("Context saved as %q (%d messages).", name, len(snap.History)))
}

func (s *Service) builtinLoad(args []string) {
	name := "default"
	if len(args) > 0 {
		name = args[0]
	}
	snap, err := s.Snapshots.Load(name)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			s.Display.Warn(fmt.Sprintf("no context named %q; see /contexts", name))
		} else {
			s.Display.Error(fmt.Sprintf("could not load context: %v", err))
		}
		return
	}

	s.transcript.Replace(snap.History)
	s.persistTranscript()
	if snap.SystemInstructions != "" {
		s.instructions = snap.SystemInstructions
	}
	if err := s.Engine.SetWorkDir(snap.WorkDir); err != nil {
		// The saved directory may be gone; fall back to where we are now.
		if wd, wdErr := os.Getwd(); wdErr == nil {
			_ = s.Engine.SetWorkDir(wd)
		}
		s.Display.Warn(fmt.Sprintf("saved directory unavailable (%v); staying in %s", err, s.Engine.WorkDir()))
	}
	s.Display.Info(fmt.Sprintf("Context %q restored (%d messages, dir %s).", name, s.transcript.Len(), s.Engine.WorkDir()))
}

func (s *Service) builtinContexts() {
	infos, err := s.Snapshots.List()
	if err != nil {
		s.Display.Error(fmt.Sprintf("could not list contexts: %v", err))
		return
	}
	if len(infos) == 0 {
		s.Display.Info("No saved contexts. Use /save [name] to create one.")
		return
	}
	var b strings.Builder
	for _, info := range infos {
		fmt.Fprintf(&b, "%-20s %3d messages, saved %s\n", info.Name, info.Messages, humanize.Time(info.SavedAt))
	}
	s.Display.Panel(strings.TrimRight(b.String(), "\n"))
}

func (s *Service) builtinConfig(args []string, line string) {
	if len(args) == 0 || args[0] == "show" {
		s.Display.Info("Config file: " + s.ConfigStore.Path())
		m, err := yamlpath.ToMap(s.Config)
		if err != nil {
			s.Display.Error(err.Error())
			return
		}
		s.Display.Panel(yamlpath.Render(m))
		return
	}

	switch args[0] {
	case "get":
		if len(args) != 2 {
			s.Display.Warn("usage: /config get <dotted.path>")
			return
		}
		m, err := yamlpath.ToMap(s.Config)
		if err != nil {
			s.Display.Error(err.Error())
			return
		}
		value, ok := yamlpath.Get(m, args[1])
		if !ok {
			s.Display.Warn("no such config key: " + args[1])
			return
		}
		s.Display.Info(fmt.Sprintf("%s = %s", args[1], yamlpath.Render(value)))

	case "set":
		if len(args) < 3 {
			s.Display.Warn("usage: /config set <dotted.path> <value>")
			return
		}
		key := args[1]
		raw := rest(line, 3)
		m, err := yamlpath.ToMap(s.Config)
		if err != nil {
			s.Display.Error(err.Error())
			return
		}
		if err := yamlpath.Set(m, key, yamlpath.ParseValue(raw)); err != nil {
			s.Display.Warn(err.Error())
			return
		}
		var next domain.Config
		if err := yamlpath.FromMap(m, &next); err != nil {
			s.Display.Error(fmt.Sprintf("value does not fit the config: %v", err))
			return
		}
		if err := appconfig.Validate(next); err != nil {
			s.Display.Warn(fmt.Sprintf("rejected: %v", err))
			return
		}
		s.adoptConfig(next)
		if key == "preferences.theme" {
			s.applyTheme(next.GetTheme())
		}
		s.saveConfig()
		s.Display.Info(fmt.Sprintf("Set %s = %s", key, raw))

	case "reset":
		s.adoptConfig(s.ConfigStore.Defaults())
		s.applyTheme(s.Config.GetTheme())
		s.saveConfig()
		s.Display.Info("Configuration reset to defaults.")

	default:
		s.Display.Warn("usage: /config [get k | set k v | reset]")
	}
}

func (s *Service) builtinAlias(args []string, line string) {
	if len(args) == 0 {
		if len(s.Config.Aliases) == 0 {
			s.Display.Info("No aliases defined. Use /alias set <name> <expansion>.")
			return
		}
		names := make([]string, 0, len(s.Config.Aliases))
		for name := range s.Config.Aliases {
			names = append(names, name)
		}
		sort.Strings(names)
		var b strings.Builder
		for _, name := range names {
			fmt.Fprintf(&b, "%-12s %s\n", name, s.Config.Aliases[name])
		}
		s.Display.Panel(strings.TrimRight(b.String(), "\n"))
		return
	}

	switch args[0] {
	case "set":
		if len(args) < 3 {
			s.Display.Warn("usage: /alias set <name> <expansion>")
			return
		}
		name, expansion := args[1], rest(line, 3)
		if s.Config.Aliases == nil {
			s.Config.Aliases = map[string]string{}
		}
		s.Config.Aliases[name] = expansion
		s.saveConfig()
		s.Display.Info(fmt.Sprintf("Alias %s = %s", name, expansion))

	case "remove":
		if len(args) != 2 {
			s.Display.Warn("usage: /alias remove <name>")
			return
		}
		if _, ok := s.Config.Aliases[args[1]]; !ok {
			s.Display.Warn(fmt.Sprintf("no alias named %s", args[1]))
			return
		}
		delete(s.Config.Aliases, args[1])
		s.saveConfig()
		s.Display.Info(fmt.Sprintf("Alias %s removed.", args[1]))

	case "reset":
		defaults := s.ConfigStore.Defaults().Aliases
		// Mutate in place so the running engine sees the change.
		for name := range s.Config.Aliases {
			delete(s.Config.Aliases, name)
		}
		for name, expansion := range defaults {
			s.Config.Aliases[name] = expansion
		}
		s.saveConfig()
		s.Display.Info("Aliases reset to defaults.")

	default:
		s.Display.Warn("usage: /alias [set n v | remove n | reset]")
	}
}

func (s *Service) builtinTheme(args []string) {
	if len(args) == 0 {
		s.Display.Info(fmt.Sprintf("Theme: %s (available: %s)", s.Config.GetTheme(), strings.Join(themeNames, ", ")))
		return
	}
	theme := strings.ToLower(args[0])
	known := false
	for _, name := range themeNames {
		if theme == name {
			known = true
			break
		}
	}
	if !known {
		s.Display.Warn(fmt.Sprintf("unknown theme %s (available: %s)", args[0], strings.Join(themeNames, ", ")))
		return
	}
	s.Config.Preferences.Theme = theme
	s.applyTheme(theme)
	s.saveConfig()
	s.Display.Info("Theme switched to " + theme + ".")
}

func (s *Service) applyTheme(theme string) {
	if s.DisplayFor != nil {
		s.Display = s.DisplayFor(theme)
	}
}

// adoptConfig replaces the session configuration while keeping the alias map
// identity stable; the running engine holds a reference to that map.
func (s *Service) adoptConfig(next domain.Config) {
	if old := s.Config.Aliases; old != nil {
		incoming := make(map[string]string, len(next.Aliases))
		for name, expansion := range next.Aliases {
			incoming[name] = expansion
		}
		for name := range old {
			delete(old, name)
		}
		for name, expansion := range incoming {
			old[name] = expansion
		}
		next.Aliases = old
	}
	s.Config = next
}

func (s *Service) builtinModel(args []string) {
	if len(args) == 0 {
		var b strings.Builder
		for _, model := range s.Config.Models {
			marker := "  "
			if model.Name == s.Config.Preferences.DefaultModel {
				marker = "* "
			}
			fmt.Fprintf(&b, "%s%-16s %s\n", marker, model.Name, model.ModelID)
		}
		s.Display.Panel(strings.TrimRight(b.String(), "\n"))
		return
	}
	if err := s.switchModel(args[0]); err != nil {
		s.Display.Warn(err.Error())
		return
	}
	s.Display.Info(fmt.Sprintf("Model switched to %s (%s).", args[0], s.Provider.Name()))
}

func (s *Service) builtinPrompt(args []string, line string) {
	if len(args) == 0 || args[0] == "show" {
		s.Display.Panel(s.instructions)
		if s.customInstructions {
			s.Display.Info("Custom prompt from " + s.Instructions.Path())
		} else {
			s.Display.Info("Built-in prompt. Use /prompt set <text> to override.")
		}
		return
	}

	switch args[0] {
	case "set":
		text := rest(line, 2)
		if text == "" {
			s.Display.Warn("usage: /prompt set <text>")
			return
		}
		s.instructions = text
		s.customInstructions = true
		if err := s.Instructions.Save(text); err != nil {
			s.Display.Warn(fmt.Sprintf("prompt active for this session but not saved: %v", err))
			return
		}
		s.Display.Info("System prompt updated.")

	case "reset":
		if err := s.Instructions.Reset(); err != nil {
			s.Display.Warn(err.Error())
			return
		}
		text, custom, _ := s.Instructions.Load()
		s.instructions = text
		s.customInstructions = custom
		s.Display.Info("System prompt reset to the built-in default.")

	default:
		s.Display.Warn("usage: /prompt [show | set text | reset]")
	}
}

func (s *Service) builtinCommands() {
	commands := s.QuickCmds.List()
	if len(commands) == 0 {
		s.Display.Info("No quick commands available.")
		return
	}
	var b strings.Builder
	for _, qc := range commands {
		suffix := ""
		if qc.Custom {
			suffix = " (custom)"
		}
		fmt.Fprintf(&b, "%-20s %s%s\n", qc.Name, qc.Template, suffix)
	}
	s.Display.Panel(strings.TrimRight(b.String(), "\n"))
}

func (s *Service) builtinTools() {
	tools := s.Tools.Tools()
	var b strings.Builder
	for _, tool := range tools {
		fmt.Fprintf(&b, "%-18s %s\n", tool.Name, tool.Summary)
		fmt.Fprintf(&b, "%-18s usage: %s\n", "", tool.Usage)
	}
	s.Display.Panel(strings.TrimRight(b.String(), "\n"))
}

func (s *Service) builtinSystem(ctx context.Context, args []string) {
	if s.Inspector == nil {
		s.Display.Warn("system information collection is disabled")
		return
	}
	if len(args) > 0 && args[0] == "refresh" {
		s.Inspector.Invalidate()
	}
	report := s.Inspector.Report(ctx)
	if len(report.Facts) == 0 {
		s.Display.Warn("no host facts collected")
		return
	}
	s.Display.Panel(report.Summary())
	s.Display.Info("Collected " + humanize.Time(report.CollectedAt) + ". Use /system refresh to re-probe.")
}

func (s *Service) builtinJournal(args []string) {
	limit := domain.DefaultJournalListLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			s.Display.Warn("usage: /journal [n]")
			return
		}
		limit = n
	}
	records, err := s.Journal.Recent(limit, "")
	if err != nil {
		s.Display.Error(fmt.Sprintf("could not read journal: %v", err))
		return
	}
	if len(records) == 0 {
		s.Display.Info("Journal is empty.")
		return
	}
	var b strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&b, "%-14s %-9s exit %-3d %s\n",
			humanize.Time(rec.Timestamp), journalStatus(rec), rec.ExitCode, excerpt(rec.Command, 70))
	}
	s.Display.Panel(strings.TrimRight(b.String(), "\n"))
}

func journalStatus(rec domain.ExecutionRecord) string {
	switch {
	case rec.Cancelled:
		return "cancelled"
	case !rec.Executed:
		return "failed"
	default:
		return "ok"
	}
}

func (s *Service) builtinCopy() {
	if s.Clipboard == nil || !s.Clipboard.Enabled() {
		s.Display.Warn("clipboard is not available on this system")
		return
	}
	if s.lastReply == "" {
		s.Display.Warn("nothing to copy yet")
		return
	}
	if err := s.Clipboard.Copy(s.lastReply); err != nil {
		s.Display.Error(fmt.Sprintf("copy failed: %v", err))
		return
	}
	s.Display.Info("Last reply copied to the clipboard.")
}

// rest returns line with its first n whitespace-separated tokens removed,
// preserving the remainder verbatim (minus outer whitespace).
func rest(line string, n int) string {
	line = strings.TrimSpace(line)
	for i := 0; i < n; i++ {
		idx := strings.IndexAny(line, " \t")
		if idx < 0 {
			return ""
		}
		line = strings.TrimLeft(line[idx:], " \t")
	}
	return strings.TrimSpace(line)
}

func excerpt(text string, max int) string {
	text = strings.TrimSpace(text)
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx] + " ..."
	}
	if len(text) > max {
		text = text[:max] + "..."
	}
	return text
}
