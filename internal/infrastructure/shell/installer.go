// Package shell installs and removes the completion hook for bash and zsh.
// The hook lives under ~/.opsagent/shell/ and a single source line in the
// user's rc file activates it.
package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	rootassets "github.com/BadrBouzakri/AI-Agent/assets"
	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/pkg/filesystem"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// Installer implements ports.ShellIntegrator on the local filesystem.
type Installer struct {
	logger ports.Logger
}

var _ ports.ShellIntegrator = (*Installer)(nil)

// NewInstaller builds a shell installer.
func NewInstaller(logger ports.Logger) *Installer {
	return &Installer{logger: logger}
}

// Install writes the hook script and adds the source line to the rc file.
// The shell name is auto-detected when empty. Re-running is a no-op unless
// force is set, in which case the rc line is rewritten.
func (i *Installer) Install(shell string, force bool) (domain.ShellInstallResult, error) {
	name := normalizeShell(shell)
	hook, err := hookFor(name)
	if err != nil {
		return domain.ShellInstallResult{}, err
	}
	hookPath, rcFile := integrationPaths(name)

	if err := os.MkdirAll(filepath.Dir(hookPath), domain.DirectoryPermissions); err != nil {
		return domain.ShellInstallResult{}, fmt.Errorf("create shell directory: %w", err)
	}
	if err := os.WriteFile(hookPath, []byte(hook), domain.PlainFilePermissions); err != nil {
		return domain.ShellInstallResult{}, fmt.Errorf("write hook script: %w", err)
	}

	rcChanged, err := ensureRCLine(rcFile, sourceLine(hookPath), force)
	if err != nil {
		return domain.ShellInstallResult{}, err
	}
	if i.logger != nil {
		i.logger.Info("completion installed", map[string]interface{}{
			"shell": string(name), "hook": hookPath, "rc_updated": rcChanged,
		})
	}

	return domain.ShellInstallResult{
		Shell:       name,
		HookPath:    hookPath,
		RCFile:      rcFile,
		HookChanged: true,
		RCChanged:   rcChanged,
	}, nil
}

// Uninstall removes the source line and the hook script.
func (i *Installer) Uninstall(shell string) (domain.ShellInstallResult, error) {
	name := normalizeShell(shell)
	if _, err := hookFor(name); err != nil {
		return domain.ShellInstallResult{}, err
	}
	hookPath, rcFile := integrationPaths(name)

	removed, err := removeRCLine(rcFile)
	if err != nil {
		return domain.ShellInstallResult{}, err
	}
	hookRemoved := false
	if err := os.Remove(hookPath); err == nil {
		hookRemoved = true
	} else if !errors.Is(err, os.ErrNotExist) {
		return domain.ShellInstallResult{}, fmt.Errorf("remove hook script: %w", err)
	}

	return domain.ShellInstallResult{
		Shell:       name,
		HookPath:    hookPath,
		RCFile:      rcFile,
		HookChanged: hookRemoved,
		RCChanged:   removed,
	}, nil
}

// Status reports the current integration state without changing anything.
func (i *Installer) Status(shell string) domain.ShellStatus {
	name := normalizeShell(shell)
	status := domain.ShellStatus{Shell: name}
	if _, err := hookFor(name); err != nil {
		status.Error = err.Error()
		return status
	}
	status.HookPath, status.RCFile = integrationPaths(name)

	if info, err := os.Stat(status.HookPath); err == nil && info.Mode().IsRegular() {
		status.HookPresent = true
	}
	if contents, err := os.ReadFile(status.RCFile); err == nil {
		status.RCLinked = strings.Contains(string(contents), sourceLine(status.HookPath))
	}
	return status
}

// DetectShell returns the basename of $SHELL, or empty when unset.
func (i *Installer) DetectShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return filepath.Base(shell)
	}
	return ""
}

func normalizeShell(shell string) domain.ShellName {
	if shell == "" {
		shell = filepath.Base(os.Getenv("SHELL"))
	}
	switch strings.ToLower(shell) {
	case "zsh":
		return domain.ShellZsh
	case "bash":
		return domain.ShellBash
	default:
		return domain.ShellUnknown
	}
}

func hookFor(shell domain.ShellName) (string, error) {
	switch shell {
	case domain.ShellZsh:
		return rootassets.ZshHook, nil
	case domain.ShellBash:
		return rootassets.BashHook, nil
	default:
		return "", errors.New("unsupported shell (supported: bash, zsh)")
	}
}

func integrationPaths(shell domain.ShellName) (hookPath, rcFile string) {
	home := filesystem.UserHomeDir()
	switch shell {
	case domain.ShellZsh:
		return filesystem.StatePath("shell", "zsh.sh"), filepath.Join(home, ".zshrc")
	case domain.ShellBash:
		return filesystem.StatePath("shell", "bash.sh"), filepath.Join(home, ".bashrc")
	default:
		return "", ""
	}
}

// sourceLine is what lands in the rc file. The trailing comment makes the
// line findable for uninstall even if the user reformats it.
func sourceLine(hookPath string) string {
	return fmt.Sprintf("[ -f %s ] && source %s # opsagent completion", hookPath, hookPath)
}

func ensureRCLine(path, line string, force bool) (bool, error) {
	contents, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if errors.Is(err, os.ErrNotExist) {
		return true, os.WriteFile(path, []byte(line+"\n"), domain.PlainFilePermissions)
	}
	if strings.Contains(string(contents), line) && !force {
		return false, nil
	}

	lines := strings.Split(string(contents), "\n")
	filtered := lines[:0]
	for _, existing := range lines {
		if strings.Contains(existing, "# opsagent completion") {
			continue
		}
		filtered = append(filtered, existing)
	}
	for len(filtered) > 0 && filtered[len(filtered)-1] == "" {
		filtered = filtered[:len(filtered)-1]
	}
	filtered = append(filtered, line)
	return true, os.WriteFile(path, []byte(strings.Join(filtered, "\n")+"\n"), domain.PlainFilePermissions)
}

// removeRCLine strips every line tagged with the opsagent completion marker,
// including lines left behind by older install locations.
func removeRCLine(path string) (bool, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	lines := strings.Split(string(contents), "\n")
	filtered := lines[:0]
	removed := false
	for _, existing := range lines {
		if strings.Contains(existing, "# opsagent completion") {
			removed = true
			continue
		}
		filtered = append(filtered, existing)
	}
	if !removed {
		return false, nil
	}
	final := strings.Join(filtered, "\n")
	if !strings.HasSuffix(final, "\n") {
		final += "\n"
	}
	return true, os.WriteFile(path, []byte(final), domain.PlainFilePermissions)
}
