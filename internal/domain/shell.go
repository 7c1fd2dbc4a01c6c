package domain

// ShellName enumerates shells the completion installer understands.
type ShellName string

const (
	ShellUnknown ShellName = "unknown"
	ShellBash    ShellName = "bash"
	ShellZsh     ShellName = "zsh"
)

// ShellInstallResult reports what install or uninstall touched: the hook
// script under the state dir and the source line in the shell rc file.
type ShellInstallResult struct {
	Shell       ShellName
	HookPath    string
	RCFile      string
	HookChanged bool
	RCChanged   bool
}

// ShellStatus captures the integration state of one shell.
type ShellStatus struct {
	Shell       ShellName
	HookPath    string
	RCFile      string
	HookPresent bool
	RCLinked    bool
	Error       string
}
