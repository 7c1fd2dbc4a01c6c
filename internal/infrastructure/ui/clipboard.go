package ui

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// Clipboard copies text through the platform clipboard tool. On Linux the
// agent often runs over SSH where no display session exists, so availability
// depends on the session environment, not just the OS.
type Clipboard struct {
	lookPath func(string) (string, error)
	getenv   func(string) string
}

// NewClipboard builds the clipboard helper.
func NewClipboard() *Clipboard {
	return &Clipboard{lookPath: exec.LookPath, getenv: os.Getenv}
}

// Enabled reports whether a clipboard can be reached from this session.
func (c *Clipboard) Enabled() bool {
	switch runtime.GOOS {
	case "darwin":
		return true
	case "linux":
		return c.getenv("WAYLAND_DISPLAY") != "" || c.getenv("DISPLAY") != ""
	default:
		return false
	}
}

// Copy pipes text into the clipboard tool that fits the session. Wayland
// sessions prefer wl-copy because xclip needs an X server to talk to.
func (c *Clipboard) Copy(text string) error {
	if !c.Enabled() {
		return fmt.Errorf("no clipboard in this session on %s", runtime.GOOS)
	}
	name, args, err := c.tool()
	if err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (c *Clipboard) tool() (string, []string, error) {
	if runtime.GOOS == "darwin" {
		return "pbcopy", nil, nil
	}
	candidates := [][]string{
		{"xclip", "-selection", "clipboard"},
		{"wl-copy"},
	}
	if c.getenv("WAYLAND_DISPLAY") != "" {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}
	for _, cand := range candidates {
		if _, err := c.lookPath(cand[0]); err == nil {
			return cand[0], cand[1:], nil
		}
	}
	return "", nil, fmt.Errorf("clipboard utilities not found (install xclip or wl-clipboard)")
}

var _ ports.Clipboard = (*Clipboard)(nil)
