package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// Prompter implements ConfirmationPrompter on stdio. It is the only gate
// between a dangerous classification and a spawned process.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter constructs a prompter referencing stdio. Passing nil readers
// or writers selects the real stdin/stdout.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	interactive := false
	if in == nil {
		in = os.Stdin
		interactive = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	} else {
		// Injected readers are test fixtures; treat them as interactive.
		interactive = true
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)

// Enabled reports whether a human can actually answer. Without a terminal on
// stdin every dangerous command is declined rather than hanging a pipe.
func (p *Prompter) Enabled() bool {
	return p.interactive
}

// Confirm shows the command and the guardrail reasons, then asks [y/N].
// Anything other than y/yes declines.
func (p *Prompter) Confirm(command string, reasons []string) (bool, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "This command is flagged as dangerous:")
	for _, reason := range reasons {
		fmt.Fprintf(p.out, " - %s\n", reason)
	}
	fmt.Fprintf(p.out, "Command:\n  %s\n", command)
	fmt.Fprint(p.out, "Run it anyway? [y/N]: ")

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes", nil
}
