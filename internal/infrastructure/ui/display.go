// Package ui implements the terminal-facing adapters: themed display
// rendering, the dangerous-command confirmation prompt, streaming output,
// the progress spinner, and clipboard access.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/wordwrap"

	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

const plainWrapWidth = 100

// palette holds the per-theme colors. Values are ANSI 256 codes so they
// degrade cleanly on basic terminals.
type palette struct {
	info    lipgloss.Color
	warn    lipgloss.Color
	err     lipgloss.Color
	border  lipgloss.Color
	glamour string
}

var palettes = map[string]palette{
	"default": {info: "6", warn: "3", err: "1", border: "8", glamour: "auto"},
	"dark":    {info: "14", warn: "11", err: "9", border: "240", glamour: "dark"},
	"light":   {info: "4", warn: "130", err: "124", border: "250", glamour: "light"},
	"hacker":  {info: "10", warn: "11", err: "9", border: "2", glamour: "dark"},
}

func paletteFor(theme string) palette {
	if p, ok := palettes[strings.ToLower(theme)]; ok {
		return p
	}
	return palettes["default"]
}

// NewDisplay picks the rich renderer when out is a terminal and the theme
// wants color; everything else gets the plain word-wrapped renderer.
func NewDisplay(out *os.File, theme string) ports.Display {
	if strings.EqualFold(theme, "plain") || !isTerminal(out) {
		return NewPlainDisplay(out)
	}
	return NewRichDisplay(out, theme)
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RichDisplay renders through lipgloss styles and glamour markdown.
type RichDisplay struct {
	out      io.Writer
	info     lipgloss.Style
	warn     lipgloss.Style
	err      lipgloss.Style
	panel    lipgloss.Style
	markdown *glamour.TermRenderer
}

// NewRichDisplay builds the styled renderer for the given theme name.
// Unknown themes fall back to the default palette.
func NewRichDisplay(out io.Writer, theme string) *RichDisplay {
	p := paletteFor(theme)

	var renderer *glamour.TermRenderer
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(plainWrapWidth)}
	if p.glamour == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(p.glamour))
	}
	if r, err := glamour.NewTermRenderer(opts...); err == nil {
		renderer = r
	}

	return &RichDisplay{
		out:      out,
		info:     lipgloss.NewStyle().Foreground(p.info),
		warn:     lipgloss.NewStyle().Foreground(p.warn),
		err:      lipgloss.NewStyle().Foreground(p.err).Bold(true),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1),
		markdown: renderer,
	}
}

var _ ports.Display = (*RichDisplay)(nil)

func (d *RichDisplay) Info(msg string) {
	fmt.Fprintln(d.out, d.info.Render(msg))
}

func (d *RichDisplay) Warn(msg string) {
	fmt.Fprintln(d.out, d.warn.Render("warning: "+msg))
}

func (d *RichDisplay) Error(msg string) {
	fmt.Fprintln(d.out, d.err.Render("error: "+msg))
}

// Panel renders text as markdown inside a bordered box. When glamour cannot
// render the text, the raw text is boxed instead so nothing is lost.
func (d *RichDisplay) Panel(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	body := text
	if d.markdown != nil {
		if rendered, err := d.markdown.Render(text); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	}
	fmt.Fprintln(d.out, d.panel.Render(body))
}

// PlainDisplay renders unstyled word-wrapped text for pipes and dumb
// terminals.
type PlainDisplay struct {
	out   io.Writer
	width int
}

// NewPlainDisplay builds the unstyled renderer.
func NewPlainDisplay(out io.Writer) *PlainDisplay {
	return &PlainDisplay{out: out, width: plainWrapWidth}
}

var _ ports.Display = (*PlainDisplay)(nil)

func (d *PlainDisplay) Info(msg string) {
	fmt.Fprintln(d.out, wordwrap.String(msg, d.width))
}

func (d *PlainDisplay) Warn(msg string) {
	fmt.Fprintln(d.out, wordwrap.String("warning: "+msg, d.width))
}

func (d *PlainDisplay) Error(msg string) {
	fmt.Fprintln(d.out, wordwrap.String("error: "+msg, d.width))
}

func (d *PlainDisplay) Panel(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	fmt.Fprintln(d.out, wordwrap.String(text, d.width))
}
