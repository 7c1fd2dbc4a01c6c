package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlainDisplayPrefixes(t *testing.T) {
	var buf bytes.Buffer
	d := NewPlainDisplay(&buf)

	d.Info("connected")
	d.Warn("model offline")
	d.Error("spawn failed")

	out := buf.String()
	for _, want := range []string{"connected\n", "warning: model offline\n", "error: spawn failed\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output = %q, missing %q", out, want)
		}
	}
}

func TestPlainDisplayWrapsLongLines(t *testing.T) {
	var buf bytes.Buffer
	d := NewPlainDisplay(&buf)

	d.Info(strings.TrimSpace(strings.Repeat("disk usage on the primary volume keeps growing ", 5)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("long line was not wrapped: %q", buf.String())
	}
	for _, line := range lines {
		if len(line) > plainWrapWidth {
			t.Fatalf("line exceeds wrap width: %q", line)
		}
	}
}

func TestPlainDisplayPanelSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	d := NewPlainDisplay(&buf)

	d.Panel("   \n\t")
	if buf.Len() != 0 {
		t.Fatalf("empty panel produced output: %q", buf.String())
	}

	d.Panel("  check /var/log  ")
	if got := buf.String(); got != "check /var/log\n" {
		t.Fatalf("Panel() = %q", got)
	}
}

func TestRichDisplayCarriesMessageText(t *testing.T) {
	var buf bytes.Buffer
	d := NewRichDisplay(&buf, "dark")

	d.Info("three pods restarted")
	d.Warn("journal fallback active")
	d.Error("endpoint unreachable")
	d.Panel("Run `df -h` to confirm.")

	out := buf.String()
	for _, want := range []string{"three pods restarted", "warning: journal fallback active", "error: endpoint unreachable", "df -h"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPaletteForFallsBack(t *testing.T) {
	if got := paletteFor("no-such-theme"); got != palettes["default"] {
		t.Fatalf("paletteFor(unknown) = %+v", got)
	}
	if got := paletteFor("HACKER"); got != palettes["hacker"] {
		t.Fatalf("paletteFor is not case insensitive: %+v", got)
	}
}

func TestNewDisplayPicksPlainOffTerminal(t *testing.T) {
	// Neither a nil file nor the plain theme should ever get ANSI styling.
	if _, ok := NewDisplay(nil, "dark").(*PlainDisplay); !ok {
		t.Fatal("nil output did not select the plain display")
	}
	if _, ok := NewDisplay(nil, "plain").(*PlainDisplay); !ok {
		t.Fatal("plain theme did not select the plain display")
	}
}

func TestStreamWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamWriter(&buf)

	w.WriteChunk("Checking ")
	w.WriteChunk("")
	w.WriteChunk("disk usage")
	w.Done()

	if got := buf.String(); got != "Checking disk usage\n" {
		t.Fatalf("stream output = %q", got)
	}
}
