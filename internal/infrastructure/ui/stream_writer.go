package ui

import (
	"fmt"
	"io"

	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// streamWriter echoes streamed reply chunks as they arrive. Chunks are
// written raw (no added newlines) so the text flows exactly as the model
// produced it; Done terminates the line.
type streamWriter struct {
	out io.Writer
}

// NewStreamWriter builds a StreamWriter printing to out.
func NewStreamWriter(out io.Writer) ports.StreamWriter {
	return &streamWriter{out: out}
}

func (s *streamWriter) WriteChunk(text string) {
	if text == "" {
		return
	}
	fmt.Fprint(s.out, text)
}

func (s *streamWriter) Done() {
	fmt.Fprintln(s.out)
}
