package ai

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// decodeStream consumes an SSE chat-completions stream, forwarding each
// delta to the writer and returning the assembled reply. Lines that do not
// decode are skipped; gateways interleave comments and keepalives.
func decodeStream(r io.Reader, w ports.StreamWriter) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var full strings.Builder
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" {
			continue
		}
		if payload == "[DONE]" {
			break
		}
		var chunk chatStreamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			continue
		}
		delta := chunk.DeltaContent()
		if delta == "" {
			continue
		}
		full.WriteString(delta)
		if w != nil {
			w.WriteChunk(delta)
		}
	}
	if err := scanner.Err(); err != nil {
		return full.String(), err
	}
	if w != nil {
		w.Done()
	}
	return full.String(), nil
}
