// Package ai talks to chat-completion endpoints and falls back to a local
// heuristic when no endpoint is usable.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// HTTPProvider sends requests to one OpenAI-compatible endpoint.
type HTTPProvider struct {
	model  domain.ModelDefinition
	client *http.Client
}

// NewHTTPProvider builds a provider for the given model definition.
func NewHTTPProvider(model domain.ModelDefinition, client *http.Client) *HTTPProvider {
	return &HTTPProvider{model: model, client: client}
}

var _ ports.Provider = (*HTTPProvider)(nil)

// Name labels the provider for display and logs.
func (p *HTTPProvider) Name() string {
	endpoint := strings.ToLower(p.model.Endpoint)
	switch {
	case strings.Contains(endpoint, "mistral.ai"):
		return "mistral"
	case strings.Contains(endpoint, "11434"), strings.Contains(endpoint, "localhost"), strings.Contains(endpoint, "127.0.0.1"):
		return "ollama"
	default:
		return "openai-compatible"
	}
}

// Model returns the configured model definition.
func (p *HTTPProvider) Model() domain.ModelDefinition {
	return p.model
}

// Generate implements ports.Provider. With Stream set and a writer present
// the reply is decoded from SSE and forwarded chunk by chunk; the full text
// is returned either way.
func (p *HTTPProvider) Generate(ctx context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	streaming := req.Stream && req.StreamWriter != nil

	body, err := json.Marshal(chatRequest{
		Model:       p.model.ModelID,
		Messages:    buildMessages(req),
		MaxTokens:   p.model.GetMaxTokens(),
		Temperature: p.model.GetTemperature(),
		Stream:      streaming,
	})
	if err != nil {
		return ports.ProviderResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.model.Endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.ProviderResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if streaming {
		httpReq.Header.Set("Accept", "text/event-stream")
	}
	if err := p.setAuth(httpReq); err != nil {
		return ports.ProviderResponse{}, err
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("%s: %w", p.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return ports.ProviderResponse{}, &domain.UpstreamError{Status: resp.StatusCode, Body: string(raw)}
	}

	var content string
	if streaming {
		content, err = decodeStream(resp.Body, req.StreamWriter)
		if err != nil {
			return ports.ProviderResponse{}, fmt.Errorf("%s stream: %w", p.Name(), err)
		}
	} else {
		var decoded chatResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return ports.ProviderResponse{}, fmt.Errorf("%s: decode response: %w", p.Name(), err)
		}
		content = decoded.FirstMessage()
	}

	if strings.TrimSpace(content) == "" {
		return ports.ProviderResponse{}, fmt.Errorf("%s returned an empty completion", p.Name())
	}
	return ports.ProviderResponse{Content: content}, nil
}

func (p *HTTPProvider) setAuth(req *http.Request) error {
	if p.model.AuthEnvVar == "" {
		return nil
	}
	key := os.Getenv(p.model.AuthEnvVar)
	if key == "" {
		return fmt.Errorf("missing API key: set %s", p.model.AuthEnvVar)
	}
	req.Header.Set("Authorization", "Bearer "+key)
	return nil
}

func buildMessages(req ports.ProviderRequest) []chatMessage {
	messages := make([]chatMessage, 0, len(req.History)+2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: string(domain.RoleSystem), Content: req.System})
	}
	for _, msg := range req.History {
		messages = append(messages, chatMessage{Role: string(msg.Role), Content: msg.Content})
	}
	messages = append(messages, chatMessage{Role: string(domain.RoleUser), Content: req.Prompt})
	return messages
}
