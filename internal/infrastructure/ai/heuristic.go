package ai

import (
	"context"
	"strings"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// HeuristicProvider answers locally when no endpoint or API key is
// available. It speaks the same reply grammar as a real model so the
// directive pipeline downstream works unchanged.
type HeuristicProvider struct {
	model domain.ModelDefinition
}

// NewHeuristicProvider builds the offline fallback for a model definition.
func NewHeuristicProvider(model domain.ModelDefinition) *HeuristicProvider {
	return &HeuristicProvider{model: model}
}

var _ ports.Provider = (*HeuristicProvider)(nil)

func (p *HeuristicProvider) Name() string {
	return "offline"
}

func (p *HeuristicProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *HeuristicProvider) Generate(_ context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	content := suggest(req.Prompt)
	if req.Stream && req.StreamWriter != nil {
		req.StreamWriter.WriteChunk(content)
		req.StreamWriter.Done()
	}
	return ports.ProviderResponse{Content: content}, nil
}

func suggest(prompt string) string {
	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(lower, "docker"):
		return "Running offline; this lists the containers on this host.\n\n[EXEC]docker ps[/EXEC]"
	case strings.Contains(lower, "kubernetes"), strings.Contains(lower, "pod"):
		return "Running offline; this lists the pods in the current namespace.\n\n[EXEC]kubectl get pods[/EXEC]"
	case strings.Contains(lower, "disk"):
		return "Running offline; this shows disk usage per filesystem.\n\n[EXEC]df -h[/EXEC]"
	case strings.Contains(lower, "memory"), strings.Contains(lower, "ram"):
		return "Running offline; this shows memory usage.\n\n[EXEC]free -h[/EXEC]"
	case strings.Contains(lower, "process"), strings.Contains(lower, "cpu"):
		return "Running offline; this shows the busiest processes.\n\n[EXEC]ps aux --sort=-%cpu | head -10[/EXEC]"
	case strings.Contains(lower, "list") && strings.Contains(lower, "file"):
		return "Running offline; this lists the current directory.\n\n[EXEC]ls -la[/EXEC]"
	default:
		return "No model endpoint is reachable and no API key is set. " +
			"Export the key named by auth_env_var in the config, or point a model " +
			"at a local endpoint such as Ollama, then try again."
	}
}
