package ai

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// Factory builds providers for model definitions, sharing one HTTP client.
type Factory struct {
	client *http.Client
}

// NewFactory builds a factory whose client times out after the given
// duration; zero means the default.
func NewFactory(timeout time.Duration) *Factory {
	if timeout <= 0 {
		timeout = domain.DefaultHTTPClientTimeout
	}
	return &Factory{client: &http.Client{Timeout: timeout}}
}

var _ ports.ProviderFactory = (*Factory)(nil)

// ForModel returns the provider for a model definition. Models without an
// endpoint, or whose API key is not exported, get the offline fallback so
// the session keeps working.
func (f *Factory) ForModel(model domain.ModelDefinition) (ports.Provider, error) {
	if model.Endpoint == "" {
		return NewHeuristicProvider(model), nil
	}
	if model.ModelID == "" {
		return nil, fmt.Errorf("model %q has no model_id", model.Name)
	}
	if model.AuthEnvVar != "" && os.Getenv(model.AuthEnvVar) == "" {
		return NewHeuristicProvider(model), nil
	}
	return NewHTTPProvider(model, f.client), nil
}
