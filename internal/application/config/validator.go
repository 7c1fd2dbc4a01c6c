// Package config validates configuration consistency before it is saved or
// acted on.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
)

var knownThemes = map[string]bool{
	"":        true, // empty means default
	"default": true,
	"dark":    true,
	"light":   true,
	"hacker":  true,
	"plain":   true,
}

// Validate ensures the configuration is internally consistent. It never
// mutates cfg; hydration of empty values happens in the loader.
func Validate(cfg domain.Config) error {
	if len(cfg.Models) == 0 {
		return errors.New("at least one model must be configured")
	}
	if err := cfg.ValidateConsistency(); err != nil {
		return err
	}
	for _, model := range cfg.Models {
		if err := validateModel(model); err != nil {
			return err
		}
	}
	if !knownThemes[strings.ToLower(cfg.Preferences.Theme)] {
		return fmt.Errorf("preferences.theme must be default|dark|light|hacker|plain, got %s", cfg.Preferences.Theme)
	}
	if cfg.Preferences.TimeoutSeconds < 0 {
		return errors.New("preferences.timeout must be >= 0")
	}
	if cfg.History.MaxEntries < 0 {
		return errors.New("history.max_entries must be >= 0")
	}
	if cfg.Execution.TimeoutSeconds < 0 {
		return errors.New("execution.timeout must be >= 0")
	}
	if err := validateQuickCommands(cfg.QuickCommands); err != nil {
		return err
	}
	return nil
}

func validateModel(model domain.ModelDefinition) error {
	if model.Name == "" {
		return errors.New("every model needs a name")
	}
	// No endpoint selects the offline fallback; with an endpoint the model id
	// is mandatory because the wire format requires it.
	if model.Endpoint == "" {
		return nil
	}
	parsed, err := url.Parse(model.Endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("model %s: endpoint %q is not a valid URL", model.Name, model.Endpoint)
	}
	if model.ModelID == "" {
		return fmt.Errorf("model %s: model_id is required when an endpoint is set", model.Name)
	}
	return nil
}

func validateQuickCommands(commands map[string]string) error {
	for name, template := range commands {
		if strings.TrimSpace(name) == "" {
			return errors.New("quick command names cannot be blank")
		}
		if strings.ContainsAny(name, " \t") {
			return fmt.Errorf("quick command name %q cannot contain whitespace", name)
		}
		if strings.TrimSpace(template) == "" {
			return fmt.Errorf("quick command %s has an empty template", name)
		}
	}
	return nil
}
