package domain

import (
	"fmt"
	"time"
)

// GetDefaultModel retrieves the default model definition from configuration
// Returns an error if the default model is not found
func (c *Config) GetDefaultModel() (ModelDefinition, error) {
	if c.Preferences.DefaultModel == "" {
		return ModelDefinition{}, fmt.Errorf("no default model configured")
	}

	for _, model := range c.Models {
		if model.Name == c.Preferences.DefaultModel {
			return model, nil
		}
	}

	return ModelDefinition{}, fmt.Errorf("default model %s not found in configuration", c.Preferences.DefaultModel)
}

// FindModelByName searches for a model by its name
// Returns the model definition and true if found, empty model and false otherwise
func (c *Config) FindModelByName(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}

// HasModel checks if a model with the given name exists in the configuration
func (c *Config) HasModel(name string) bool {
	_, exists := c.FindModelByName(name)
	return exists
}

// SetDefaultModel changes the default model to the given name
// Returns an error if the model doesn't exist
func (c *Config) SetDefaultModel(name string) error {
	if !c.HasModel(name) {
		return fmt.Errorf("cannot set default model: model %s does not exist", name)
	}

	c.Preferences.DefaultModel = name
	return nil
}

// IsSecurityEnabled checks if the command guardrail is enabled
func (c *Config) IsSecurityEnabled() bool {
	return c.Security.Enabled
}

// GetExecutionShell returns the configured shell for command execution
// Returns the default shell if not configured
func (c *Config) GetExecutionShell() string {
	const defaultShell = "sh"

	if c.Execution.Shell == "" {
		return defaultShell
	}
	return c.Execution.Shell
}

// GetExecutionTimeout returns how long a spawned command may run
func (c *Config) GetExecutionTimeout() time.Duration {
	if c.Execution.TimeoutSeconds <= 0 {
		return DefaultExecutionTimeout
	}
	return time.Duration(c.Execution.TimeoutSeconds) * time.Second
}

// GetRequestTimeout returns the model API request timeout
func (c *Config) GetRequestTimeout() time.Duration {
	if c.Preferences.TimeoutSeconds <= 0 {
		return DefaultHTTPClientTimeout
	}
	return time.Duration(c.Preferences.TimeoutSeconds) * time.Second
}

// GetHistoryMaxEntries returns the transcript entry bound
func (c *Config) GetHistoryMaxEntries() int {
	if c.History.MaxEntries <= 0 {
		return DefaultTranscriptLimit
	}
	return c.History.MaxEntries
}

// GetScriptsDir returns where generated scripts and templates are written
func (c *Config) GetScriptsDir() string {
	const defaultDir = "~/tech/scripts"

	if c.Scripts.Dir == "" {
		return defaultDir
	}
	return c.Scripts.Dir
}

// GetTheme returns the display theme name with default fallback
func (c *Config) GetTheme() string {
	if c.Preferences.Theme == "" {
		return "default"
	}
	return c.Preferences.Theme
}

// AliasFor resolves a user alias for the given command token
// Returns the expansion and true when an alias is defined
func (c *Config) AliasFor(token string) (string, bool) {
	if len(c.Aliases) == 0 {
		return "", false
	}
	expansion, ok := c.Aliases[token]
	return expansion, ok
}

// ValidateConsistency checks the internal consistency of the configuration
// Returns an error if there are inconsistencies (e.g., default model doesn't exist)
func (c *Config) ValidateConsistency() error {
	// Check if default model exists
	if c.Preferences.DefaultModel != "" && !c.HasModel(c.Preferences.DefaultModel) {
		return fmt.Errorf("default model %s does not exist in models list", c.Preferences.DefaultModel)
	}

	// Validate at least one model is configured if default model is set
	if c.Preferences.DefaultModel != "" && len(c.Models) == 0 {
		return fmt.Errorf("default model is set but no models are configured")
	}

	return nil
}
