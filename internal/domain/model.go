// Package domain defines core business entities and value objects for opsagent.
//
// The domain layer is independent of infrastructure concerns and represents pure
// business logic and data structures: configuration, transcript messages,
// directives extracted from model replies, execution results and journal rows,
// guardrail verdicts, and context snapshots.
package domain

// ModelDefinition describes one OpenAI-compatible chat-completions endpoint
// declared in the config file. The API key is never stored in the file; it is
// read from the environment variable named by AuthEnvVar.
type ModelDefinition struct {
	Name        string  `yaml:"name"`
	Endpoint    string  `yaml:"endpoint"`
	AuthEnvVar  string  `yaml:"auth_env_var,omitempty"`
	ModelID     string  `yaml:"model_id"`
	Temperature float64 `yaml:"temperature,omitempty"`
	MaxTokens   int     `yaml:"max_tokens,omitempty"`
}

// GetTemperature returns the sampling temperature with default fallback.
func (m ModelDefinition) GetTemperature() float64 {
	if m.Temperature <= 0 {
		return DefaultTemperature
	}
	return m.Temperature
}

// GetMaxTokens returns the completion token budget with default fallback.
func (m ModelDefinition) GetMaxTokens() int {
	if m.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return m.MaxTokens
}
