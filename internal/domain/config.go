package domain

// Config mirrors ~/.opsagent/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Models              []ModelDefinition `yaml:"models"`
	History             HistorySettings   `yaml:"history"`
	Scripts             ScriptSettings    `yaml:"scripts"`
	Security            SecuritySettings  `yaml:"security"`
	Execution           ExecutionSettings `yaml:"execution"`
	Aliases             map[string]string `yaml:"aliases"`
	QuickCommands       map[string]string `yaml:"quick_commands"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultModel    string `yaml:"default_model"`
	Language        string `yaml:"language"`
	Theme           string `yaml:"theme"`
	StreamResponses bool   `yaml:"stream_responses"`
	ShowSystemInfo  bool   `yaml:"show_system_info"`
	TimeoutSeconds  int    `yaml:"timeout"`
}

// HistorySettings bounds the conversation transcript.
type HistorySettings struct {
	MaxEntries int `yaml:"max_entries"`
}

// ScriptSettings controls where generated scripts and templates land.
type ScriptSettings struct {
	Dir            string `yaml:"dir"`
	OfferExecution bool   `yaml:"offer_execution"`
}

// SecuritySettings defines guardrail behavior.
type SecuritySettings struct {
	Enabled   bool   `yaml:"enabled"`
	RulesFile string `yaml:"rules_file"`
}

// ExecutionSettings controls how commands run.
type ExecutionSettings struct {
	Shell          string `yaml:"shell"`
	TimeoutSeconds int    `yaml:"timeout"`
}
