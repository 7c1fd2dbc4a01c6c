package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
	// ScriptFilePermissions is the permission for generated executable scripts (rwxr-xr-x)
	ScriptFilePermissions = 0o755
	// PlainFilePermissions is the permission for generated non-executable files (rw-r--r--)
	PlainFilePermissions = 0o644
)

// Timeout and duration constants
const (
	// DefaultProbeCacheDuration is how long collected system facts stay fresh
	DefaultProbeCacheDuration = 10 * time.Minute
	// DefaultProbeTimeout is the timeout for a single system-info probe
	DefaultProbeTimeout = 2 * time.Second
	// DefaultHTTPClientTimeout is the timeout for model API requests
	DefaultHTTPClientTimeout = 60 * time.Second
	// DefaultExecutionTimeout is the timeout for spawned shell commands
	DefaultExecutionTimeout = 120 * time.Second
)

// History constants
const (
	// DefaultTranscriptLimit is the default number of transcript entries retained
	DefaultTranscriptLimit = 40
	// DefaultJournalListLimit is the default number of journal rows to display
	DefaultJournalListLimit = 20
	// DefaultJournalSearchLimit is the default number of search results to return
	DefaultJournalSearchLimit = 50
)

// Model configuration constants
const (
	// DefaultMaxTokens is the default maximum number of tokens per completion
	DefaultMaxTokens = 4000
	// DefaultTemperature is the default sampling temperature
	DefaultTemperature = 0.7
)

// CurrentConfigFormatVersion is stamped into configs that lack one so a
// future format change can tell old files from new.
const CurrentConfigFormatVersion = "1"

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
