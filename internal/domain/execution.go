package domain

import "time"

// ExecutionResult wraps details from one command invocation. A non-zero exit
// code is a normal outcome, not an error: Ran stays true and the captured
// output explains what happened.
type ExecutionResult struct {
	Command    string
	WorkDir    string
	Ran        bool
	Cancelled  bool
	Stdout     string
	Stderr     string
	ExitCode   int
	DurationMS int64
	Notes      string
}

// ExecutionRecord is the journal row persisted for every engine invocation,
// including cancelled ones and in-process directory changes.
type ExecutionRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	SessionID    string    `json:"session_id"`
	Command      string    `json:"command"`
	WorkDir      string    `json:"work_dir"`
	Executed     bool      `json:"executed"`
	Cancelled    bool      `json:"cancelled"`
	ExitCode     int       `json:"exit_code"`
	DangerReason string    `json:"danger_reason,omitempty"`
	DurationMS   int64     `json:"duration_ms"`
}
