package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSnapshotNotFound reports a context snapshot name with no stored file.
var ErrSnapshotNotFound = errors.New("context snapshot not found")

// ErrInterrupted reports a turn abandoned because the session is shutting down.
var ErrInterrupted = errors.New("interrupted")

// MissingParameterError reports quick-command placeholders left unbound
// because too few arguments were supplied. No partial substitution happens.
type MissingParameterError struct {
	Command string
	Missing []string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("quick command %s needs parameters: %s", e.Command, strings.Join(e.Missing, ", "))
}

// UnknownQuickCommandError reports a quick-command name absent from both the
// built-in table and the user's configured commands.
type UnknownQuickCommandError struct {
	Name string
}

func (e *UnknownQuickCommandError) Error() string {
	return fmt.Sprintf("unknown quick command: %s", e.Name)
}

// UnknownTemplateError reports a template kind with no registered scaffold.
type UnknownTemplateError struct {
	Kind  string
	Known []string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template kind %s (available: %s)", e.Kind, strings.Join(e.Known, ", "))
}

// UnknownToolError reports a devops tool name absent from the registry.
type UnknownToolError struct {
	Name  string
	Known []string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %s (available: %s)", e.Name, strings.Join(e.Known, ", "))
}

// UpstreamError reports a model API call that reached the endpoint but came
// back with a non-success status.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("model API returned status %d", e.Status)
	}
	return fmt.Sprintf("model API returned status %d: %s", e.Status, body)
}
