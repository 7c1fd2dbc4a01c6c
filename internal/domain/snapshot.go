package domain

import "time"

// ContextSnapshot is a named, restorable capture of session state: the
// conversation history, the tracked working directory, and the system
// instructions active when it was taken.
type ContextSnapshot struct {
	Name               string    `json:"name"`
	History            []Message `json:"history"`
	WorkDir            string    `json:"current_dir"`
	SystemInstructions string    `json:"system_instructions"`
	SavedAt            time.Time `json:"saved_at"`
}

// SnapshotInfo summarizes a stored snapshot for listings.
type SnapshotInfo struct {
	Name     string
	SavedAt  time.Time
	Messages int
}
