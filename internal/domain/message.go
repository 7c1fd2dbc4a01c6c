package domain

import "time"

// Role identifies the author of a transcript message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one conversation entry exchanged with the model.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Transcript is the bounded conversation history of a session. Appending past
// the configured limit evicts the oldest entries first. The zero value is not
// usable; construct with NewTranscript.
type Transcript struct {
	limit    int
	messages []Message
}

// NewTranscript returns an empty transcript bounded to limit entries.
func NewTranscript(limit int) *Transcript {
	if limit <= 0 {
		limit = DefaultTranscriptLimit
	}
	return &Transcript{limit: limit}
}

// Append records a message and evicts the oldest entries when the bound is
// exceeded. The stored message is returned.
func (t *Transcript) Append(role Role, content string) Message {
	msg := Message{Role: role, Content: content, Timestamp: time.Now().UTC()}
	t.messages = append(t.messages, msg)
	t.trim()
	return msg
}

// Replace swaps the transcript content wholesale, keeping only the newest
// entries when the input exceeds the bound. Used when loading persisted
// history or restoring a snapshot.
func (t *Transcript) Replace(messages []Message) {
	t.messages = append(t.messages[:0:0], messages...)
	t.trim()
}

// Messages returns a copy of the entries in chronological order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len reports the number of retained entries.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Limit reports the configured entry bound.
func (t *Transcript) Limit() int {
	return t.limit
}

// Clear drops all entries.
func (t *Transcript) Clear() {
	t.messages = nil
}

func (t *Transcript) trim() {
	if over := len(t.messages) - t.limit; over > 0 {
		t.messages = append(t.messages[:0:0], t.messages[over:]...)
	}
}
