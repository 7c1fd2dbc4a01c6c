package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// TranscriptStore persists the conversation as a JSON array so a later
// session resumes where the previous one stopped.
type TranscriptStore struct {
	path string
	mu   sync.Mutex
}

// NewTranscriptStore builds a store writing to path.
func NewTranscriptStore(path string) *TranscriptStore {
	return &TranscriptStore{path: path}
}

var _ ports.TranscriptStore = (*TranscriptStore)(nil)

// Load reads the saved transcript. A missing file yields an empty one.
func (t *TranscriptStore) Load() ([]domain.Message, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var messages []domain.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Save replaces the stored transcript. Conversations can carry sensitive
// output, so the file is not group readable.
func (t *TranscriptStore) Save(messages []domain.Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(t.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(t.path, data, domain.SecureFilePermissions)
}

// Clear removes the stored transcript.
func (t *TranscriptStore) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the backing file path.
func (t *TranscriptStore) Path() string {
	return t.path
}
