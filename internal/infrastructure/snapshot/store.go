// Package snapshot stores named conversation snapshots as JSON files so a
// session can be saved and resumed by name.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// FileStore keeps one JSON file per snapshot under a contexts directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore builds a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

var _ ports.SnapshotStore = (*FileStore)(nil)

// Save writes the snapshot, overwriting any previous one with the same
// name. SavedAt is stamped when the caller left it zero.
func (s *FileStore) Save(snap domain.ContextSnapshot) error {
	name, err := sanitizeName(snap.Name)
	if err != nil {
		return err
	}
	if snap.SavedAt.IsZero() {
		snap.SavedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.pathFor(name), data, domain.SecureFilePermissions)
}

// Load reads the named snapshot.
func (s *FileStore) Load(name string) (domain.ContextSnapshot, error) {
	clean, err := sanitizeName(name)
	if err != nil {
		return domain.ContextSnapshot{}, err
	}
	data, err := os.ReadFile(s.pathFor(clean))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ContextSnapshot{}, domain.ErrSnapshotNotFound
		}
		return domain.ContextSnapshot{}, err
	}
	var snap domain.ContextSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.ContextSnapshot{}, fmt.Errorf("decode snapshot %s: %w", name, err)
	}
	return snap, nil
}

// List summarizes the stored snapshots, sorted by name.
func (s *FileStore) List() ([]domain.SnapshotInfo, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var infos []domain.SnapshotInfo
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, f.Name()))
		if err != nil {
			continue
		}
		var snap domain.ContextSnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			continue
		}
		infos = append(infos, domain.SnapshotInfo{
			Name:     snap.Name,
			SavedAt:  snap.SavedAt,
			Messages: len(snap.History),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Delete removes the named snapshot.
func (s *FileStore) Delete(name string) error {
	clean, err := sanitizeName(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.pathFor(clean)); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrSnapshotNotFound
		}
		return err
	}
	return nil
}

// Dir exposes the contexts directory path.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) pathFor(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// sanitizeName flattens a snapshot name to a safe filename stem. Anything
// outside letters, digits, dot, dash and underscore becomes a dash.
func sanitizeName(name string) (string, error) {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, strings.TrimSpace(name))
	clean = strings.Trim(clean, ".")
	if clean == "" {
		return "", fmt.Errorf("snapshot name %q is empty after sanitizing", name)
	}
	return clean, nil
}
