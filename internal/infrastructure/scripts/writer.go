// Package scripts materializes model-generated scripts and built-in
// templates under the configured scripts directory.
package scripts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// extensionByKind maps payload kinds to file extensions. The extension is
// appended only when the filename carries none.
var extensionByKind = map[string]string{
	"python":          ".py",
	"bash":            ".sh",
	"shell":           ".sh",
	"sh":              ".sh",
	"py":              ".py",
	"yaml":            ".yaml",
	"yml":             ".yml",
	"docker":          ".dockerfile",
	"dockerfile":      ".dockerfile",
	"terraform":       ".tf",
	"json":            ".json",
	"js":              ".js",
	"ansible":         ".yml",
	"php":             ".php",
	"ruby":            ".rb",
	"go":              ".go",
	"java":            ".java",
	"c":               ".c",
	"cpp":             ".cpp",
	"csharp":          ".cs",
	"sql":             ".sql",
	"kubernetes":      ".yaml",
	"k8s":             ".yaml",
	"helm":            ".yaml",
	"nginx":           ".conf",
	"apache":          ".conf",
	"systemd":         ".service",
	"prometheus":      ".yml",
	"grafana":         ".json",
	"jenkins":         "Jenkinsfile",
	"gitlab-ci":       ".gitlab-ci.yml",
	"github-workflow": ".yml",
}

// executableKinds are the payload kinds written with the executable bit set.
var executableKinds = map[string]struct{}{
	"bash":   {},
	"shell":  {},
	"sh":     {},
	"python": {},
	"py":     {},
}

// Writer implements ports.ScriptWriter. The directory is created lazily on
// first write.
type Writer struct {
	dir string
}

// NewWriter builds a Writer rooted at dir; ~ expands to the user home.
func NewWriter(dir string) *Writer {
	return &Writer{dir: expandPath(dir)}
}

var _ ports.ScriptWriter = (*Writer)(nil)

// Dir returns the resolved scripts directory.
func (w *Writer) Dir() string {
	return w.dir
}

// SaveScript writes body under the scripts directory and returns the
// absolute path. The filename is flattened to its base name so a generated
// name can never escape the directory.
func (w *Writer) SaveScript(kind, filename, body string) (string, error) {
	name := ensureExtension(kind, filepath.Base(filename))
	if name == "." || name == string(filepath.Separator) || name == ".." {
		return "", fmt.Errorf("unusable script filename %q", filename)
	}

	if err := os.MkdirAll(w.dir, domain.DirectoryPermissions); err != nil {
		return "", fmt.Errorf("create scripts dir: %w", err)
	}

	path := filepath.Join(w.dir, name)
	content := strings.TrimSpace(body) + "\n"

	var perm os.FileMode = domain.PlainFilePermissions
	if w.IsExecutableKind(kind) {
		perm = domain.ScriptFilePermissions
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return "", fmt.Errorf("write script: %w", err)
	}
	// WriteFile only applies perm on create; enforce it on overwrite too.
	if err := os.Chmod(path, perm); err != nil {
		return "", fmt.Errorf("chmod script: %w", err)
	}
	return path, nil
}

// MaterializeTemplate writes the named scaffold through SaveScript.
func (w *Writer) MaterializeTemplate(kind, filename string) (string, error) {
	scaffold, ok := scaffolds[strings.ToLower(kind)]
	if !ok {
		return "", &domain.UnknownTemplateError{Kind: kind, Known: w.TemplateKinds()}
	}
	return w.SaveScript(kind, filename, scaffold)
}

// TemplateKinds lists the registered scaffold kinds, sorted.
func (w *Writer) TemplateKinds() []string {
	kinds := make([]string, 0, len(scaffolds))
	for kind := range scaffolds {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// IsExecutableKind reports whether scripts of this kind get the exec bit.
func (w *Writer) IsExecutableKind(kind string) bool {
	_, ok := executableKinds[strings.ToLower(kind)]
	return ok
}

func ensureExtension(kind, filename string) string {
	if strings.Contains(filename, ".") {
		return filename
	}
	ext, ok := extensionByKind[strings.ToLower(kind)]
	if !ok {
		return filename
	}
	// Kinds with a canonical filename (Jenkinsfile) replace the name outright.
	if !strings.HasPrefix(ext, ".") {
		return ext
	}
	return filename + ext
}

func expandPath(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
