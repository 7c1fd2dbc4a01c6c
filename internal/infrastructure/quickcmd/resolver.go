// Package quickcmd resolves named quick commands into runnable command
// lines. A quick command is a template like "systemctl status {service}":
// the resolver binds positional arguments to the {placeholder} names and
// hands the finished string back for normal classification and execution.
package quickcmd

import (
	"regexp"
	"sort"

	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// placeholderPattern matches {name} parameters inside command templates.
// The empty braces of constructs like find's "{}" are not placeholders.
var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Resolver merges the built-in table with user-defined commands.
type Resolver struct {
	custom map[string]string
}

// NewResolver builds a Resolver over the user's configured quick commands.
func NewResolver(custom map[string]string) *Resolver {
	return &Resolver{custom: custom}
}

var _ ports.QuickCommandResolver = (*Resolver)(nil)

// Resolve implements ports.QuickCommandResolver. Placeholders bind
// positionally in first-occurrence order; a repeated name reuses its bound
// value everywhere it appears. Surplus arguments are ignored. Too few
// arguments yield a MissingParameterError naming the unbound placeholders,
// with no partial substitution.
func (r *Resolver) Resolve(name string, args []string) (string, error) {
	template, ok := r.lookup(name)
	if !ok {
		return "", &domain.UnknownQuickCommandError{Name: name}
	}

	names := placeholderNames(template)
	if len(args) < len(names) {
		return "", &domain.MissingParameterError{Command: name, Missing: names[len(args):]}
	}

	values := make(map[string]string, len(names))
	for i, n := range names {
		values[n] = args[i]
	}
	resolved := placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
		return values[m[1:len(m)-1]]
	})
	return resolved, nil
}

// List returns every known command sorted by name. Shadowed built-ins are
// omitted; custom entries are flagged.
func (r *Resolver) List() []domain.QuickCommand {
	out := make([]domain.QuickCommand, 0, len(builtinCommands)+len(r.custom))
	for name, template := range builtinCommands {
		if _, shadowed := r.custom[name]; shadowed {
			continue
		}
		out = append(out, domain.QuickCommand{Name: name, Template: template})
	}
	for name, template := range r.custom {
		out = append(out, domain.QuickCommand{Name: name, Template: template, Custom: true})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Resolver) lookup(name string) (string, bool) {
	if template, ok := r.custom[name]; ok {
		return template, true
	}
	template, ok := builtinCommands[name]
	return template, ok
}

// placeholderNames returns distinct placeholder names in first-occurrence order.
func placeholderNames(template string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, match := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if _, ok := seen[match[1]]; ok {
			continue
		}
		seen[match[1]] = struct{}{}
		names = append(names, match[1])
	}
	return names
}
