// Package doctor runs environment diagnostics for the doctor command.
package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	appconfig "github.com/BadrBouzakri/AI-Agent/internal/application/config"
	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/pkg/filesystem"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// Service aggregates health checks over the wired adapters.
type Service struct {
	ConfigStore ports.ConfigStore
	Guardrail   ports.SecurityService
	Journal     ports.ExecutionJournal
	Shell       ports.ShellIntegrator
	StateDir    string
}

// Run executes all checks and returns a report. The report is always
// usable; the error mirrors a config load failure because most later checks
// depend on the config.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	checks = append(checks, s.checkStateDir())

	cfg, err := s.ConfigStore.Load(ctx)
	if err != nil {
		checks = append(checks, fail("config", fmt.Sprintf("load failed: %v", err), "fix or remove "+s.ConfigStore.Path()))
		return domain.HealthReport{Checks: checks}, err
	}
	if verr := appconfig.Validate(cfg); verr != nil {
		checks = append(checks, fail("config", verr.Error(), "edit "+s.ConfigStore.Path()+" or run: opsagent config reset"))
	} else {
		checks = append(checks, ok("config", fmt.Sprintf("%s, %d models", s.ConfigStore.Path(), len(cfg.Models))))
	}

	checks = append(checks, checkModel(cfg))
	checks = append(checks, s.checkGuardrail())
	checks = append(checks, s.checkJournal())
	checks = append(checks, checkScriptsDir(cfg))
	if s.Shell != nil {
		checks = append(checks, s.checkCompletion())
	}

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) checkStateDir() domain.HealthCheck {
	dir := s.StateDir
	if dir == "" {
		dir = filesystem.StateDir()
	}
	if err := probeWritable(dir); err != nil {
		return fail("state dir", err.Error(), "check permissions on "+dir)
	}
	return ok("state dir", dir+" is writable")
}

func checkModel(cfg domain.Config) domain.HealthCheck {
	model, err := cfg.GetDefaultModel()
	if err != nil {
		return fail("model", err.Error(), "set preferences.default_model to a configured model")
	}
	if model.Endpoint == "" {
		return warn("model", fmt.Sprintf("%s has no endpoint; replies come from the offline fallback", model.Name),
			"add an endpoint to the model or switch with /model")
	}
	if model.AuthEnvVar != "" && os.Getenv(model.AuthEnvVar) == "" {
		return warn("model", fmt.Sprintf("%s selected but %s is not set; replies come from the offline fallback", model.Name, model.AuthEnvVar),
			"export "+model.AuthEnvVar+" or put it in ~/.opsagent/.env")
	}
	return ok("model", fmt.Sprintf("%s (%s) ready", model.Name, model.ModelID))
}

func (s *Service) checkGuardrail() domain.HealthCheck {
	if s.Guardrail == nil {
		return warn("guardrail", "security service not initialized", "check security.enabled in the config")
	}
	// A classifier that lets this through is loaded wrong, whatever the file says.
	if verdict := s.Guardrail.Classify("rm -rf /"); !verdict.Dangerous {
		return fail("guardrail", "rm -rf / was classified as safe", "restore the rules: delete the guardrail file so defaults regenerate")
	}
	return ok("guardrail", "rules loaded, dangerous-command detection active")
}

func (s *Service) checkJournal() domain.HealthCheck {
	if s.Journal == nil {
		return warn("journal", "execution journal not initialized", "")
	}
	if _, err := s.Journal.Recent(1, ""); err != nil {
		return fail("journal", fmt.Sprintf("query failed: %v", err), "inspect "+s.Journal.Path())
	}
	return ok("journal", s.Journal.Path())
}

// checkCompletion inspects the detected shell only. A missing hook is fine
// (completion is optional); a half-installed one is worth flagging.
func (s *Service) checkCompletion() domain.HealthCheck {
	st := s.Shell.Status("")
	if st.Error != "" {
		return ok("completion", "skipped: "+st.Error)
	}
	switch {
	case st.HookPresent && st.RCLinked:
		return ok("completion", fmt.Sprintf("%s hook active", st.Shell))
	case st.HookPresent || st.RCLinked:
		return warn("completion",
			fmt.Sprintf("%s hook half-installed (hook written: %v, rc linked: %v)", st.Shell, st.HookPresent, st.RCLinked),
			"run: opsagent install-completion --force")
	default:
		return ok("completion", "not installed; enable with: opsagent install-completion")
	}
}

func checkScriptsDir(cfg domain.Config) domain.HealthCheck {
	dir := filesystem.ExpandPath(cfg.GetScriptsDir())
	if err := probeWritable(dir); err != nil {
		return warn("scripts dir", err.Error(), "check scripts.dir in the config")
	}
	return ok("scripts dir", dir+" is writable")
}

func probeWritable(dir string) error {
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	probe := filepath.Join(dir, ".opsagent-doctor")
	if err := os.WriteFile(probe, []byte("probe"), domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("cannot write in %s: %w", dir, err)
	}
	return os.Remove(probe)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details, hint string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details, Hint: hint}
}

func fail(name, details, hint string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details, Hint: hint}
}
