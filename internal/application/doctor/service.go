// Package doctor runs environment diagnostics for smartshell.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/smartshell-ai/smartshell/internal/domain"
	"github.com/smartshell-ai/smartshell/internal/ports"
)

// Service checks that translation, execution and logging can all work on
// this host.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Translators    ports.TranslatorFactory
	CommandLog     ports.CommandLog
	Gate           ports.ConfirmationGate
}

// Run executes every check and returns the aggregated report. The report is
// returned even when checks fail; the error mirrors a config that could not
// load at all.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded, format %s", cfg.ConfigFormatVersion)))

	checks = append(checks, shellCheck(cfg))
	checks = append(checks, modelCheck(cfg))
	checks = append(checks, s.phrasebookCheck(cfg))
	checks = append(checks, s.logDirCheck())
	checks = append(checks, s.gateCheck())

	return domain.HealthReport{Checks: checks}, nil
}

// shellCheck verifies the configured shell resolves and its binary is on
// PATH, since a missing shell turns every confirmed command into a spawn
// failure.
func shellCheck(cfg domain.Config) domain.HealthCheck {
	shell, err := cfg.EffectiveShell()
	if err != nil {
		return fail("Shell", err.Error())
	}
	spec := shell.Spec()
	if _, err := exec.LookPath(spec.Binary); err != nil {
		return fail("Shell", fmt.Sprintf("%s not found on PATH", spec.Binary))
	}
	return ok("Shell", fmt.Sprintf("%s via %s", shell, spec.Binary))
}

func modelCheck(cfg domain.Config) domain.HealthCheck {
	if len(cfg.Models) == 0 {
		return fail("Models", "no models configured")
	}
	model, err := cfg.GetDefaultModel()
	if err != nil {
		return warn("Models", err.Error())
	}
	if model.AuthEnvVar != "" && os.Getenv(model.AuthEnvVar) == "" {
		return warn("Models", fmt.Sprintf("default model %s expects %s to be set", model.Name, model.AuthEnvVar))
	}
	if model.Offline() {
		return ok("Models", fmt.Sprintf("default model %s resolves offline", model.Name))
	}
	return ok("Models", fmt.Sprintf("default model %s at %s", model.Name, model.Endpoint))
}

// phrasebookCheck builds the offline translator, which parses the rules
// file, so a broken rules file shows up here instead of mid-session.
func (s *Service) phrasebookCheck(cfg domain.Config) domain.HealthCheck {
	if s.Translators == nil {
		return warn("Phrasebook", "translator factory not initialized")
	}
	translator, err := s.Translators.ForModel(domain.ModelDefinition{Name: "phrasebook", ModelID: "offline"})
	if err != nil {
		return fail("Phrasebook", fmt.Sprintf("rules failed to load: %v", err))
	}
	source := "embedded defaults"
	if cfg.Phrasebook.RulesFile != "" {
		source = cfg.Phrasebook.RulesFile
	}
	return ok("Phrasebook", fmt.Sprintf("%s rules from %s", translator.Name(), source))
}

// logDirCheck probes that the command log directory is writable, since an
// unwritable log dir silently drops history.
func (s *Service) logDirCheck() domain.HealthCheck {
	if s.CommandLog == nil {
		return warn("Command log", "log not initialized")
	}
	dir := s.CommandLog.Dir()
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return fail("Command log", fmt.Sprintf("cannot create %s: %v", dir, err))
	}
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, nil, domain.LogFilePermissions); err != nil {
		return fail("Command log", fmt.Sprintf("%s is not writable: %v", dir, err))
	}
	_ = os.Remove(probe)
	return ok("Command log", dir)
}

func (s *Service) gateCheck() domain.HealthCheck {
	if s.Gate == nil {
		return warn("Confirmation", "gate not initialized")
	}
	if !s.Gate.Enabled() {
		return warn("Confirmation", "stdin is not a terminal; commands cannot be confirmed")
	}
	return ok("Confirmation", "interactive terminal detected")
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
