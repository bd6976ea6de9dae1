package step

import (
	"context"

	"reposetup/internal/config"
)

// VulnerabilityAlertsStep enables Dependabot vulnerability alerts.
type VulnerabilityAlertsStep struct{}

func (s *VulnerabilityAlertsStep) ID() string {
	return "vulnerability-alerts"
}

func (s *VulnerabilityAlertsStep) Title() string {
	return "Enable vulnerability alerts"
}

func (s *VulnerabilityAlertsStep) Run(ctx context.Context, api API, cfg *config.Config) Result {
	repo := cfg.Target.Owner + "/" + cfg.Target.Name
	if !cfg.Security.VulnerabilityAlerts {
		return SkippedResult(repo, s.ID(), "disabled by configuration")
	}
	if err := api.EnableVulnerabilityAlerts(ctx, cfg.Target.Owner, cfg.Target.Name); err != nil {
		return FailedResult(repo, s.ID(), err.Error())
	}
	return AppliedResult(repo, s.ID())
}

// SecurityFixesStep enables automated security fix PRs.
type SecurityFixesStep struct{}

func (s *SecurityFixesStep) ID() string {
	return "security-fixes"
}

func (s *SecurityFixesStep) Title() string {
	return "Enable automated security fixes"
}

func (s *SecurityFixesStep) Run(ctx context.Context, api API, cfg *config.Config) Result {
	repo := cfg.Target.Owner + "/" + cfg.Target.Name
	if !cfg.Security.SecurityFixes {
		return SkippedResult(repo, s.ID(), "disabled by configuration")
	}
	if err := api.EnableAutomatedSecurityFixes(ctx, cfg.Target.Owner, cfg.Target.Name); err != nil {
		return FailedResult(repo, s.ID(), err.Error())
	}
	return AppliedResult(repo, s.ID())
}

// SecretScanningStep enables secret scanning with push protection.
type SecretScanningStep struct{}

func (s *SecretScanningStep) ID() string {
	return "secret-scanning"
}

func (s *SecretScanningStep) Title() string {
	return "Enable secret scanning"
}

func (s *SecretScanningStep) Run(ctx context.Context, api API, cfg *config.Config) Result {
	repo := cfg.Target.Owner + "/" + cfg.Target.Name
	if !cfg.Security.SecretScanning {
		return SkippedResult(repo, s.ID(), "disabled by configuration")
	}
	if err := api.EnableSecretScanning(ctx, cfg.Target.Owner, cfg.Target.Name); err != nil {
		return FailedResult(repo, s.ID(), err.Error())
	}
	return AppliedResult(repo, s.ID())
}
