package step

import (
	"context"

	"reposetup/internal/config"
	"reposetup/internal/labels"
	"reposetup/internal/ruleset"
)

// API is the write surface a step needs. *github.Client (internal/github)
// implements it; tests substitute fakes.
type API interface {
	UpdateMergeSettings(ctx context.Context, owner, repo string, m config.Merge) error
	EnableVulnerabilityAlerts(ctx context.Context, owner, repo string) error
	EnableAutomatedSecurityFixes(ctx context.Context, owner, repo string) error
	EnableSecretScanning(ctx context.Context, owner, repo string) error
	CreateRuleset(ctx context.Context, owner, repo string, env ruleset.Envelope) error
	UpsertLabel(ctx context.Context, owner, repo string, l labels.Label) error
}

// Step is one independently applied phase of the setup sequence.
type Step interface {
	ID() string
	Title() string

	// Run applies the step against the target repository. Failures come back
	// as a FAILED Result rather than an error: a step never aborts the
	// remaining sequence.
	Run(ctx context.Context, api API, cfg *config.Config) Result
}

// All returns the steps in phase order. Each side effect is independently
// safe to re-run, so the order is presentational, not semantic.
func All() []Step {
	return []Step{
		&MergeSettingsStep{},
		&VulnerabilityAlertsStep{},
		&SecurityFixesStep{},
		&SecretScanningStep{},
		&RulesetStep{},
		&LabelsStep{},
	}
}
