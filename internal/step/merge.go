package step

import (
	"context"

	"reposetup/internal/config"
)

// MergeSettingsStep applies the repository's merge-strategy flags.
type MergeSettingsStep struct{}

func (s *MergeSettingsStep) ID() string {
	return "merge-settings"
}

func (s *MergeSettingsStep) Title() string {
	return "Configure merge strategies"
}

func (s *MergeSettingsStep) Run(ctx context.Context, api API, cfg *config.Config) Result {
	repo := cfg.Target.Owner + "/" + cfg.Target.Name
	if err := api.UpdateMergeSettings(ctx, cfg.Target.Owner, cfg.Target.Name, cfg.Merge); err != nil {
		return FailedResult(repo, s.ID(), err.Error())
	}
	return AppliedResult(repo, s.ID())
}
