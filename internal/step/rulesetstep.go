package step

import (
	"context"
	"fmt"

	"reposetup/internal/config"
	"reposetup/internal/ruleset"
)

// RulesetStepID is referenced by the engine, which surfaces this step's
// failure as a stderr warning.
const RulesetStepID = "branch-ruleset"

// RulesetStep builds the branch-protection envelope and submits it once.
type RulesetStep struct{}

func (s *RulesetStep) ID() string {
	return RulesetStepID
}

func (s *RulesetStep) Title() string {
	return "Create branch protection ruleset"
}

func (s *RulesetStep) Run(ctx context.Context, api API, cfg *config.Config) Result {
	repo := cfg.Target.Owner + "/" + cfg.Target.Name

	env := ruleset.Build(cfg.RulesetConfig())
	if err := api.CreateRuleset(ctx, cfg.Target.Owner, cfg.Target.Name, env); err != nil {
		return FailedResult(repo, s.ID(), err.Error())
	}
	return AppliedResultWithMessage(repo, s.ID(), fmt.Sprintf("%d rules on refs/heads/%s", len(env.Rules), cfg.Target.Branch))
}
