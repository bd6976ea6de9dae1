package ruleset

// Config is the branch-protection configuration the builder consumes. It is
// an immutable value: callers fill it once (typically from CLI flags layered
// over compiled-in defaults) and pass it in whole.
type Config struct {
	// Branch is the bare branch name (e.g. "main"); the builder qualifies it
	// as refs/heads/<Branch> in the ref-name condition.
	Branch string

	// Name is the ruleset's display name.
	Name string

	// BypassActorID is the repository role permitted to bypass enforcement.
	// The GitHub role ids are environment-specific, so this is configuration
	// rather than a literal.
	BypassActorID int64

	BlockDeletion        bool
	BlockForcePush       bool
	RequireLinearHistory bool
	RequireSignedCommits bool

	RequirePullRequest bool
	PullRequest        PullRequestParameters

	RequireStatusChecks bool
	StatusChecks        StatusChecksConfig
}

// StatusChecksConfig is the caller-facing shape of the required_status_checks
// parameters: a strictness flag plus an ordered list of context names.
type StatusChecksConfig struct {
	Strict   bool
	Contexts []string
}

// Build assembles the ruleset envelope for cfg. It is a pure transformation:
// no network or process side effects, total on well-formed input, and
// deterministic (identical Config yields identical output).
//
// Each rule kind appears in the rules array if and only if its flag is set.
// The gate list fixes the emission order (deletion, non_fast_forward,
// required_linear_history, required_signatures, pull_request,
// required_status_checks), though ruleset semantics do not depend on it.
func Build(cfg Config) Envelope {
	gates := []struct {
		enabled bool
		build   func() Rule
	}{
		{cfg.BlockDeletion, func() Rule {
			return Rule{Type: KindDeletion}
		}},
		{cfg.BlockForcePush, func() Rule {
			return Rule{Type: KindNonFastForward}
		}},
		{cfg.RequireLinearHistory, func() Rule {
			return Rule{Type: KindRequiredLinearHistory}
		}},
		{cfg.RequireSignedCommits, func() Rule {
			return Rule{Type: KindRequiredSignatures}
		}},
		{cfg.RequirePullRequest, func() Rule {
			return Rule{Type: KindPullRequest, Parameters: cfg.PullRequest}
		}},
		{cfg.RequireStatusChecks, func() Rule {
			return Rule{Type: KindRequiredStatusChecks, Parameters: statusChecksParameters(cfg.StatusChecks)}
		}},
	}

	rules := make([]Rule, 0, len(gates))
	for _, g := range gates {
		if g.enabled {
			rules = append(rules, g.build())
		}
	}

	return Envelope{
		Name:        cfg.Name,
		Target:      "branch",
		Enforcement: "active",
		Conditions: Conditions{
			RefName: RefNameCondition{
				Include: []string{"refs/heads/" + cfg.Branch},
				Exclude: []string{},
			},
		},
		BypassActors: []BypassActor{
			{ActorID: cfg.BypassActorID, ActorType: "RepositoryRole", BypassMode: "always"},
		},
		Rules: rules,
	}
}

// statusChecksParameters converts the caller-facing context list into the
// wire shape. Order is preserved and duplicates are kept as supplied.
func statusChecksParameters(cfg StatusChecksConfig) StatusChecksParameters {
	checks := make([]StatusCheck, 0, len(cfg.Contexts))
	for _, c := range cfg.Contexts {
		checks = append(checks, StatusCheck{Context: c})
	}
	return StatusChecksParameters{
		StrictRequiredStatusChecksPolicy: cfg.Strict,
		RequiredStatusChecks:             checks,
	}
}

// Kinds returns the closed set of rule kinds in emission order, paired with
// whether cfg enables each. Used by the CLI rule listing.
func Kinds(cfg Config) []KindStatus {
	return []KindStatus{
		{Kind: KindDeletion, Enabled: cfg.BlockDeletion},
		{Kind: KindNonFastForward, Enabled: cfg.BlockForcePush},
		{Kind: KindRequiredLinearHistory, Enabled: cfg.RequireLinearHistory},
		{Kind: KindRequiredSignatures, Enabled: cfg.RequireSignedCommits},
		{Kind: KindPullRequest, Enabled: cfg.RequirePullRequest},
		{Kind: KindRequiredStatusChecks, Enabled: cfg.RequireStatusChecks},
	}
}

// KindStatus pairs a rule kind with its enabled state under a configuration.
type KindStatus struct {
	Kind    Kind
	Enabled bool
}
