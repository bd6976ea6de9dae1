package ruleset

// Kind is one of the closed set of branch protection rule kinds this tool
// knows how to emit. The GitHub rulesets API defines more; these are the ones
// the template configures.
type Kind string

const (
	KindDeletion              Kind = "deletion"
	KindNonFastForward        Kind = "non_fast_forward"
	KindRequiredLinearHistory Kind = "required_linear_history"
	KindRequiredSignatures    Kind = "required_signatures"
	KindPullRequest           Kind = "pull_request"
	KindRequiredStatusChecks  Kind = "required_status_checks"
)

// Rule is a single entry in a ruleset's rules array. Parameters is nil for
// kinds that take none; those serialize as {"type":"deletion"} with the
// parameters key omitted.
type Rule struct {
	Type       Kind `json:"type"`
	Parameters any  `json:"parameters,omitempty"`
}

// PullRequestParameters configures the pull_request rule.
//
// RequiredApprovingReviewCount is always emitted, including zero: a ruleset
// that requires a PR but no human sign-off is a valid configuration.
type PullRequestParameters struct {
	DismissStaleReviewsOnPush      bool `json:"dismiss_stale_reviews_on_push"`
	RequireCodeOwnerReview         bool `json:"require_code_owner_review"`
	RequireLastPushApproval        bool `json:"require_last_push_approval"`
	RequiredApprovingReviewCount   int  `json:"required_approving_review_count"`
	RequiredReviewThreadResolution bool `json:"required_review_thread_resolution"`
}

// StatusCheck names one required status check context (e.g. a CI job).
type StatusCheck struct {
	Context string `json:"context"`
}

// StatusChecksParameters configures the required_status_checks rule. The
// check list preserves caller order and is not deduplicated.
type StatusChecksParameters struct {
	StrictRequiredStatusChecksPolicy bool          `json:"strict_required_status_checks_policy"`
	RequiredStatusChecks             []StatusCheck `json:"required_status_checks"`
}

// BypassActor is an identity or role permitted to override enforcement.
type BypassActor struct {
	ActorID    int64  `json:"actor_id"`
	ActorType  string `json:"actor_type"`
	BypassMode string `json:"bypass_mode"`
}

// RefNameCondition scopes a ruleset to matching refs. Include and Exclude are
// always present in the serialized form, even when empty.
type RefNameCondition struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

type Conditions struct {
	RefName RefNameCondition `json:"ref_name"`
}

// Envelope is the complete ruleset document posted to
// POST /repos/{owner}/{repo}/rulesets. Constructed fresh per run, submitted
// once, discarded.
type Envelope struct {
	Name         string        `json:"name"`
	Target       string        `json:"target"`
	Enforcement  string        `json:"enforcement"`
	Conditions   Conditions    `json:"conditions"`
	BypassActors []BypassActor `json:"bypass_actors"`
	Rules        []Rule        `json:"rules"`
}
