package flags

// Package flags defines canonical CLI flag names shared across the CLI and
// engine. Keeping these as constants helps avoid drift between Cobra flag
// wiring and other code paths that reference flags (e.g. dry-run plan output).
// IMPORTANT: These are flag *names* without leading dashes.
const (
	// Target
	FlagBranch = "branch"

	// Protection rules
	FlagBlockDeletion  = "block-deletion"
	FlagBlockForcePush = "block-force-push"
	FlagLinearHistory  = "linear-history"
	FlagSignedCommits  = "signed-commits"
	FlagPullRequest    = "pull-request"
	FlagStatusChecks   = "status-checks"

	// Pull request parameters
	FlagReviews          = "reviews"
	FlagDismissStale     = "dismiss-stale"
	FlagCodeOwnerReview  = "code-owner-review"
	FlagLastPushApproval = "last-push-approval"
	FlagThreadResolution = "thread-resolution"

	// Status check parameters
	FlagStrictChecks = "strict-checks"
	FlagContexts     = "contexts"

	// Ruleset envelope
	FlagRulesetName   = "ruleset-name"
	FlagBypassActorID = "bypass-actor-id"

	// Merge strategy
	FlagAllowMergeCommit    = "allow-merge-commit"
	FlagAllowSquashMerge    = "allow-squash-merge"
	FlagAllowRebaseMerge    = "allow-rebase-merge"
	FlagAllowAutoMerge      = "allow-auto-merge"
	FlagDeleteBranchOnMerge = "delete-branch-on-merge"

	// Security features
	FlagVulnerabilityAlerts = "vulnerability-alerts"
	FlagSecurityFixes       = "security-fixes"
	FlagSecretScanning      = "secret-scanning"

	// Labels
	FlagLabels = "labels"

	// Output
	FlagConsoleFormat = "console-format"
	FlagOut           = "out"
	FlagOutFormat     = "out-format"
	FlagNoConsole     = "no-console"

	// Runtime
	FlagDryRun  = "dry-run"
	FlagTimeout = "timeout"
)
