package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"reposetup/internal/apply"
	"reposetup/internal/config"
	"reposetup/internal/flags"
	gh "reposetup/internal/github"
)

var cfg = config.New()

const applyHelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}Usage:
  {{.UseLine}}

{{if .HasAvailableLocalFlags}}Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}Environment:
	RepoSetup authenticates to GitHub using an access token.

	Sources (in order):
	1) GITHUB_TOKEN environment variable
	2) GitHub CLI (gh) authentication via gh auth token (if gh is installed and logged in)

	The target repository may also be supplied via REPOSETUP_REPO instead of
	the positional argument.

  Token guidance (brief):
  - PAT (classic): typically needs repo (to edit repository settings).
  - Fine-grained PAT: grant access to the target repository with
    Administration: Read and write.

  Examples:
    # macOS/Linux
    export GITHUB_TOKEN="<your_token>"
    reposetup apply my-org/my-repo

		# GitHub CLI auth
		gh auth login
		reposetup apply my-org/my-repo

    # Windows PowerShell
    $env:GITHUB_TOKEN = "<your_token>"
    reposetup apply my-org/my-repo

{{if .HasAvailableSubCommands}}Available Commands:
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasHelpSubCommands}}Additional help topics:
{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.
{{end}}`

var applyCmd = &cobra.Command{
	Use:   "apply [OWNER/REPO]",
	Short: "Apply the repository setup to a GitHub repository",
	Long: `Apply the repository setup to a GitHub repository.

RepoSetup applies a fixed sequence of independent steps: merge strategy
settings, security feature enables (vulnerability alerts, automated security
fixes, secret scanning with push protection), a branch protection ruleset,
and a fixed set of issue labels.

Each step is best-effort: a failure is recorded and the run continues with
the remaining steps. A failed ruleset creation additionally prints one
warning line on stderr. Every step is safe to re-run.

Authentication:
  RepoSetup uses a GitHub access token. It prefers GITHUB_TOKEN, but can also
  reuse GitHub CLI authentication if the gh CLI is installed and logged in.

Output:
	Console output is controlled by --console-format (default: text).
	Structured outputs can be written via:
	- --out / --out-format: write an aggregate JSON array or NDJSON stream to a file
	- --no-console: suppress the console sink (use with --out for machine output)

	NDJSON mode emits one JSON object per line. Objects are lifecycle Events with a
	"type" field (run.started, step.result, run.finished).

Exit codes:
	0 = all steps applied (or skipped by configuration)
	2 = partial failure (some steps failed; all were attempted)
	3 = fatal error (setup did not run)

Examples:
  # Token via environment variable
  export GITHUB_TOKEN="<your_token>"
  reposetup apply my-org/my-repo

  # Protect a different branch with two required checks
  reposetup apply my-org/my-repo --branch develop --contexts lint,test

  # Print the plan and ruleset payload without calling the API
  reposetup apply my-org/my-repo --dry-run

	# Stream machine-readable events to a file
	reposetup apply my-org/my-repo --no-console --out results.ndjson
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 && cmd.Flags().NFlag() == 0 && os.Getenv("REPOSETUP_REPO") == "" {
			_ = cmd.Help()
			return
		}

		cfg.Target.Repo = resolveRepoArg(args)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}

		ctx := context.Background()

		// Dry run is local only; no token needed.
		if cfg.Runtime.DryRun {
			eng := apply.NewEngine(nil)
			os.Exit(eng.Run(ctx, cfg))
		}

		token, _, err := gh.ResolveAuthToken(ctx, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to resolve GitHub auth token: %v\n", err)
			os.Exit(3)
		}
		if strings.TrimSpace(token) == "" {
			fmt.Fprintln(os.Stderr, "Error: GitHub auth token is required (set GITHUB_TOKEN or run 'gh auth login')")
			os.Exit(3)
		}

		client, err := gh.NewClient(ctx, token, gh.WithVerbose(cfg.Runtime.Verbose, nil))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create GitHub client: %v\n", err)
			os.Exit(3)
		}
		eng := apply.NewEngine(client)
		os.Exit(eng.Run(ctx, cfg))
	},
}

// resolveRepoArg prefers the positional argument; REPOSETUP_REPO is the
// override variable for wrapper scripts.
func resolveRepoArg(args []string) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0]
	}
	return os.Getenv("REPOSETUP_REPO")
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.SetHelpTemplate(applyHelpTemplate)

	// Target
	applyCmd.Flags().StringVar(&cfg.Target.Branch, flags.FlagBranch, cfg.Target.Branch, "Branch the ruleset protects (bare name, not a ref)")

	// Protection rules
	applyCmd.Flags().BoolVar(&cfg.Protection.BlockDeletion, flags.FlagBlockDeletion, cfg.Protection.BlockDeletion, "Block deletion of the protected branch")
	applyCmd.Flags().BoolVar(&cfg.Protection.BlockForcePush, flags.FlagBlockForcePush, cfg.Protection.BlockForcePush, "Block force pushes to the protected branch")
	applyCmd.Flags().BoolVar(&cfg.Protection.RequireLinearHistory, flags.FlagLinearHistory, cfg.Protection.RequireLinearHistory, "Require linear history")
	applyCmd.Flags().BoolVar(&cfg.Protection.RequireSignedCommits, flags.FlagSignedCommits, cfg.Protection.RequireSignedCommits, "Require signed commits")
	applyCmd.Flags().BoolVar(&cfg.Protection.RequirePullRequest, flags.FlagPullRequest, cfg.Protection.RequirePullRequest, "Require changes to arrive via pull request")
	applyCmd.Flags().BoolVar(&cfg.Protection.RequireStatusChecks, flags.FlagStatusChecks, cfg.Protection.RequireStatusChecks, "Require status checks to pass")

	// Pull request parameters
	applyCmd.Flags().IntVar(&cfg.Protection.Reviews, flags.FlagReviews, cfg.Protection.Reviews, "Required approving review count (0 = require a PR but no sign-off)")
	applyCmd.Flags().BoolVar(&cfg.Protection.DismissStale, flags.FlagDismissStale, cfg.Protection.DismissStale, "Dismiss stale reviews on push")
	applyCmd.Flags().BoolVar(&cfg.Protection.CodeOwnerReview, flags.FlagCodeOwnerReview, cfg.Protection.CodeOwnerReview, "Require code owner review")
	applyCmd.Flags().BoolVar(&cfg.Protection.LastPushApproval, flags.FlagLastPushApproval, cfg.Protection.LastPushApproval, "Require approval of the most recent push")
	applyCmd.Flags().BoolVar(&cfg.Protection.ThreadResolution, flags.FlagThreadResolution, cfg.Protection.ThreadResolution, "Require review thread resolution")

	// Status check parameters
	applyCmd.Flags().BoolVar(&cfg.Protection.StrictChecks, flags.FlagStrictChecks, cfg.Protection.StrictChecks, "Require branches to be up to date before merging")
	applyCmd.Flags().StringSliceVar(&cfg.Protection.Contexts, flags.FlagContexts, cfg.Protection.Contexts, "Required status check contexts, in order (repeatable; comma-separated accepted)")

	// Ruleset envelope
	applyCmd.Flags().StringVar(&cfg.Protection.RulesetName, flags.FlagRulesetName, cfg.Protection.RulesetName, "Display name of the created ruleset")
	applyCmd.Flags().Int64Var(&cfg.Protection.BypassActorID, flags.FlagBypassActorID, cfg.Protection.BypassActorID, "Repository role id permitted to bypass the ruleset")

	// Merge strategy
	applyCmd.Flags().BoolVar(&cfg.Merge.AllowMergeCommit, flags.FlagAllowMergeCommit, cfg.Merge.AllowMergeCommit, "Allow merge commits")
	applyCmd.Flags().BoolVar(&cfg.Merge.AllowSquashMerge, flags.FlagAllowSquashMerge, cfg.Merge.AllowSquashMerge, "Allow squash merging")
	applyCmd.Flags().BoolVar(&cfg.Merge.AllowRebaseMerge, flags.FlagAllowRebaseMerge, cfg.Merge.AllowRebaseMerge, "Allow rebase merging")
	applyCmd.Flags().BoolVar(&cfg.Merge.AllowAutoMerge, flags.FlagAllowAutoMerge, cfg.Merge.AllowAutoMerge, "Allow auto-merge")
	applyCmd.Flags().BoolVar(&cfg.Merge.DeleteBranchOnMerge, flags.FlagDeleteBranchOnMerge, cfg.Merge.DeleteBranchOnMerge, "Delete head branches after merge")

	// Security features
	applyCmd.Flags().BoolVar(&cfg.Security.VulnerabilityAlerts, flags.FlagVulnerabilityAlerts, cfg.Security.VulnerabilityAlerts, "Enable Dependabot vulnerability alerts")
	applyCmd.Flags().BoolVar(&cfg.Security.SecurityFixes, flags.FlagSecurityFixes, cfg.Security.SecurityFixes, "Enable automated security fixes")
	applyCmd.Flags().BoolVar(&cfg.Security.SecretScanning, flags.FlagSecretScanning, cfg.Security.SecretScanning, "Enable secret scanning with push protection")

	// Labels
	applyCmd.Flags().BoolVar(&cfg.Labels.Create, flags.FlagLabels, cfg.Labels.Create, "Create the fixed issue label set")

	// Output
	applyCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, cfg.Output.ConsoleFormat, "Console output format: text|json|ndjson (default: text)")
	applyCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this file")
	applyCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Format for --out: json|ndjson (default: inferred from extension)")
	applyCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress the console sink (use with --out for machine output)")

	// Runtime
	applyCmd.Flags().BoolVar(&cfg.Runtime.DryRun, flags.FlagDryRun, false, "Print the plan and ruleset payload without calling the API")
	applyCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, 2*time.Minute, "Global timeout for the run")
}
