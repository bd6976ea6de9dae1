package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"reposetup/internal/ruleset"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect
	// apply behavior, keep the CLI flags in internal/cli/apply.go in sync.
	Target     Target
	Merge      Merge
	Security   Security
	Protection Protection
	Labels     Labels
	Output     Output
	Runtime    Runtime
}

type Target struct {
	// Owner and Name identify the target repository. Populated by Validate
	// from the positional OWNER/REPO argument (a github.com URL is accepted).
	Owner string
	Name  string

	// Repo is the raw selector as supplied on the command line.
	Repo string

	// Branch is the bare branch name the ruleset protects (see --branch).
	Branch string
}

type Merge struct {
	// Merge strategy flags applied to the repository (PATCH /repos/{owner}/{repo}).
	AllowMergeCommit    bool
	AllowSquashMerge    bool
	AllowRebaseMerge    bool
	AllowAutoMerge      bool
	DeleteBranchOnMerge bool
}

type Security struct {
	// VulnerabilityAlerts enables Dependabot vulnerability alerts.
	VulnerabilityAlerts bool

	// SecurityFixes enables automated security fixes (Dependabot PRs).
	SecurityFixes bool

	// SecretScanning enables secret scanning and its push protection.
	SecretScanning bool
}

type Protection struct {
	// RulesetName is the display name of the created ruleset.
	RulesetName string

	// BypassActorID is the repository role id permitted to bypass the
	// ruleset (see --bypass-actor-id). Role ids are environment-specific.
	BypassActorID int64

	BlockDeletion        bool
	BlockForcePush       bool
	RequireLinearHistory bool
	RequireSignedCommits bool

	RequirePullRequest bool
	Reviews            int
	DismissStale       bool
	CodeOwnerReview    bool
	LastPushApproval   bool
	ThreadResolution   bool

	RequireStatusChecks bool
	StrictChecks        bool
	// Contexts is the ordered list of required status check names
	// (repeatable; comma-separated accepted). Order is preserved as given.
	Contexts []string
}

type Labels struct {
	// Create controls whether the fixed label set is upserted (see --labels).
	Create bool
}

type Output struct {
	// ConsoleFormat controls the console sink format (see --console-format).
	// Allowed values: text, json, ndjson.
	ConsoleFormat string

	// Out writes structured output to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, inferred from the extension.
	OutFormat string

	// NoConsole suppresses the console sink (see --no-console).
	NoConsole bool
}

type Runtime struct {
	// DryRun prints the plan and the ruleset payload without calling the API.
	DryRun bool

	// Timeout bounds the whole run (see --timeout). Must be > 0.
	Timeout time.Duration

	// Verbose enables per-request GitHub API logging on stderr.
	Verbose bool
}

// New returns the template's recommended posture: a squash-only merge flow
// with branch auto-delete, all security features on, a protected default
// branch requiring a pull request (zero approvals) with ordered CI status
// checks, and the fixed label set.
func New() *Config {
	return &Config{
		Target: Target{
			Branch: "main",
		},
		Merge: Merge{
			AllowSquashMerge:    true,
			AllowAutoMerge:      true,
			DeleteBranchOnMerge: true,
		},
		Security: Security{
			VulnerabilityAlerts: true,
			SecurityFixes:       true,
			SecretScanning:      true,
		},
		Protection: Protection{
			RulesetName:          "Main Branch Protection",
			BypassActorID:        5,
			BlockDeletion:        true,
			BlockForcePush:       true,
			RequireLinearHistory: true,
			RequirePullRequest:   true,
			Reviews:              0,
			DismissStale:         true,
			RequireStatusChecks:  true,
			StrictChecks:         true,
			Contexts:             []string{"lint", "type-check", "test"},
		},
		Labels: Labels{
			Create: true,
		},
		Output: Output{
			ConsoleFormat: "text",
		},
		Runtime: Runtime{
			Timeout: 2 * time.Minute,
		},
	}
}

func (c *Config) Validate() error {
	// Normalize comma-delimited list inputs.
	c.Protection.Contexts = splitCommaList(c.Protection.Contexts)

	owner, name, err := parseRepoSelector(c.Target.Repo)
	if err != nil {
		return fmt.Errorf("invalid repository selector: %w", err)
	}
	c.Target.Owner = owner
	c.Target.Name = name

	c.Target.Branch = strings.TrimSpace(c.Target.Branch)
	if c.Target.Branch == "" {
		return errors.New("--branch must not be empty")
	}
	if strings.HasPrefix(c.Target.Branch, "refs/") {
		return fmt.Errorf("--branch takes a bare branch name, not a ref: %q", c.Target.Branch)
	}

	if strings.TrimSpace(c.Protection.RulesetName) == "" {
		return errors.New("--ruleset-name must not be empty")
	}
	if c.Protection.Reviews < 0 {
		return fmt.Errorf("--reviews must be >= 0, got %d", c.Protection.Reviews)
	}
	if c.Protection.RequireStatusChecks && len(c.Protection.Contexts) == 0 {
		return errors.New("--status-checks requires at least one --contexts entry")
	}

	// Output validation
	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		c.Output.ConsoleFormat = "text"
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson":
				c.Output.OutFormat = "ndjson"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
			return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
		}
	}

	// Runtime validation
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}

	return nil
}

// RulesetConfig projects the protection settings into the builder's
// configuration record.
func (c *Config) RulesetConfig() ruleset.Config {
	return ruleset.Config{
		Branch:               c.Target.Branch,
		Name:                 c.Protection.RulesetName,
		BypassActorID:        c.Protection.BypassActorID,
		BlockDeletion:        c.Protection.BlockDeletion,
		BlockForcePush:       c.Protection.BlockForcePush,
		RequireLinearHistory: c.Protection.RequireLinearHistory,
		RequireSignedCommits: c.Protection.RequireSignedCommits,
		RequirePullRequest:   c.Protection.RequirePullRequest,
		PullRequest: ruleset.PullRequestParameters{
			DismissStaleReviewsOnPush:      c.Protection.DismissStale,
			RequireCodeOwnerReview:         c.Protection.CodeOwnerReview,
			RequireLastPushApproval:        c.Protection.LastPushApproval,
			RequiredApprovingReviewCount:   c.Protection.Reviews,
			RequiredReviewThreadResolution: c.Protection.ThreadResolution,
		},
		RequireStatusChecks: c.Protection.RequireStatusChecks,
		StatusChecks: ruleset.StatusChecksConfig{
			Strict:   c.Protection.StrictChecks,
			Contexts: c.Protection.Contexts,
		},
	}
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// parseRepoSelector accepts OWNER/REPO, or a GitHub URL like:
//
//	https://github.com/<owner>/<repo>
//	github.com/<owner>/<repo>
//
// A trailing ".git" on the repo name is stripped.
func parseRepoSelector(raw string) (owner, name string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", errors.New("repository is required (OWNER/REPO)")
	}

	if strings.HasPrefix(raw, "github.com/") || strings.HasPrefix(raw, "www.github.com/") {
		raw = "https://" + raw
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", "", fmt.Errorf("%q", raw)
		}
		host := strings.ToLower(u.Hostname())
		if host == "www.github.com" {
			host = "github.com"
		}
		if host != "github.com" {
			return "", "", fmt.Errorf("%q", raw)
		}
		parts := strings.FieldsFunc(strings.Trim(u.Path, "/"), func(r rune) bool { return r == '/' })
		if len(parts) < 2 {
			return "", "", fmt.Errorf("%q", raw)
		}
		return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
	}

	parts := strings.Split(raw, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%q: expected OWNER/REPO", raw)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
