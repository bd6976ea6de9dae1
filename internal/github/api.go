package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v81/github"

	"reposetup/internal/config"
	"reposetup/internal/labels"
	"reposetup/internal/ruleset"
)

// The methods below are the full write surface of the tool: one call per
// apply step, each a thin wrapper over go-github that keeps the step layer
// free of transport concerns.

// UpdateMergeSettings applies the merge-strategy flags to the repository.
func (c *Client) UpdateMergeSettings(ctx context.Context, owner, repo string, m config.Merge) error {
	edit := &github.Repository{
		AllowMergeCommit:    github.Ptr(m.AllowMergeCommit),
		AllowSquashMerge:    github.Ptr(m.AllowSquashMerge),
		AllowRebaseMerge:    github.Ptr(m.AllowRebaseMerge),
		AllowAutoMerge:      github.Ptr(m.AllowAutoMerge),
		DeleteBranchOnMerge: github.Ptr(m.DeleteBranchOnMerge),
	}
	if _, _, err := c.Client.Repositories.Edit(ctx, owner, repo, edit); err != nil {
		return fmt.Errorf("update merge settings: %w", err)
	}
	return nil
}

func (c *Client) EnableVulnerabilityAlerts(ctx context.Context, owner, repo string) error {
	if _, err := c.Client.Repositories.EnableVulnerabilityAlerts(ctx, owner, repo); err != nil {
		return fmt.Errorf("enable vulnerability alerts: %w", err)
	}
	return nil
}

func (c *Client) EnableAutomatedSecurityFixes(ctx context.Context, owner, repo string) error {
	if _, err := c.Client.Repositories.EnableAutomatedSecurityFixes(ctx, owner, repo); err != nil {
		return fmt.Errorf("enable automated security fixes: %w", err)
	}
	return nil
}

// EnableSecretScanning turns on secret scanning and its push protection via
// the repository's security_and_analysis settings.
func (c *Client) EnableSecretScanning(ctx context.Context, owner, repo string) error {
	edit := &github.Repository{
		SecurityAndAnalysis: &github.SecurityAndAnalysis{
			SecretScanning: &github.SecretScanning{
				Status: github.Ptr("enabled"),
			},
			SecretScanningPushProtection: &github.SecretScanningPushProtection{
				Status: github.Ptr("enabled"),
			},
		},
	}
	if _, _, err := c.Client.Repositories.Edit(ctx, owner, repo, edit); err != nil {
		return fmt.Errorf("enable secret scanning: %w", err)
	}
	return nil
}

// CreateRuleset posts the envelope to POST /repos/{owner}/{repo}/rulesets as
// a raw request so the payload is byte-for-byte the builder's output rather
// than go-github's ruleset types.
func (c *Client) CreateRuleset(ctx context.Context, owner, repo string, env ruleset.Envelope) error {
	if c == nil || c.Client == nil {
		return errors.New("create ruleset: client is nil")
	}
	u := fmt.Sprintf("repos/%v/%v/rulesets", owner, repo)
	req, err := c.Client.NewRequest(http.MethodPost, u, env)
	if err != nil {
		return fmt.Errorf("create ruleset: build request: %w", err)
	}
	if _, err := c.Client.Do(ctx, req, nil); err != nil {
		return fmt.Errorf("create ruleset: %w", err)
	}
	return nil
}

// UpsertLabel creates the label, falling back to an update by name when a
// label with that name already exists.
func (c *Client) UpsertLabel(ctx context.Context, owner, repo string, l labels.Label) error {
	ghLabel := &github.Label{
		Name:        github.Ptr(l.Name),
		Description: github.Ptr(l.Description),
		Color:       github.Ptr(l.Color),
	}
	_, _, err := c.Client.Issues.CreateLabel(ctx, owner, repo, ghLabel)
	if err == nil {
		return nil
	}
	if !isAlreadyExists(err) {
		return fmt.Errorf("create label %q: %w", l.Name, err)
	}
	if _, _, err := c.Client.Issues.EditLabel(ctx, owner, repo, l.Name, ghLabel); err != nil {
		return fmt.Errorf("update label %q: %w", l.Name, err)
	}
	return nil
}

// isAlreadyExists reports whether err is the 422 the label API returns when
// the name is taken.
func isAlreadyExists(err error) bool {
	var ghErr *github.ErrorResponse
	if !errors.As(err, &ghErr) {
		return false
	}
	if ghErr.Response == nil || ghErr.Response.StatusCode != http.StatusUnprocessableEntity {
		return false
	}
	for _, e := range ghErr.Errors {
		if e.Code == "already_exists" {
			return true
		}
	}
	return false
}
