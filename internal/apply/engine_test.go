package apply

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"reposetup/internal/config"
	"reposetup/internal/step"
)

// stubStep runs a canned result and records whether it ran.
type stubStep struct {
	id     string
	result step.Result
	ran    bool
}

func (s *stubStep) ID() string    { return s.id }
func (s *stubStep) Title() string { return s.id }

func (s *stubStep) Run(ctx context.Context, api step.API, cfg *config.Config) step.Result {
	s.ran = true
	r := s.result
	r.StepID = s.id
	r.Repo = cfg.Target.Owner + "/" + cfg.Target.Name
	return r
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Target.Repo = "octocat/hello-world"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return cfg
}

func newTestEngine(steps ...step.Step) (*Engine, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	e := NewEngine(nil)
	e.steps = steps
	e.stdout = &stdout
	e.stderr = &stderr
	return e, &stdout, &stderr
}

func TestRun_AllApplied(t *testing.T) {
	color.NoColor = true
	a := &stubStep{id: "a", result: step.Result{Status: step.StatusApplied}}
	b := &stubStep{id: "b", result: step.Result{Status: step.StatusSkipped}}
	e, stdout, _ := newTestEngine(a, b)

	code := e.Run(context.Background(), testConfig(t))
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !a.ran || !b.ran {
		t.Error("not all steps ran")
	}
	if !strings.Contains(stdout.String(), "1 applied, 0 failed, 1 skipped") {
		t.Errorf("summary missing: %q", stdout.String())
	}
}

func TestRun_FailureDoesNotStopLaterSteps(t *testing.T) {
	color.NoColor = true
	a := &stubStep{id: "a", result: step.Result{Status: step.StatusFailed, Message: "boom"}}
	b := &stubStep{id: "b", result: step.Result{Status: step.StatusApplied}}
	e, _, _ := newTestEngine(a, b)

	code := e.Run(context.Background(), testConfig(t))
	if code != 2 {
		t.Fatalf("exit code = %d, want 2 (partial)", code)
	}
	if !b.ran {
		t.Error("later step did not run after failure")
	}
}

func TestRun_RulesetFailurePrintsWarning(t *testing.T) {
	color.NoColor = true
	a := &stubStep{id: step.RulesetStepID, result: step.Result{Status: step.StatusFailed, Message: "403 forbidden"}}
	other := &stubStep{id: "labels", result: step.Result{Status: step.StatusFailed, Message: "boom"}}
	e, _, stderr := newTestEngine(a, other)

	if code := e.Run(context.Background(), testConfig(t)); code != 2 {
		t.Fatalf("exit code = %d", code)
	}

	warnings := stderr.String()
	if !strings.Contains(warnings, "warning: branch ruleset creation failed: 403 forbidden") {
		t.Errorf("missing ruleset warning: %q", warnings)
	}
	// Only the ruleset phase warns on stderr.
	if strings.Contains(warnings, "boom") {
		t.Errorf("non-ruleset failure leaked to stderr: %q", warnings)
	}
}

func TestRun_DryRunPrintsPlanWithoutRunningSteps(t *testing.T) {
	a := &stubStep{id: "a", result: step.Result{Status: step.StatusApplied}}
	e, stdout, _ := newTestEngine(a)

	cfg := testConfig(t)
	cfg.Runtime.DryRun = true

	if code := e.Run(context.Background(), cfg); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if a.ran {
		t.Error("dry run must not execute steps")
	}

	out := stdout.String()
	if !strings.Contains(out, "Plan for octocat/hello-world (branch main):") {
		t.Errorf("plan header missing: %q", out)
	}
	if !strings.Contains(out, `"name": "Main Branch Protection"`) {
		t.Errorf("ruleset payload missing: %q", out)
	}
	if !strings.Contains(out, `"refs/heads/main"`) {
		t.Errorf("ref include missing: %q", out)
	}
}

func TestRun_WritesResultsToOutFile(t *testing.T) {
	a := &stubStep{id: "a", result: step.Result{Status: step.StatusApplied}}
	b := &stubStep{id: "b", result: step.Result{Status: step.StatusFailed, Message: "boom"}}
	e, _, _ := newTestEngine(a, b)

	cfg := testConfig(t)
	cfg.Output.NoConsole = true
	cfg.Output.Out = filepath.Join(t.TempDir(), "results.json")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if code := e.Run(context.Background(), cfg); code != 2 {
		t.Fatalf("exit code = %d", code)
	}

	raw, err := os.ReadFile(cfg.Output.Out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var results []step.Result
	if err := json.Unmarshal(raw, &results); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].StepID != "a" || results[1].StepID != "b" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestRun_NDJSONLifecycleEvents(t *testing.T) {
	a := &stubStep{id: "a", result: step.Result{Status: step.StatusApplied}}
	e, stdout, _ := newTestEngine(a)

	cfg := testConfig(t)
	cfg.Output.ConsoleFormat = "ndjson"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if code := e.Run(context.Background(), cfg); code != 0 {
		t.Fatalf("exit code = %d", code)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected run.started, step.result, run.finished; got %d lines: %q", len(lines), stdout.String())
	}
	var types []string
	for _, line := range lines {
		var e struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("unmarshal %q: %v", line, err)
		}
		types = append(types, e.Type)
	}
	want := []string{"run.started", "step.result", "run.finished"}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, types[i], want[i])
		}
	}
}

func TestExitCodeForRun(t *testing.T) {
	if got := exitCodeForRun(true, false); got != 3 {
		t.Errorf("fatal = %d, want 3", got)
	}
	if got := exitCodeForRun(false, true); got != 2 {
		t.Errorf("partial = %d, want 2", got)
	}
	if got := exitCodeForRun(false, false); got != 0 {
		t.Errorf("clean = %d, want 0", got)
	}
}
