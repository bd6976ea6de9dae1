package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"reposetup/internal/step"
)

func disableColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestConsoleSink_Text(t *testing.T) {
	disableColor(t)

	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "text")

	if err := s.Write(step.Result{StepID: "merge-settings", Repo: "o/r", Status: step.StatusApplied}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Write(step.Result{StepID: "branch-ruleset", Repo: "o/r", Status: step.StatusFailed, Message: "403"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	// Lifecycle events are ignored in text mode.
	if err := s.Write(Event{Type: "run.started", Repo: "o/r"}); err != nil {
		t.Fatalf("Write event: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "[APPLIED] o/r: merge-settings" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "[FAILED] o/r: branch-ruleset - 403" {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestConsoleSink_JSONAggregatesOnClose(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "json")

	_ = s.Write(step.Result{StepID: "labels", Repo: "o/r", Status: step.StatusSkipped, Message: "disabled by configuration"})
	_ = s.Write(Event{Type: "run.finished", ExitCode: 0})
	if buf.Len() != 0 {
		t.Fatalf("json mode must not write before Close, got %q", buf.String())
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var results []step.Result
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(results) != 1 || results[0].StepID != "labels" || results[0].Status != step.StatusSkipped {
		t.Errorf("unexpected aggregate: %+v", results)
	}
}

func TestConsoleSink_NDJSON(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "ndjson")

	_ = s.Write(Event{Type: "run.started", Repo: "o/r", Steps: 6})
	_ = s.Write(step.Result{StepID: "merge-settings", Repo: "o/r", Status: step.StatusApplied})
	_ = s.Write(Event{Type: "run.finished", Repo: "o/r", ExitCode: 0})
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}

	var started struct {
		Type  string `json:"type"`
		Steps int    `json:"steps"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &started); err != nil {
		t.Fatalf("unmarshal line 0: %v", err)
	}
	if started.Type != "run.started" || started.Steps != 6 {
		t.Errorf("line 0 = %+v", started)
	}

	var res struct {
		Type   string `json:"type"`
		StepID string `json:"step_id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &res); err != nil {
		t.Fatalf("unmarshal line 1: %v", err)
	}
	if res.Type != "step.result" || res.StepID != "merge-settings" || res.Status != "APPLIED" {
		t.Errorf("line 1 = %+v", res)
	}
}

func TestConsoleSink_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, "yaml")
	if err := s.Write(step.Result{}); err == nil {
		t.Error("expected error for unsupported format")
	}
}
