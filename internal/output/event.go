package output

import "reposetup/internal/step"

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line), including:
// - run.started
// - step.result
// - run.finished
//
// JSON mode remains an aggregate of step.Result values.
type Event struct {
	Type string `json:"type"`
	Repo string `json:"repo,omitempty"`
	*step.Result
	Steps    int `json:"steps,omitempty"`
	ExitCode int `json:"exit_code,omitempty"`
}

func eventFromResult(r step.Result) Event {
	return Event{Type: "step.result", Repo: r.Repo, Result: &r}
}
