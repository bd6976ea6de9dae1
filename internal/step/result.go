package step

type Status string

const (
	StatusApplied Status = "APPLIED"
	StatusFailed  Status = "FAILED"
	StatusSkipped Status = "SKIPPED"
)

type Result struct {
	StepID  string `json:"step_id"`
	Repo    string `json:"repo"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

func NewResult(repo, stepID string, status Status, message string) Result {
	res := Result{
		StepID: stepID,
		Repo:   repo,
		Status: status,
	}
	if message != "" {
		res.Message = message
	}
	return res
}

func AppliedResult(repo, stepID string) Result {
	return NewResult(repo, stepID, StatusApplied, "")
}

func AppliedResultWithMessage(repo, stepID, message string) Result {
	return NewResult(repo, stepID, StatusApplied, message)
}

func FailedResult(repo, stepID, message string) Result {
	return NewResult(repo, stepID, StatusFailed, message)
}

func SkippedResult(repo, stepID, message string) Result {
	return NewResult(repo, stepID, StatusSkipped, message)
}
