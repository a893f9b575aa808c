package models

// SubmissionStatus names the phase of a form submission
type SubmissionStatus string

const (
	StatusIdle       SubmissionStatus = "idle"
	StatusSubmitting SubmissionStatus = "submitting"
	StatusSucceeded  SubmissionStatus = "succeeded"
	StatusFailed     SubmissionStatus = "failed"
)

// SubmissionState is exactly one of Idle, Submitting, Succeeded(Result) or Failed(Error).
// Result is set only when Succeeded, Error only when Failed.
type SubmissionState struct {
	Status SubmissionStatus  `json:"status"`
	Result *PredictionResult `json:"result,omitempty"`
	Error  *RequestError     `json:"error,omitempty"`
}

func IdleState() SubmissionState {
	return SubmissionState{Status: StatusIdle}
}

func SubmittingState() SubmissionState {
	return SubmissionState{Status: StatusSubmitting}
}

func SucceededState(result PredictionResult) SubmissionState {
	return SubmissionState{Status: StatusSucceeded, Result: &result}
}

func FailedState(err *RequestError) SubmissionState {
	return SubmissionState{Status: StatusFailed, Error: err}
}

// Settled reports whether the submission finished, successfully or not
func (s SubmissionState) Settled() bool {
	return s.Status == StatusSucceeded || s.Status == StatusFailed
}
