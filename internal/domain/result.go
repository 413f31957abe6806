package domain

import "time"

// Outcome is the verdict of a single handler invocation.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
	OutcomeSkipped Outcome = "skipped"
	OutcomeWarning Outcome = "warning"
)

// Phase identifies which side of the build step a handler ran on.
type Phase string

const (
	PhaseInput  Phase = "input"
	PhaseOutput Phase = "output"
)

// HandlerResult records one handler invocation within a run.
type HandlerResult struct {
	Handler  string        `json:"handler"`
	Phase    Phase         `json:"phase"`
	Outcome  Outcome       `json:"outcome"`
	Message  string        `json:"message,omitempty"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration"`
}

// Succeeded returns a success result with an optional message.
func Succeeded(message string) HandlerResult {
	return HandlerResult{Outcome: OutcomeSuccess, Message: message}
}

// Failed returns an error result carrying err.
func Failed(err error) HandlerResult {
	r := HandlerResult{Outcome: OutcomeError, Err: err}
	if err != nil {
		r.Message = err.Error()
	}
	return r
}

// Skipped returns a skipped result.
func Skipped(message string) HandlerResult {
	return HandlerResult{Outcome: OutcomeSkipped, Message: message}
}

// Warned returns a warning result.
func Warned(message string) HandlerResult {
	return HandlerResult{Outcome: OutcomeWarning, Message: message}
}

// IsError reports whether the result has the Error outcome.
func (r HandlerResult) IsError() bool {
	return r.Outcome == OutcomeError
}

// Errors filters results down to the Error outcome, preserving order.
func Errors(results []HandlerResult) []HandlerResult {
	var out []HandlerResult
	for _, r := range results {
		if r.IsError() {
			out = append(out, r)
		}
	}
	return out
}
