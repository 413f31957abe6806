package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	// ErrInvalidVersion indicates a malformed dotted version string
	ErrInvalidVersion = errors.New("invalid version")

	// ErrUnknownSource indicates an unrecognized information source name
	ErrUnknownSource = errors.New("unknown information source")

	// ErrBuildFailed indicates the build step did not succeed
	ErrBuildFailed = errors.New("build failed")

	// ErrHandlerPanic indicates a handler panicked during execution
	ErrHandlerPanic = errors.New("handler panicked")
)

// ResolutionError reports missing, ambiguous or unparsable source data.
type ResolutionError struct {
	Source   InformationSource
	Location string
	Err      error
}

func (e *ResolutionError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("resolve %s manifest from %s: %v", e.Source, e.Location, e.Err)
	}
	return fmt.Sprintf("resolve %s manifest: %v", e.Source, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// NewResolutionError creates a new ResolutionError
func NewResolutionError(source InformationSource, location string, err error) *ResolutionError {
	return &ResolutionError{Source: source, Location: location, Err: err}
}

// PersistenceError reports a sidecar write or read failure.
type PersistenceError struct {
	Op       string
	Location string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s manifest sidecar %s: %v", e.Op, e.Location, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError creates a new PersistenceError
func NewPersistenceError(op, location string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Location: location, Err: err}
}

// HandlerError is the failure captured for a single handler. It travels
// inside a HandlerResult and is never returned across a phase boundary.
type HandlerError struct {
	Handler string
	Phase   Phase
	Err     error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s handler %s: %v", e.Phase, e.Handler, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// BuildError reports a failed build step.
type BuildError struct {
	Attempts int
	Err      error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrBuildFailed) true for any BuildError.
func (e *BuildError) Is(target error) bool {
	return target == ErrBuildFailed
}

// AggregateFailure is raised by the strict error policy and carries every
// Error-outcome result of the run in invocation order.
type AggregateFailure struct {
	Failures []HandlerResult
}

func (e *AggregateFailure) Error() string {
	names := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		names = append(names, f.Handler)
	}
	return fmt.Sprintf("%d handler(s) failed: %s", len(e.Failures), strings.Join(names, ", "))
}

// Unwrap exposes the underlying handler errors to errors.Is/As.
func (e *AggregateFailure) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}
