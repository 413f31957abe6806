package domain

import (
	"strings"
	"time"
)

// PlatformAnyCPU is used when the platform is automatic or unset.
const PlatformAnyCPU = "AnyCPU"

// NormalizePlatform maps the automatic platform onto AnyCPU.
func NormalizePlatform(platform string) string {
	p := strings.TrimSpace(platform)
	if p == "" || strings.EqualFold(p, "automatic") {
		return PlatformAnyCPU
	}
	return p
}

// RunConfig is the frozen configuration handed to handlers and the build
// step for a single publish run.
type RunConfig struct {
	RunID           string
	ProjectPath     string
	DescriptorPath  string
	Source          InformationSource
	Platform        string
	Configuration   string
	ForceRebuild    bool
	CleanAfterBuild bool
	PublishVersion  string
	PublishDir      string
}

// BuildOutput describes what the build step produced.
type BuildOutput struct {
	PublishDir     string
	DescriptorPath string
	Attempts       int
}

// RunState is a state of the publish run state machine.
type RunState string

const (
	StateConfigured            RunState = "configured"
	StateRunningInputHandlers  RunState = "running_input_handlers"
	StateBuilding              RunState = "building"
	StateResolvingManifest     RunState = "resolving_manifest"
	StateRunningOutputHandlers RunState = "running_output_handlers"
	StateAggregating           RunState = "aggregating"
	StateSucceeded             RunState = "succeeded"
	StateFailed                RunState = "failed"
)

// IsTerminal reports whether the state ends a run.
func (s RunState) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// PublishOutcome summarizes a finished run.
type PublishOutcome struct {
	RunID        string
	ProjectPath  string
	State        RunState
	Transitions  []RunState
	Results      []HandlerResult
	Manifest     *AppManifest
	SidecarPath  string
	Build        *BuildOutput
	Err          error
	LoggerErrors []error
	StartedAt    time.Time
	Duration     time.Duration
}

// Succeeded reports whether the run reached the Succeeded state.
func (o *PublishOutcome) Succeeded() bool {
	return o != nil && o.State == StateSucceeded
}

// Failures returns the Error-outcome results in invocation order.
func (o *PublishOutcome) Failures() []HandlerResult {
	if o == nil {
		return nil
	}
	return Errors(o.Results)
}
