package domain

//go:generate mockgen -source=interfaces.go -destination=../mocks/domain.go -package=mocks

import "context"

// Handler is a pluggable unit of side-effecting work around the build step.
type Handler interface {
	// Name identifies the handler in results and logs
	Name() string
}

// InputHandler runs before the build step.
type InputHandler interface {
	Handler
	HandleInput(ctx context.Context, cfg *RunConfig) HandlerResult
}

// OutputHandler runs after a successful build and manifest resolution.
type OutputHandler interface {
	Handler
	HandleOutput(ctx context.Context, manifest *AppManifest, cfg *RunConfig) HandlerResult
}

// DualHandler implements both capabilities.
type DualHandler interface {
	InputHandler
	OutputHandler
}

// PublishLogger receives every handler result and the final outcome.
type PublishLogger interface {
	Log(result HandlerResult) error
	LogOutcome(outcome *PublishOutcome) error
}

// Builder is the build/deploy step collaborator.
type Builder interface {
	// Build compiles and publishes the project
	Build(ctx context.Context, cfg *RunConfig) (*BuildOutput, error)
	// Clean removes intermediate build output
	Clean(ctx context.Context, cfg *RunConfig) error
}
