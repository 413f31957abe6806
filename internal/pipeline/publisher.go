package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/quantmind-br/clicktwice-go/internal/manifest"
	"github.com/quantmind-br/clicktwice-go/internal/utils"
)

// DefaultRetryInterval is the pause before the single forced-rebuild retry.
const DefaultRetryInterval = 2 * time.Second

// Publisher owns the handler lists, loggers and error policy for publish runs.
type Publisher struct {
	config        domain.RunConfig
	builder       domain.Builder
	inputs        []domain.InputHandler
	outputs       []domain.OutputHandler
	loggers       []domain.PublishLogger
	policy        ErrorPolicy
	stopOnError   bool
	sidecarExt    string
	retryInterval time.Duration
	logger        *utils.Logger
	newRunID      func() string
}

// Options contains options for creating a Publisher
type Options struct {
	Config        domain.RunConfig
	Builder       domain.Builder
	Handlers      []Registration
	Loggers       []domain.PublishLogger
	Policy        ErrorPolicy
	StopOnError   bool
	SidecarExt    string
	RetryInterval time.Duration
	Logger        *utils.Logger
	// RunIDFunc overrides run ID generation (uuid by default)
	RunIDFunc func() string
}

// New creates a Publisher. Handler registrations are split into the input
// and output lists here and cannot change afterwards.
func New(opts Options) (*Publisher, error) {
	if opts.Builder == nil {
		return nil, fmt.Errorf("builder is required")
	}

	p := &Publisher{
		config:        opts.Config,
		builder:       opts.Builder,
		loggers:       append([]domain.PublishLogger(nil), opts.Loggers...),
		policy:        opts.Policy,
		stopOnError:   opts.StopOnError,
		sidecarExt:    opts.SidecarExt,
		retryInterval: opts.RetryInterval,
		logger:        opts.Logger,
		newRunID:      opts.RunIDFunc,
	}
	p.config.Platform = domain.NormalizePlatform(p.config.Platform)

	for i, reg := range opts.Handlers {
		if !reg.valid() {
			return nil, fmt.Errorf("handler registration %d is incomplete", i)
		}
		if reg.capability&CapabilityInput != 0 {
			p.inputs = append(p.inputs, reg.input)
		}
		if reg.capability&CapabilityOutput != 0 {
			p.outputs = append(p.outputs, reg.output)
		}
	}

	if p.sidecarExt == "" {
		p.sidecarExt = manifest.SidecarExt
	}
	if p.retryInterval <= 0 {
		p.retryInterval = DefaultRetryInterval
	}
	if p.logger == nil {
		p.logger = utils.NewNopLogger()
	}
	if p.newRunID == nil {
		p.newRunID = uuid.NewString
	}
	return p, nil
}

// InputHandlers returns the names of the input handlers in execution order.
func (p *Publisher) InputHandlers() []string {
	names := make([]string, len(p.inputs))
	for i, h := range p.inputs {
		names[i] = h.Name()
	}
	return names
}

// OutputHandlers returns the names of the output handlers in execution order.
func (p *Publisher) OutputHandlers() []string {
	names := make([]string, len(p.outputs))
	for i, h := range p.outputs {
		names[i] = h.Name()
	}
	return names
}

// Config returns a copy of the run configuration template.
func (p *Publisher) Config() domain.RunConfig {
	return p.config
}

// Run executes one publish. The returned outcome is always non-nil. The
// error is non-nil when the build fails, when manifest resolution or
// persistence fails, or when the error policy raises an aggregate failure.
func (p *Publisher) Run(ctx context.Context) (*domain.PublishOutcome, error) {
	cfg := p.config
	cfg.RunID = p.newRunID()
	log := p.logger.WithRun(cfg.RunID)

	outcome := &domain.PublishOutcome{
		RunID:       cfg.RunID,
		ProjectPath: cfg.ProjectPath,
		State:       domain.StateConfigured,
		Transitions: []domain.RunState{domain.StateConfigured},
		StartedAt:   time.Now(),
	}

	log.Info().
		Str("project", cfg.ProjectPath).
		Str("source", cfg.Source.String()).
		Str("platform", cfg.Platform).
		Str("configuration", cfg.Configuration).
		Int("input_handlers", len(p.inputs)).
		Int("output_handlers", len(p.outputs)).
		Msg("Starting publish")

	p.enter(outcome, domain.StateRunningInputHandlers, log)
	for i, h := range p.inputs {
		if p.shouldSkip(ctx, outcome, domain.PhaseInput) {
			p.skipRemainingInputs(ctx, outcome, log, p.inputs[i:])
			break
		}
		res := p.invoke(h.Name(), domain.PhaseInput, func() domain.HandlerResult {
			return h.HandleInput(ctx, &cfg)
		})
		p.record(outcome, res, log)
	}

	p.enter(outcome, domain.StateBuilding, log)
	out, err := p.build(ctx, &cfg, log)
	if err != nil {
		return p.fail(outcome, err, log)
	}
	outcome.Build = out
	if out.PublishDir != "" {
		cfg.PublishDir = out.PublishDir
	}
	if cfg.DescriptorPath == "" {
		cfg.DescriptorPath = out.DescriptorPath
	}
	if cfg.DescriptorPath == "" {
		cfg.DescriptorPath = cfg.PublishDir
	}

	p.enter(outcome, domain.StateResolvingManifest, log)
	resolver := manifest.NewResolver(manifest.ResolverOptions{
		ProjectPath:    cfg.ProjectPath,
		DescriptorPath: cfg.DescriptorPath,
		Logger:         log,
	})
	m, err := resolver.Resolve(ctx, cfg.Source)
	if err != nil {
		return p.fail(outcome, err, log)
	}
	sidecar, err := resolver.PersistWithExt(m, p.sidecarExt)
	if err != nil {
		return p.fail(outcome, err, log)
	}
	outcome.Manifest = &m
	outcome.SidecarPath = sidecar

	p.enter(outcome, domain.StateRunningOutputHandlers, log)
	for i, h := range p.outputs {
		if p.shouldSkip(ctx, outcome, domain.PhaseOutput) {
			p.skipRemainingOutputs(ctx, outcome, log, p.outputs[i:])
			break
		}
		manifestCopy := m.Clone()
		res := p.invoke(h.Name(), domain.PhaseOutput, func() domain.HandlerResult {
			return h.HandleOutput(ctx, &manifestCopy, &cfg)
		})
		p.record(outcome, res, log)
	}

	if cfg.CleanAfterBuild {
		if err := p.builder.Clean(ctx, &cfg); err != nil {
			log.Warn().Err(err).Msg("Failed to clean build output")
		}
	}

	p.enter(outcome, domain.StateAggregating, log)
	if err := p.policy.Apply(outcome.Results, log); err != nil {
		return p.fail(outcome, err, log)
	}

	p.enter(outcome, domain.StateSucceeded, log)
	p.finish(outcome, log)
	return outcome, nil
}

// build runs the build step, retrying once when a forced rebuild was asked for.
func (p *Publisher) build(ctx context.Context, cfg *domain.RunConfig, log *utils.Logger) (*domain.BuildOutput, error) {
	var b backoff.BackOff = &backoff.StopBackOff{}
	if cfg.ForceRebuild {
		b = backoff.WithMaxRetries(backoff.NewConstantBackOff(p.retryInterval), 1)
	}

	attempts := 0
	var out *domain.BuildOutput
	err := backoff.Retry(func() error {
		attempts++
		var err error
		out, err = p.builder.Build(ctx, cfg)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempts).Msg("Build attempt failed")
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
		}
		return err
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, &domain.BuildError{Attempts: attempts, Err: err}
	}

	if out == nil {
		out = &domain.BuildOutput{}
	}
	out.Attempts = attempts
	log.Info().
		Str("publish_dir", out.PublishDir).
		Int("attempts", attempts).
		Msg("Build completed")
	return out, nil
}

// invoke runs a single handler, turning panics and bare errors into an
// Error result stamped with the handler identity.
func (p *Publisher) invoke(name string, phase domain.Phase, fn func() domain.HandlerResult) (res domain.HandlerResult) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			res = domain.Failed(fmt.Errorf("%w: %v", domain.ErrHandlerPanic, rec))
		}
		res.Handler = name
		res.Phase = phase
		res.Duration = time.Since(start)
		if res.Outcome == "" {
			res.Outcome = domain.OutcomeSuccess
		}
		if res.IsError() {
			cause := res.Err
			if cause == nil {
				cause = errors.New(res.Message)
			}
			var he *domain.HandlerError
			if !errors.As(cause, &he) {
				res.Err = &domain.HandlerError{Handler: name, Phase: phase, Err: cause}
			}
			if res.Message == "" {
				res.Message = cause.Error()
			}
		}
	}()
	return fn()
}

// shouldSkip reports whether the rest of a phase must be skipped.
func (p *Publisher) shouldSkip(ctx context.Context, o *domain.PublishOutcome, phase domain.Phase) bool {
	if ctx.Err() != nil {
		return true
	}
	if !p.stopOnError {
		return false
	}
	for _, r := range o.Results {
		if r.Phase == phase && r.IsError() {
			return true
		}
	}
	return false
}

func skipReason(ctx context.Context) string {
	if err := ctx.Err(); err != nil {
		return fmt.Sprintf("not run: %v", err)
	}
	return "not run: an earlier handler failed"
}

func (p *Publisher) skipRemainingInputs(ctx context.Context, o *domain.PublishOutcome, log *utils.Logger, rest []domain.InputHandler) {
	for _, h := range rest {
		res := domain.Skipped(skipReason(ctx))
		res.Handler, res.Phase = h.Name(), domain.PhaseInput
		p.record(o, res, log)
	}
}

func (p *Publisher) skipRemainingOutputs(ctx context.Context, o *domain.PublishOutcome, log *utils.Logger, rest []domain.OutputHandler) {
	for _, h := range rest {
		res := domain.Skipped(skipReason(ctx))
		res.Handler, res.Phase = h.Name(), domain.PhaseOutput
		p.record(o, res, log)
	}
}

// record appends a result and hands it to every logger in order.
func (p *Publisher) record(o *domain.PublishOutcome, res domain.HandlerResult, log *utils.Logger) {
	o.Results = append(o.Results, res)

	hlog := log.WithHandler(res.Handler, string(res.Phase))
	switch res.Outcome {
	case domain.OutcomeError:
		hlog.Warn().Err(res.Err).Dur("duration", res.Duration).Msg("Handler failed")
	case domain.OutcomeSuccess:
		hlog.Info().Str("message", res.Message).Dur("duration", res.Duration).Msg("Handler completed")
	default:
		hlog.Info().Str("outcome", string(res.Outcome)).Str("message", res.Message).Msg("Handler finished")
	}

	for _, l := range p.loggers {
		if err := safeLog(func() error { return l.Log(res) }); err != nil {
			o.LoggerErrors = append(o.LoggerErrors, err)
			log.Warn().Err(err).Msg("Publish logger failed to record handler result")
		}
	}
}

func (p *Publisher) enter(o *domain.PublishOutcome, to domain.RunState, log *utils.Logger) {
	if err := advance(o, to); err != nil {
		// Run only requests transitions present in allowedTransitions.
		panic(err)
	}
	log.Debug().Str("state", string(to)).Msg("Publish state changed")
}

// fail moves the run to Failed, reports the outcome and returns err.
func (p *Publisher) fail(o *domain.PublishOutcome, err error, log *utils.Logger) (*domain.PublishOutcome, error) {
	o.Err = err
	p.enter(o, domain.StateFailed, log)
	log.Error().Err(err).Msg("Publish failed")
	p.finish(o, log)
	return o, err
}

func (p *Publisher) finish(o *domain.PublishOutcome, log *utils.Logger) {
	o.Duration = time.Since(o.StartedAt)

	for _, l := range p.loggers {
		if err := safeLog(func() error { return l.LogOutcome(o) }); err != nil {
			o.LoggerErrors = append(o.LoggerErrors, err)
			log.Warn().Err(err).Msg("Publish logger failed to record outcome")
		}
	}

	failures := len(o.Failures())
	log.Info().
		Str("state", string(o.State)).
		Int("handlers", len(o.Results)).
		Int("failed", failures).
		Dur("duration", o.Duration).
		Msg("Publish finished")
}

// safeLog calls a logger, converting a panic into an error.
func safeLog(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("publish logger panicked: %v", rec)
		}
	}()
	return fn()
}
