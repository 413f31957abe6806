package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/quantmind-br/clicktwice-go/internal/build"
	"github.com/quantmind-br/clicktwice-go/internal/config"
	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/quantmind-br/clicktwice-go/internal/git"
	"github.com/quantmind-br/clicktwice-go/internal/history"
	"github.com/quantmind-br/clicktwice-go/internal/loggers"
	"github.com/quantmind-br/clicktwice-go/internal/pipeline"
	"github.com/quantmind-br/clicktwice-go/internal/profile"
	"github.com/quantmind-br/clicktwice-go/internal/utils"
)

// ErrNoProject is returned when neither the profile nor the command line
// names a project file.
var ErrNoProject = errors.New("no project file given")

// Publisher wires configuration and a publish profile into a pipeline and
// owns the resources the pipeline's loggers need.
type Publisher struct {
	pipeline *pipeline.Publisher
	history  *history.Store
	ownsDB   bool
	metrics  *loggers.MetricsLogger
	logger   *utils.Logger
}

// Options contains options for creating a Publisher
type Options struct {
	Verbose bool
	// Logger overrides the logger built from the configuration
	Logger *utils.Logger
	// Runner overrides process execution for the build step
	Runner build.Runner
	// Builder replaces the msbuild collaborator entirely
	Builder domain.Builder
	// GitClient is handed to git tag handlers
	GitClient git.Client
	// History is an already opened store; when nil and history is enabled a
	// store is opened from the configuration and closed by Close
	History *history.Store
	// Registry receives the run metrics; a private registry is used when nil
	Registry *prometheus.Registry
	// ProgressWriter is where the progress logger draws; stderr when nil
	ProgressWriter io.Writer
	RunIDFunc      func() string
}

// NewLogger creates the application logger from the logging configuration
func NewLogger(cfg *config.Config, verbose bool) *utils.Logger {
	logLevel := config.DefaultLogLevel
	logFormat := config.DefaultLogFormat
	if cfg != nil && cfg.Logging.Level != "" {
		logLevel = cfg.Logging.Level
	}
	if cfg != nil && cfg.Logging.Format != "" {
		logFormat = cfg.Logging.Format
	}
	if verbose {
		logLevel = "debug"
	}
	return utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  logFormat,
		Verbose: verbose,
	})
}

// OpenHistory opens the run history store configured in cfg
func OpenHistory(cfg *config.Config) (*history.Store, error) {
	return history.NewStore(history.Options{
		Directory: utils.ExpandPath(cfg.History.Directory),
		Retention: cfg.History.Retention,
	})
}

// RunConfig merges the profile over the configuration defaults
func RunConfig(cfg *config.Config, prof *profile.Profile) (domain.RunConfig, error) {
	if prof.Project == "" {
		return domain.RunConfig{}, ErrNoProject
	}

	sourceName := cfg.Manifest.Source
	if prof.Source != "" {
		sourceName = prof.Source
	}
	source, err := domain.ParseInformationSource(sourceName)
	if err != nil {
		return domain.RunConfig{}, err
	}

	rc := domain.RunConfig{
		ProjectPath:     utils.ExpandPath(prof.Project),
		DescriptorPath:  utils.ExpandPath(prof.Descriptor),
		Source:          source,
		Platform:        firstNonEmpty(prof.Platform, cfg.Build.Platform),
		Configuration:   firstNonEmpty(prof.Configuration, cfg.Build.Configuration),
		ForceRebuild:    prof.ForceRebuild,
		CleanAfterBuild: prof.CleanAfterBuild,
		PublishVersion:  prof.Version,
		PublishDir:      utils.ExpandPath(prof.PublishDir),
	}
	if rc.PublishVersion != "" {
		if _, err := domain.ParseVersion(rc.PublishVersion); err != nil {
			return domain.RunConfig{}, fmt.Errorf("publish version: %w", err)
		}
	}
	return rc, nil
}

// NewPublisher creates a Publisher for one profile
func NewPublisher(cfg *config.Config, prof *profile.Profile, opts Options) (*Publisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if prof == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if err := prof.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = NewLogger(cfg, opts.Verbose)
	}

	rc, err := RunConfig(cfg, prof)
	if err != nil {
		return nil, err
	}

	policyName := cfg.Policy.OnHandlerError
	if prof.Policy.OnHandlerError != "" {
		policyName = prof.Policy.OnHandlerError
	}
	policy, err := pipeline.ParsePolicy(policyName)
	if err != nil {
		return nil, err
	}

	deps := HandlerDeps{Logger: logger, GitClient: opts.GitClient}
	regs := make([]pipeline.Registration, 0, len(prof.Handlers))
	for i, spec := range prof.Handlers {
		reg, err := CreateHandler(spec, deps)
		if err != nil {
			return nil, fmt.Errorf("handler %d: %w", i, err)
		}
		regs = append(regs, reg)
	}

	p := &Publisher{logger: logger}

	names := prof.Loggers
	if len(names) == 0 {
		names = defaultLoggers(cfg)
	}
	pubLoggers, err := p.createLoggers(cfg, names, steps(regs), opts)
	if err != nil {
		_ = p.Close()
		return nil, err
	}

	builder := opts.Builder
	if builder == nil {
		builder = build.NewMSBuild(build.Options{
			Tool:    cfg.Build.Tool,
			Timeout: cfg.Build.Timeout,
			Runner:  opts.Runner,
			Logger:  logger,
		})
	}

	p.pipeline, err = pipeline.New(pipeline.Options{
		Config:      rc,
		Builder:     builder,
		Handlers:    regs,
		Loggers:     pubLoggers,
		Policy:      policy,
		StopOnError: prof.Policy.StopOnError || cfg.Policy.StopOnError,
		SidecarExt:  cfg.Manifest.SidecarExt,
		Logger:      logger,
		RunIDFunc:   opts.RunIDFunc,
	})
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	return p, nil
}

func defaultLoggers(cfg *config.Config) []string {
	names := []string{profile.LoggerLog}
	if cfg.History.Enabled {
		names = append(names, profile.LoggerHistory)
	}
	if cfg.Metrics.File != "" {
		names = append(names, profile.LoggerMetrics)
	}
	return names
}

func (p *Publisher) createLoggers(cfg *config.Config, names []string, steps int, opts Options) ([]domain.PublishLogger, error) {
	var out []domain.PublishLogger
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case profile.LoggerLog:
			out = append(out, loggers.NewLogLogger(p.logger))
		case profile.LoggerProgress:
			w := opts.ProgressWriter
			if w == nil {
				w = os.Stderr
			}
			out = append(out, loggers.NewProgressLogger(loggers.ProgressOptions{Steps: steps, Writer: w}))
		case profile.LoggerMetrics:
			p.metrics = loggers.NewMetricsLogger(loggers.MetricsOptions{
				Registry: opts.Registry,
				Textfile: utils.ExpandPath(cfg.Metrics.File),
			})
			out = append(out, p.metrics)
		case profile.LoggerHistory:
			if opts.History != nil {
				p.history = opts.History
			} else if p.history == nil {
				store, err := OpenHistory(cfg)
				if err != nil {
					return nil, fmt.Errorf("failed to open history: %w", err)
				}
				p.history = store
				p.ownsDB = true
			}
			out = append(out, loggers.NewHistoryLogger(p.history))
		default:
			return nil, fmt.Errorf("%w: %s", profile.ErrUnknownLogger, name)
		}
	}
	return out, nil
}

// steps is the number of handler results a run produces.
func steps(regs []pipeline.Registration) int {
	n := 0
	for _, r := range regs {
		if r.Capability()&pipeline.CapabilityInput != 0 {
			n++
		}
		if r.Capability()&pipeline.CapabilityOutput != 0 {
			n++
		}
	}
	return n
}

// Run executes one publish run
func (p *Publisher) Run(ctx context.Context) (*domain.PublishOutcome, error) {
	rc := p.pipeline.Config()
	p.logger.Debug().
		Str("project", rc.ProjectPath).
		Strs("input_handlers", p.pipeline.InputHandlers()).
		Strs("output_handlers", p.pipeline.OutputHandlers()).
		Msg("Publisher configured")

	return p.pipeline.Run(ctx)
}

// Pipeline returns the underlying pipeline
func (p *Publisher) Pipeline() *pipeline.Publisher {
	return p.pipeline
}

// Metrics returns the metrics logger, or nil when metrics are not enabled
func (p *Publisher) Metrics() *loggers.MetricsLogger {
	return p.metrics
}

// Close releases the history store when the Publisher opened it
func (p *Publisher) Close() error {
	if p.history != nil && p.ownsDB {
		err := p.history.Close()
		p.history = nil
		return err
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
