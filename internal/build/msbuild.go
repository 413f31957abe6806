package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/quantmind-br/clicktwice-go/internal/manifest"
	"github.com/quantmind-br/clicktwice-go/internal/utils"
)

const (
	// DefaultTool is the build executable looked up on PATH
	DefaultTool = "msbuild"
	// DefaultConfiguration is used when the run does not name one
	DefaultConfiguration = "Release"
	// DefaultTimeout bounds a single build invocation
	DefaultTimeout = 30 * time.Minute

	outputTailLines = 20
)

var (
	// ErrNoProject is returned when the run has no project file to build
	ErrNoProject = errors.New("no project file to build")
)

// MSBuild drives msbuild (or dotnet msbuild) to publish a project.
type MSBuild struct {
	tool    string
	prefix  []string
	timeout time.Duration
	runner  Runner
	logger  *utils.Logger
}

// Options contains options for creating an MSBuild builder
type Options struct {
	// Tool is the executable, e.g. "msbuild" or "dotnet msbuild"
	Tool    string
	Timeout time.Duration
	Runner  Runner
	Logger  *utils.Logger
}

// NewMSBuild creates a new MSBuild builder
func NewMSBuild(opts Options) *MSBuild {
	tool := strings.Fields(opts.Tool)
	if len(tool) == 0 {
		tool = []string{DefaultTool}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}

	return &MSBuild{
		tool:    tool[0],
		prefix:  tool[1:],
		timeout: opts.Timeout,
		runner:  opts.Runner,
		logger:  opts.Logger.WithComponent("build"),
	}
}

// Build publishes the project. A forced rebuild runs the Rebuild target
// before Publish.
func (b *MSBuild) Build(ctx context.Context, cfg *domain.RunConfig) (*domain.BuildOutput, error) {
	targets := []string{"Publish"}
	if cfg.ForceRebuild {
		targets = []string{"Rebuild", "Publish"}
	}

	if err := b.run(ctx, cfg, targets...); err != nil {
		return nil, err
	}

	out := &domain.BuildOutput{PublishDir: PublishDir(cfg)}
	if path, err := manifest.LocateDescriptor(out.PublishDir); err == nil {
		out.DescriptorPath = path
	} else {
		b.logger.Debug().Err(err).Str("publish_dir", out.PublishDir).Msg("No deployment descriptor in publish output")
	}
	return out, nil
}

// Clean runs the Clean target for the same configuration and platform.
func (b *MSBuild) Clean(ctx context.Context, cfg *domain.RunConfig) error {
	return b.run(ctx, cfg, "Clean")
}

// Arguments returns the command-line arguments for the given targets.
func (b *MSBuild) Arguments(cfg *domain.RunConfig, targets ...string) []string {
	args := append([]string(nil), b.prefix...)
	args = append(args,
		cfg.ProjectPath,
		"/nologo",
		"/t:"+strings.Join(targets, ";"),
		"/p:Configuration="+configuration(cfg),
		"/p:Platform="+domain.NormalizePlatform(cfg.Platform),
	)
	if cfg.PublishVersion != "" {
		args = append(args, "/p:ApplicationVersion="+cfg.PublishVersion)
	}
	if cfg.PublishDir != "" {
		args = append(args, "/p:PublishDir="+withTrailingSeparator(cfg.PublishDir))
	}
	return args
}

func (b *MSBuild) run(ctx context.Context, cfg *domain.RunConfig, targets ...string) error {
	if cfg.ProjectPath == "" {
		return ErrNoProject
	}
	if _, err := os.Stat(cfg.ProjectPath); err != nil {
		return fmt.Errorf("project %s: %w", cfg.ProjectPath, err)
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	args := b.Arguments(cfg, targets...)
	b.logger.Info().
		Str("tool", b.tool).
		Strs("targets", targets).
		Str("project", cfg.ProjectPath).
		Msg("Running build")

	start := time.Now()
	output, err := b.runner.Run(ctx, filepath.Dir(cfg.ProjectPath), b.tool, args...)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %v", ctx.Err(), err)
		}
		return fmt.Errorf("%s %s: %w\n%s", b.tool, strings.Join(targets, ";"), err, tail(output, outputTailLines))
	}

	b.logger.Debug().
		Dur("duration", time.Since(start)).
		Int("output_bytes", len(output)).
		Msg("Build finished")
	return nil
}

// PublishDir is the directory the Publish target writes to: the run's
// override, else bin/<Configuration>/app.publish under the project.
func PublishDir(cfg *domain.RunConfig) string {
	if cfg.PublishDir != "" {
		return filepath.Clean(cfg.PublishDir)
	}
	return filepath.Join(filepath.Dir(cfg.ProjectPath), "bin", configuration(cfg), "app.publish")
}

func configuration(cfg *domain.RunConfig) string {
	if c := strings.TrimSpace(cfg.Configuration); c != "" {
		return c
	}
	return DefaultConfiguration
}

func withTrailingSeparator(dir string) string {
	if strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, `\`) {
		return dir
	}
	return dir + string(filepath.Separator)
}

// tail returns the last n lines of build output.
func tail(output []byte, n int) string {
	lines := strings.Split(strings.TrimRight(string(output), "\r\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
