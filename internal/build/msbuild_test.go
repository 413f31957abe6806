package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	dir  string
	name string
	args []string
}

type fakeRunner struct {
	calls  []call
	output []byte
	err    error
	onRun  func(ctx context.Context)
}

func (f *fakeRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{dir: dir, name: name, args: args})
	if f.onRun != nil {
		f.onRun(ctx)
	}
	return f.output, f.err
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "App.csproj")
	require.NoError(t, os.WriteFile(path, []byte("<Project />"), 0644))
	return path
}

func TestNewMSBuild_Defaults(t *testing.T) {
	b := NewMSBuild(Options{})

	assert.Equal(t, DefaultTool, b.tool)
	assert.Empty(t, b.prefix)
	assert.Equal(t, DefaultTimeout, b.timeout)
	assert.IsType(t, ExecRunner{}, b.runner)
}

func TestNewMSBuild_DotnetTool(t *testing.T) {
	b := NewMSBuild(Options{Tool: "dotnet msbuild"})

	assert.Equal(t, "dotnet", b.tool)
	args := b.Arguments(&domain.RunConfig{ProjectPath: "App.csproj"}, "Publish")
	assert.Equal(t, "msbuild", args[0])
	assert.Equal(t, "App.csproj", args[1])
}

func TestArguments(t *testing.T) {
	b := NewMSBuild(Options{})

	tests := []struct {
		name     string
		cfg      domain.RunConfig
		targets  []string
		contains []string
		excludes []string
	}{
		{
			name:     "defaults",
			cfg:      domain.RunConfig{ProjectPath: "App.csproj"},
			targets:  []string{"Publish"},
			contains: []string{"/t:Publish", "/p:Configuration=Release", "/p:Platform=AnyCPU"},
			excludes: []string{"/p:ApplicationVersion=", "/p:PublishDir="},
		},
		{
			name: "overrides",
			cfg: domain.RunConfig{
				ProjectPath:    "App.csproj",
				Configuration:  "Debug",
				Platform:       "x86",
				PublishVersion: "2.0.0.1",
				PublishDir:     "out",
			},
			targets: []string{"Rebuild", "Publish"},
			contains: []string{
				"/t:Rebuild;Publish",
				"/p:Configuration=Debug",
				"/p:Platform=x86",
				"/p:ApplicationVersion=2.0.0.1",
				"/p:PublishDir=out" + string(filepath.Separator),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := b.Arguments(&tt.cfg, tt.targets...)
			for _, want := range tt.contains {
				assert.Contains(t, args, want)
			}
			joined := strings.Join(args, " ")
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, joined, unwanted)
			}
		})
	}
}

func TestBuild_Publish(t *testing.T) {
	project := writeProject(t)
	publishDir := filepath.Join(filepath.Dir(project), "bin", "Release", "app.publish")
	require.NoError(t, os.MkdirAll(publishDir, 0755))
	descriptor := filepath.Join(publishDir, "App.application")
	require.NoError(t, os.WriteFile(descriptor, []byte("<assembly />"), 0644))

	runner := &fakeRunner{}
	b := NewMSBuild(Options{Runner: runner})

	out, err := b.Build(context.Background(), &domain.RunConfig{ProjectPath: project})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "msbuild", runner.calls[0].name)
	assert.Equal(t, filepath.Dir(project), runner.calls[0].dir)
	assert.Contains(t, runner.calls[0].args, "/t:Publish")

	assert.Equal(t, publishDir, out.PublishDir)
	assert.Equal(t, descriptor, out.DescriptorPath)
}

func TestBuild_ForceRebuild(t *testing.T) {
	runner := &fakeRunner{}
	b := NewMSBuild(Options{Runner: runner})

	out, err := b.Build(context.Background(), &domain.RunConfig{ProjectPath: writeProject(t), ForceRebuild: true})
	require.NoError(t, err)
	assert.Contains(t, runner.calls[0].args, "/t:Rebuild;Publish")
	assert.Empty(t, out.DescriptorPath)
}

func TestBuild_Failure(t *testing.T) {
	var output strings.Builder
	for i := 0; i < 30; i++ {
		output.WriteString("line ")
		output.WriteString(string(rune('a' + i%26)))
		output.WriteString("\n")
	}
	output.WriteString("error CS1002: ; expected\n")

	runner := &fakeRunner{output: []byte(output.String()), err: errors.New("exit status 1")}
	b := NewMSBuild(Options{Runner: runner})

	_, err := b.Build(context.Background(), &domain.RunConfig{ProjectPath: writeProject(t)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 1")
	assert.Contains(t, err.Error(), "error CS1002")
	assert.Equal(t, outputTailLines, strings.Count(err.Error(), "\n"))
}

func TestBuild_Timeout(t *testing.T) {
	runner := &fakeRunner{err: errors.New("signal: killed")}
	runner.onRun = func(ctx context.Context) { <-ctx.Done() }
	b := NewMSBuild(Options{Runner: runner, Timeout: 10 * time.Millisecond})

	_, err := b.Build(context.Background(), &domain.RunConfig{ProjectPath: writeProject(t)})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBuild_MissingProject(t *testing.T) {
	runner := &fakeRunner{}
	b := NewMSBuild(Options{Runner: runner})

	_, err := b.Build(context.Background(), &domain.RunConfig{})
	assert.ErrorIs(t, err, ErrNoProject)

	_, err = b.Build(context.Background(), &domain.RunConfig{ProjectPath: filepath.Join(t.TempDir(), "missing.csproj")})
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, runner.calls)
}

func TestClean(t *testing.T) {
	runner := &fakeRunner{}
	b := NewMSBuild(Options{Runner: runner})

	require.NoError(t, b.Clean(context.Background(), &domain.RunConfig{ProjectPath: writeProject(t), Configuration: "Debug"}))
	require.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0].args, "/t:Clean")
	assert.Contains(t, runner.calls[0].args, "/p:Configuration=Debug")
}

func TestPublishDir(t *testing.T) {
	cfg := &domain.RunConfig{ProjectPath: filepath.Join("src", "App", "App.csproj"), Configuration: "Debug"}
	assert.Equal(t, filepath.Join("src", "App", "bin", "Debug", "app.publish"), PublishDir(cfg))

	cfg.PublishDir = filepath.Join("out", "publish") + string(filepath.Separator)
	assert.Equal(t, filepath.Join("out", "publish"), PublishDir(cfg))
}

func TestExecRunner_Interface(t *testing.T) {
	var r Runner = ExecRunner{}
	assert.NotNil(t, r)
}

func TestMSBuild_ImplementsBuilder(t *testing.T) {
	var _ domain.Builder = NewMSBuild(Options{})
}
