package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
}

func TestLoader_Load_FileNotFound(t *testing.T) {
	loader := NewLoader()

	p, err := loader.Load("/nonexistent/path/publish.yaml")

	assert.Error(t, err)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoader_Load_ValidYAML(t *testing.T) {
	loader := NewLoader()

	yamlContent := `
project: App/App.csproj
source: both
platform: Automatic
configuration: Release
force_rebuild: true
version: 1.4.0.0
handlers:
  - type: cleanup
    options:
      paths: [obj, bin/Release]
  - type: zip
    options:
      output_dir: dist
      level: 9
  - type: gittag
    options:
      message: "Release {version}"
      skip_existing: true
policy:
  on_handler_error: fail
  stop_on_error: true
loggers: [log, metrics]
`

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "publish.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0644))

	p, err := loader.Load(path)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "App", "App.csproj"), p.Project)
	assert.Equal(t, "both", p.Source)
	assert.Equal(t, "Automatic", p.Platform)
	assert.True(t, p.ForceRebuild)
	assert.False(t, p.CleanAfterBuild)
	assert.Equal(t, "1.4.0.0", p.Version)
	assert.Equal(t, "fail", p.Policy.OnHandlerError)
	assert.True(t, p.Policy.StopOnError)
	assert.Equal(t, []string{"log", "metrics"}, p.Loggers)

	require.Len(t, p.Handlers, 3)
	assert.Equal(t, []string{"obj", "bin/Release"}, p.Handlers[0].Strings("paths"))
	assert.Equal(t, "dist", p.Handlers[1].String("output_dir"))
	assert.Equal(t, 9, p.Handlers[1].Int("level"))
	assert.True(t, p.Handlers[2].Bool("skip_existing"))
	assert.Equal(t, "Release {version}", p.Handlers[2].String("message"))
}

func TestLoader_Load_ValidJSON(t *testing.T) {
	loader := NewLoader()

	jsonContent := `{
		"project": "/abs/App.csproj",
		"descriptor": "out",
		"handlers": [
			{"type": "ZIP", "options": {"level": 5}},
			{"type": "copy", "options": {"target": "/srv/deploy"}}
		]
	}`

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "publish.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonContent), 0644))

	p, err := loader.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/abs/App.csproj", p.Project)
	assert.Equal(t, filepath.Join(tmpDir, "out"), p.Descriptor)
	assert.Empty(t, p.PublishDir)
	require.Len(t, p.Handlers, 2)
	assert.Equal(t, "zip", p.Handlers[0].Kind())
	assert.Equal(t, 5, p.Handlers[0].Int("level"))
	assert.Equal(t, "/srv/deploy", p.Handlers[1].String("target"))
}

func TestLoader_LoadFromBytes_Errors(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name    string
		data    string
		ext     string
		wantErr error
	}{
		{"invalid yaml", "handlers: [\n  - type: zip\n bad", ".yaml", ErrInvalidFormat},
		{"invalid json", `{"handlers": [}`, ".json", ErrInvalidFormat},
		{"unsupported extension", "project: a", ".toml", ErrUnsupportedExt},
		{"missing handler type", "handlers:\n  - options: {a: b}\n", ".yml", ErrMissingHandlerType},
		{"unknown handler", "handlers:\n  - type: ftp\n", ".yaml", ErrUnknownHandler},
		{"unknown logger", "loggers: [syslog]\n", ".yaml", ErrUnknownLogger},
		{"unknown source", "source: registry\n", ".yaml", domain.ErrUnknownSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := loader.LoadFromBytes([]byte(tt.data), tt.ext)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoader_LoadFromBytes_UnknownPolicy(t *testing.T) {
	_, err := NewLoader().LoadFromBytes([]byte("policy:\n  on_handler_error: explode\n"), ".yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown error policy")
}

func TestLoader_LoadFromBytes_Empty(t *testing.T) {
	p, err := NewLoader().LoadFromBytes([]byte(""), ".yaml")
	require.NoError(t, err)
	assert.Empty(t, p.Handlers)
	assert.Empty(t, p.Project)
}
