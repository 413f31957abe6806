package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/stretchr/testify/require"
)

// publishFixture lays out a project with a populated publish directory.
func publishFixture(t *testing.T) domain.RunConfig {
	t.Helper()
	root := t.TempDir()
	project := filepath.Join(root, "App.csproj")
	require.NoError(t, os.WriteFile(project, []byte("<Project />"), 0644))

	publish := filepath.Join(root, "bin", "Release", "app.publish")
	files := map[string]string{
		"App.application": "<assembly />",
		"setup.exe":       "setup",
		filepath.Join("Application Files", "App_1_2_0_0", "App.exe.deploy"): "exe",
	}
	for name, content := range files {
		path := filepath.Join(publish, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	return domain.RunConfig{
		RunID:         "run-1",
		ProjectPath:   project,
		Configuration: "Release",
		Platform:      domain.PlatformAnyCPU,
		PublishDir:    publish,
	}
}

func testManifest() *domain.AppManifest {
	v := domain.MustParseVersion("1.2.0.0")
	return &domain.AppManifest{
		ApplicationName: "Acme App",
		ShortName:       "Acme",
		PublisherName:   "Acme Inc",
		AppVersion:      &v,
	}
}
