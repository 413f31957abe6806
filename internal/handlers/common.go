package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/clicktwice-go/internal/build"
	"github.com/quantmind-br/clicktwice-go/internal/domain"
)

var (
	// ErrNoPublishOutput is returned when the publish directory does not exist
	ErrNoPublishOutput = errors.New("publish output not found")
	// ErrNoTarget is returned when a deploy handler has no destination
	ErrNoTarget = errors.New("no deployment target configured")
	// ErrUnsafePath is returned when a cleanup path would remove the project itself
	ErrUnsafePath = errors.New("refusing to remove path")
)

// publishDir returns the run's publish directory, checking that it exists.
func publishDir(cfg *domain.RunConfig) (string, error) {
	dir := cfg.PublishDir
	if dir == "" {
		dir = build.PublishDir(cfg)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNoPublishOutput, dir)
	}
	return dir, nil
}

// releaseVersion is the version override when set, else the manifest version.
func releaseVersion(m *domain.AppManifest, cfg *domain.RunConfig) string {
	if v := strings.TrimSpace(cfg.PublishVersion); v != "" {
		return v
	}
	if m != nil && m.AppVersion != nil {
		return m.AppVersion.String()
	}
	return ""
}

// releaseName picks the most specific application name available.
func releaseName(m *domain.AppManifest, cfg *domain.RunConfig) string {
	if m != nil {
		for _, name := range []string{m.ShortName, m.ApplicationName} {
			if strings.TrimSpace(name) != "" {
				return name
			}
		}
	}
	base := filepath.Base(cfg.ProjectPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
