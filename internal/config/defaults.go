package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/quantmind-br/clicktwice-go/internal/build"
	"github.com/quantmind-br/clicktwice-go/internal/manifest"
)

// Default values
const (
	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"

	// Build defaults
	DefaultBuildTool          = build.DefaultTool
	DefaultBuildPlatform      = "AnyCPU"
	DefaultBuildConfiguration = build.DefaultConfiguration
	DefaultBuildTimeout       = build.DefaultTimeout

	// Manifest defaults
	DefaultManifestSource = "appmanifest"
	DefaultSidecarExt     = manifest.SidecarExt

	// Policy defaults
	DefaultOnHandlerError = "ignore"

	// History defaults
	DefaultHistoryEnabled   = true
	DefaultHistoryRetention = 90 * 24 * time.Hour
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".clicktwice"
	}
	return filepath.Join(home, ".clicktwice")
}

// HistoryDir returns the run history directory path
func HistoryDir() string {
	return filepath.Join(ConfigDir(), "history")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Build: BuildConfig{
			Tool:          DefaultBuildTool,
			Platform:      DefaultBuildPlatform,
			Configuration: DefaultBuildConfiguration,
			Timeout:       DefaultBuildTimeout,
		},
		Manifest: ManifestConfig{
			Source:     DefaultManifestSource,
			SidecarExt: DefaultSidecarExt,
		},
		Policy: PolicyConfig{
			OnHandlerError: DefaultOnHandlerError,
		},
		History: HistoryConfig{
			Enabled:   DefaultHistoryEnabled,
			Directory: HistoryDir(),
			Retention: DefaultHistoryRetention,
		},
	}
}
