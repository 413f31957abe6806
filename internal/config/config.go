package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/quantmind-br/clicktwice-go/internal/pipeline"
)

// Config represents the application configuration
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Build    BuildConfig    `mapstructure:"build" yaml:"build"`
	Manifest ManifestConfig `mapstructure:"manifest" yaml:"manifest"`
	Policy   PolicyConfig   `mapstructure:"policy" yaml:"policy"`
	History  HistoryConfig  `mapstructure:"history" yaml:"history"`
	Metrics  MetricsConfig  `mapstructure:"metrics" yaml:"metrics"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// BuildConfig contains build step settings
type BuildConfig struct {
	// Tool may contain arguments, e.g. "dotnet msbuild"
	Tool          string        `mapstructure:"tool" yaml:"tool"`
	Platform      string        `mapstructure:"platform" yaml:"platform"`
	Configuration string        `mapstructure:"configuration" yaml:"configuration"`
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ManifestConfig contains manifest resolution settings
type ManifestConfig struct {
	Source     string `mapstructure:"source" yaml:"source"`
	SidecarExt string `mapstructure:"sidecar_ext" yaml:"sidecar_ext"`
}

// PolicyConfig contains the handler error policy
type PolicyConfig struct {
	OnHandlerError string `mapstructure:"on_handler_error" yaml:"on_handler_error"`
	StopOnError    bool   `mapstructure:"stop_on_error" yaml:"stop_on_error"`
}

// HistoryConfig contains run history settings
type HistoryConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
	Retention time.Duration `mapstructure:"retention" yaml:"retention"`
}

// MetricsConfig contains metrics export settings
type MetricsConfig struct {
	// File is a Prometheus textfile written after every run; empty disables export
	File string `mapstructure:"file" yaml:"file"`
}

// Validate validates the configuration and applies defaults for invalid values
func (c *Config) Validate() error {
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}

	if strings.TrimSpace(c.Build.Tool) == "" {
		c.Build.Tool = DefaultBuildTool
	}
	c.Build.Platform = domain.NormalizePlatform(c.Build.Platform)
	if c.Build.Configuration == "" {
		c.Build.Configuration = DefaultBuildConfiguration
	}
	if c.Build.Timeout < time.Second {
		c.Build.Timeout = DefaultBuildTimeout
	}

	if c.Manifest.Source == "" {
		c.Manifest.Source = DefaultManifestSource
	}
	if _, err := domain.ParseInformationSource(c.Manifest.Source); err != nil {
		return fmt.Errorf("manifest.source: %w", err)
	}
	if c.Manifest.SidecarExt == "" {
		c.Manifest.SidecarExt = DefaultSidecarExt
	}
	if !strings.HasPrefix(c.Manifest.SidecarExt, ".") {
		c.Manifest.SidecarExt = "." + c.Manifest.SidecarExt
	}

	if _, err := pipeline.ParsePolicy(c.Policy.OnHandlerError); err != nil {
		return fmt.Errorf("policy.on_handler_error: %w", err)
	}

	if c.History.Directory == "" {
		c.History.Directory = HistoryDir()
	}
	if c.History.Retention < 0 {
		c.History.Retention = DefaultHistoryRetention
	}

	return nil
}

// InformationSource returns the parsed manifest source. Validate must have
// succeeded first.
func (c *Config) InformationSource() domain.InformationSource {
	s, err := domain.ParseInformationSource(c.Manifest.Source)
	if err != nil {
		return domain.SourceDescriptor
	}
	return s
}

// ErrorPolicy returns the parsed handler error policy.
func (c *Config) ErrorPolicy() pipeline.ErrorPolicy {
	p, _ := pipeline.ParsePolicy(c.Policy.OnHandlerError)
	return p
}
