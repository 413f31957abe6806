package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from file, environment, and defaults
// Uses the global viper instance to access CLI flag bindings
func Load() (*Config, error) {
	return load(viper.GetViper())
}

func load(v *viper.Viper) (*Config, error) {
	// Set defaults
	setDefaults(v)

	// Config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	v.AddConfigPath(".")

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Environment variables (CLICKTWICE_*)
	v.SetEnvPrefix("CLICKTWICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate and apply defaults for invalid values
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	// Logging defaults
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)

	// Build defaults
	v.SetDefault("build.tool", DefaultBuildTool)
	v.SetDefault("build.platform", DefaultBuildPlatform)
	v.SetDefault("build.configuration", DefaultBuildConfiguration)
	v.SetDefault("build.timeout", DefaultBuildTimeout)

	// Manifest defaults
	v.SetDefault("manifest.source", DefaultManifestSource)
	v.SetDefault("manifest.sidecar_ext", DefaultSidecarExt)

	// Policy defaults
	v.SetDefault("policy.on_handler_error", DefaultOnHandlerError)
	v.SetDefault("policy.stop_on_error", false)

	// History defaults
	v.SetDefault("history.enabled", DefaultHistoryEnabled)
	v.SetDefault("history.directory", HistoryDir())
	v.SetDefault("history.retention", DefaultHistoryRetention)

	v.SetDefault("metrics.file", "")
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	dir := ConfigDir()
	return os.MkdirAll(dir, 0755)
}
