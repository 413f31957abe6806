package profile

import (
	"fmt"
	"strings"

	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/quantmind-br/clicktwice-go/internal/pipeline"
)

// Bundled handler types
const (
	HandlerCleanup = "cleanup"
	HandlerZip     = "zip"
	HandlerCopy    = "copy"
	HandlerGitTag  = "gittag"
	HandlerInfo    = "info"
)

// Bundled logger names
const (
	LoggerLog      = "log"
	LoggerProgress = "progress"
	LoggerMetrics  = "metrics"
	LoggerHistory  = "history"
)

var knownHandlers = map[string]bool{
	HandlerCleanup: true, HandlerZip: true, HandlerCopy: true, HandlerGitTag: true, HandlerInfo: true,
}

var knownLoggers = map[string]bool{
	LoggerLog: true, LoggerProgress: true, LoggerMetrics: true, LoggerHistory: true,
}

// Profile represents a complete publish profile
type Profile struct {
	Project         string        `yaml:"project,omitempty" json:"project,omitempty"`
	Descriptor      string        `yaml:"descriptor,omitempty" json:"descriptor,omitempty"`
	Source          string        `yaml:"source,omitempty" json:"source,omitempty"`
	Platform        string        `yaml:"platform,omitempty" json:"platform,omitempty"`
	Configuration   string        `yaml:"configuration,omitempty" json:"configuration,omitempty"`
	ForceRebuild    bool          `yaml:"force_rebuild" json:"force_rebuild"`
	CleanAfterBuild bool          `yaml:"clean_after_build" json:"clean_after_build"`
	Version         string        `yaml:"version,omitempty" json:"version,omitempty"`
	PublishDir      string        `yaml:"publish_dir,omitempty" json:"publish_dir,omitempty"`
	Handlers        []HandlerSpec `yaml:"handlers,omitempty" json:"handlers,omitempty"`
	Policy          Policy        `yaml:"policy" json:"policy"`
	Loggers         []string      `yaml:"loggers,omitempty" json:"loggers,omitempty"`
}

// Policy represents how handler failures are treated
type Policy struct {
	OnHandlerError string `yaml:"on_handler_error,omitempty" json:"on_handler_error,omitempty"`
	StopOnError    bool   `yaml:"stop_on_error" json:"stop_on_error"`
}

// HandlerSpec names a bundled handler and its options
type HandlerSpec struct {
	Type    string         `yaml:"type" json:"type"`
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// Validate validates the profile
func (p *Profile) Validate() error {
	if p.Source != "" {
		if _, err := domain.ParseInformationSource(p.Source); err != nil {
			return err
		}
	}
	if _, err := pipeline.ParsePolicy(p.Policy.OnHandlerError); err != nil {
		return err
	}
	for i, h := range p.Handlers {
		t := strings.ToLower(strings.TrimSpace(h.Type))
		if t == "" {
			return fmt.Errorf("handler %d: %w", i, ErrMissingHandlerType)
		}
		if !knownHandlers[t] {
			return fmt.Errorf("handler %d: %w: %s", i, ErrUnknownHandler, h.Type)
		}
	}
	for _, name := range p.Loggers {
		if !knownLoggers[strings.ToLower(strings.TrimSpace(name))] {
			return fmt.Errorf("%w: %s", ErrUnknownLogger, name)
		}
	}
	return nil
}

// Kind returns the normalized handler type
func (h HandlerSpec) Kind() string {
	return strings.ToLower(strings.TrimSpace(h.Type))
}

// String returns a string option or the empty string
func (h HandlerSpec) String(key string) string {
	if v, ok := h.Options[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

// Bool returns a boolean option
func (h HandlerSpec) Bool(key string) bool {
	switch v := h.Options[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true") || v == "1" || strings.EqualFold(v, "yes")
	default:
		return false
	}
}

// Int returns an integer option; YAML decodes numbers as int, JSON as float64
func (h HandlerSpec) Int(key string) int {
	switch v := h.Options[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Strings returns a list option; a single string becomes a one-element list
func (h HandlerSpec) Strings(key string) []string {
	switch v := h.Options[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}
