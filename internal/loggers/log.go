package loggers

import (
	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/quantmind-br/clicktwice-go/internal/utils"
)

// LogLogger writes handler results and the run outcome to a structured logger.
type LogLogger struct {
	logger *utils.Logger
}

// NewLogLogger creates a new LogLogger
func NewLogLogger(logger *utils.Logger) *LogLogger {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &LogLogger{logger: logger.WithComponent("publish")}
}

// Log records one handler result
func (l *LogLogger) Log(r domain.HandlerResult) error {
	event := l.logger.Info()
	switch r.Outcome {
	case domain.OutcomeError:
		event = l.logger.Error().Err(r.Err)
	case domain.OutcomeWarning:
		event = l.logger.Warn()
	}

	event.
		Str("handler", r.Handler).
		Str("phase", string(r.Phase)).
		Str("outcome", string(r.Outcome)).
		Str("message", r.Message).
		Dur("duration", r.Duration).
		Msg("Handler result")
	return nil
}

// LogOutcome records the run summary
func (l *LogLogger) LogOutcome(o *domain.PublishOutcome) error {
	event := l.logger.Info()
	if !o.Succeeded() {
		event = l.logger.Error().Err(o.Err)
	}

	event = event.
		Str("run_id", o.RunID).
		Str("project", o.ProjectPath).
		Str("state", string(o.State)).
		Int("handlers", len(o.Results)).
		Int("failed", len(o.Failures())).
		Dur("duration", o.Duration)
	if o.Manifest != nil {
		event = event.Str("application", o.Manifest.ApplicationName)
		if o.Manifest.AppVersion != nil {
			event = event.Str("version", o.Manifest.AppVersion.String())
		}
	}
	event.Msg("Publish outcome")
	return nil
}
