package loggers

import (
	"context"
	"time"

	"github.com/quantmind-br/clicktwice-go/internal/domain"
)

// Recorder persists finished runs
type Recorder interface {
	Record(ctx context.Context, o *domain.PublishOutcome) error
}

// HistoryLogger stores each run outcome in the history store.
type HistoryLogger struct {
	recorder Recorder
	timeout  time.Duration
}

// NewHistoryLogger creates a new HistoryLogger
func NewHistoryLogger(recorder Recorder) *HistoryLogger {
	return &HistoryLogger{recorder: recorder, timeout: 10 * time.Second}
}

// Log ignores individual results; the outcome carries them all
func (l *HistoryLogger) Log(domain.HandlerResult) error {
	return nil
}

// LogOutcome records the run
func (l *HistoryLogger) LogOutcome(o *domain.PublishOutcome) error {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()
	return l.recorder.Record(ctx, o)
}
