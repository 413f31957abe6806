package loggers

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/quantmind-br/clicktwice-go/internal/domain"
	"github.com/quantmind-br/clicktwice-go/internal/utils"
	"github.com/schollz/progressbar/v3"
)

// ProgressLogger advances a terminal progress bar once per handler result.
type ProgressLogger struct {
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// ProgressOptions contains options for creating a ProgressLogger
type ProgressOptions struct {
	// Steps is the number of handler results expected; negative shows a spinner
	Steps  int
	Writer io.Writer
}

// NewProgressLogger creates a new ProgressLogger
func NewProgressLogger(opts ProgressOptions) *ProgressLogger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	bar := utils.NewProgressBar(opts.Steps, utils.DescPublishing,
		progressbar.OptionSetWriter(w),
		progressbar.OptionClearOnFinish(),
	)
	return &ProgressLogger{bar: bar}
}

// Log advances the bar and shows the handler that just finished
func (l *ProgressLogger) Log(r domain.HandlerResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	desc := utils.DescPreparing
	if r.Phase == domain.PhaseOutput {
		desc = utils.DescDelivering
	}
	l.bar.Describe(fmt.Sprintf("%s [%s]", desc, r.Handler))
	return l.bar.Add(1)
}

// LogOutcome completes the bar
func (l *ProgressLogger) LogOutcome(o *domain.PublishOutcome) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.bar.Describe(fmt.Sprintf("%s [%s]", utils.DescPublishing, o.State))
	return l.bar.Finish()
}

// Current returns the number of results seen
func (l *ProgressLogger) Current() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return int64(l.bar.State().CurrentNum)
}
