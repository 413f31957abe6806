package loggers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/quantmind-br/clicktwice-go/internal/domain"
)

// MetricsLogger exports handler and run metrics to a Prometheus registry and,
// optionally, to a node_exporter textfile after each run.
type MetricsLogger struct {
	registry *prometheus.Registry
	textfile string

	handlerResults  *prometheus.CounterVec
	handlerDuration *prometheus.HistogramVec
	runsTotal       *prometheus.CounterVec
	runDuration     prometheus.Histogram
	buildAttempts   prometheus.Histogram
	lastRun         *prometheus.GaugeVec
}

// MetricsOptions contains options for creating a MetricsLogger
type MetricsOptions struct {
	// Registry defaults to a fresh registry
	Registry *prometheus.Registry
	// Textfile is written after every run when set
	Textfile string
}

// NewMetricsLogger creates a new MetricsLogger
func NewMetricsLogger(opts MetricsOptions) *MetricsLogger {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &MetricsLogger{
		registry: reg,
		textfile: opts.Textfile,

		handlerResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clicktwice_handler_results_total",
			Help: "Total handler results by handler, phase and outcome",
		}, []string{"handler", "phase", "outcome"}),

		handlerDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clicktwice_handler_duration_seconds",
			Help:    "Handler execution time in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		}, []string{"handler", "phase"}),

		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clicktwice_runs_total",
			Help: "Total publish runs by final state",
		}, []string{"state"}),

		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "clicktwice_run_duration_seconds",
			Help:    "Publish run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~1h
		}),

		buildAttempts: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "clicktwice_build_attempts",
			Help:    "Build attempts per run",
			Buckets: []float64{1, 2, 3},
		}),

		lastRun: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clicktwice_last_run_timestamp_seconds",
			Help: "Start time of the last publish run by final state",
		}, []string{"state"}),
	}
}

// Registry returns the registry the metrics are registered with
func (l *MetricsLogger) Registry() *prometheus.Registry {
	return l.registry
}

// Log counts a handler result
func (l *MetricsLogger) Log(r domain.HandlerResult) error {
	phase := string(r.Phase)
	l.handlerResults.WithLabelValues(r.Handler, phase, string(r.Outcome)).Inc()
	if r.Outcome != domain.OutcomeSkipped {
		l.handlerDuration.WithLabelValues(r.Handler, phase).Observe(r.Duration.Seconds())
	}
	return nil
}

// LogOutcome records the run and writes the textfile if configured
func (l *MetricsLogger) LogOutcome(o *domain.PublishOutcome) error {
	state := string(o.State)
	l.runsTotal.WithLabelValues(state).Inc()
	l.runDuration.Observe(o.Duration.Seconds())
	if o.Build != nil && o.Build.Attempts > 0 {
		l.buildAttempts.Observe(float64(o.Build.Attempts))
	}
	l.lastRun.WithLabelValues(state).Set(float64(o.StartedAt.Unix()))

	if l.textfile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(l.textfile, l.registry)
}
