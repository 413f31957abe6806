// Package loggers implements domain.PublishLogger sinks that observe
// publish runs: structured logging, a terminal progress bar, Prometheus
// metrics and the persistent run history.
package loggers
