package render

import (
	"digital.vasic.docrender/pkg/config"
	"digital.vasic.docrender/pkg/content"
	"digital.vasic.docrender/pkg/logging"
	"digital.vasic.docrender/pkg/metrics"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m metrics.RenderMetrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithRegistry sets the renderer registry used by the content
// mapper.
func WithRegistry(r *content.Registry) Option {
	return func(d *Dispatcher) {
		d.registry = r
	}
}

// WithOnlyReturnFailures drops blocks derived from passing
// results. Rejected in prescriptive mode.
func WithOnlyReturnFailures(enabled bool) Option {
	return func(d *Dispatcher) {
		d.onlyReturnFailures = enabled
	}
}

// WithFilter sets a CEL expression selecting the items to render.
func WithFilter(expr string) Option {
	return func(d *Dispatcher) {
		d.filterExpr = expr
	}
}

// WithParallelism sets how many sections are mapped concurrently.
func WithParallelism(n int) Option {
	return func(d *Dispatcher) {
		d.parallelism = n
	}
}

// WithTitle overrides the document title.
func WithTitle(title string) Option {
	return func(d *Dispatcher) {
		d.title = title
	}
}

// FromConfig translates cfg into dispatcher options. The mode is
// read separately with cfg.RenderMode.
func FromConfig(cfg config.Config) []Option {
	return []Option{
		WithTitle(cfg.Title),
		WithOnlyReturnFailures(cfg.OnlyReturnFailures),
		WithFilter(cfg.Filter),
		WithParallelism(cfg.Parallelism),
	}
}
