// Package metrics records render counters.
package metrics

import "time"

// RenderMetrics defines the interface for recording render metrics.
type RenderMetrics interface {
	// RecordRender records one render call and its outcome
	// ("ok" or "error").
	RecordRender(mode, status string, duration time.Duration)

	// RecordBlock records an emitted content block.
	RecordBlock(kind string)

	// RecordWarning records a recovered rendering problem.
	RecordWarning(code string)
}

// NoopMetrics is a no-op implementation of RenderMetrics useful
// for testing or when metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordRender(_, _ string, _ time.Duration) {}
func (NoopMetrics) RecordBlock(_ string)                      {}
func (NoopMetrics) RecordWarning(_ string)                    {}
