package metrics

import (
	"sync"
	"time"
)

// InMemoryMetrics implements RenderMetrics with counters kept in
// memory. It is safe for concurrent use; host applications export
// the counters to their own metrics system.
type InMemoryMetrics struct {
	mu        sync.Mutex
	renders   map[string]int
	blocks    map[string]int
	warnings  map[string]int
	durations map[string][]time.Duration
}

// NewInMemoryMetrics creates an empty InMemoryMetrics.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		renders:   make(map[string]int),
		blocks:    make(map[string]int),
		warnings:  make(map[string]int),
		durations: make(map[string][]time.Duration),
	}
}

func (m *InMemoryMetrics) RecordRender(mode, status string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renders[mode+":"+status]++
	m.durations[mode] = append(m.durations[mode], duration)
}

func (m *InMemoryMetrics) RecordBlock(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocks[kind]++
}

func (m *InMemoryMetrics) RecordWarning(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings[code]++
}

// RenderCount returns the count for a mode+status combination.
func (m *InMemoryMetrics) RenderCount(mode, status string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.renders[mode+":"+status]
}

// BlockCount returns how many blocks of kind were emitted.
func (m *InMemoryMetrics) BlockCount(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blocks[kind]
}

// WarningCount returns how many warnings with code were recorded.
func (m *InMemoryMetrics) WarningCount(code string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.warnings[code]
}

// Durations returns a copy of the recorded durations for mode.
func (m *InMemoryMetrics) Durations(mode string) []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, len(m.durations[mode]))
	copy(out, m.durations[mode])
	return out
}

// Snapshot is a point-in-time copy of the InMemoryMetrics counters.
type Snapshot struct {
	Renders  map[string]int
	Blocks   map[string]int
	Warnings map[string]int
}

// TotalRenders sums the render counters.
func (s Snapshot) TotalRenders() int { return sum(s.Renders) }

// TotalBlocks sums the block counters.
func (s Snapshot) TotalBlocks() int { return sum(s.Blocks) }

// TotalWarnings sums the warning counters.
func (s Snapshot) TotalWarnings() int { return sum(s.Warnings) }

func sum(counts map[string]int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}

// Snapshot copies the current counters. Render keys are
// "mode:status".
func (m *InMemoryMetrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Renders:  copyCounts(m.renders),
		Blocks:   copyCounts(m.blocks),
		Warnings: copyCounts(m.warnings),
	}
}

func copyCounts(src map[string]int) map[string]int {
	out := make(map[string]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
