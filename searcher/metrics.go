package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetrics describes one completed search.
type SearchMetrics struct {
	StartTime  time.Time
	Duration   time.Duration
	Iterations int64
	Expansions int64
	TreeSize   int
	TreeReused bool
}

type metricsCollector struct {
	startTime  time.Time
	iterations atomic.Int64
	expansions atomic.Int64
	treeReused atomic.Bool
}

func (m *metricsCollector) start() {
	m.startTime = time.Now()
	m.iterations.Store(0)
	m.expansions.Store(0)
	m.treeReused.Store(false)
}

func (m *metricsCollector) addIteration() {
	m.iterations.Add(1)
}

func (m *metricsCollector) addExpansion() {
	m.expansions.Add(1)
}

func (m *metricsCollector) reusedTree() {
	m.treeReused.Store(true)
}

func (m *metricsCollector) complete(treeSize int) SearchMetrics {
	return SearchMetrics{
		StartTime:  m.startTime,
		Duration:   time.Since(m.startTime),
		Iterations: m.iterations.Load(),
		Expansions: m.expansions.Load(),
		TreeSize:   treeSize,
		TreeReused: m.treeReused.Load(),
	}
}
