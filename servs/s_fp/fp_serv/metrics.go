package fp_serv

import (
	"maps"
	"strings"
)

// Metric names recorded by Run.
const (
	MetricRunsStarted   = "runs.started"
	MetricRunsDone      = "runs.done"
	MetricRunsFailed    = "runs.failed"
	MetricTransactions  = "mine.transactions"
	MetricItemsets      = "mine.itemsets"
	MetricCondTrees     = "mine.conditional_trees"
	MetricLastElapsedMs = "mine.last_elapsed_ms"
)

// metricRecorder is an internal helper for scoped metric updates.
type metricRecorder struct {
	service *Service
	prefix  string
}

// ----------------------------------------------------
// Service metrics management
// ----------------------------------------------------

func (s *Service) IncMetric(name string) {
	s.AddMetric(name, 1)
}

func (s *Service) AddMetric(name string, delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics[name] += delta
}

func (s *Service) SetMetric(name string, value int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics[name] = value
}

func (s *Service) ResetMetrics() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = make(map[string]int64)
}

// Metrics returns a snapshot of all counters.
func (s *Service) Metrics() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.metrics)
}

// record updates the counters after a run.
func (s *Service) record(sum *RunSummary, runErr error) {
	m := s.WithMetricPrefix("")
	if runErr != nil {
		m.Inc(MetricRunsFailed)
	} else {
		m.Inc(MetricRunsDone)
	}
	m.Add(MetricTransactions, int64(sum.Transactions))
	m.Add(MetricItemsets, int64(sum.Result.Itemsets))
	m.Add(MetricCondTrees, int64(sum.Result.ConditionalTrees))
	m.Set(MetricLastElapsedMs, sum.Elapsed.Milliseconds())
}

// ----------------------------------------------------
// Prefix-based metric recorder
// ----------------------------------------------------

// WithMetricPrefix returns a scoped metric recorder with a prefix.
func (s *Service) WithMetricPrefix(prefix string) *metricRecorder {
	if prefix != "" {
		prefix = strings.TrimSuffix(prefix, ".") + "."
	}
	return &metricRecorder{service: s, prefix: prefix}
}

func (m *metricRecorder) full(name string) string {
	return m.prefix + name
}

func (m *metricRecorder) Inc(name string) {
	m.service.IncMetric(m.full(name))
}

func (m *metricRecorder) Add(name string, delta int64) {
	m.service.AddMetric(m.full(name), delta)
}

func (m *metricRecorder) Set(name string, value int64) {
	m.service.SetMetric(m.full(name), value)
}
