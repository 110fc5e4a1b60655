package clk

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ProgressSink receives progress notifications from a Pipeline.
//
// Init is called once with the total row count before any work starts,
// Advance once per completed chunk, and Finish once after all chunks are
// done. Advance calls are never concurrent, but chunks complete in any
// order, so they do not arrive in input order.
type ProgressSink interface {
	Init(total int)
	Advance(rows int, popcounts []int)
	Finish()
}

// MetricsSink is a ProgressSink that exports hashing progress as Prometheus
// metrics.
type MetricsSink struct {
	total     prometheus.Gauge
	hashed    prometheus.Counter
	runs      prometheus.Counter
	popcounts prometheus.Histogram
}

// NewMetricsSink creates a MetricsSink and registers its collectors with
// reg.
func NewMetricsSink(reg prometheus.Registerer) (*MetricsSink, error) {
	s := &MetricsSink{
		total: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "clk",
			Name:      "rows_total",
			Help:      "Number of rows in the current hashing run.",
		}),
		hashed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clk",
			Name:      "rows_hashed_total",
			Help:      "Number of rows hashed into CLKs.",
		}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clk",
			Name:      "runs_completed_total",
			Help:      "Number of completed hashing runs.",
		}),
		popcounts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clk",
			Name:      "popcount",
			Help:      "Number of set bits per CLK.",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 10),
		}),
	}
	for _, c := range []prometheus.Collector{s.total, s.hashed, s.runs, s.popcounts} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Init implements ProgressSink.
func (s *MetricsSink) Init(total int) {
	s.total.Set(float64(total))
}

// Advance implements ProgressSink.
func (s *MetricsSink) Advance(rows int, popcounts []int) {
	s.hashed.Add(float64(rows))
	for _, c := range popcounts {
		s.popcounts.Observe(float64(c))
	}
}

// Finish implements ProgressSink.
func (s *MetricsSink) Finish() {
	s.runs.Inc()
}
