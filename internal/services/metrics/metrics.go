package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for candidate scoring.
type Metrics struct {
	// Scored candidates by outcome: "ok" or "failed"
	CandidatesScored *prometheus.CounterVec

	// Duration of a full ScoreRaw call
	BatchLatency prometheus.Histogram

	// Distribution of overall match percentages
	OverallPercent prometheus.Histogram

	// Vocabulary values dropped during normalization, by field
	DroppedTokens *prometheus.CounterVec
}

// New creates a Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the scoring metrics on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CandidatesScored: f.NewCounterVec(prometheus.CounterOpts{
			Name: "retirement_match_candidates_scored_total",
			Help: "Total candidates scored by outcome",
		}, []string{"outcome"}),

		BatchLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "retirement_match_batch_duration_seconds",
			Help:    "Duration of scoring one candidate batch including normalization",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		OverallPercent: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "retirement_match_overall_percent",
			Help:    "Overall match percentage of successfully scored candidates",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}),

		DroppedTokens: f.NewCounterVec(prometheus.CounterOpts{
			Name: "retirement_match_dropped_tokens_total",
			Help: "Unrecognized vocabulary values dropped during normalization",
		}, []string{"field"}),
	}
}

// IncrementScored records one scored candidate.
func (m *Metrics) IncrementScored(failed bool) {
	if m != nil {
		outcome := "ok"
		if failed {
			outcome = "failed"
		}
		m.CandidatesScored.WithLabelValues(outcome).Inc()
	}
}

// ObserveBatchLatency records the duration of a batch.
func (m *Metrics) ObserveBatchLatency(d time.Duration) {
	if m != nil {
		m.BatchLatency.Observe(d.Seconds())
	}
}

// ObserveOverallPercent records the overall percent of one result.
func (m *Metrics) ObserveOverallPercent(pct int) {
	if m != nil {
		m.OverallPercent.Observe(float64(pct))
	}
}

// IncrementDropped records a dropped vocabulary value.
func (m *Metrics) IncrementDropped(field string) {
	if m != nil {
		m.DroppedTokens.WithLabelValues(field).Inc()
	}
}
