package metrics

import "github.com/prometheus/client_golang/prometheus"

// ScoringMetrics holds Prometheus metrics for the review scoring pipeline.
type ScoringMetrics struct {
	ReviewsProcessed *prometheus.CounterVec
	ScorerDuration   *prometheus.HistogramVec
	BatchDuration    prometheus.Histogram
	FlagsRaised      prometheus.Counter
	CacheLookups     *prometheus.CounterVec
}

// NewScoringMetrics creates and registers scoring pipeline metrics on the given registry.
func NewScoringMetrics(reg prometheus.Registerer) *ScoringMetrics {
	m := &ScoringMetrics{
		ReviewsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_processed_total",
			Help:      "Total number of reviews processed, by result.",
		}, []string{"result"}),
		ScorerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scorer_duration_seconds",
			Help:      "Duration of individual scorer invocations in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}, []string{"scorer"}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Duration of full batch scoring passes in seconds.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300},
		}),
		FlagsRaised: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flags_raised_total",
			Help:      "Total number of reviews flagged for manual review.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_cache_lookups_total",
			Help:      "Score cache lookups, by scorer and outcome.",
		}, []string{"scorer", "outcome"}),
	}

	reg.MustRegister(m.ReviewsProcessed, m.ScorerDuration, m.BatchDuration, m.FlagsRaised, m.CacheLookups)
	return m
}

// ObserveScorerDuration records one scorer invocation's duration.
func (m *ScoringMetrics) ObserveScorerDuration(scorer string, seconds float64) {
	m.ScorerDuration.WithLabelValues(scorer).Observe(seconds)
}

// CacheHit implements the sentiment cache observer contract.
func (m *ScoringMetrics) CacheHit(scorer string) {
	m.CacheLookups.WithLabelValues(scorer, "hit").Inc()
}

// CacheMiss implements the sentiment cache observer contract.
func (m *ScoringMetrics) CacheMiss(scorer string) {
	m.CacheLookups.WithLabelValues(scorer, "miss").Inc()
}
