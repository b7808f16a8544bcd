package catalog

import "github.com/prometheus/client_golang/prometheus"

const (
	opSearch     = "search"
	opGet        = "get"
	opCategories = "categories"

	callSearch  = "search"
	callSummary = "summary"
)

// Metrics counts cache effectiveness and upstream health. A nil *Metrics
// records nothing.
type Metrics struct {
	CacheLookups     *prometheus.CounterVec
	UpstreamFailures *prometheus.CounterVec
	Fallbacks        prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_cache_lookups_total",
				Help: "Catalog cache lookups by operation and hit/miss",
			},
			[]string{"op", "result"},
		),
		UpstreamFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_upstream_failures_total",
				Help: "Failed encyclopedia calls by call type",
			},
			[]string{"call"},
		),
		Fallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "catalog_fallback_total",
				Help: "Searches answered from the built-in dataset",
			},
		),
	}

	reg.MustRegister(m.CacheLookups, m.UpstreamFailures, m.Fallbacks)
	return m
}

func (m *Metrics) cacheLookup(op string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(op, result).Inc()
}

func (m *Metrics) upstreamFailure(call string) {
	if m == nil {
		return
	}
	m.UpstreamFailures.WithLabelValues(call).Inc()
}

func (m *Metrics) fallback() {
	if m == nil {
		return
	}
	m.Fallbacks.Inc()
}
