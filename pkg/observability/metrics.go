// Package observability provides Prometheus metrics for the benchmark
// pipeline and an optional metrics endpoint served while a run is active.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for LLM inference latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// ProviderRequestsTotal counts terminal provider outcomes by kind
	// ("success", "refusal", or the query error kind).
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmbench_provider_requests_total",
			Help: "Terminal provider query outcomes",
		},
		[]string{"provider", "outcome"},
	)

	// ProviderLatency records end-to-end provider query latency in seconds,
	// including retries and backoff.
	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llmbench_provider_latency_seconds",
			Help:    "Provider query latency",
			Buckets: LLMBuckets,
		},
		[]string{"provider"},
	)

	// ProviderRetriesTotal counts retry attempts after rate-limit or
	// unavailable statuses.
	ProviderRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmbench_provider_retries_total",
			Help: "Provider query retries",
		},
		[]string{"provider"},
	)

	// ProviderTokensTotal counts tokens reported by providers by direction
	// (input/output).
	ProviderTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmbench_provider_tokens_total",
			Help: "Tokens reported by providers",
		},
		[]string{"provider", "direction"},
	)

	// QuestionsTotal counts processed questions by outcome
	// ("resolved" or "requeued").
	QuestionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmbench_questions_total",
			Help: "Questions processed",
		},
		[]string{"outcome"},
	)

	// ReportsTotal counts report gate decisions by result
	// ("accepted", "too_small", "sheet_failed", "write_failed").
	ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmbench_reports_total",
			Help: "Report gate decisions",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		ProviderRequestsTotal,
		ProviderLatency,
		ProviderRetriesTotal,
		ProviderTokensTotal,
		QuestionsTotal,
		ReportsTotal,
	)
}
