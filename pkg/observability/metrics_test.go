package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestMetricsRegistered verifies that all metrics are registered in the
// default registry without panicking.
func TestMetricsRegistered(t *testing.T) {
	// Counters and histograms only appear after their first observation,
	// so seed every vector before gathering.
	ProviderRequestsTotal.WithLabelValues("test/model", "success").Inc()
	ProviderLatency.WithLabelValues("test/model").Observe(0.1)
	ProviderRetriesTotal.WithLabelValues("test/model").Inc()
	ProviderTokensTotal.WithLabelValues("test/model", "input").Add(10)
	QuestionsTotal.WithLabelValues("resolved").Inc()
	ReportsTotal.WithLabelValues("accepted").Inc()

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("unexpected gather error: %v", err)
	}

	expected := map[string]bool{
		"llmbench_provider_requests_total":  false,
		"llmbench_provider_latency_seconds": false,
		"llmbench_provider_retries_total":   false,
		"llmbench_provider_tokens_total":    false,
		"llmbench_questions_total":          false,
		"llmbench_reports_total":            false,
	}

	for _, mf := range families {
		if _, ok := expected[mf.GetName()]; ok {
			expected[mf.GetName()] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("metric %q not found in default registry", name)
		}
	}
}

func TestCounterIncrements(t *testing.T) {
	before := counterValue(t, ProviderRequestsTotal, "counter-test/model", "refusal")
	ProviderRequestsTotal.WithLabelValues("counter-test/model", "refusal").Inc()
	after := counterValue(t, ProviderRequestsTotal, "counter-test/model", "refusal")
	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got delta=%f", after-before)
	}
}

func TestLatencyHistogramObserves(t *testing.T) {
	before := histogramCount(t, ProviderLatency, "histogram-test/model")
	ProviderLatency.WithLabelValues("histogram-test/model").Observe(1.5)
	after := histogramCount(t, ProviderLatency, "histogram-test/model")
	if after-before != 1 {
		t.Errorf("expected histogram sample count to increase by 1, got delta=%d", after-before)
	}
}

// counterValue reads the current value of a labeled counter.
func counterValue(t *testing.T, cv *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	m := &dto.Metric{}
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("getting counter metric: %v", err)
	}
	if err := c.(prometheus.Metric).Write(m); err != nil {
		t.Fatalf("writing counter metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

// histogramCount reads the observation count from a HistogramVec.
func histogramCount(t *testing.T, hv *prometheus.HistogramVec, labels ...string) uint64 {
	t.Helper()
	m := &dto.Metric{}
	obs, err := hv.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("getting histogram metric: %v", err)
	}
	if err := obs.(prometheus.Metric).Write(m); err != nil {
		t.Fatalf("writing histogram metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}
