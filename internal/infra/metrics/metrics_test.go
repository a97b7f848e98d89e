package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/AyoPrez/sobuu-sub000/internal/infra/metrics"
)

func TestNewMetrics_Registers(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics("sobuu", reg)

	m.ObserveCall("book", "search", metrics.ResultSuccess, 20*time.Millisecond)
	m.ObserveCall("book", "search", "empty_search_term", time.Millisecond)
	m.ObserveInvalidation("shelf")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}

	for _, want := range []string{
		"sobuu_remote_calls_total",
		"sobuu_remote_call_duration_seconds",
		"sobuu_session_invalidations_total",
	} {
		if !names[want] {
			t.Errorf("metric %s not registered", want)
		}
	}

	if got := testutil.ToFloat64(m.Calls.WithLabelValues("book", "search", metrics.ResultSuccess)); got != 1 {
		t.Errorf("success calls = %v, want 1", got)
	}

	if got := testutil.ToFloat64(m.SessionInvalidations.WithLabelValues("shelf")); got != 1 {
		t.Errorf("invalidations = %v, want 1", got)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	t.Parallel()

	var m *metrics.Metrics

	m.ObserveCall("auth", "login", metrics.ResultSuccess, time.Second)
	m.ObserveInvalidation("auth")
}
