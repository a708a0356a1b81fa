package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"connectong/internal/domain"
)

func TestObserveFetch(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveFetch("home", nil)
	m.ObserveFetch("home", nil)
	m.ObserveFetch("whatever", fmt.Errorf("wrap: %w", domain.ErrFragmentNotFound))
	m.ObserveFetch("contact", domain.ErrFetch)

	if got := testutil.ToFloat64(m.FragmentFetches.WithLabelValues("home", "ok")); got != 2 {
		t.Fatalf("home ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.FragmentFetches.WithLabelValues("unknown", "not_found")); got != 1 {
		t.Fatalf("unknown not_found = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.FragmentFetches.WithLabelValues("contact", "error")); got != 1 {
		t.Fatalf("contact error = %v, want 1", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.Created("donation")
	m.Removed("donation")
	m.Rejected("contact")
	m.Seeded("ngos")
	m.ObserveFetch("home", nil)
}
