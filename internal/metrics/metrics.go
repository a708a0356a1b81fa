package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"connectong/internal/domain"
)

// Metrics tracks portal activity.
type Metrics struct {
	RecordsCreated     *prometheus.CounterVec
	RecordsRemoved     *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	FragmentFetches    *prometheus.CounterVec
	SeedLoads          *prometheus.CounterVec
}

// New registers every portal metric with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RecordsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "connect_ong_records_created_total",
			Help: "Records persisted, by kind",
		}, []string{"kind"}),
		RecordsRemoved: f.NewCounterVec(prometheus.CounterOpts{
			Name: "connect_ong_records_removed_total",
			Help: "Records removed, by kind",
		}, []string{"kind"}),
		ValidationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "connect_ong_validation_failures_total",
			Help: "Rejected form submissions, by form",
		}, []string{"form"}),
		FragmentFetches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "connect_ong_fragment_fetches_total",
			Help: "Fragment fetches by route and result (ok, not_found, error)",
		}, []string{"route", "result"}),
		SeedLoads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "connect_ong_seed_loads_total",
			Help: "Seed files loaded into a visitor store, by list",
		}, []string{"list"}),
	}
}

// ObserveFetch records the result of one fragment fetch. Unknown route names
// are folded into a single label to bound cardinality.
func (m *Metrics) ObserveFetch(route string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	switch {
	case errors.Is(err, domain.ErrFragmentNotFound):
		result = "not_found"
		route = "unknown"
	case err != nil:
		result = "error"
	}
	m.FragmentFetches.WithLabelValues(route, result).Inc()
}

func (m *Metrics) Created(kind string) {
	if m == nil {
		return
	}
	m.RecordsCreated.WithLabelValues(kind).Inc()
}

func (m *Metrics) Removed(kind string) {
	if m == nil {
		return
	}
	m.RecordsRemoved.WithLabelValues(kind).Inc()
}

func (m *Metrics) Rejected(form string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(form).Inc()
}

func (m *Metrics) Seeded(list string) {
	if m == nil {
		return
	}
	m.SeedLoads.WithLabelValues(list).Inc()
}
