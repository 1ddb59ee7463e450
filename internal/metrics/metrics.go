package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"childcare/internal/domainerrors"
)

// Metrics provides observability for link management.
// Tracks operation outcomes and durations per link kind.
type Metrics struct {
	LinkOperations        *prometheus.CounterVec
	LinkOperationDuration *prometheus.HistogramVec
}

// New creates a Metrics instance registered with reg.
// Tests pass a fresh prometheus.NewRegistry() to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LinkOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "childcare_link_operations_total",
			Help: "Total number of link operations by kind, operation and outcome",
		}, []string{"kind", "operation", "outcome"}),
		LinkOperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "childcare_link_operation_duration_seconds",
			Help:    "Duration of link operations including existence checks",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"kind", "operation"}),
	}
}

// ObserveLinkOperation records the outcome and duration of one operation.
// Call with time.Now() at the start of the operation. Safe on a nil receiver.
func (m *Metrics) ObserveLinkOperation(kind, operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.LinkOperations.WithLabelValues(kind, operation, Outcome(err)).Inc()
	m.LinkOperationDuration.WithLabelValues(kind, operation).Observe(time.Since(start).Seconds())
}

// Outcome maps an operation error to a low-cardinality label
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	return string(domainerrors.CodeOf(err))
}
