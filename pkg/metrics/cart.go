package metrics

import "github.com/prometheus/client_golang/prometheus"

// CartMetrics counts cart store mutations and persistence failures. Write
// failures are swallowed by the cart store, so this counter is the only
// operational signal that in-memory and persisted state may have diverged.
type CartMetrics struct {
	mutations     *prometheus.CounterVec
	writeFailures prometheus.Counter
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart store mutations by operation.",
	}, []string{"operation"})
	writeFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_persistence_write_failures_total",
		Help: "Cart snapshot writes that failed and were swallowed.",
	})
	reg.MustRegister(mutations, writeFailures)
	return &CartMetrics{mutations: mutations, writeFailures: writeFailures}
}

// IncMutation increments the counter for the named cart operation.
func (m *CartMetrics) IncMutation(operation string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncWriteFailure increments the swallowed-write-failure counter.
func (m *CartMetrics) IncWriteFailure() {
	if m == nil || m.writeFailures == nil {
		return
	}
	m.writeFailures.Inc()
}
