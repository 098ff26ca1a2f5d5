package vm

import "github.com/prometheus/client_golang/prometheus"

// registerOrReuse registers c against reg, falling back to the collector
// already registered under the same descriptor. This lets every FrameState
// in a process share one set of collectors (the common case) while still
// letting tests pass a throwaway prometheus.NewRegistry() per test without
// a panic on the second registration.
func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

// gasMetrics tracks gas consumption and call-dispatch outcomes. Counters are
// unconditional (no sampling); the per-call histogram is the only place a
// distribution is worth keeping, since per-opcode gas costs are far too
// frequent and belong to the (external) opcode dispatcher, not this layer.
type gasMetrics struct {
	charged      prometheus.Counter
	callOutcomes *prometheus.CounterVec
	gasPerCall   prometheus.Histogram
}

func newGasMetrics(reg prometheus.Registerer) *gasMetrics {
	m := &gasMetrics{
		charged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eei",
			Subsystem: "gas",
			Name:      "charged_total",
			Help:      "Total gas charged across all frames via GasMeter.charge.",
		}),
		callOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eei",
			Subsystem: "call",
			Name:      "outcomes_total",
			Help:      "Nested call outcomes, labeled by result (success, revert, exception, depth_limit, insufficient_value).",
		}, []string{"outcome"}),
		gasPerCall: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "eei",
			Subsystem: "call",
			Name:      "gas_used",
			Help:      "Gas consumed per dispatched nested call.",
			Buckets:   prometheus.ExponentialBuckets(100, 4, 10),
		}),
	}
	m.charged = registerOrReuse(reg, m.charged)
	m.callOutcomes = registerOrReuse(reg, m.callOutcomes)
	m.gasPerCall = registerOrReuse(reg, m.gasPerCall)
	return m
}

func (m *gasMetrics) observeCharge(amount uint64) {
	if m == nil {
		return
	}
	m.charged.Add(float64(amount))
}

func (m *gasMetrics) observeCallOutcome(outcome string, gasUsed uint64) {
	if m == nil {
		return
	}
	m.callOutcomes.WithLabelValues(outcome).Inc()
	m.gasPerCall.Observe(float64(gasUsed))
}
