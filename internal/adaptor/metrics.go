package adaptor

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the Prometheus series an orchestration pass updates,
// mirroring htlcswitch/switch.go's per-forward counters: one counter per
// outcome, incremented inline, no panics on a single channel's failure.
type Metrics struct {
	Registry *prometheus.Registry

	StepsSynthesized  prometheus.Counter
	StepsDropped      *prometheus.CounterVec
	GainLovelaceTotal prometheus.Counter
}

// NewMetrics builds a fresh registry and the orchestrator's metric set.
// Each Orchestrator gets its own registry rather than using the global
// default one, so constructing more than one in a process (as tests do)
// never hits prometheus's duplicate-registration panic.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		StepsSynthesized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "konduit_adaptor_steps_synthesized_total",
			Help: "Number of channel steps synthesized and included in an orchestration transaction.",
		}),
		StepsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "konduit_adaptor_steps_dropped_total",
			Help: "Number of channel steps dropped from an orchestration pass, by reason.",
		}, []string{"reason"}),
		GainLovelaceTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "konduit_adaptor_gain_lovelace_total",
			Help: "Cumulative lovelace gain of the steps planned by orchestration passes that met min_total.",
		}),
	}
	reg.MustRegister(m.StepsSynthesized, m.StepsDropped, m.GainLovelaceTotal)
	return m
}
