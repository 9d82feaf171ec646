package hashcons

// metrics.go is a thin abstraction over Prometheus: a noop/prometheus
// split, so a Table built without WithMetrics pays nothing on the hot
// path, and a Table built with WithMetrics(reg) gets per-type labeled
// counters and a gauge registered on reg.
//
// ┌────────────────────────────────────┬───────┬───────┐
// │ Metric                             │ Type  │ Labels│
// ├────────────────────────────────────┼───────┼───────┤
// │ hashcons_hits_total                │ Ctr   │ type  │
// │ hashcons_misses_total              │ Ctr   │ type  │
// │ hashcons_inserts_total             │ Ctr   │ type  │
// │ hashcons_decayed_reclaims_total    │ Ctr   │ type  │
// │ hashcons_live_cells                │ Gge   │ type  │
// └────────────────────────────────────┴───────┴───────┘
//
// © 2025 hashcons authors. MIT License.

import "github.com/prometheus/client_golang/prometheus"

// metricsSink is the internal interface abstracting away the concrete
// backend (Prometheus vs noop). Table only ever talks to this interface.
type metricsSink interface {
	incHit()
	incMiss()
	incInsert()
	incDecayedReclaim()
	setLiveCells(n float64)
}

type noopMetrics struct{}

func (noopMetrics) incHit()              {}
func (noopMetrics) incMiss()             {}
func (noopMetrics) incInsert()           {}
func (noopMetrics) incDecayedReclaim()   {}
func (noopMetrics) setLiveCells(float64) {}

type promMetrics struct {
	typeLabel       string
	hits            *prometheus.CounterVec
	misses          *prometheus.CounterVec
	inserts         *prometheus.CounterVec
	decayedReclaims *prometheus.CounterVec
	liveCells       *prometheus.GaugeVec
}

var (
	hitsVec = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hashcons",
		Name:      "hits_total",
		Help:      "Number of hashcons calls that found an existing live cell.",
	}, []string{"type"})
	missesVec = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hashcons",
		Name:      "misses_total",
		Help:      "Number of Get calls that found no matching live cell.",
	}, []string{"type"})
	insertsVec = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hashcons",
		Name:      "inserts_total",
		Help:      "Number of hashcons calls that allocated a fresh cell.",
	}, []string{"type"})
	decayedReclaimsVec = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hashcons",
		Name:      "decayed_reclaims_total",
		Help:      "Number of inserts that reclaimed a decayed weak entry's slot.",
	}, []string{"type"})
	liveCellsVec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hashcons",
		Name:      "live_cells",
		Help:      "Approximate insert epoch, used as a live-cell proxy.",
	}, []string{"type"})
)

func newPromMetrics(typeName string, reg *prometheus.Registry) *promMetrics {
	for _, c := range []prometheus.Collector{hitsVec, missesVec, insertsVec, decayedReclaimsVec, liveCellsVec} {
		if err := reg.Register(c); err != nil {
			if _, already := err.(prometheus.AlreadyRegisteredError); !already {
				panic(err)
			}
		}
	}
	return &promMetrics{
		typeLabel:       typeName,
		hits:            hitsVec,
		misses:          missesVec,
		inserts:         insertsVec,
		decayedReclaims: decayedReclaimsVec,
		liveCells:       liveCellsVec,
	}
}

func (m *promMetrics) incHit()            { m.hits.WithLabelValues(m.typeLabel).Inc() }
func (m *promMetrics) incMiss()           { m.misses.WithLabelValues(m.typeLabel).Inc() }
func (m *promMetrics) incInsert()         { m.inserts.WithLabelValues(m.typeLabel).Inc() }
func (m *promMetrics) incDecayedReclaim() { m.decayedReclaims.WithLabelValues(m.typeLabel).Inc() }
func (m *promMetrics) setLiveCells(n float64) {
	m.liveCells.WithLabelValues(m.typeLabel).Set(n)
}

// newMetricsSink decides which implementation to use. reg == nil disables
// metrics entirely.
func newMetricsSink(typeName string, reg *prometheus.Registry) metricsSink {
	if reg == nil {
		return noopMetrics{}
	}
	return newPromMetrics(typeName, reg)
}
