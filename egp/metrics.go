package egp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus instruments for expression and the genetic
// operators. A nil *Metrics records nothing.
type Metrics struct {
	ExpressionsTotal    prometheus.Counter
	PhenotypeNodes      prometheus.Histogram
	StrongBindingsTotal *prometheus.CounterVec
	WeakBindingsTotal   *prometheus.CounterVec
	MutationsTotal      *prometheus.CounterVec
	RecombinationsTotal *prometheus.CounterVec
}

// NewMetrics creates the instruments and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ExpressionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "egp_expressions_total",
			Help: "Total number of chromosomes expressed",
		}),
		PhenotypeNodes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "egp_phenotype_nodes",
			Help:    "Number of nodes per expressed phenotype",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		StrongBindingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "egp_strong_bindings_total",
			Help: "Strong binding sites resolved, by target kind",
		}, []string{"target"}),
		WeakBindingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "egp_weak_bindings_total",
			Help: "Weak binding sites visited, by resolution status",
		}, []string{"status"}),
		MutationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "egp_mutations_total",
			Help: "Mutations applied, by kind",
		}, []string{"kind"}),
		RecombinationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "egp_recombinations_total",
			Help: "Recombinations applied, by kind",
		}, []string{"kind"}),
	}
}

// ObserveExpression records one expression run.
func (m *Metrics) ObserveExpression(p *Phenotype, stats ExpressionStats) {
	if m == nil {
		return
	}
	m.ExpressionsTotal.Inc()
	m.PhenotypeNodes.Observe(float64(p.NodeCount()))
	m.StrongBindingsTotal.WithLabelValues("regular").Add(float64(stats.RegularBindings))
	m.StrongBindingsTotal.WithLabelValues("terminal").Add(float64(stats.TerminalBindings))
	m.WeakBindingsTotal.WithLabelValues("resolved").Add(float64(stats.WeakResolved))
	m.WeakBindingsTotal.WithLabelValues("unresolved").Add(float64(stats.WeakUnresolved))
}

// ObserveMutation records one mutation.
func (m *Metrics) ObserveMutation(kind MutationKind) {
	if m == nil {
		return
	}
	m.MutationsTotal.WithLabelValues(string(kind)).Inc()
}

// ObserveRecombination records one recombination.
func (m *Metrics) ObserveRecombination(kind RecombinationKind) {
	if m == nil {
		return
	}
	m.RecombinationsTotal.WithLabelValues(string(kind)).Inc()
}
