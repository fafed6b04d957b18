package observability

import (
	"log/slog"

	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by the engine hooks.
type Metrics struct {
	GenomesCreated prometheus.Counter
	Mutations      prometheus.Counter
	// LociMutated counts changed loci by kind: axiom, angle or rule.
	LociMutated *prometheus.CounterVec
	// BracketEdits counts successor surgery by kind: deletion, insertion or exhausted.
	BracketEdits  *prometheus.CounterVec
	CommandLength prometheus.Histogram
	RenderedLines prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		GenomesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "biomorph_genomes_created_total",
			Help: "Total number of randomly synthesized genomes",
		}),
		Mutations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "biomorph_mutations_total",
			Help: "Total number of genome mutations performed",
		}),
		LociMutated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "biomorph_loci_mutated_total",
				Help: "Genome loci changed by mutation",
			},
			[]string{"locus"},
		),
		BracketEdits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "biomorph_bracket_edits_total",
				Help: "Bracket deletions, component insertions and exhausted searches",
			},
			[]string{"kind"},
		),
		CommandLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "biomorph_command_length",
			Help:    "Length of expanded command strings",
			Buckets: prometheus.ExponentialBuckets(16, 4, 8),
		}),
		RenderedLines: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "biomorph_rendered_lines",
			Help:    "Line segments produced per render",
			Buckets: prometheus.ExponentialBuckets(8, 4, 8),
		}),
	}

	for _, c := range []prometheus.Collector{
		m.GenomesCreated, m.Mutations, m.LociMutated, m.BracketEdits, m.CommandLength, m.RenderedLines,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record every event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnGenomeCreated: func(*domain.GenomeEvent) {
			m.GenomesCreated.Inc()
		},
		OnMutation: func(e *domain.MutationEvent) {
			m.Mutations.Inc()
			if e.AxiomMutated {
				m.LociMutated.WithLabelValues("axiom").Inc()
			}
			if e.AngleMutated {
				m.LociMutated.WithLabelValues("angle").Inc()
			}
			m.LociMutated.WithLabelValues("rule").Add(float64(e.RulesMutated))
			m.BracketEdits.WithLabelValues("deletion").Add(float64(e.Deletions))
			m.BracketEdits.WithLabelValues("insertion").Add(float64(e.Insertions))
			m.BracketEdits.WithLabelValues("exhausted").Add(float64(e.Exhausted))
		},
		OnExpand: func(e *domain.ExpandEvent) {
			m.CommandLength.Observe(float64(e.Length))
		},
		OnRender: func(e *domain.RenderEvent) {
			m.RenderedLines.Observe(float64(e.Lines))
		},
	}
}

// LoggingHooks returns lifecycle hooks that log every event at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnGenomeCreated: func(e *domain.GenomeEvent) {
			logger.Debug("genome_created", "genome", e.Genome.String())
		},
		OnMutation: func(e *domain.MutationEvent) {
			logger.Debug("mutation",
				"axiom", e.AxiomMutated,
				"angle", e.AngleMutated,
				"rules", e.RulesMutated,
				"deletions", e.Deletions,
				"insertions", e.Insertions,
				"exhausted", e.Exhausted,
			)
		},
		OnExpand: func(e *domain.ExpandEvent) {
			logger.Debug("expand", "generations", e.Generations, "length", e.Length)
		},
		OnRender: func(e *domain.RenderEvent) {
			logger.Debug("render", "lines", e.Lines, "ops", e.Ops)
		},
	}
}
