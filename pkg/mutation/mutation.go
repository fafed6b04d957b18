package mutation

import (
	"bytes"
	"io"
	"log/slog"
	"math"
	"slices"

	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/aretw0/biomorph/pkg/library"
)

const (
	// MinBracketSets is the number of '[' a successor needs before branches are pruned.
	MinBracketSets = 3
	// DeletionRatio is the share of bracket sets removed from a pruned successor.
	DeletionRatio = 0.8
	// MaxInsertions is the largest number of B-components grafted into one successor.
	MaxInsertions = 2
	// MaxAngleDelta is the largest turn-angle change applied by one mutation.
	MaxAngleDelta = 4
)

// Report summarizes what a mutation did.
type Report struct {
	AxiomMutated bool
	AngleMutated bool
	RulesMutated int
	Deletions    int
	Insertions   int
	Exhausted    int
}

func (r *Report) add(o Report) {
	r.AxiomMutated = r.AxiomMutated || o.AxiomMutated
	r.AngleMutated = r.AngleMutated || o.AngleMutated
	r.RulesMutated += o.RulesMutated
	r.Deletions += o.Deletions
	r.Insertions += o.Insertions
	r.Exhausted += o.Exhausted
}

// Engine mutates genomes. It is not safe for concurrent use
// unless the underlying Rand is.
type Engine struct {
	prob   domain.Probability
	rng    domain.Rand
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger used for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an engine mutating each locus with probability p.
func New(p domain.Probability, rng domain.Rand, opts ...Option) *Engine {
	e := &Engine{prob: p, rng: rng}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// Probability returns the per-locus mutation probability.
func (e *Engine) Probability() domain.Probability { return e.prob }

// Apply mutates every genome of a selected population and returns the
// summed Report of all children.
func (e *Engine) Apply(population []domain.Genome) ([]domain.Genome, Report) {
	var total Report
	out := make([]domain.Genome, len(population))
	for i, g := range population {
		var rep Report
		out[i], rep = e.Mutate(g)
		total.add(rep)
	}
	e.logger.Debug("population mutated",
		"size", len(population),
		"rules_mutated", total.RulesMutated,
		"deletions", total.Deletions,
		"insertions", total.Insertions,
		"exhausted", total.Exhausted,
	)
	return out, total
}

// Mutate returns a new genome derived from g. The input is left untouched.
func (e *Engine) Mutate(g domain.Genome) (domain.Genome, Report) {
	var rep Report

	axiom, mutated := e.mutateAxiom(g.Axiom)
	rep.AxiomMutated = mutated

	rules, ruleRep := e.mutateRuleList(g.Rules)
	rep.add(ruleRep)

	angle, mutated := e.mutateTurnAngle(g.TurnAngle)
	rep.AngleMutated = mutated

	return domain.Genome{Axiom: axiom, Rules: rules, TurnAngle: angle}, rep
}

// MutateAxiom replaces one random symbol with probability p, preserving length.
func (e *Engine) MutateAxiom(axiom string) string {
	out, _ := e.mutateAxiom(axiom)
	return out
}

func (e *Engine) mutateAxiom(axiom string) (string, bool) {
	if axiom == "" || !e.prob.Event(e.rng) {
		return axiom, false
	}
	i := e.rng.IntN(len(axiom))
	sym := domain.Letters[e.rng.IntN(len(domain.Letters))]
	return axiom[:i] + string(sym) + axiom[i+1:], true
}

// MutateTurnAngle shifts the angle by up to MaxAngleDelta degrees with probability p.
// The result is not clamped to the factory range, but a positive angle stays
// positive: a step that would reach zero or below is taken in the other direction.
func (e *Engine) MutateTurnAngle(angle int) int {
	out, _ := e.mutateTurnAngle(angle)
	return out
}

func (e *Engine) mutateTurnAngle(angle int) (int, bool) {
	if !e.prob.Event(e.rng) {
		return angle, false
	}
	delta := e.rng.IntN(MaxAngleDelta + 1)
	if e.rng.IntN(2) == 0 {
		delta = -delta
	}
	if angle > 0 && angle+delta <= 0 {
		delta = -delta
	}
	return angle + delta, true
}

// MutateRuleList prunes and regrows each rule independently with probability p.
// The returned slice never aliases rules.
func (e *Engine) MutateRuleList(rules []domain.Rule) []domain.Rule {
	out, _ := e.mutateRuleList(rules)
	return out
}

func (e *Engine) mutateRuleList(rules []domain.Rule) ([]domain.Rule, Report) {
	var rep Report
	lib := library.New(e.rng)
	out := make([]domain.Rule, len(rules))
	for i, r := range rules {
		if !e.prob.Event(e.rng) {
			out[i] = r
			continue
		}
		rep.RulesMutated++
		out[i] = e.mutateRule(r, lib, &rep)
	}
	return out, rep
}

func (e *Engine) mutateRule(r domain.Rule, lib library.Library, rep *Report) domain.Rule {
	succ := []byte(r.Successor)

	if n := bytes.Count(succ, []byte{domain.SymbolOpen}); n >= MinBracketSets {
		deletions := int(math.Round(DeletionRatio * float64(n)))
		for i := 0; i < deletions; i++ {
			res := Locate(succ, 0, e.rng)
			if !res.Found() {
				rep.Exhausted++
				e.logger.Debug("bracket search exhausted",
					"rule", r.String(),
					"probes", res.Probes,
					"deleted", i,
					"wanted", deletions,
				)
				return domain.Rule{Predecessor: r.Predecessor, Successor: string(succ)}
			}
			succ = Excise(succ, res.Open, res.Close)
			rep.Deletions++
		}
	}

	for k := e.rng.IntN(MaxInsertions) + 1; k > 0; k-- {
		succ = Insert(succ, e.rng.IntN(len(succ)+1), lib.Pick(e.rng))
		rep.Insertions++
	}
	return domain.Rule{Predecessor: r.Predecessor, Successor: string(succ)}
}

// Excise removes seq[open:close+1] in place and returns the shortened slice.
func Excise(seq []byte, open, close int) []byte {
	return append(seq[:open], seq[close+1:]...)
}

// Insert splices s into seq at pos.
func Insert(seq []byte, pos int, s string) []byte {
	return slices.Insert(seq, pos, []byte(s)...)
}
