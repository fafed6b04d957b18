package factory

import (
	"strings"

	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/aretw0/biomorph/pkg/library"
)

// Ranges of freshly generated genomes.
const (
	MinAxiomLength  = 1
	MaxAxiomLength  = 5
	MinTurnAngle    = 4
	MaxTurnAngle    = 23
	MinRules        = 1
	MaxRules        = 4
	MinRuleSegments = 1
	MaxRuleSegments = 3
)

// Factory creates random genomes. It is not safe for concurrent use
// unless the underlying Rand is.
type Factory struct {
	rng domain.Rand
}

// New creates a factory drawing from rng.
func New(rng domain.Rand) *Factory {
	return &Factory{rng: rng}
}

func (f *Factory) between(lo, hi int) int {
	return lo + f.rng.IntN(hi-lo+1)
}

func (f *Factory) letter() byte {
	return domain.Letters[f.rng.IntN(len(domain.Letters))]
}

// GenerateAxiom returns 1-5 symbols drawn from {f,g,h}.
func (f *Factory) GenerateAxiom() string {
	n := f.between(MinAxiomLength, MaxAxiomLength)
	b := make([]byte, n)
	for i := range b {
		b[i] = f.letter()
	}
	return string(b)
}

// GenerateTurnAngle returns an angle in degrees within [4, 23].
func (f *Factory) GenerateTurnAngle() int {
	return f.between(MinTurnAngle, MaxTurnAngle)
}

// GenerateRuleList returns 1-4 rules whose successors concatenate 1-3 bracketed B-components.
// The library is regenerated on every call.
func (f *Factory) GenerateRuleList() []domain.Rule {
	lib := library.New(f.rng)
	rules := make([]domain.Rule, f.between(MinRules, MaxRules))
	var sb strings.Builder
	for i := range rules {
		sb.Reset()
		segments := f.between(MinRuleSegments, MaxRuleSegments)
		pred := f.letter()
		for j := 0; j < segments; j++ {
			sb.WriteString(lib.PickBracketed(f.rng))
		}
		rules[i] = domain.Rule{Predecessor: pred, Successor: sb.String()}
	}
	return rules
}

// GenerateRandomCandidate composes axiom, rule list and turn angle into a genome.
func (f *Factory) GenerateRandomCandidate() domain.Genome {
	axiom := f.GenerateAxiom()
	rules := f.GenerateRuleList()
	angle := f.GenerateTurnAngle()
	return domain.Genome{Axiom: axiom, Rules: rules, TurnAngle: angle}
}
