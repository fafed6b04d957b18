package factory_test

import (
	"testing"

	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/aretw0/biomorph/pkg/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomCandidate_Ranges(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		g := factory.New(domain.NewRand(seed)).GenerateRandomCandidate()

		require.NoError(t, g.Validate(), "seed %d", seed)
		assert.GreaterOrEqual(t, len(g.Axiom), factory.MinAxiomLength)
		assert.LessOrEqual(t, len(g.Axiom), factory.MaxAxiomLength)
		assert.GreaterOrEqual(t, g.TurnAngle, factory.MinTurnAngle)
		assert.LessOrEqual(t, g.TurnAngle, factory.MaxTurnAngle)
		assert.GreaterOrEqual(t, len(g.Rules), factory.MinRules)
		assert.LessOrEqual(t, len(g.Rules), factory.MaxRules)
		for _, r := range g.Rules {
			assert.NotEmpty(t, r.Successor)
			assert.Contains(t, r.Successor, "[")
			assert.True(t, domain.IsLetter(r.Predecessor))
		}
	}
}

func TestGenerateAxiom_LettersOnly(t *testing.T) {
	f := factory.New(domain.NewRand(9))
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		a := f.GenerateAxiom()
		seen[len(a)] = true
		for j := 0; j < len(a); j++ {
			assert.True(t, domain.IsLetter(a[j]), "axiom %q", a)
		}
	}
	assert.Len(t, seen, factory.MaxAxiomLength, "every length in [1,5] should appear")
}

func TestGenerateTurnAngle_CoversRange(t *testing.T) {
	f := factory.New(domain.NewRand(10))
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		seen[f.GenerateTurnAngle()] = true
	}
	assert.Len(t, seen, factory.MaxTurnAngle-factory.MinTurnAngle+1)
	assert.True(t, seen[4])
	assert.True(t, seen[23])
}

func TestFactory_Deterministic(t *testing.T) {
	a := factory.New(domain.NewRand(77)).GenerateRandomCandidate()
	b := factory.New(domain.NewRand(77)).GenerateRandomCandidate()
	assert.Equal(t, a, b)
}
