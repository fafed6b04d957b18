package grammar_test

import (
	"strings"
	"testing"

	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/aretw0/biomorph/pkg/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var treeRules = []domain.Rule{{Predecessor: 'f', Successor: "f[+f]f"}}

func TestExpand_ZeroGenerationsReturnsAxiom(t *testing.T) {
	assert.Equal(t, "fgh", grammar.Expand(domain.NewRand(1), "fgh", treeRules, 0))
	assert.Equal(t, "fgh", grammar.Expand(domain.NewRand(1), "fgh", treeRules, -2))
}

func TestExpand_SingleRuleEitherRewritesOrKeeps(t *testing.T) {
	rng := domain.NewRand(4)
	rewritten, kept := 0, 0
	for i := 0; i < 500; i++ {
		out := grammar.Expand(rng, "f", treeRules, 1)
		switch out {
		case "f[+f]f":
			rewritten++
		case "f":
			kept++
		default:
			t.Fatalf("unexpected expansion %q", out)
		}
	}
	// With one rule the selection always lands on index 0.
	assert.Zero(t, kept)
	assert.Equal(t, 500, rewritten)
}

func TestExpand_NonMatchingSymbolsPassThrough(t *testing.T) {
	out := grammar.Expand(domain.NewRand(2), "g+h-[]", treeRules, 3)
	assert.Equal(t, "g+h-[]", out)
}

func TestExpand_NoisySelection(t *testing.T) {
	rules := []domain.Rule{
		{Predecessor: 'f', Successor: "ff"},
		{Predecessor: 'g', Successor: "gg"},
	}
	rng := domain.NewRand(6)
	outcomes := map[string]int{}
	for i := 0; i < 400; i++ {
		outcomes[grammar.Expand(rng, "f", rules, 1)]++
	}
	assert.Positive(t, outcomes["ff"])
	assert.Positive(t, outcomes["f"], "a mismatching selection keeps the symbol")
	assert.Len(t, outcomes, 2)
}

func TestExpand_Deterministic(t *testing.T) {
	rules := []domain.Rule{
		{Predecessor: 'f', Successor: "f[-g]h"},
		{Predecessor: 'h', Successor: "[f]"},
		{Predecessor: 'g', Successor: "g+g"},
	}
	a := grammar.Expand(domain.NewRand(10), "fgh", rules, grammar.DefaultGenerations)
	b := grammar.Expand(domain.NewRand(10), "fgh", rules, grammar.DefaultGenerations)
	assert.Equal(t, a, b)
}

func TestGenerations_MatchesExpand(t *testing.T) {
	frames := grammar.Generations(domain.NewRand(3), "f", treeRules, 3)
	require.Len(t, frames, 3)
	assert.Equal(t, grammar.Expand(domain.NewRand(3), "f", treeRules, 3), frames[2])
	for i := 1; i < len(frames); i++ {
		assert.Greater(t, len(frames[i]), len(frames[i-1]))
		assert.Equal(t, strings.Count(frames[i], "["), strings.Count(frames[i], "]"))
	}
	assert.Empty(t, grammar.Generations(domain.NewRand(3), "f", treeRules, 0))
}

func TestExpand_PanicsWithoutRules(t *testing.T) {
	assert.Panics(t, func() { grammar.Expand(domain.NewRand(1), "f", nil, 1) })
	assert.Panics(t, func() { grammar.Generations(domain.NewRand(1), "f", nil, 1) })
}
