package grammar

import (
	"strings"

	"github.com/aretw0/biomorph/pkg/domain"
)

// DefaultGenerations is the number of rewriting rounds used when none is given.
const DefaultGenerations = 5

// Expand rewrites axiom for the given number of generations.
//
// rules must not be empty; Expand panics otherwise.
// A non-positive generation count returns the axiom unchanged.
func Expand(rng domain.Rand, axiom string, rules []domain.Rule, generations int) string {
	mustHaveRules(rules)
	cur := axiom
	for n := 0; n < generations; n++ {
		cur = rewrite(rng, cur, rules)
	}
	return cur
}

// Generations returns the string produced by each round, in order.
// The last element equals what Expand would return under the same source.
func Generations(rng domain.Rand, axiom string, rules []domain.Rule, generations int) []string {
	mustHaveRules(rules)
	out := make([]string, 0, max(generations, 0))
	cur := axiom
	for n := 0; n < generations; n++ {
		cur = rewrite(rng, cur, rules)
		out = append(out, cur)
	}
	return out
}

func mustHaveRules(rules []domain.Rule) {
	if len(rules) == 0 {
		panic("grammar: expand called with an empty rule list")
	}
}

func rewrite(rng domain.Rand, cur string, rules []domain.Rule) string {
	var sb strings.Builder
	sb.Grow(len(cur))
	selected := 0 // carried between symbols of one round when no index is drawn
	for i := 0; i < len(cur); i++ {
		c := cur[i]
		for k := rng.IntN(len(rules) + 1); k > 0; k-- {
			selected = rng.IntN(len(rules))
		}
		if r := rules[selected]; r.Predecessor == c {
			sb.WriteString(r.Successor)
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
