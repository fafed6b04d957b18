/*
Package mutation perturbs genomes under a single mutation probability.

Every locus (the axiom, each rule, the turn angle) mutates independently with
probability p. Rule mutation removes bracketed branches with an approximate
bracket-pair Scanner and grafts freshly generated B-components back in.

# Bracket search

The Scanner walks one successor with a single pointer. It does not parse the
bracket structure; it finds the nearest plausible pair from a random start and
gives up after MaxProbes steps. Exhaustion is a normal Outcome, not an error:
the rule simply keeps what was already deleted and receives no insertions.

	res := mutation.Locate([]byte("f[g]h"), 0, rng)
	if res.Found() {
		// res.Open < res.Close
	}
*/
package mutation
