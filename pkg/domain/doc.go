/*
Package domain contains the core models shared by every biomorph component.

It defines the genome (axiom, rewrite rules and turn angle), the draw
operations produced by the turtle, the probability and randomness contracts
injected into generation and mutation, and the validation errors returned at
the module boundary. This package is kept pure and free of I/O.

# Key Entities

  - Genome: The evolvable triple {Axiom, Rules, TurnAngle}.
  - Rule: A rewrite instruction mapping one predecessor symbol to a successor string.
  - DrawOp: One unit of rendering output (line, color change, push or pop).
  - Probability: A validated Bernoulli parameter used by the mutation engine.
  - Rand: The seedable random source threaded through every stochastic call.
*/
package domain
