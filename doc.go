/*
Package biomorph procedurally generates, mutates and renders tree-like fractal figures driven by an L-system genome.

A genome is an axiom, a short list of rewrite rules and a turn angle. The
engine synthesizes random genomes from a library of motif fragments, mutates
them under a single probability, expands the axiom with a noisy stochastic
grammar and interprets the result with a stack-based turtle.

# Concept

The core is pure and synchronous: every stochastic step draws from one
injected random source, so a seeded engine is fully reproducible. The host
(CLI, HTTP server, MCP agent, a GUI) owns storage, selection and the drawing
surface; the engine only hands back genomes, command strings and draw
operations.

# Key Features

  - Deterministic Execution: The same seed yields the same genomes and geometry.
  - Tolerant Grammar: Mutation may leave brackets unbalanced; expansion and drawing never fail on it.
  - Bounded Search: Bracket pruning gives up after a fixed number of probes instead of looping.
  - Observability: Lifecycle hooks expose creation, mutation, expansion and rendering.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/biomorph"
	)

	func main() {
		eng, err := biomorph.New(biomorph.WithSeed(42))
		if err != nil {
			log.Fatal(err)
		}

		parent := eng.GenerateRandomGenome()
		child, err := eng.Mutate(parent, 0.2)
		if err != nil {
			log.Fatal(err)
		}

		cmd, err := eng.Expand(child, 5)
		if err != nil {
			log.Fatal(err)
		}

		for _, op := range eng.Render(cmd, child.TurnAngle) {
			fmt.Println(op.Kind, op.From, op.To)
		}
	}
*/
package biomorph
