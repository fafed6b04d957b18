package biomorph

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/aretw0/biomorph/pkg/factory"
	"github.com/aretw0/biomorph/pkg/grammar"
	"github.com/aretw0/biomorph/pkg/mutation"
	"github.com/aretw0/biomorph/pkg/turtle"
)

// Engine is the high-level entry point for the biomorph library.
// It wires the factory, mutation engine, grammar and turtle around one random source.
// An Engine is not safe for concurrent use.
type Engine struct {
	rng         domain.Rand
	factory     *factory.Factory
	turtle      *turtle.Interpreter
	turtleCfg   turtle.Config
	generations int
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
}

// Frame is one generation of a developing biomorph.
type Frame struct {
	Generation int             `json:"generation"`
	Command    string          `json:"command"`
	Ops        []domain.DrawOp `json:"ops"`
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithSeed makes every stochastic call reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = domain.NewRand(seed)
	}
}

// WithRand injects a custom random source.
func WithRand(rng domain.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithTurtleConfig overrides the canvas geometry.
func WithTurtleConfig(cfg turtle.Config) Option {
	return func(e *Engine) {
		e.turtleCfg = cfg
	}
}

// WithGenerations sets the number of rewriting rounds used by Develop (default: 5).
func WithGenerations(n int) Option {
	return func(e *Engine) {
		e.generations = n
	}
}

// New initializes a new Engine.
// Without WithSeed or WithRand the engine draws from a randomly seeded source.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		turtleCfg:   turtle.DefaultConfig(),
		generations: grammar.DefaultGenerations,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.generations < 0 {
		return nil, fmt.Errorf("generations must not be negative, got %d", eng.generations)
	}
	if eng.rng == nil {
		eng.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	eng.factory = factory.New(eng.rng)
	eng.turtle = turtle.New(eng.turtleCfg)
	eng.turtleCfg = eng.turtle.Config()
	return eng, nil
}

// TurtleConfig returns the effective canvas geometry.
func (e *Engine) TurtleConfig() turtle.Config { return e.turtleCfg }

// Generations returns the default number of rewriting rounds.
func (e *Engine) Generations() int { return e.generations }

// GenerateRandomGenome synthesizes a fresh genome.
func (e *Engine) GenerateRandomGenome() domain.Genome {
	g := e.factory.GenerateRandomCandidate()
	e.logger.Debug("genome created", "genome", g.String())
	if e.hooks.OnGenomeCreated != nil {
		e.hooks.OnGenomeCreated(&domain.GenomeEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventGenomeCreated},
			Genome:    g.Clone(),
		})
	}
	return g
}

// Mutate returns a new genome derived from g, mutating each locus with probability p.
func (e *Engine) Mutate(g domain.Genome, p domain.Probability) (domain.Genome, error) {
	if _, err := domain.NewProbability(float64(p)); err != nil {
		return domain.Genome{}, err
	}
	if err := g.Validate(); err != nil {
		return domain.Genome{}, fmt.Errorf("cannot mutate: %w", err)
	}

	child, rep := mutation.New(p, e.rng, mutation.WithLogger(e.logger)).Mutate(g)
	e.logger.Debug("genome mutated",
		"probability", float64(p),
		"rules_mutated", rep.RulesMutated,
		"deletions", rep.Deletions,
		"insertions", rep.Insertions,
		"exhausted", rep.Exhausted,
	)
	if e.hooks.OnMutation != nil {
		e.hooks.OnMutation(&domain.MutationEvent{
			EventBase:    domain.EventBase{Timestamp: time.Now(), Type: domain.EventMutation},
			AxiomMutated: rep.AxiomMutated,
			AngleMutated: rep.AngleMutated,
			RulesMutated: rep.RulesMutated,
			Deletions:    rep.Deletions,
			Insertions:   rep.Insertions,
			Exhausted:    rep.Exhausted,
		})
	}
	return child, nil
}

// Expand rewrites the genome's axiom for the given number of generations.
func (e *Engine) Expand(g domain.Genome, generations int) (string, error) {
	if err := g.Validate(); err != nil {
		return "", fmt.Errorf("cannot expand: %w", err)
	}
	cmd := grammar.Expand(e.rng, g.Axiom, g.Rules, generations)
	e.emitExpand(generations, len(cmd))
	return cmd, nil
}

// Render interprets a command string into draw operations.
func (e *Engine) Render(cmd string, turnAngleDegrees int) []domain.DrawOp {
	ops := e.turtle.Render(cmd, turnAngleDegrees)
	if e.hooks.OnRender != nil {
		e.hooks.OnRender(&domain.RenderEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRender},
			Lines:     domain.CountKind(ops, domain.OpLine),
			Ops:       len(ops),
		})
	}
	return ops
}

// Develop expands the genome one generation at a time and renders every step,
// so a host can show the biomorph growing. Pacing is left to the host.
func (e *Engine) Develop(g domain.Genome) ([]Frame, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("cannot develop: %w", err)
	}
	cmds := grammar.Generations(e.rng, g.Axiom, g.Rules, e.generations)
	frames := make([]Frame, len(cmds))
	for i, cmd := range cmds {
		e.emitExpand(i+1, len(cmd))
		frames[i] = Frame{Generation: i + 1, Command: cmd, Ops: e.Render(cmd, g.TurnAngle)}
		e.logger.Debug("generation rendered", "generation", i+1, "length", len(cmd), "ops", len(frames[i].Ops))
	}
	return frames, nil
}

func (e *Engine) emitExpand(generations, length int) {
	if e.hooks.OnExpand != nil {
		e.hooks.OnExpand(&domain.ExpandEvent{
			EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventExpand},
			Generations: generations,
			Length:      length,
		})
	}
}
