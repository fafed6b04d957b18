package biomorph_test

import (
	"testing"

	"github.com/aretw0/biomorph"
	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/aretw0/biomorph/pkg/turtle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_SeededPipelineIsReproducible(t *testing.T) {
	run := func() ([]domain.DrawOp, domain.Genome) {
		eng, err := biomorph.New(biomorph.WithSeed(2024))
		require.NoError(t, err)

		g := eng.GenerateRandomGenome()
		child, err := eng.Mutate(g, 0.5)
		require.NoError(t, err)

		cmd, err := eng.Expand(child, 4)
		require.NoError(t, err)
		return eng.Render(cmd, child.TurnAngle), child
	}

	opsA, childA := run()
	opsB, childB := run()
	assert.Equal(t, childA, childB)
	assert.Equal(t, opsA, opsB)
}

func TestEngine_GenerateRandomGenome(t *testing.T) {
	eng, err := biomorph.New(biomorph.WithSeed(1))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		g := eng.GenerateRandomGenome()
		require.NoError(t, g.Validate())
		assert.GreaterOrEqual(t, g.TurnAngle, 4)
		assert.LessOrEqual(t, g.TurnAngle, 23)
	}
}

func TestEngine_Validation(t *testing.T) {
	eng, err := biomorph.New(biomorph.WithSeed(1))
	require.NoError(t, err)

	bad := domain.Genome{Axiom: "", TurnAngle: 0}

	_, err = eng.Mutate(bad, 0.1)
	assert.ErrorIs(t, err, domain.ErrInvalidGenome)

	_, err = eng.Expand(bad, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidGenome)

	_, err = eng.Develop(bad)
	assert.ErrorIs(t, err, domain.ErrInvalidGenome)

	good := eng.GenerateRandomGenome()
	_, err = eng.Mutate(good, 1.5)
	assert.ErrorIs(t, err, domain.ErrInvalidProbability)

	_, err = biomorph.New(biomorph.WithGenerations(-1))
	assert.Error(t, err)
}

func TestEngine_ExpandZeroGenerations(t *testing.T) {
	eng, err := biomorph.New(biomorph.WithSeed(3))
	require.NoError(t, err)

	g := eng.GenerateRandomGenome()
	cmd, err := eng.Expand(g, 0)
	require.NoError(t, err)
	assert.Equal(t, g.Axiom, cmd)
}

func TestEngine_ZeroProbabilityKeepsGenome(t *testing.T) {
	eng, err := biomorph.New(biomorph.WithSeed(4))
	require.NoError(t, err)

	g := eng.GenerateRandomGenome()
	child, err := eng.Mutate(g, domain.Zero)
	require.NoError(t, err)
	assert.Equal(t, g, child)
}

func TestEngine_Develop(t *testing.T) {
	eng, err := biomorph.New(biomorph.WithSeed(5), biomorph.WithGenerations(3))
	require.NoError(t, err)

	g := domain.Genome{Axiom: "f", Rules: []domain.Rule{{Predecessor: 'f', Successor: "f[+f]f"}}, TurnAngle: 20}
	frames, err := eng.Develop(g)
	require.NoError(t, err)
	require.Len(t, frames, 3)

	for i, fr := range frames {
		assert.Equal(t, i+1, fr.Generation)
		assert.Equal(t, domain.CountKind(fr.Ops, domain.OpLine), len(fr.Command)-2*countByte(fr.Command, '[')-countByte(fr.Command, '+'))
	}
	assert.Equal(t, 27, domain.CountKind(frames[2].Ops, domain.OpLine))
}

func countByte(s string, c byte) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			n++
		}
	}
	return n
}

func TestEngine_Hooks(t *testing.T) {
	var created, mutated, expanded, rendered int
	hooks := domain.LifecycleHooks{
		OnGenomeCreated: func(*domain.GenomeEvent) { created++ },
		OnMutation:      func(*domain.MutationEvent) { mutated++ },
		OnExpand:        func(e *domain.ExpandEvent) { expanded++ },
		OnRender:        func(e *domain.RenderEvent) { rendered++ },
	}
	eng, err := biomorph.New(biomorph.WithSeed(6), biomorph.WithLifecycleHooks(hooks))
	require.NoError(t, err)

	g := eng.GenerateRandomGenome()
	_, err = eng.Mutate(g, 0.3)
	require.NoError(t, err)
	cmd, err := eng.Expand(g, 2)
	require.NoError(t, err)
	eng.Render(cmd, g.TurnAngle)

	assert.Equal(t, 1, created)
	assert.Equal(t, 1, mutated)
	assert.Equal(t, 1, expanded)
	assert.Equal(t, 1, rendered)
}

func TestEngine_TurtleConfig(t *testing.T) {
	eng, err := biomorph.New(biomorph.WithTurtleConfig(turtle.Config{Width: 50, Height: 40, StepLength: 2}))
	require.NoError(t, err)

	cfg := eng.TurtleConfig()
	assert.Equal(t, 50.0, cfg.Width)
	ops := eng.Render("f", 10)
	require.Len(t, ops, 1)
	assert.Equal(t, domain.Point{X: 25, Y: 20}, ops[0].From)
}

func TestEngine_MutatedLineageStaysExpandable(t *testing.T) {
	eng, err := biomorph.New(biomorph.WithSeed(8))
	require.NoError(t, err)

	g, err := domain.NewGenome("f", []domain.Rule{{Predecessor: 'f', Successor: "f[+f]"}}, 4)
	require.NoError(t, err)

	minAngle := g.TurnAngle
	for i := 0; i < 200; i++ {
		g, err = eng.Mutate(g, 1)
		require.NoError(t, err, "generation %d", i)
		minAngle = min(minAngle, g.TurnAngle)

		cmd, err := eng.Expand(g, 2)
		require.NoError(t, err, "generation %d: %s", i, g)
		assert.NotEmpty(t, cmd)
	}
	assert.Positive(t, minAngle)
}
