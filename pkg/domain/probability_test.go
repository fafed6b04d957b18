package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProbability(t *testing.T) {
	p, err := NewProbability(0.25)
	require.NoError(t, err)
	assert.Equal(t, Probability(0.25), p)

	for _, v := range []float64{-0.1, 1.01, math.NaN()} {
		_, err := NewProbability(v)
		assert.ErrorIs(t, err, ErrInvalidProbability)
	}
}

func TestProbability_Event(t *testing.T) {
	rng := NewRand(42)
	hits := 0
	for i := 0; i < 10000; i++ {
		assert.False(t, Zero.Event(rng))
		assert.True(t, One.Event(rng))
		if Probability(0.3).Event(rng) {
			hits++
		}
	}
	assert.InDelta(t, 3000, hits, 300)
}

func TestNewRand_Deterministic(t *testing.T) {
	a, b := NewRand(7), NewRand(7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	a := LifecycleHooks{OnExpand: func(*ExpandEvent) { calls = append(calls, "a") }}
	b := LifecycleHooks{
		OnExpand: func(*ExpandEvent) { calls = append(calls, "b") },
		OnRender: func(*RenderEvent) { calls = append(calls, "render") },
	}

	m := a.Merge(b)
	m.OnExpand(&ExpandEvent{})
	m.OnRender(&RenderEvent{})
	assert.Nil(t, m.OnMutation)
	assert.Equal(t, []string{"a", "b", "render"}, calls)
}
