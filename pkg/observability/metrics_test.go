package observability_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/aretw0/biomorph/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	hooks := m.Hooks()
	hooks.OnGenomeCreated(&domain.GenomeEvent{})
	hooks.OnGenomeCreated(&domain.GenomeEvent{})
	hooks.OnMutation(&domain.MutationEvent{
		AxiomMutated: true,
		RulesMutated: 2,
		Deletions:    3,
		Insertions:   1,
		Exhausted:    1,
	})
	hooks.OnExpand(&domain.ExpandEvent{Generations: 5, Length: 300})
	hooks.OnRender(&domain.RenderEvent{Lines: 40, Ops: 60})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.GenomesCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Mutations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LociMutated.WithLabelValues("axiom")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.LociMutated.WithLabelValues("angle")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LociMutated.WithLabelValues("rule")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.BracketEdits.WithLabelValues("deletion")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BracketEdits.WithLabelValues("exhausted")))

	assert.Equal(t, 1, testutil.CollectAndCount(m.CommandLength))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RenderedLines))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	hooks := observability.LoggingHooks(logger)
	hooks.OnExpand(&domain.ExpandEvent{Generations: 2, Length: 17})

	assert.Contains(t, buf.String(), "msg=expand")
	assert.Contains(t, buf.String(), "length=17")
}
