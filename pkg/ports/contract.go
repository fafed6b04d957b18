package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunGenomeStoreContract runs a suite of tests to verify that a GenomeStore implementation
// adheres to the defined interface contract.
func RunGenomeStoreContract(t *testing.T, store GenomeStore) {
	ctx := context.Background()
	id := "contract-test-genome-" + time.Now().Format("20060102150405")

	genome := domain.Genome{
		Axiom: "fgh",
		Rules: []domain.Rule{
			{Predecessor: 'f', Successor: "f[+g]f"},
			{Predecessor: 'h', Successor: "[-h]RG"},
		},
		TurnAngle: 17,
	}

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, genome), "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, genome, loaded)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		changed := genome.Clone()
		changed.TurnAngle = 9
		require.NoError(t, store.Save(ctx, id, changed))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 9, loaded.TurnAngle)
	})

	t.Run("Stored Copy Is Isolated", func(t *testing.T) {
		local := genome.Clone()
		require.NoError(t, store.Save(ctx, id, local))
		local.Rules[0].Successor = "mutated"

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "f[+g]f", loaded.Rules[0].Successor)

		loaded.Rules[1].Successor = "mutated"
		again, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "[-h]RG", again.Rules[1].Successor)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrGenomeNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, genome))

		require.NoError(t, store.Delete(ctx, id), "Delete should not return error")

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrGenomeNotFound, "Load after Delete should return ErrGenomeNotFound")

		assert.NoError(t, store.Delete(ctx, id), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		require.NoError(t, store.Save(ctx, id1, genome))
		require.NoError(t, store.Save(ctx, id2, genome))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
		assert.NotContains(t, ids, id)
	})
}
