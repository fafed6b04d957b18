package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/biomorph/pkg/adapters/file"
	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/aretw0/biomorph/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.GenomeStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunGenomeStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_WritesReadableYAML(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	g := domain.Genome{Axiom: "hf", Rules: []domain.Rule{{Predecessor: 'h', Successor: "h[-f]"}}, TurnAngle: 8}
	require.NoError(t, store.Save(ctx, "tree", g))

	data, err := os.ReadFile(filepath.Join(dir, "tree.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "axiom: hf")
	assert.Contains(t, string(data), "h=h[-f]")
	assert.Contains(t, string(data), "turn_angle: 8")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_HandEditedFile(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	hand := "axiom: f\nrules:\n  - f=f[+f]\nturn_angle: 12\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hand.yaml"), []byte(hand), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	g, err := store.Load(ctx, "hand")
	require.NoError(t, err)
	assert.Equal(t, "f[+f]", g.Rules[0].Successor)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"hand"}, ids)
}

func TestFileStore_RejectsInvalidContent(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("axiom: \"\"\nrules: []\nturn_angle: 0\n"), 0o644))
	_, err := store.Load(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrInvalidGenome)
}

func TestFileStore_RejectsPathIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "../escape", "a/b", ".hidden"} {
		assert.Error(t, store.Save(ctx, id, domain.Genome{}), id)
	}
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "absent"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
