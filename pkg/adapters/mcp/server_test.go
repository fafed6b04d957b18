package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/aretw0/biomorph"
	"github.com/aretw0/biomorph/pkg/adapters/memory"
	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	eng, err := biomorph.New(biomorph.WithSeed(11))
	require.NoError(t, err)

	n := 0
	store := memory.NewStore()
	s := NewServer(eng, store, WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("m%d", n)
	}))
	return s, store
}

func TestTools_GenerateMutateRender(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	gen, err := s.handleGenerate(ctx, mcp.CallToolRequest{}, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, "m1", gen.ID)
	require.NoError(t, gen.Genome.Validate())

	zero := 0.0
	child, err := s.handleMutate(ctx, mcp.CallToolRequest{}, MutateArgs{ID: "m1", Probability: &zero})
	require.NoError(t, err)
	assert.Equal(t, "m2", child.ID)
	assert.Equal(t, "m1", child.Parent)
	assert.Equal(t, gen.Genome, child.Genome)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2"}, ids)

	gens := 0
	res, err := s.handleRender(ctx, mcp.CallToolRequest{}, RenderArgs{ID: "m1", Generations: &gens})
	require.NoError(t, err)
	assert.Equal(t, len(gen.Genome.Axiom), res.Length)
	assert.True(t, strings.HasPrefix(res.SVG, "<svg"))
	assert.Equal(t, res.Lines, strings.Count(res.SVG, "<line "))
}

func TestTools_Errors(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleMutate(ctx, mcp.CallToolRequest{}, MutateArgs{})
	assert.Error(t, err)

	_, err = s.handleMutate(ctx, mcp.CallToolRequest{}, MutateArgs{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrGenomeNotFound)

	require.NoError(t, store.Save(ctx, "x", domain.Genome{Axiom: "f", Rules: []domain.Rule{{Predecessor: 'f', Successor: "f"}}, TurnAngle: 3}))
	bad := 3.0
	_, err = s.handleMutate(ctx, mcp.CallToolRequest{}, MutateArgs{ID: "x", Probability: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidProbability)

	_, err = s.handleRender(ctx, mcp.CallToolRequest{}, RenderArgs{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrGenomeNotFound)
}

func TestNewServer_RegistersTools(t *testing.T) {
	s, _ := newTestServer(t)

	resp := s.mcpServer.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	out, err := json.Marshal(resp)
	require.NoError(t, err)
	for _, name := range []string{"generate_biomorph", "mutate_biomorph", "render_biomorph"} {
		assert.Contains(t, string(out), name)
	}
}
