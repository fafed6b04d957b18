package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/biomorph"
	"github.com/aretw0/biomorph/pkg/adapters/memory"
	"github.com/aretw0/biomorph/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) (http.Handler, *memory.Store) {
	t.Helper()
	eng, err := biomorph.New(biomorph.WithSeed(99))
	require.NoError(t, err)

	n := 0
	store := memory.NewStore()
	opts = append([]Option{WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("g%d", n)
	})}, opts...)
	return NewHandler(eng, store, opts...), store
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestGenomes_Lifecycle(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, "POST", "/genomes", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[GenomeResponse](t, w)
	assert.Equal(t, "g1", created.ID)
	require.NoError(t, created.Genome.Validate())

	w = do(t, h, "GET", "/genomes/g1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.Genome, decode[GenomeResponse](t, w).Genome)

	w = do(t, h, "POST", "/genomes/g1/mutate?p=0", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	child := decode[GenomeResponse](t, w)
	assert.Equal(t, "g2", child.ID)
	assert.Equal(t, "g1", child.Parent)
	assert.Equal(t, created.Genome, child.Genome, "p=0 must not change the genome")

	w = do(t, h, "GET", "/genomes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"g1", "g2"}, decode[map[string][]string](t, w)["ids"])

	w = do(t, h, "DELETE", "/genomes/g1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, "GET", "/genomes/g1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenomes_CreateFromBody(t *testing.T) {
	h, store := newTestHandler(t)

	w := do(t, h, "POST", "/genomes", `{"axiom":"f","rules":["f=f[+f]f"],"turn_angle":20}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	g, err := store.Load(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "f[+f]f", g.Rules[0].Successor)

	w = do(t, h, "POST", "/genomes", `{"axiom":"","rules":[],"turn_angle":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "POST", "/genomes", `{"rules":["nope"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "POST", "/genomes", `{"axiom":"f","rules":["f=f[+f]f","g="],"turn_angle":20}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "empty successor must be rejected")

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"g1"}, ids)
}

func TestGenomes_MutateValidation(t *testing.T) {
	h, _ := newTestHandler(t)
	require.Equal(t, http.StatusCreated, do(t, h, "POST", "/genomes", "").Code)

	assert.Equal(t, http.StatusBadRequest, do(t, h, "POST", "/genomes/g1/mutate?p=abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, "POST", "/genomes/g1/mutate?p=1.5", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "POST", "/genomes/missing/mutate", "").Code)

	w := do(t, h, "POST", "/genomes/g1/mutate", "")
	assert.Equal(t, http.StatusCreated, w.Code, "default probability applies when p is absent")
}

func TestGenomes_ExpandAndRender(t *testing.T) {
	h, _ := newTestHandler(t)
	require.Equal(t, http.StatusCreated, do(t, h, "POST", "/genomes", `{"axiom":"fg","rules":["f=f[+f]"],"turn_angle":30}`).Code)

	w := do(t, h, "GET", "/genomes/g1/expand?generations=0", "")
	require.Equal(t, http.StatusOK, w.Code)
	exp := decode[ExpandResponse](t, w)
	assert.Equal(t, "fg", exp.Command)
	assert.Equal(t, 2, exp.Length)

	w = do(t, h, "GET", "/genomes/g1/expand?generations=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "f[+f][+f[+f]]g", decode[ExpandResponse](t, w).Command)

	assert.Equal(t, http.StatusBadRequest, do(t, h, "GET", "/genomes/g1/expand?generations=-1", "").Code)

	w = do(t, h, "GET", "/genomes/g1/render.svg?generations=1&bg=white", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<svg")
	assert.Equal(t, 2, strings.Count(w.Body.String(), "<line "))

	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/genomes/missing/render.svg", "").Code)
}

func TestMetricsAndInfo(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	eng, err := biomorph.New(biomorph.WithSeed(1), biomorph.WithLifecycleHooks(m.Hooks()))
	require.NoError(t, err)
	h := NewHandler(eng, memory.NewStore(), WithGatherer(reg))

	require.Equal(t, http.StatusCreated, do(t, h, "POST", "/genomes", "").Code)

	w := do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "biomorph_genomes_created_total 1")

	w = do(t, h, "GET", "/info", "")
	assert.Equal(t, strings.TrimSpace(biomorph.Version), decode[map[string]string](t, w)["version"])

	assert.Equal(t, http.StatusOK, do(t, h, "GET", "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, "OPTIONS", "/genomes", "").Code)
}

func TestMetrics_DisabledWithoutGatherer(t *testing.T) {
	h, _ := newTestHandler(t)
	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/metrics", "").Code)
}

func TestStreamManager_Broadcast(t *testing.T) {
	sm := NewStreamManager()
	ch, unsubscribe := sm.Subscribe()

	sm.Broadcast("hello")
	select {
	case msg := <-ch:
		assert.Equal(t, "hello", msg)
	case <-time.After(time.Second):
		t.Fatal("expected broadcast message")
	}

	unsubscribe()
	unsubscribe()
	sm.Broadcast("ignored")
	_, open := <-ch
	assert.False(t, open)
}

func TestSubscribeEvents(t *testing.T) {
	h, _ := newTestHandler(t)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/events", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.ServeHTTP(w, req)
		close(done)
	}()

	// Let the handler subscribe before cancelling.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after cancel")
	}
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "event: ping")
}
