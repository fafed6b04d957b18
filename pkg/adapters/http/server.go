package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/biomorph"
	"github.com/aretw0/biomorph/internal/presentation/svg"
	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/aretw0/biomorph/pkg/ports"
	"github.com/aretw0/biomorph/pkg/turtle"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes bounds request bodies; a genome is a few hundred bytes.
const maxBodyBytes = 64 << 10

// Engine defines the subset of the biomorph engine the API drives.
type Engine interface {
	GenerateRandomGenome() domain.Genome
	Mutate(g domain.Genome, p domain.Probability) (domain.Genome, error)
	Expand(g domain.Genome, generations int) (string, error)
	Render(cmd string, turnAngleDegrees int) []domain.DrawOp
	TurtleConfig() turtle.Config
	Generations() int
}

var _ Engine = (*biomorph.Engine)(nil)

// Server serves a population of stored genomes.
type Server struct {
	engine      Engine
	mu          sync.Mutex // guards engine, which is not safe for concurrent use
	store       ports.GenomeStore
	streams     *StreamManager
	logger      *slog.Logger
	gatherer    prometheus.Gatherer
	probability domain.Probability
	newID       func() string
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGatherer exposes the given registry on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithDefaultProbability is used by the mutate route when no p is given (default: 0.1).
func WithDefaultProbability(p domain.Probability) Option {
	return func(s *Server) {
		s.probability = p
	}
}

// WithIDGenerator replaces the UUID generator for new genome IDs.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) {
		s.newID = fn
	}
}

// GenomeResponse is the JSON shape of a stored genome.
type GenomeResponse struct {
	ID     string        `json:"id"`
	Parent string        `json:"parent,omitempty"`
	Genome domain.Genome `json:"genome"`
}

// ExpandResponse is the JSON shape of an expansion.
type ExpandResponse struct {
	ID          string `json:"id"`
	Generations int    `json:"generations"`
	Length      int    `json:"length"`
	Command     string `json:"command"`
}

// NewHandler creates the HTTP API over engine and store.
func NewHandler(engine Engine, store ports.GenomeStore, opts ...Option) http.Handler {
	s := &Server{
		engine:      engine,
		store:       store,
		streams:     NewStreamManager(),
		probability: 0.1,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.streams.logger = s.logger

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Get("/events", s.subscribeEvents)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/genomes", func(r chi.Router) {
		r.Post("/", s.createGenome)
		r.Get("/", s.listGenomes)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getGenome)
			r.Delete("/", s.deleteGenome)
			r.Post("/mutate", s.mutateGenome)
			r.Get("/expand", s.expandGenome)
			r.Get("/render.svg", s.renderGenome)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "biomorph-http",
		"version": strings.TrimSpace(biomorph.Version),
	})
}

// createGenome stores the posted genome, or a random one when the body is empty.
func (s *Server) createGenome(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var g domain.Genome
	if len(strings.TrimSpace(string(body))) == 0 {
		s.mu.Lock()
		g = s.engine.GenerateRandomGenome()
		s.mu.Unlock()
	} else {
		if err := json.Unmarshal(body, &g); err != nil {
			http.Error(w, fmt.Sprintf("Invalid genome: %v", err), http.StatusBadRequest)
			s.logger.Warn("createGenome: invalid body", "error", err)
			return
		}
		if err := g.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	resp := GenomeResponse{ID: s.newID(), Genome: g}
	if err := s.store.Save(r.Context(), resp.ID, g); err != nil {
		s.fail(w, "createGenome", err)
		return
	}
	s.publish("created", resp)
	s.writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) listGenomes(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, "listGenomes", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

func (s *Server) getGenome(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := s.store.Load(r.Context(), id)
	if err != nil {
		s.fail(w, "getGenome", err)
		return
	}
	s.writeJSON(w, http.StatusOK, GenomeResponse{ID: id, Genome: g})
}

func (s *Server) deleteGenome(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.fail(w, "deleteGenome", err)
		return
	}
	s.publish("deleted", GenomeResponse{ID: id})
	w.WriteHeader(http.StatusNoContent)
}

// mutateGenome stores a mutated child under a new ID; the parent is left as is.
func (s *Server) mutateGenome(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p := s.probability
	if raw := r.URL.Query().Get("p"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid probability %q", raw), http.StatusBadRequest)
			return
		}
		p = domain.Probability(v)
	}

	parent, err := s.store.Load(r.Context(), id)
	if err != nil {
		s.fail(w, "mutateGenome", err)
		return
	}

	s.mu.Lock()
	child, err := s.engine.Mutate(parent, p)
	s.mu.Unlock()
	if err != nil {
		s.fail(w, "mutateGenome", err)
		return
	}

	resp := GenomeResponse{ID: s.newID(), Parent: id, Genome: child}
	if err := s.store.Save(r.Context(), resp.ID, child); err != nil {
		s.fail(w, "mutateGenome", err)
		return
	}
	s.publish("mutated", resp)
	s.writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) expandGenome(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, n, ok := s.loadForDevelopment(w, r, "expandGenome")
	if !ok {
		return
	}

	s.mu.Lock()
	cmd, err := s.engine.Expand(g, n)
	s.mu.Unlock()
	if err != nil {
		s.fail(w, "expandGenome", err)
		return
	}
	s.writeJSON(w, http.StatusOK, ExpandResponse{ID: id, Generations: n, Length: len(cmd), Command: cmd})
}

func (s *Server) renderGenome(w http.ResponseWriter, r *http.Request) {
	g, n, ok := s.loadForDevelopment(w, r, "renderGenome")
	if !ok {
		return
	}

	s.mu.Lock()
	cmd, err := s.engine.Expand(g, n)
	var ops []domain.DrawOp
	if err == nil {
		ops = s.engine.Render(cmd, g.TurnAngle)
	}
	cfg := s.engine.TurtleConfig()
	s.mu.Unlock()
	if err != nil {
		s.fail(w, "renderGenome", err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := svg.Write(w, ops, cfg, svg.Options{Background: r.URL.Query().Get("bg")}); err != nil {
		s.logger.Error("renderGenome: write failed", "error", err)
	}
}

// loadForDevelopment resolves the genome and the generations query parameter.
func (s *Server) loadForDevelopment(w http.ResponseWriter, r *http.Request, op string) (domain.Genome, int, bool) {
	s.mu.Lock()
	n := s.engine.Generations()
	s.mu.Unlock()

	if raw := r.URL.Query().Get("generations"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			http.Error(w, fmt.Sprintf("Invalid generations %q", raw), http.StatusBadRequest)
			return domain.Genome{}, 0, false
		}
		n = v
	}

	g, err := s.store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, op, err)
		return domain.Genome{}, 0, false
	}
	return g, n, true
}

// fail maps domain errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrGenomeNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidGenome), errors.Is(err, domain.ErrInvalidProbability):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
		s.logger.Error(op+" failed", "error", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) publish(kind string, resp GenomeResponse) {
	data, err := json.Marshal(map[string]any{"event": kind, "id": resp.ID, "parent": resp.Parent})
	if err != nil {
		return
	}
	s.streams.Broadcast(string(data))
}
