package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/biomorph"
	"github.com/aretw0/biomorph/internal/presentation/svg"
	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/aretw0/biomorph/pkg/ports"
	"github.com/aretw0/biomorph/pkg/turtle"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const genomesURI = "biomorph://genomes"

// Engine defines the engine surface the MCP tools drive.
type Engine interface {
	GenerateRandomGenome() domain.Genome
	Mutate(g domain.Genome, p domain.Probability) (domain.Genome, error)
	Expand(g domain.Genome, generations int) (string, error)
	Render(cmd string, turnAngleDegrees int) []domain.DrawOp
	TurtleConfig() turtle.Config
	Generations() int
}

// GenomeResult is returned by the generate and mutate tools.
type GenomeResult struct {
	ID     string        `json:"id" jsonschema_description:"Store ID of the genome"`
	Parent string        `json:"parent,omitempty" jsonschema_description:"ID of the genome this one was mutated from"`
	Genome domain.Genome `json:"genome" jsonschema_description:"Axiom, rules as p=successor and turn angle in degrees"`
}

// RenderResult is returned by the render tool.
type RenderResult struct {
	ID          string `json:"id"`
	Generations int    `json:"generations"`
	Length      int    `json:"length" jsonschema_description:"Length of the expanded command string"`
	Lines       int    `json:"lines" jsonschema_description:"Number of line segments drawn"`
	SVG         string `json:"svg" jsonschema_description:"Standalone SVG document"`
}

// MutateArgs are the mutate_biomorph arguments.
type MutateArgs struct {
	ID          string   `json:"id"`
	Probability *float64 `json:"probability,omitempty"`
}

// RenderArgs are the render_biomorph arguments.
type RenderArgs struct {
	ID          string `json:"id"`
	Generations *int   `json:"generations,omitempty"`
}

// Server exposes a biomorph engine and a genome store as MCP tools.
type Server struct {
	engine      Engine
	mu          sync.Mutex // guards engine
	store       ports.GenomeStore
	mcpServer   *server.MCPServer
	logger      *slog.Logger
	probability domain.Probability
	newID       func() string
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithDefaultProbability is used by mutate_biomorph when no probability is given.
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

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, store ports.GenomeStore, opts ...Option) *Server {
	s := &Server{
		engine:      engine,
		store:       store,
		mcpServer:   server.NewMCPServer("biomorph-mcp", strings.TrimSpace(biomorph.Version)),
		probability: 0.1,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("generate_biomorph",
		mcp.WithDescription("Synthesize a random biomorph genome and store it."),
		mcp.WithOutputSchema[GenomeResult](),
	), mcp.NewStructuredToolHandler(s.handleGenerate))

	s.mcpServer.AddTool(mcp.NewTool("mutate_biomorph",
		mcp.WithDescription("Mutate a stored genome and store the child under a new ID. The parent is kept."),
		mcp.WithString("id", mcp.Required(), mcp.Description("ID of the parent genome")),
		mcp.WithNumber("probability", mcp.Description("Per-locus mutation probability in [0, 1]")),
		mcp.WithOutputSchema[GenomeResult](),
	), mcp.NewStructuredToolHandler(s.handleMutate))

	s.mcpServer.AddTool(mcp.NewTool("render_biomorph",
		mcp.WithDescription("Expand a stored genome and render it as SVG."),
		mcp.WithString("id", mcp.Required(), mcp.Description("ID of the genome")),
		mcp.WithNumber("generations", mcp.Description("Rewriting rounds (default: engine setting)")),
		mcp.WithOutputSchema[RenderResult](),
	), mcp.NewStructuredToolHandler(s.handleRender))
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest, _ struct{}) (GenomeResult, error) {
	s.mu.Lock()
	g := s.engine.GenerateRandomGenome()
	s.mu.Unlock()

	res := GenomeResult{ID: s.newID(), Genome: g}
	if err := s.store.Save(ctx, res.ID, g); err != nil {
		return GenomeResult{}, fmt.Errorf("save failed: %w", err)
	}
	s.logger.Debug("mcp: genome generated", "id", res.ID)
	return res, nil
}

func (s *Server) handleMutate(ctx context.Context, request mcp.CallToolRequest, args MutateArgs) (GenomeResult, error) {
	if args.ID == "" {
		return GenomeResult{}, fmt.Errorf("id is required")
	}
	p := s.probability
	if args.Probability != nil {
		p = domain.Probability(*args.Probability)
	}

	parent, err := s.store.Load(ctx, args.ID)
	if err != nil {
		return GenomeResult{}, fmt.Errorf("load %s: %w", args.ID, err)
	}

	s.mu.Lock()
	child, err := s.engine.Mutate(parent, p)
	s.mu.Unlock()
	if err != nil {
		return GenomeResult{}, fmt.Errorf("mutate failed: %w", err)
	}

	res := GenomeResult{ID: s.newID(), Parent: args.ID, Genome: child}
	if err := s.store.Save(ctx, res.ID, child); err != nil {
		return GenomeResult{}, fmt.Errorf("save failed: %w", err)
	}
	return res, nil
}

func (s *Server) handleRender(ctx context.Context, request mcp.CallToolRequest, args RenderArgs) (RenderResult, error) {
	if args.ID == "" {
		return RenderResult{}, fmt.Errorf("id is required")
	}
	g, err := s.store.Load(ctx, args.ID)
	if err != nil {
		return RenderResult{}, fmt.Errorf("load %s: %w", args.ID, err)
	}

	s.mu.Lock()
	n := s.engine.Generations()
	if args.Generations != nil {
		n = *args.Generations
	}
	cmd, err := s.engine.Expand(g, n)
	var ops []domain.DrawOp
	if err == nil {
		ops = s.engine.Render(cmd, g.TurnAngle)
	}
	cfg := s.engine.TurtleConfig()
	s.mu.Unlock()
	if err != nil {
		return RenderResult{}, fmt.Errorf("expand failed: %w", err)
	}

	var buf bytes.Buffer
	if err := svg.Write(&buf, ops, cfg, svg.Options{Background: "white"}); err != nil {
		return RenderResult{}, err
	}
	return RenderResult{
		ID:          args.ID,
		Generations: n,
		Length:      len(cmd),
		Lines:       domain.CountKind(ops, domain.OpLine),
		SVG:         buf.String(),
	}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(genomesURI, "Stored Genomes",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list genomes: %w", err)
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      genomesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
