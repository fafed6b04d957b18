package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/biomorph"
	"github.com/aretw0/biomorph/internal/config"
	"github.com/aretw0/biomorph/internal/logging"
	"github.com/aretw0/biomorph/pkg/adapters/file"
	"github.com/aretw0/biomorph/pkg/adapters/memory"
	"github.com/aretw0/biomorph/pkg/adapters/redis"
	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/aretw0/biomorph/pkg/observability"
	"github.com/aretw0/biomorph/pkg/persistence/middleware"
	"github.com/aretw0/biomorph/pkg/ports"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// app bundles what every command needs, built from config and flags.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	engine *biomorph.Engine
}

// loadConfig reads --config and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		cfg.Seed = &seed
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, cfg.Validate()
}

func newApp(cmd *cobra.Command, hooks ...domain.LifecycleHooks) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)

	opts := []biomorph.Option{
		biomorph.WithLogger(logger),
		biomorph.WithTurtleConfig(cfg.Turtle),
		biomorph.WithGenerations(cfg.Generations),
		biomorph.WithLifecycleHooks(observability.LoggingHooks(logger)),
	}
	if cfg.Seed != nil {
		opts = append(opts, biomorph.WithSeed(*cfg.Seed))
	}
	for _, h := range hooks {
		opts = append(opts, biomorph.WithLifecycleHooks(h))
	}

	eng, err := biomorph.New(opts...)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, engine: eng}, nil
}

// openStore builds the configured genome store with validation and logging.
// The returned func releases it.
func openStore(cfg config.Config, logger *slog.Logger) (ports.GenomeStore, func() error, error) {
	noop := func() error { return nil }
	mws := []middleware.Middleware{
		middleware.NewLoggingMiddleware(logger),
		middleware.NewValidationMiddleware(),
	}

	switch cfg.Store.Kind {
	case config.StoreMemory:
		return middleware.Chain(memory.NewStore(), mws...), noop, nil
	case config.StoreFile:
		return middleware.Chain(file.New(cfg.Store.Dir), mws...), noop, nil
	case config.StoreRedis:
		s := redis.New(cfg.Store.RedisAddr, "", 0,
			redis.WithPrefix(cfg.Store.Prefix),
			redis.WithTTL(cfg.Store.TTL),
		)
		return middleware.Chain(s, mws...), s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store kind %q", cfg.Store.Kind)
}

// addGenomeInputFlags registers the flags shared by commands that consume a genome.
func addGenomeInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("in", "i", "-", "Genome file (YAML or JSON), - for stdin")
	cmd.Flags().String("id", "", "Load the genome from the configured store instead of --in")
}

// readGenome resolves --id (store) or --in (file or stdin).
func readGenome(cmd *cobra.Command, a *app) (domain.Genome, error) {
	if id, _ := cmd.Flags().GetString("id"); id != "" {
		store, closeStore, err := openStore(a.cfg, a.logger)
		if err != nil {
			return domain.Genome{}, err
		}
		defer closeStore()
		return store.Load(cmd.Context(), id)
	}

	in, _ := cmd.Flags().GetString("in")
	var r io.Reader = cmd.InOrStdin()
	if in != "-" {
		f, err := os.Open(in)
		if err != nil {
			return domain.Genome{}, err
		}
		defer f.Close()
		r = f
	}
	return decodeGenome(r)
}

// decodeGenome parses one genome; JSON parses as YAML.
func decodeGenome(r io.Reader) (domain.Genome, error) {
	var g domain.Genome
	if err := yaml.NewDecoder(r).Decode(&g); err != nil {
		return domain.Genome{}, fmt.Errorf("failed to decode genome: %w", err)
	}
	if err := g.Validate(); err != nil {
		return domain.Genome{}, err
	}
	return g, nil
}

// writeGenome prints g as YAML or JSON.
func writeGenome(w io.Writer, g domain.Genome, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(g)
	}
	return fmt.Errorf("unknown format %q", format)
}
