package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/biomorph/internal/logging"
	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/aretw0/biomorph/pkg/grammar"
	"github.com/aretw0/biomorph/pkg/turtle"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the host configuration shared by every biomorph command.
type Config struct {
	// Seed makes runs reproducible. Nil means a random seed.
	Seed                *uint64       `yaml:"seed" mapstructure:"seed"`
	Generations         int           `yaml:"generations" mapstructure:"generations"`
	MutationProbability float64       `yaml:"mutation_probability" mapstructure:"mutation_probability"`
	LogLevel            string        `yaml:"log_level" mapstructure:"log_level"`
	Turtle              turtle.Config `yaml:"turtle" mapstructure:"turtle"`
	Store               StoreConfig   `yaml:"store" mapstructure:"store"`
	HTTP                HTTPConfig    `yaml:"http" mapstructure:"http"`
}

// StoreConfig selects and parameterizes the genome store.
type StoreConfig struct {
	Kind      string        `yaml:"kind" mapstructure:"kind"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	RedisAddr string        `yaml:"redis_addr" mapstructure:"redis_addr"`
	Prefix    string        `yaml:"prefix" mapstructure:"prefix"`
	TTL       time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// HTTPConfig holds the API server settings.
type HTTPConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Generations:         grammar.DefaultGenerations,
		MutationProbability: 0.1,
		LogLevel:            "info",
		Turtle:              turtle.DefaultConfig(),
		Store: StoreConfig{
			Kind:      StoreMemory,
			Dir:       ".biomorph",
			RedisAddr: "localhost:6379",
			Prefix:    "biomorph:",
		},
		HTTP: HTTPConfig{Port: 8080},
	}
}

// Load reads a YAML file over Default.
// An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes over Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := decode(raw, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decode(raw map[string]any, out *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// ErrInvalidConfig is matched by every field failure reported by Validate.
var ErrInvalidConfig = errors.New("invalid config")

func fieldErr(field, reason string, value any) error {
	return fmt.Errorf("%w: field %q: %s (got %v)", ErrInvalidConfig, field, reason, value)
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Generations < 0 {
		errs = append(errs, fieldErr("generations", "must not be negative", c.Generations))
	}
	if _, err := domain.NewProbability(c.MutationProbability); err != nil {
		errs = append(errs, fieldErr("mutation_probability", "must be within [0, 1]", c.MutationProbability))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fieldErr("log_level", "unknown level", c.LogLevel))
	}
	switch c.Store.Kind {
	case StoreMemory, StoreRedis:
	case StoreFile:
		if c.Store.Dir == "" {
			errs = append(errs, fieldErr("store.dir", "required for the file store", c.Store.Dir))
		}
	default:
		errs = append(errs, fieldErr("store.kind", "must be memory, file or redis", c.Store.Kind))
	}
	if c.Store.TTL < 0 {
		errs = append(errs, fieldErr("store.ttl", "must not be negative", c.Store.TTL))
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fieldErr("http.port", "out of range", c.HTTP.Port))
	}

	if len(errs) == 0 {
		return nil
	}
	return &domain.AggregateError{Errors: errs}
}

// Probability returns the configured mutation probability.
func (c Config) Probability() domain.Probability {
	return domain.Probability(c.MutationProbability)
}
