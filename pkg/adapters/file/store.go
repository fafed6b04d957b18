package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/biomorph/pkg/domain"
	"gopkg.in/yaml.v3"
)

const ext = ".yaml"

// Store implements ports.GenomeStore using the local filesystem.
// Each genome is a YAML file named after its ID, so collections can be edited by hand.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".biomorph/genomes".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".biomorph", "genomes")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("genome id cannot be empty")
	}
	if id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("invalid genome id %q", id)
	}
	return filepath.Join(s.BasePath, id+ext), nil
}

// Save persists the genome atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, id string, genome domain.Genome) error {
	destPath, err := s.path(id)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure genome directory: %w", err)
	}

	data, err := yaml.Marshal(genome)
	if err != nil {
		return fmt.Errorf("failed to marshal genome: %w", err)
	}

	// Same directory keeps the rename on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "."+id+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to genome file: %w", err)
	}
	return nil
}

// Load reads and validates the genome file.
func (s *Store) Load(ctx context.Context, id string) (domain.Genome, error) {
	filePath, err := s.path(id)
	if err != nil {
		return domain.Genome{}, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Genome{}, domain.ErrGenomeNotFound
		}
		return domain.Genome{}, fmt.Errorf("failed to read genome file: %w", err)
	}

	var g domain.Genome
	if err := yaml.Unmarshal(data, &g); err != nil {
		return domain.Genome{}, fmt.Errorf("failed to unmarshal genome: %w", err)
	}
	if err := g.Validate(); err != nil {
		return domain.Genome{}, fmt.Errorf("genome file %s: %w", filePath, err)
	}
	return g, nil
}

// Delete removes the genome file.
func (s *Store) Delete(ctx context.Context, id string) error {
	filePath, err := s.path(id)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete genome file: %w", err)
	}
	return nil
}

// List returns all genome IDs in directory order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list genomes: %w", err)
	}

	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ext {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ext))
	}
	return ids, nil
}
