package ports

import (
	"context"

	"github.com/aretw0/biomorph/pkg/domain"
)

// GenomeStore defines the interface for persisting genomes between host calls.
type GenomeStore interface {
	// Save persists the genome under the given ID, replacing any previous value.
	Save(ctx context.Context, id string, genome domain.Genome) error

	// Load retrieves the genome for the given ID.
	// Returns domain.ErrGenomeNotFound if the ID does not exist.
	Load(ctx context.Context, id string) (domain.Genome, error)

	// Delete removes the genome. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of every stored genome.
	List(ctx context.Context) ([]string, error)
}
