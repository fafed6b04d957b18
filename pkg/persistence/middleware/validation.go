package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/aretw0/biomorph/pkg/ports"
)

type validationMiddleware struct {
	next ports.GenomeStore
}

// NewValidationMiddleware rejects invalid genomes on Save and on Load,
// so a hand-edited or corrupted backend never feeds the engine.
func NewValidationMiddleware() Middleware {
	return func(next ports.GenomeStore) ports.GenomeStore {
		return &validationMiddleware{next: next}
	}
}

func (m *validationMiddleware) Save(ctx context.Context, id string, genome domain.Genome) error {
	if err := genome.Validate(); err != nil {
		return fmt.Errorf("refusing to save %s: %w", id, err)
	}
	return m.next.Save(ctx, id, genome)
}

func (m *validationMiddleware) Load(ctx context.Context, id string) (domain.Genome, error) {
	g, err := m.next.Load(ctx, id)
	if err != nil {
		return g, err
	}
	if err := g.Validate(); err != nil {
		return domain.Genome{}, fmt.Errorf("stored genome %s: %w", id, err)
	}
	return g, nil
}

func (m *validationMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *validationMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
