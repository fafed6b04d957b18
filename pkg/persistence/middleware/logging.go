package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/aretw0/biomorph/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.GenomeStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store call at debug level and failures at warn.
// A missing genome is reported at debug level only.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.GenomeStore) ports.GenomeStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(op, id string, start time.Time, err error) {
	attrs := []any{"op", op, "id", id, "duration", time.Since(start)}
	if err != nil && !errors.Is(err, domain.ErrGenomeNotFound) {
		m.logger.Warn("store call failed", append(attrs, "error", err)...)
		return
	}
	m.logger.Debug("store call", attrs...)
}

func (m *loggingMiddleware) Save(ctx context.Context, id string, genome domain.Genome) error {
	start := time.Now()
	err := m.next.Save(ctx, id, genome)
	m.log("save", id, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, id string) (domain.Genome, error) {
	start := time.Now()
	g, err := m.next.Load(ctx, id)
	m.log("load", id, start, err)
	return g, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Delete(ctx, id)
	m.log("delete", id, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.log("list", "", start, err)
	return ids, err
}
