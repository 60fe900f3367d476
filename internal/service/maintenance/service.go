// Package maintenance implements the offline jobs run from the command line:
// bulk preload of a word list, batch enrichment of placeholder records and
// the store statistics report.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/vocab-backend/internal/domain"
	"github.com/heartmarshall/vocab-backend/internal/service/enrichment"
)

type wordStore interface {
	InsertMissing(ctx context.Context, words []domain.Word) (int, error)
	DeleteBySource(ctx context.Context, source domain.Source) (int, error)
	ListNeedingDefinition(ctx context.Context, limit int) ([]domain.Word, error)
	Stats(ctx context.Context) (domain.WordStats, error)
}

type batchEnricher interface {
	EnrichForBatch(ctx context.Context, rec *domain.Word, langs []string, maxFailed int) (*domain.Word, enrichment.Outcome, error)
	Deactivate(ctx context.Context, word string) error
}

// Config holds batch settings.
type Config struct {
	BatchSize         int
	BatchDelay        time.Duration
	MaxFailedAttempts int
	Languages         []string
}

// Service runs maintenance jobs.
type Service struct {
	log      *slog.Logger
	words    wordStore
	enricher batchEnricher
	cfg      Config
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewService creates a new maintenance service.
func NewService(logger *slog.Logger, words wordStore, enricher batchEnricher, cfg Config) *Service {
	return &Service{
		log:      logger.With("service", "maintenance"),
		words:    words,
		enricher: enricher,
		cfg:      cfg,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
