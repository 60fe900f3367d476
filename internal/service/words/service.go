// Package words implements the read side of the vocabulary: paged listing,
// prefix search, the daily sample and enriched word details.
package words

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/vocab-backend/internal/domain"
)

type wordStore interface {
	GetByWord(ctx context.Context, word string) (*domain.Word, error)
	FindByPrefix(ctx context.Context, prefix string, limit int, excludeID *uuid.UUID) ([]domain.Word, error)
	Page(ctx context.Context, f domain.WordFilter) ([]domain.Word, int, error)
	RandomSample(ctx context.Context, n int) ([]domain.Word, error)
}

type enricher interface {
	EnsureEnriched(ctx context.Context, word string) (*domain.Word, error)
	EnrichTranslations(ctx context.Context, rec *domain.Word, langs []string) (*domain.Word, error)
}

// Config holds the listing and search limits.
type Config struct {
	DailySampleSize    int
	DefaultPageSize    int
	MaxPageSize        int
	DefaultSearchLimit int
	MaxSearchLimit     int
}

// Service is the query service.
type Service struct {
	log      *slog.Logger
	words    wordStore
	enricher enricher
	cfg      Config
	daily    *DailyCache
	now      func() time.Time
}

// NewService creates a new query service.
func NewService(logger *slog.Logger, words wordStore, enricher enricher, cfg Config) *Service {
	return &Service{
		log:      logger.With("service", "words"),
		words:    words,
		enricher: enricher,
		cfg:      cfg,
		daily:    &DailyCache{},
		now:      time.Now,
	}
}

func clamp(v, def, maxV int) int {
	if v <= 0 {
		return def
	}
	if v > maxV {
		return maxV
	}
	return v
}
