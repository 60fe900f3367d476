// Package enrichment fills word records from the dictionary and translation
// providers and writes the merged result back to the store.
package enrichment

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/vocab-backend/internal/domain"
	"github.com/heartmarshall/vocab-backend/internal/provider"
)

type wordStore interface {
	GetByWord(ctx context.Context, word string) (*domain.Word, error)
	Upsert(ctx context.Context, word string, patch domain.WordPatch) (*domain.Word, error)
}

type definitionProvider interface {
	FetchDefinition(ctx context.Context, word string) provider.DefinitionResult
}

type translationProvider interface {
	FetchTranslations(ctx context.Context, word string, langs []string) domain.Translations
}

// Service is the enrichment orchestrator.
type Service struct {
	log        *slog.Logger
	words      wordStore
	dict       definitionProvider
	trans      translationProvider
	retryAfter time.Duration
	now        func() time.Time
}

// NewService creates a new enrichment service. partialRetryAfter is how long
// a partial record waits before the dictionary is consulted again.
func NewService(
	logger *slog.Logger,
	words wordStore,
	dict definitionProvider,
	trans translationProvider,
	partialRetryAfter time.Duration,
) *Service {
	return &Service{
		log:        logger.With("service", "enrichment"),
		words:      words,
		dict:       dict,
		trans:      trans,
		retryAfter: partialRetryAfter,
		now:        time.Now,
	}
}
