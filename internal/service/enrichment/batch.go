package enrichment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vocab-backend/internal/domain"
)

// Outcome is the result of one batch enrichment attempt.
type Outcome string

const (
	OutcomeEnriched    Outcome = "enriched"
	OutcomeFailed      Outcome = "failed"
	OutcomeDeactivated Outcome = "deactivated"
)

// EnrichForBatch runs one unconditional dictionary attempt for rec followed
// by translations for langs. When the dictionary yields nothing the failure
// counter grows, and the word is deactivated once it reaches maxFailed.
func (s *Service) EnrichForBatch(ctx context.Context, rec *domain.Word, langs []string, maxFailed int) (*domain.Word, Outcome, error) {
	result := s.dict.FetchDefinition(ctx, rec.Word)
	patch := definitionPatch(rec, result, s.now().UTC())

	outcome := OutcomeEnriched
	if !result.Found {
		attempts := rec.FailedAttempts + 1
		patch.FailedAttempts = &attempts
		outcome = OutcomeFailed
		if maxFailed > 0 && attempts >= maxFailed {
			inactive := false
			patch.IsActive = &inactive
			outcome = OutcomeDeactivated
		}
	}

	updated, err := s.words.Upsert(ctx, rec.Word, patch)
	if err != nil {
		return nil, outcome, fmt.Errorf("save definition: %w", err)
	}

	if outcome == OutcomeDeactivated {
		s.log.WarnContext(ctx, "word deactivated after repeated failures",
			slog.String("word", rec.Word),
			slog.Int("attempts", updated.FailedAttempts),
		)
		return updated, outcome, nil
	}

	updated, err = s.EnrichTranslations(ctx, updated, langs)
	if err != nil {
		return nil, outcome, err
	}
	return updated, outcome, nil
}

// Deactivate marks word inactive so that listing and search skip it.
func (s *Service) Deactivate(ctx context.Context, word string) error {
	inactive := false
	if _, err := s.words.Upsert(ctx, word, domain.WordPatch{IsActive: &inactive}); err != nil {
		return fmt.Errorf("deactivate word: %w", err)
	}
	return nil
}
