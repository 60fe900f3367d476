package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vocab-backend/internal/domain"
)

// EnsureEnriched returns the stored record for word after filling whatever
// is missing. An unseen word is stored as an external record. Provider
// failures never surface; only store errors are returned.
//
// Each call makes at most one attempt per provider. Concurrent calls for the
// same word may both call the providers; the merging upsert keeps the result
// consistent.
func (s *Service) EnsureEnriched(ctx context.Context, word string) (*domain.Word, error) {
	normalized := domain.NormalizeWord(word)
	if normalized == "" {
		return nil, domain.NewValidationError("word", "required")
	}

	rec, err := s.words.GetByWord(ctx, normalized)
	stored := err == nil
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get word: %w", err)
		}
		rec = domain.NewExternalWord(normalized)
	}

	// An inactive record is looked up again and reactivated, as if unseen.
	if !stored || !rec.IsActive || rec.NeedsDefinition(s.now(), s.retryAfter) {
		rec, err = s.fetchDefinition(ctx, rec, stored)
		if err != nil {
			return nil, err
		}
	}

	return s.EnrichTranslations(ctx, rec, domain.TargetLanguages)
}

// fetchDefinition consults the dictionary once and persists the merge.
func (s *Service) fetchDefinition(ctx context.Context, rec *domain.Word, stored bool) (*domain.Word, error) {
	result := s.dict.FetchDefinition(ctx, rec.Word)

	patch := definitionPatch(rec, result, s.now().UTC())
	if !stored {
		src := rec.Source
		if patch.Source != nil {
			src = *patch.Source
		}
		patch.Source = &src
	}
	if !stored || !rec.IsActive {
		active := true
		patch.IsActive = &active
	}

	updated, err := s.words.Upsert(ctx, rec.Word, patch)
	if err != nil {
		return nil, fmt.Errorf("save definition: %w", err)
	}

	s.log.InfoContext(ctx, "definition fetched",
		slog.String("word", rec.Word),
		slog.Bool("found", result.Found),
		slog.String("completeness", string(updated.Completeness)),
	)
	return updated, nil
}

// EnrichTranslations requests the languages from langs that rec lacks and
// persists the outcome. Successful languages are stored even when others
// fail; a failed language is recorded as "" without erasing existing text.
func (s *Service) EnrichTranslations(ctx context.Context, rec *domain.Word, langs []string) (*domain.Word, error) {
	missing := rec.Translations.Missing(langs)
	if len(missing) == 0 {
		return rec, nil
	}

	got := s.trans.FetchTranslations(ctx, rec.Word, missing)
	if len(got) == 0 {
		return rec, nil
	}

	updated, err := s.words.Upsert(ctx, rec.Word, domain.WordPatch{Translations: got})
	if err != nil {
		return nil, fmt.Errorf("save translations: %w", err)
	}

	if still := updated.Translations.Missing(missing); len(still) > 0 {
		s.log.WarnContext(ctx, "translations incomplete",
			slog.String("word", rec.Word),
			slog.Any("missing", still),
		)
	}
	return updated, nil
}
