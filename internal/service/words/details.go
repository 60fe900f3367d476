package words

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vocab-backend/internal/domain"
)

// WordDetails returns the enriched record for word. When target translations
// are still missing after enrichment, one more translation pass is made.
// A failure of that second pass is logged and the record is returned as is.
func (s *Service) WordDetails(ctx context.Context, word string) (*domain.Word, error) {
	rec, err := s.enricher.EnsureEnriched(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("word details: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("word %q: %w", word, domain.ErrNotFound)
	}

	if len(rec.Translations.Missing(domain.TargetLanguages)) > 0 {
		retried, err := s.enricher.EnrichTranslations(ctx, rec, domain.TargetLanguages)
		if err != nil {
			s.log.WarnContext(ctx, "translation retry failed",
				slog.String("word", rec.Word),
				slog.String("error", err.Error()),
			)
			return rec, nil
		}
		rec = retried
	}

	return rec, nil
}
