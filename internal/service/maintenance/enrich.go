package maintenance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vocab-backend/internal/domain"
	"github.com/heartmarshall/vocab-backend/internal/service/enrichment"
)

// EnrichResult summarizes a batch enrichment run.
type EnrichResult struct {
	Processed   int
	Enriched    int
	Failed      int
	Deactivated int
	Errors      int
}

// EnrichBatch enriches up to limit active placeholder records, one at a time
// with the configured delay between words. limit <= 0 selects the
// configured batch size. A word whose store write fails is deactivated and
// the run continues; losing the store aborts the run.
func (s *Service) EnrichBatch(ctx context.Context, limit int) (EnrichResult, error) {
	var res EnrichResult
	if limit <= 0 {
		limit = s.cfg.BatchSize
	}

	pending, err := s.words.ListNeedingDefinition(ctx, limit)
	if err != nil {
		return res, fmt.Errorf("enrich batch: list pending: %w", err)
	}
	s.log.InfoContext(ctx, "batch enrichment started", slog.Int("pending", len(pending)))

	for i := range pending {
		if i > 0 {
			if err := s.sleep(ctx, s.cfg.BatchDelay); err != nil {
				return res, err
			}
		}

		rec := &pending[i]
		res.Processed++

		_, outcome, err := s.enricher.EnrichForBatch(ctx, rec, s.cfg.Languages, s.cfg.MaxFailedAttempts)
		if err != nil {
			if errors.Is(err, domain.ErrStoreUnavailable) || ctx.Err() != nil {
				return res, fmt.Errorf("enrich batch: %q: %w", rec.Word, err)
			}
			res.Errors++
			s.log.ErrorContext(ctx, "word enrichment failed, deactivating",
				slog.String("word", rec.Word),
				slog.String("error", err.Error()),
			)
			if derr := s.enricher.Deactivate(ctx, rec.Word); derr != nil {
				s.log.ErrorContext(ctx, "deactivate word",
					slog.String("word", rec.Word),
					slog.String("error", derr.Error()),
				)
			}
			continue
		}

		switch outcome {
		case enrichment.OutcomeEnriched:
			res.Enriched++
		case enrichment.OutcomeFailed:
			res.Failed++
		case enrichment.OutcomeDeactivated:
			res.Deactivated++
		}
		s.log.DebugContext(ctx, "word processed",
			slog.String("word", rec.Word),
			slog.String("outcome", string(outcome)),
		)
	}

	s.log.InfoContext(ctx, "batch enrichment completed",
		slog.Int("processed", res.Processed),
		slog.Int("enriched", res.Enriched),
		slog.Int("failed", res.Failed),
		slog.Int("deactivated", res.Deactivated),
		slog.Int("errors", res.Errors),
	)
	return res, nil
}
