package maintenance

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/heartmarshall/vocab-backend/internal/domain"
	"github.com/heartmarshall/vocab-backend/internal/wordlist"
)

const preloadBatchSize = 100

// PreloadResult summarizes a preload run.
type PreloadResult struct {
	Read     int
	Accepted int
	Inserted int
	Skipped  int
	Deleted  int
}

// Preload imports a word list in the given format. Entries are normalized and
// filtered to plain lowercase words; each accepted word is stored with
// placeholder meaning and example and its frequency score. Words already in
// the store are left untouched. Unless keep is set, previously preloaded
// records are removed first.
func (s *Service) Preload(ctx context.Context, r io.Reader, format wordlist.Format, keep bool) (PreloadResult, error) {
	var res PreloadResult

	list, err := wordlist.Read(r, format)
	if err != nil {
		return res, fmt.Errorf("preload: %w", err)
	}
	candidates := list.Words
	res.Read = list.Read
	res.Accepted = len(candidates)

	if !keep {
		deleted, err := s.words.DeleteBySource(ctx, domain.SourcePreloaded)
		if err != nil {
			return res, fmt.Errorf("preload: clear previous: %w", err)
		}
		res.Deleted = deleted
		s.log.InfoContext(ctx, "removed preloaded words", slog.Int("count", deleted))
	}

	for start := 0; start < len(candidates); start += preloadBatchSize {
		end := min(start+preloadBatchSize, len(candidates))

		batch := make([]domain.Word, 0, end-start)
		for _, w := range candidates[start:end] {
			batch = append(batch, preloadRecord(w))
		}

		inserted, err := s.words.InsertMissing(ctx, batch)
		if err != nil {
			return res, fmt.Errorf("preload: insert batch at %d: %w", start, err)
		}
		res.Inserted += inserted

		s.log.DebugContext(ctx, "preload batch stored",
			slog.Int("offset", start),
			slog.Int("inserted", inserted),
		)
	}
	res.Skipped = res.Accepted - res.Inserted

	s.log.InfoContext(ctx, "preload completed",
		slog.Int("read", res.Read),
		slog.Int("accepted", res.Accepted),
		slog.Int("inserted", res.Inserted),
		slog.Int("skipped", res.Skipped),
	)
	return res, nil
}

func preloadRecord(w string) domain.Word {
	return domain.Word{
		Word:         w,
		Meaning:      domain.PreloadMeaning(w),
		Example:      domain.PreloadExample(w),
		Synonyms:     []string{},
		Antonyms:     []string{},
		Translations: domain.Translations{},
		Source:       domain.SourcePreloaded,
		Frequency:    domain.FrequencyScore(w),
		IsActive:     true,
		Completeness: domain.CompletenessPlaceholder,
	}
}
