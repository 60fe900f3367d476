package words

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/vocab-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// DailyCache holds the random sample of the current UTC day.
type DailyCache struct {
	mu            sync.RWMutex
	records       []domain.Word
	generatedDate string

	group singleflight.Group
}

// get returns the cached records and whether they belong to date.
func (c *DailyCache) get(date string) ([]domain.Word, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.records, c.generatedDate != "" && c.generatedDate == date
}

func (c *DailyCache) set(date string, records []domain.Word) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = records
	c.generatedDate = date
}

// DailySample returns the same random sample for every call within one UTC
// day and draws a new one on the first call after the date changes.
// Concurrent regenerations collapse into a single store query. When the
// store fails, the previous day's sample is served if there is one.
func (s *Service) DailySample(ctx context.Context) ([]domain.Word, error) {
	today := s.now().UTC().Format(dateLayout)

	if records, fresh := s.daily.get(today); fresh {
		return slices.Clone(records), nil
	}

	v, err, _ := s.daily.group.Do(today, func() (any, error) {
		if records, fresh := s.daily.get(today); fresh {
			return records, nil
		}
		// Shared by every waiter; one caller going away must not fail the rest.
		records, err := s.words.RandomSample(context.WithoutCancel(ctx), s.cfg.DailySampleSize)
		if err != nil {
			return nil, err
		}
		s.daily.set(today, records)
		s.log.InfoContext(ctx, "daily sample regenerated",
			slog.String("date", today),
			slog.Int("count", len(records)),
		)
		return records, nil
	})
	if err != nil {
		if stale, _ := s.daily.get(today); stale != nil {
			s.log.WarnContext(ctx, "daily sample regeneration failed, serving previous sample",
				slog.String("error", err.Error()),
			)
			return slices.Clone(stale), nil
		}
		return nil, fmt.Errorf("daily sample: %w", err)
	}

	return slices.Clone(v.([]domain.Word)), nil
}
