package maintenance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/vocab-backend/internal/domain"
	"github.com/heartmarshall/vocab-backend/internal/service/enrichment"
	"github.com/heartmarshall/vocab-backend/internal/wordlist"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type wordStoreMock struct {
	InsertMissingFunc         func(ctx context.Context, words []domain.Word) (int, error)
	DeleteBySourceFunc        func(ctx context.Context, source domain.Source) (int, error)
	ListNeedingDefinitionFunc func(ctx context.Context, limit int) ([]domain.Word, error)
	StatsFunc                 func(ctx context.Context) (domain.WordStats, error)
}

func (m *wordStoreMock) InsertMissing(ctx context.Context, words []domain.Word) (int, error) {
	return m.InsertMissingFunc(ctx, words)
}

func (m *wordStoreMock) DeleteBySource(ctx context.Context, source domain.Source) (int, error) {
	return m.DeleteBySourceFunc(ctx, source)
}

func (m *wordStoreMock) ListNeedingDefinition(ctx context.Context, limit int) ([]domain.Word, error) {
	return m.ListNeedingDefinitionFunc(ctx, limit)
}

func (m *wordStoreMock) Stats(ctx context.Context) (domain.WordStats, error) {
	return m.StatsFunc(ctx)
}

type batchEnricherMock struct {
	EnrichForBatchFunc func(ctx context.Context, rec *domain.Word, langs []string, maxFailed int) (*domain.Word, enrichment.Outcome, error)
	DeactivateFunc     func(ctx context.Context, word string) error
}

func (m *batchEnricherMock) EnrichForBatch(ctx context.Context, rec *domain.Word, langs []string, maxFailed int) (*domain.Word, enrichment.Outcome, error) {
	return m.EnrichForBatchFunc(ctx, rec, langs, maxFailed)
}

func (m *batchEnricherMock) Deactivate(ctx context.Context, word string) error {
	return m.DeactivateFunc(ctx, word)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var testConfig = Config{
	BatchSize:         500,
	BatchDelay:        time.Second,
	MaxFailedAttempts: 3,
	Languages:         []string{"es", "fr", "de", "hi", "te"},
}

func newTestService(store wordStore, enr batchEnricher) (*Service, *[]time.Duration) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(logger, store, enr, testConfig)
	var slept []time.Duration
	svc.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return ctx.Err()
	}
	return svc, &slept
}

func pendingWords(names ...string) []domain.Word {
	out := make([]domain.Word, len(names))
	for i, n := range names {
		out[i] = domain.Word{Word: n, IsActive: true, Completeness: domain.CompletenessPlaceholder}
	}
	return out
}

// ---------------------------------------------------------------------------
// Preload
// ---------------------------------------------------------------------------

func TestPreload_FiltersAndBuildsPlaceholders(t *testing.T) {
	t.Parallel()

	var stored []domain.Word
	store := &wordStoreMock{
		DeleteBySourceFunc: func(_ context.Context, src domain.Source) (int, error) {
			assert.Equal(t, domain.SourcePreloaded, src)
			return 7, nil
		},
		InsertMissingFunc: func(_ context.Context, words []domain.Word) (int, error) {
			stored = append(stored, words...)
			return len(words), nil
		},
	}
	svc, _ := newTestService(store, nil)

	list := "Apple\n\n  running \nx\nco-op\nnaïve\nabcdefghijklmnopqrstu\napple\n123\n"
	res, err := svc.Preload(context.Background(), strings.NewReader(list), wordlist.FormatPlain, false)
	require.NoError(t, err)

	assert.Equal(t, PreloadResult{Read: 8, Accepted: 2, Inserted: 2, Skipped: 0, Deleted: 7}, res)
	require.Len(t, stored, 2)

	apple := stored[0]
	assert.Equal(t, "apple", apple.Word)
	assert.Equal(t, "Definition for apple", apple.Meaning)
	assert.Equal(t, `Example sentence with "apple"`, apple.Example)
	assert.Equal(t, domain.SourcePreloaded, apple.Source)
	assert.Equal(t, domain.FrequencyScore("apple"), apple.Frequency)
	assert.True(t, apple.IsActive)
	assert.Equal(t, domain.CompletenessPlaceholder, apple.Completeness)
	assert.NotNil(t, apple.Translations)

	assert.Equal(t, "running", stored[1].Word)
}

func TestPreload_KeepSkipsDelete(t *testing.T) {
	t.Parallel()

	store := &wordStoreMock{
		DeleteBySourceFunc: func(context.Context, domain.Source) (int, error) {
			t.Fatal("delete must not run with keep")
			return 0, nil
		},
		InsertMissingFunc: func(_ context.Context, words []domain.Word) (int, error) {
			return len(words) - 1, nil
		},
	}
	svc, _ := newTestService(store, nil)

	res, err := svc.Preload(context.Background(), strings.NewReader("apple\nbanana\n"), wordlist.FormatPlain, true)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Skipped)
}

func TestPreload_Batches(t *testing.T) {
	t.Parallel()

	var sizes []int
	store := &wordStoreMock{
		InsertMissingFunc: func(_ context.Context, words []domain.Word) (int, error) {
			sizes = append(sizes, len(words))
			return len(words), nil
		},
	}
	svc, _ := newTestService(store, nil)

	var b strings.Builder
	for i := range 250 {
		b.WriteString("w")
		for n := i; ; n /= 26 {
			b.WriteByte(byte('a' + n%26))
			if n < 26 {
				break
			}
		}
		b.WriteByte('\n')
	}

	res, err := svc.Preload(context.Background(), strings.NewReader(b.String()), wordlist.FormatPlain, true)
	require.NoError(t, err)
	assert.Equal(t, []int{100, 100, 50}, sizes)
	assert.Equal(t, 250, res.Inserted)
}

func TestPreload_InsertError(t *testing.T) {
	t.Parallel()

	store := &wordStoreMock{
		InsertMissingFunc: func(context.Context, []domain.Word) (int, error) {
			return 0, domain.StoreUnavailable("insert", errors.New("refused"))
		},
	}
	svc, _ := newTestService(store, nil)

	_, err := svc.Preload(context.Background(), strings.NewReader("apple\n"), wordlist.FormatPlain, true)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

// ---------------------------------------------------------------------------
// EnrichBatch
// ---------------------------------------------------------------------------

func TestEnrichBatch_CountsOutcomes(t *testing.T) {
	t.Parallel()

	outcomes := map[string]enrichment.Outcome{
		"alpha": enrichment.OutcomeEnriched,
		"beta":  enrichment.OutcomeFailed,
		"gamma": enrichment.OutcomeDeactivated,
	}
	var gotLimit int
	store := &wordStoreMock{
		ListNeedingDefinitionFunc: func(_ context.Context, limit int) ([]domain.Word, error) {
			gotLimit = limit
			return pendingWords("alpha", "beta", "gamma"), nil
		},
	}
	enr := &batchEnricherMock{
		EnrichForBatchFunc: func(_ context.Context, rec *domain.Word, langs []string, maxFailed int) (*domain.Word, enrichment.Outcome, error) {
			assert.Equal(t, testConfig.Languages, langs)
			assert.Equal(t, 3, maxFailed)
			return rec, outcomes[rec.Word], nil
		},
	}
	svc, slept := newTestService(store, enr)

	res, err := svc.EnrichBatch(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 500, gotLimit)
	assert.Equal(t, EnrichResult{Processed: 3, Enriched: 1, Failed: 1, Deactivated: 1}, res)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, *slept, "delay between words only")
}

func TestEnrichBatch_WordErrorDeactivatesAndContinues(t *testing.T) {
	t.Parallel()

	var deactivated []string
	store := &wordStoreMock{
		ListNeedingDefinitionFunc: func(_ context.Context, limit int) ([]domain.Word, error) {
			assert.Equal(t, 2, limit)
			return pendingWords("bad", "good"), nil
		},
	}
	enr := &batchEnricherMock{
		EnrichForBatchFunc: func(_ context.Context, rec *domain.Word, _ []string, _ int) (*domain.Word, enrichment.Outcome, error) {
			if rec.Word == "bad" {
				return nil, "", errors.New("check constraint violated")
			}
			return rec, enrichment.OutcomeEnriched, nil
		},
		DeactivateFunc: func(_ context.Context, word string) error {
			deactivated = append(deactivated, word)
			return nil
		},
	}
	svc, _ := newTestService(store, enr)

	res, err := svc.EnrichBatch(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"bad"}, deactivated)
	assert.Equal(t, EnrichResult{Processed: 2, Enriched: 1, Errors: 1}, res)
}

func TestEnrichBatch_StoreUnavailableAborts(t *testing.T) {
	t.Parallel()

	calls := 0
	store := &wordStoreMock{
		ListNeedingDefinitionFunc: func(context.Context, int) ([]domain.Word, error) {
			return pendingWords("one", "two", "three"), nil
		},
	}
	enr := &batchEnricherMock{
		EnrichForBatchFunc: func(context.Context, *domain.Word, []string, int) (*domain.Word, enrichment.Outcome, error) {
			calls++
			return nil, "", domain.StoreUnavailable("upsert", errors.New("connection refused"))
		},
		DeactivateFunc: func(context.Context, string) error {
			t.Fatal("no deactivation when the store is gone")
			return nil
		},
	}
	svc, _ := newTestService(store, enr)

	res, err := svc.EnrichBatch(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, res.Processed)
}

func TestEnrichBatch_CancelledDuringDelay(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	store := &wordStoreMock{
		ListNeedingDefinitionFunc: func(context.Context, int) ([]domain.Word, error) {
			return pendingWords("one", "two"), nil
		},
	}
	enr := &batchEnricherMock{
		EnrichForBatchFunc: func(_ context.Context, rec *domain.Word, _ []string, _ int) (*domain.Word, enrichment.Outcome, error) {
			cancel()
			return rec, enrichment.OutcomeEnriched, nil
		},
	}
	svc, _ := newTestService(store, enr)

	res, err := svc.EnrichBatch(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, res.Processed)
}

func TestEnrichBatch_ListError(t *testing.T) {
	t.Parallel()

	store := &wordStoreMock{
		ListNeedingDefinitionFunc: func(context.Context, int) ([]domain.Word, error) {
			return nil, domain.StoreUnavailable("list", errors.New("refused"))
		},
	}
	svc, _ := newTestService(store, nil)

	_, err := svc.EnrichBatch(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestSleepCtx(t *testing.T) {
	t.Parallel()

	require.NoError(t, sleepCtx(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepCtx(ctx, time.Hour), context.Canceled)
}

// ---------------------------------------------------------------------------
// Verify
// ---------------------------------------------------------------------------

func TestVerify(t *testing.T) {
	t.Parallel()

	want := domain.WordStats{Total: 10, Enriched: 4, Pending: 5, Inactive: 1}
	store := &wordStoreMock{
		StatsFunc: func(context.Context) (domain.WordStats, error) { return want, nil },
	}
	svc, _ := newTestService(store, nil)

	got, err := svc.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.InDelta(t, 40.0, got.CompletionPercent(), 0.001)
}
