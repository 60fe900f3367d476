// Package word implements the word record store on PostgreSQL.
package word

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/vocab-backend/internal/adapter/postgres"
	"github.com/heartmarshall/vocab-backend/internal/domain"
)

// insertChunk bounds the rows of one multi-row INSERT so the statement stays
// far below the 65535 bind parameter limit.
const insertChunk = 1000

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	db  postgres.DB
	txm *postgres.TxManager
}

// New creates a new word repository.
func New(db postgres.DB, txm *postgres.TxManager) *Repo {
	return &Repo{db: db, txm: txm}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByWord returns the record for a normalized word.
// Returns domain.ErrNotFound if absent.
func (r *Repo) GetByWord(ctx context.Context, word string) (*domain.Word, error) {
	query, args, err := psql.Select(columns...).
		From(table).
		Where(squirrel.Eq{"word": word}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row wordRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "word", word)
	}
	return row.toDomain(), nil
}

// FindByPrefix returns up to limit active words starting with prefix in
// ascending order. excludeID, when set, is left out of the result.
func (r *Repo) FindByPrefix(ctx context.Context, prefix string, limit int, excludeID *uuid.UUID) ([]domain.Word, error) {
	if prefix == "" || limit <= 0 {
		return []domain.Word{}, nil
	}

	where := squirrel.And{
		squirrel.Eq{"is_active": true},
		squirrel.Like{"word": escapeLike(strings.ToLower(prefix)) + "%"},
	}
	if excludeID != nil {
		where = append(where, squirrel.NotEq{"id": *excludeID})
	}

	return r.list(ctx, "find by prefix", psql.Select(columns...).
		From(table).
		Where(where).
		OrderBy("word ASC").
		Limit(uint64(limit)))
}

// Page returns one page of active words and the total number of matches.
func (r *Repo) Page(ctx context.Context, f domain.WordFilter) ([]domain.Word, int, error) {
	where := squirrel.And{squirrel.Eq{"is_active": true}}
	if f.Search != "" {
		where = append(where, squirrel.ILike{"word": "%" + escapeLike(f.Search) + "%"})
	}

	countSQL, countArgs, err := psql.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &total, countSQL, countArgs...); err != nil {
		return nil, 0, postgres.MapError(err, "words", "count")
	}
	if total == 0 || f.Limit <= 0 {
		return []domain.Word{}, total, nil
	}

	words, err := r.list(ctx, "page", psql.Select(columns...).
		From(table).
		Where(where).
		OrderBy(orderBy(f.SortBy)...).
		Limit(uint64(f.Limit)).
		Offset(uint64(max(f.Offset, 0))))
	if err != nil {
		return nil, 0, err
	}
	return words, total, nil
}

// RandomSample returns up to n active words drawn uniformly at random.
func (r *Repo) RandomSample(ctx context.Context, n int) ([]domain.Word, error) {
	if n <= 0 {
		return []domain.Word{}, nil
	}
	return r.list(ctx, "random sample", psql.Select(columns...).
		From(table).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("random()").
		Limit(uint64(n)))
}

// ListNeedingDefinition returns active placeholder words, least recently
// fetched first.
func (r *Repo) ListNeedingDefinition(ctx context.Context, limit int) ([]domain.Word, error) {
	if limit <= 0 {
		return []domain.Word{}, nil
	}
	return r.list(ctx, "list needing definition", psql.Select(columns...).
		From(table).
		Where(squirrel.Eq{"is_active": true, "completeness": string(domain.CompletenessPlaceholder)}).
		OrderBy("last_fetched ASC NULLS FIRST", "word ASC").
		Limit(uint64(limit)))
}

type statsRow struct {
	Total    int `db:"total"`
	Enriched int `db:"enriched"`
	Pending  int `db:"pending"`
	Inactive int `db:"inactive"`
}

// Stats counts all, enriched, pending (active placeholder) and inactive words.
func (r *Repo) Stats(ctx context.Context) (domain.WordStats, error) {
	query, args, err := psql.Select(
		"COUNT(*) AS total",
		"COUNT(*) FILTER (WHERE source = 'enriched') AS enriched",
		"COUNT(*) FILTER (WHERE is_active AND completeness = 'placeholder') AS pending",
		"COUNT(*) FILTER (WHERE NOT is_active) AS inactive",
	).From(table).ToSql()
	if err != nil {
		return domain.WordStats{}, fmt.Errorf("build query: %w", err)
	}

	var row statsRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return domain.WordStats{}, postgres.MapError(err, "words", "stats")
	}
	return domain.WordStats(row), nil
}

// Ping checks that the database is reachable.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return domain.StoreUnavailable("ping", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Upsert merges patch into the row for word, inserting it when absent, and
// returns the merged row. Only the patched columns are written. Translation
// keys merge per key: non-empty values overwrite, empty values are only
// recorded for absent keys. Completeness is recomputed in the same transaction.
func (r *Repo) Upsert(ctx context.Context, word string, patch domain.WordPatch) (*domain.Word, error) {
	query, args, err := upsertQuery(word, patch).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert: %w", err)
	}

	var result *domain.Word
	err = r.txm.RunInTx(ctx, func(txCtx context.Context) error {
		q := postgres.QuerierFromCtx(txCtx, r.db)

		var row wordRow
		if err := pgxscan.Get(txCtx, q, &row, query, args...); err != nil {
			return fmt.Errorf("upsert: %w", err)
		}
		w := row.toDomain()

		if c := domain.ComputeCompleteness(w); c != w.Completeness {
			if _, err := q.Exec(txCtx, `UPDATE words SET completeness = $1 WHERE id = $2`, string(c), w.ID); err != nil {
				return fmt.Errorf("update completeness: %w", err)
			}
			w.Completeness = c
		}

		result = w
		return nil
	})
	if err != nil {
		return nil, postgres.MapError(err, "word", word)
	}
	return result, nil
}

func upsertQuery(word string, p domain.WordPatch) squirrel.InsertBuilder {
	cols := []string{"word"}
	vals := []any{word}
	var sets []string
	var setArgs []any

	set := func(col string, v any) {
		cols = append(cols, col)
		vals = append(vals, v)
		sets = append(sets, col+" = EXCLUDED."+col)
	}

	if p.Meaning != nil {
		set("meaning", *p.Meaning)
	}
	if p.Example != nil {
		set("example", *p.Example)
	}
	if p.Phonetic != nil {
		set("phonetic", *p.Phonetic)
	}
	if p.PartOfSpeech != nil {
		set("part_of_speech", *p.PartOfSpeech)
	}
	if p.Synonyms != nil {
		set("synonyms", domain.CapRelated(p.Synonyms))
	}
	if p.Antonyms != nil {
		set("antonyms", domain.CapRelated(p.Antonyms))
	}
	if p.Source != nil {
		set("source", string(*p.Source))
	}
	if p.Frequency != nil {
		set("frequency", *p.Frequency)
	}
	if p.LastFetched != nil {
		set("last_fetched", *p.LastFetched)
	}
	if p.IsActive != nil {
		set("is_active", *p.IsActive)
	}
	if p.FailedAttempts != nil {
		set("failed_attempts", *p.FailedAttempts)
	}
	if len(p.Translations) > 0 {
		values, defaults := p.SplitTranslations()
		cols = append(cols, "translations")
		vals = append(vals, map[string]string(p.Translations))
		// defaults never beat stored keys, values always do.
		sets = append(sets, "translations = ?::jsonb || words.translations || ?::jsonb")
		setArgs = append(setArgs, map[string]string(defaults), map[string]string(values))
	}
	sets = append(sets, "updated_at = now()")

	suffix := "ON CONFLICT (word) DO UPDATE SET " + strings.Join(sets, ", ") +
		" RETURNING " + strings.Join(columns, ", ")

	return psql.Insert(table).
		Columns(cols...).
		Values(vals...).
		SuffixExpr(squirrel.Expr(suffix, setArgs...))
}

// InsertMissing inserts words that are not stored yet and returns how many
// rows were created. Existing words are left untouched.
func (r *Repo) InsertMissing(ctx context.Context, words []domain.Word) (int, error) {
	inserted := 0
	for start := 0; start < len(words); start += insertChunk {
		chunk := words[start:min(start+insertChunk, len(words))]

		b := psql.Insert(table).Columns(
			"id", "word", "meaning", "example", "phonetic", "part_of_speech",
			"synonyms", "antonyms", "translations", "source", "frequency",
			"is_active", "completeness",
		)
		for _, w := range chunk {
			id := w.ID
			if id == uuid.Nil {
				id = uuid.New()
			}
			tr := map[string]string(w.Translations)
			if tr == nil {
				tr = map[string]string{}
			}
			b = b.Values(
				id, w.Word, w.Meaning, w.Example, w.Phonetic, w.PartOfSpeech,
				domain.CapRelated(w.Synonyms), domain.CapRelated(w.Antonyms), tr,
				string(w.Source), w.Frequency, w.IsActive, string(domain.ComputeCompleteness(&w)),
			)
		}

		query, args, err := b.Suffix("ON CONFLICT (word) DO NOTHING").ToSql()
		if err != nil {
			return inserted, fmt.Errorf("build insert: %w", err)
		}

		tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
		if err != nil {
			return inserted, postgres.MapError(err, "words", "insert missing")
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// DeleteBySource removes every word of one source category and returns the
// number of deleted rows.
func (r *Repo) DeleteBySource(ctx context.Context, source domain.Source) (int, error) {
	query, args, err := psql.Delete(table).Where(squirrel.Eq{"source": string(source)}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "words", string(source))
	}
	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) list(ctx context.Context, op string, b squirrel.SelectBuilder) ([]domain.Word, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []wordRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "words", op)
	}
	return toDomainList(rows), nil
}

func orderBy(key domain.SortKey) []string {
	switch key {
	case domain.SortReverse:
		return []string{"word DESC"}
	case domain.SortFrequency:
		return []string{"frequency DESC", "word ASC"}
	default:
		return []string{"word ASC"}
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
