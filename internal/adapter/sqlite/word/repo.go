// Package word implements the word record store on SQLite.
package word

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/vocab-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/vocab-backend/internal/domain"
)

const insertChunk = 500

var sq = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Repo provides word persistence backed by SQLite.
type Repo struct {
	db  *sql.DB
	txm *sqlite.TxManager
}

// New creates a new word repository.
func New(db *sql.DB, txm *sqlite.TxManager) *Repo {
	return &Repo{db: db, txm: txm}
}

// GetByWord returns the record for a normalized word.
// Returns domain.ErrNotFound if absent.
func (r *Repo) GetByWord(ctx context.Context, word string) (*domain.Word, error) {
	query, args, err := sq.Select(columns...).From(table).Where(squirrel.Eq{"word": word}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row wordRow
	if err := sqlscan.Get(ctx, sqlite.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, sqlite.MapError(err, "word", word)
	}
	return row.toDomain(), nil
}

// FindByPrefix returns up to limit active words starting with prefix in
// ascending order, leaving out excludeID when set.
func (r *Repo) FindByPrefix(ctx context.Context, prefix string, limit int, excludeID *uuid.UUID) ([]domain.Word, error) {
	if prefix == "" || limit <= 0 {
		return []domain.Word{}, nil
	}

	where := squirrel.And{
		squirrel.Eq{"is_active": true},
		likeExpr(escapeLike(strings.ToLower(prefix)) + "%"),
	}
	if excludeID != nil {
		where = append(where, squirrel.NotEq{"id": *excludeID})
	}

	return r.list(ctx, "find by prefix", sq.Select(columns...).
		From(table).
		Where(where).
		OrderBy("word ASC").
		Limit(uint64(limit)))
}

// Page returns one page of active words and the total number of matches.
func (r *Repo) Page(ctx context.Context, f domain.WordFilter) ([]domain.Word, int, error) {
	where := squirrel.And{squirrel.Eq{"is_active": true}}
	if f.Search != "" {
		// LIKE is case-insensitive for ASCII in SQLite.
		where = append(where, likeExpr("%"+escapeLike(f.Search)+"%"))
	}

	countSQL, countArgs, err := sq.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := sqlscan.Get(ctx, sqlite.QuerierFromCtx(ctx, r.db), &total, countSQL, countArgs...); err != nil {
		return nil, 0, sqlite.MapError(err, "words", "count")
	}
	if total == 0 || f.Limit <= 0 {
		return []domain.Word{}, total, nil
	}

	words, err := r.list(ctx, "page", sq.Select(columns...).
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
	return r.list(ctx, "random sample", sq.Select(columns...).
		From(table).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("random()").
		Limit(uint64(n)))
}

// ListNeedingDefinition returns active placeholder words, least recently
// fetched first. SQLite sorts NULL before any value.
func (r *Repo) ListNeedingDefinition(ctx context.Context, limit int) ([]domain.Word, error) {
	if limit <= 0 {
		return []domain.Word{}, nil
	}
	return r.list(ctx, "list needing definition", sq.Select(columns...).
		From(table).
		Where(squirrel.Eq{"is_active": true, "completeness": string(domain.CompletenessPlaceholder)}).
		OrderBy("last_fetched ASC", "word ASC").
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
	query, args, err := sq.Select(
		"COUNT(*) AS total",
		"COALESCE(SUM(CASE WHEN source = 'enriched' THEN 1 ELSE 0 END), 0) AS enriched",
		"COALESCE(SUM(CASE WHEN is_active AND completeness = 'placeholder' THEN 1 ELSE 0 END), 0) AS pending",
		"COALESCE(SUM(CASE WHEN NOT is_active THEN 1 ELSE 0 END), 0) AS inactive",
	).From(table).ToSql()
	if err != nil {
		return domain.WordStats{}, fmt.Errorf("build query: %w", err)
	}

	var row statsRow
	if err := sqlscan.Get(ctx, sqlite.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return domain.WordStats{}, sqlite.MapError(err, "words", "stats")
	}
	return domain.WordStats(row), nil
}

// Ping checks that the database file is usable.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return domain.StoreUnavailable("ping", err)
	}
	return nil
}

// Upsert merges patch into the row for word, inserting it when absent, and
// returns the merged row. Translations merge per key through json_patch:
// stored keys beat empty defaults, non-empty values beat stored keys.
func (r *Repo) Upsert(ctx context.Context, word string, patch domain.WordPatch) (*domain.Word, error) {
	query, args, err := upsertQuery(uuid.New(), word, patch).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert: %w", err)
	}

	var result *domain.Word
	err = r.txm.RunInTx(ctx, func(txCtx context.Context) error {
		q := sqlite.QuerierFromCtx(txCtx, r.db)

		var id uuid.UUID
		if err := q.QueryRowContext(txCtx, query, args...).Scan(&id); err != nil {
			return fmt.Errorf("upsert: %w", err)
		}

		// Re-read through a plain SELECT: RETURNING columns carry no declared
		// type, so the driver would not decode the TIMESTAMP columns.
		sel, selArgs, err := sq.Select(columns...).From(table).Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}
		var row wordRow
		if err := sqlscan.Get(txCtx, q, &row, sel, selArgs...); err != nil {
			return fmt.Errorf("read back: %w", err)
		}
		w := row.toDomain()

		if c := domain.ComputeCompleteness(w); c != w.Completeness {
			if _, err := q.ExecContext(txCtx, `UPDATE words SET completeness = ? WHERE id = ?`, string(c), w.ID); err != nil {
				return fmt.Errorf("update completeness: %w", err)
			}
			w.Completeness = c
		}

		result = w
		return nil
	})
	if err != nil {
		return nil, sqlite.MapError(err, "word", word)
	}
	return result, nil
}

func upsertQuery(id uuid.UUID, word string, p domain.WordPatch) squirrel.InsertBuilder {
	cols := []string{"id", "word"}
	vals := []any{id, word}
	var sets []string
	var setArgs []any

	set := func(col string, v any) {
		cols = append(cols, col)
		vals = append(vals, v)
		sets = append(sets, col+" = excluded."+col)
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
		set("synonyms", jsonList(domain.CapRelated(p.Synonyms)))
	}
	if p.Antonyms != nil {
		set("antonyms", jsonList(domain.CapRelated(p.Antonyms)))
	}
	if p.Source != nil {
		set("source", string(*p.Source))
	}
	if p.Frequency != nil {
		set("frequency", *p.Frequency)
	}
	if p.LastFetched != nil {
		set("last_fetched", p.LastFetched.UTC())
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
		vals = append(vals, jsonMap(p.Translations))
		sets = append(sets, "translations = json_patch(json_patch(?, words.translations), ?)")
		setArgs = append(setArgs, jsonMap(defaults), jsonMap(values))
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	suffix := "ON CONFLICT (word) DO UPDATE SET " + strings.Join(sets, ", ") + " RETURNING id"

	return sq.Insert(table).
		Columns(cols...).
		Values(vals...).
		SuffixExpr(squirrel.Expr(suffix, setArgs...))
}

// InsertMissing inserts words that are not stored yet and returns how many
// rows were created.
func (r *Repo) InsertMissing(ctx context.Context, words []domain.Word) (int, error) {
	inserted := 0
	for start := 0; start < len(words); start += insertChunk {
		chunk := words[start:min(start+insertChunk, len(words))]

		b := sq.Insert(table).Columns(
			"id", "word", "meaning", "example", "phonetic", "part_of_speech",
			"synonyms", "antonyms", "translations", "source", "frequency",
			"is_active", "completeness",
		)
		for _, w := range chunk {
			id := w.ID
			if id == uuid.Nil {
				id = uuid.New()
			}
			b = b.Values(
				id, w.Word, w.Meaning, w.Example, w.Phonetic, w.PartOfSpeech,
				jsonList(domain.CapRelated(w.Synonyms)), jsonList(domain.CapRelated(w.Antonyms)),
				jsonMap(w.Translations), string(w.Source), w.Frequency, w.IsActive,
				string(domain.ComputeCompleteness(&w)),
			)
		}

		query, args, err := b.Suffix("ON CONFLICT (word) DO NOTHING").ToSql()
		if err != nil {
			return inserted, fmt.Errorf("build insert: %w", err)
		}

		res, err := sqlite.QuerierFromCtx(ctx, r.db).ExecContext(ctx, query, args...)
		if err != nil {
			return inserted, sqlite.MapError(err, "words", "insert missing")
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("rows affected: %w", err)
		}
		inserted += int(n)
	}
	return inserted, nil
}

// DeleteBySource removes every word of one source category and returns the
// number of deleted rows.
func (r *Repo) DeleteBySource(ctx context.Context, source domain.Source) (int, error) {
	query, args, err := sq.Delete(table).Where(squirrel.Eq{"source": string(source)}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	res, err := sqlite.QuerierFromCtx(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, sqlite.MapError(err, "words", string(source))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

func (r *Repo) list(ctx context.Context, op string, b squirrel.SelectBuilder) ([]domain.Word, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []wordRow
	if err := sqlscan.Select(ctx, sqlite.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, sqlite.MapError(err, "words", op)
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

func likeExpr(pattern string) squirrel.Sqlizer {
	return squirrel.Expr(`word LIKE ? ESCAPE '\'`, pattern)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
