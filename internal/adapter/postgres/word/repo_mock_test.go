package word

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/heartmarshall/vocab-backend/internal/adapter/postgres"
	"github.com/heartmarshall/vocab-backend/internal/domain"
)

func newMockRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return New(mock, postgres.NewTxManager(mock)), mock
}

func connRefused() error {
	return &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
}

func TestRepo_GetByWord_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{name: "not found", dbErr: pgx.ErrNoRows, wantErr: domain.ErrNotFound},
		{name: "store down", dbErr: connRefused(), wantErr: domain.ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectQuery(`SELECT .+ FROM words WHERE word = \$1`).
				WithArgs("apple").
				WillReturnError(tt.dbErr)

			_, err := repo.GetByWord(context.Background(), "apple")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("GetByWord() error = %v, want %v", err, tt.wantErr)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestRepo_Upsert_RollsBackOnStoreFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO words`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(connRefused())
	mock.ExpectRollback()

	meaning := "A round fruit."
	_, err := repo.Upsert(context.Background(), "apple", domain.WordPatch{Meaning: &meaning})

	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("Upsert() error = %v, want ErrStoreUnavailable", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRepo_DeleteBySource(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM words WHERE source = \$1`).
		WithArgs("preloaded").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := repo.DeleteBySource(context.Background(), domain.SourcePreloaded)
	if err != nil {
		t.Fatalf("DeleteBySource() error = %v", err)
	}
	if n != 3 {
		t.Errorf("DeleteBySource() = %d, want 3", n)
	}
}

func TestRepo_Stats(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS total`).
		WillReturnRows(pgxmock.NewRows([]string{"total", "enriched", "pending", "inactive"}).
			AddRow(10, 4, 5, 1))

	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	want := domain.WordStats{Total: 10, Enriched: 4, Pending: 5, Inactive: 1}
	if stats != want {
		t.Errorf("Stats() = %+v, want %+v", stats, want)
	}
}

func TestRepo_Page_CountFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM words`).
		WithArgs(true).
		WillReturnError(connRefused())

	_, _, err := repo.Page(context.Background(), domain.WordFilter{Limit: 20})
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("Page() error = %v, want ErrStoreUnavailable", err)
	}
}

func TestRepo_Ping(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	repo := New(mock, postgres.NewTxManager(mock))

	mock.ExpectPing().WillReturnError(connRefused())

	if err := repo.Ping(context.Background()); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("Ping() error = %v, want ErrStoreUnavailable", err)
	}
}

func TestUpsertQuery_OnlyPatchedColumns(t *testing.T) {
	t.Parallel()

	example := "She ate an apple."
	query, args, err := upsertQuery("apple", domain.WordPatch{
		Example:      &example,
		Translations: domain.Translations{"es": "manzana", "te": ""},
	}).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}

	if !strings.HasPrefix(query, "INSERT INTO words (word,example,translations) VALUES ($1,$2,$3)") {
		t.Errorf("unexpected insert head: %s", query)
	}
	if strings.Contains(query, "meaning = EXCLUDED.meaning") {
		t.Error("unpatched column must not be updated")
	}
	if !strings.Contains(query, "translations = $4::jsonb || words.translations || $5::jsonb") {
		t.Errorf("translations merge clause missing: %s", query)
	}
	if len(args) != 5 {
		t.Fatalf("len(args) = %d, want 5", len(args))
	}
	if defaults := args[3].(map[string]string); len(defaults) != 1 || defaults["te"] != "" {
		t.Errorf("defaults arg = %v, want {te:\"\"}", defaults)
	}
	if values := args[4].(map[string]string); values["es"] != "manzana" || len(values) != 1 {
		t.Errorf("values arg = %v, want {es:manzana}", values)
	}
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	if got := escapeLike(`50%_a\b`); got != `50\%\_a\\b` {
		t.Errorf("escapeLike() = %q", got)
	}
}
