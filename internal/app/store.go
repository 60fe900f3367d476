package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/vocab-backend/internal/adapter/postgres"
	pgword "github.com/heartmarshall/vocab-backend/internal/adapter/postgres/word"
	"github.com/heartmarshall/vocab-backend/internal/adapter/sqlite"
	sqliteword "github.com/heartmarshall/vocab-backend/internal/adapter/sqlite/word"
	"github.com/heartmarshall/vocab-backend/internal/config"
	"github.com/heartmarshall/vocab-backend/internal/domain"
)

// WordStore is the full method set shared by both store backends.
type WordStore interface {
	GetByWord(ctx context.Context, word string) (*domain.Word, error)
	FindByPrefix(ctx context.Context, prefix string, limit int, excludeID *uuid.UUID) ([]domain.Word, error)
	Page(ctx context.Context, f domain.WordFilter) ([]domain.Word, int, error)
	RandomSample(ctx context.Context, n int) ([]domain.Word, error)
	ListNeedingDefinition(ctx context.Context, limit int) ([]domain.Word, error)
	Stats(ctx context.Context) (domain.WordStats, error)
	Ping(ctx context.Context) error
	Upsert(ctx context.Context, word string, patch domain.WordPatch) (*domain.Word, error)
	InsertMissing(ctx context.Context, words []domain.Word) (int, error)
	DeleteBySource(ctx context.Context, source domain.Source) (int, error)
}

var (
	_ WordStore = (*pgword.Repo)(nil)
	_ WordStore = (*sqliteword.Repo)(nil)
)

// OpenStore connects the configured backend. When migrate is set the
// embedded migrations are applied first. The returned func releases the
// connection.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, migrate bool, logger *slog.Logger) (WordStore, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		if migrate {
			applied, err := postgres.Migrate(ctx, cfg.DSN)
			if err != nil {
				return nil, nil, fmt.Errorf("migrate postgres: %w", err)
			}
			logMigrations(ctx, logger, cfg.Driver, applied)
		}

		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.InfoContext(ctx, "connected to word store", slog.String("driver", cfg.Driver))
		return pgword.New(pool, postgres.NewTxManager(pool)), pool.Close, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		if migrate {
			applied, err := sqlite.Migrate(ctx, db)
			if err != nil {
				db.Close()
				return nil, nil, fmt.Errorf("migrate sqlite: %w", err)
			}
			logMigrations(ctx, logger, cfg.Driver, applied)
		}
		logger.InfoContext(ctx, "connected to word store", slog.String("driver", cfg.Driver))
		return sqliteword.New(db, sqlite.NewTxManager(db)), func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func logMigrations(ctx context.Context, logger *slog.Logger, driver string, applied []int64) {
	logger.InfoContext(ctx, "migrations applied",
		slog.String("driver", driver),
		slog.Int("count", len(applied)),
		slog.Any("versions", applied),
	)
}
