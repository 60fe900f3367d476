package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vocab-backend/internal/adapter/provider/freedict"
	"github.com/heartmarshall/vocab-backend/internal/adapter/provider/translate"
	"github.com/heartmarshall/vocab-backend/internal/config"
	"github.com/heartmarshall/vocab-backend/internal/service/enrichment"
	"github.com/heartmarshall/vocab-backend/internal/service/maintenance"
	"github.com/heartmarshall/vocab-backend/internal/service/words"
)

// App holds the wired services for one process.
type App struct {
	Config      *config.Config
	Logger      *slog.Logger
	Store       WordStore
	Enrichment  *enrichment.Service
	Words       *words.Service
	Maintenance *maintenance.Service

	closeStore func()
}

// New connects the word store and wires the providers and services.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, closeStore, err := OpenStore(ctx, cfg.Database, cfg.Database.AutoMigrate, logger)
	if err != nil {
		return nil, err
	}

	translator, err := newTranslator(cfg.Translation)
	if err != nil {
		closeStore()
		return nil, err
	}

	dict := freedict.NewProvider(cfg.Dictionary.BaseURL, cfg.Dictionary.Timeout, logger)
	fanout := translate.NewFanOut(translator, cfg.Translation.Timeout, logger)

	enrichSvc := enrichment.NewService(logger, store, dict, fanout, cfg.Enrichment.PartialRetryAfter)

	wordsSvc := words.NewService(logger, store, enrichSvc, words.Config{
		DailySampleSize:    cfg.Query.DailySampleSize,
		DefaultPageSize:    cfg.Query.DefaultPageSize,
		MaxPageSize:        cfg.Query.MaxPageSize,
		DefaultSearchLimit: cfg.Query.DefaultSearchLimit,
		MaxSearchLimit:     cfg.Query.MaxSearchLimit,
	})

	maintSvc := maintenance.NewService(logger, store, enrichSvc, maintenance.Config{
		BatchSize:         cfg.Enrichment.BatchSize,
		BatchDelay:        cfg.Enrichment.BatchDelay,
		MaxFailedAttempts: cfg.Enrichment.MaxFailedAttempts,
		Languages:         cfg.Enrichment.BatchLanguages,
	})

	logger.InfoContext(ctx, "application wired",
		slog.String("version", BuildVersion()),
		slog.String("driver", cfg.Database.Driver),
		slog.String("translation_provider", translator.Name()),
	)

	return &App{
		Config:      cfg,
		Logger:      logger,
		Store:       store,
		Enrichment:  enrichSvc,
		Words:       wordsSvc,
		Maintenance: maintSvc,
		closeStore:  closeStore,
	}, nil
}

// Close releases the store connection.
func (a *App) Close() {
	if a.closeStore != nil {
		a.closeStore()
	}
}

func newTranslator(cfg config.TranslationConfig) (translate.Translator, error) {
	switch cfg.Provider {
	case config.TranslationLibre:
		return translate.NewLibreTranslate(cfg.BaseURL, cfg.APIKey), nil
	case config.TranslationMyMemory:
		return translate.NewMyMemory(cfg.BaseURL, cfg.Email), nil
	case config.TranslationStub:
		return translate.NewStub(), nil
	default:
		return nil, fmt.Errorf("unknown translation provider %q", cfg.Provider)
	}
}
