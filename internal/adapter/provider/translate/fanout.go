// Package translate implements the translation providers and the per-language
// fan-out used by the enrichment service.
package translate

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/vocab-backend/internal/domain"
)

const (
	sourceLanguage = "en"
	maxBodyBytes   = 1 << 16

	defaultTimeout = 8 * time.Second
)

// Translator translates one English word into one target language.
type Translator interface {
	Name() string
	Translate(ctx context.Context, word, target string) (string, error)
}

// FanOut issues one Translator call per language concurrently and settles
// all of them. A failing language yields an empty string and never affects
// the others.
type FanOut struct {
	translator Translator
	timeout    time.Duration
	log        *slog.Logger
}

// NewFanOut creates a FanOut with a per-language timeout (8s when <= 0).
func NewFanOut(translator Translator, timeout time.Duration, logger *slog.Logger) *FanOut {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &FanOut{
		translator: translator,
		timeout:    timeout,
		log:        logger.With("adapter", "translate", "provider", translator.Name()),
	}
}

// FetchTranslations returns one entry per requested language. It never fails.
func (f *FanOut) FetchTranslations(ctx context.Context, word string, langs []string) domain.Translations {
	results := make([]string, len(langs))

	var g errgroup.Group
	for i, lang := range langs {
		g.Go(func() error {
			results[i] = f.translateOne(ctx, word, lang)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // goroutines never return an error

	out := make(domain.Translations, len(langs))
	for i, lang := range langs {
		out[lang] = results[i]
	}
	return out
}

func (f *FanOut) translateOne(ctx context.Context, word, lang string) string {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	text, err := f.translator.Translate(ctx, word, lang)
	if err != nil {
		f.log.WarnContext(ctx, "translation failed",
			slog.String("word", word),
			slog.String("lang", lang),
			slog.String("error", err.Error()),
		)
		return ""
	}
	return text
}
