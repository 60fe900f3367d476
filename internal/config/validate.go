package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	knownDrivers      = []string{DriverPostgres, DriverSQLite}
	knownTranslations = []string{TranslationLibre, TranslationMyMemory, TranslationStub}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if !slices.Contains(knownDrivers, c.Database.Driver) {
		return fmt.Errorf("database.driver must be one of %v (got %q)", knownDrivers, c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}

	if !slices.Contains(knownTranslations, c.Translation.Provider) {
		return fmt.Errorf("translation.provider must be one of %v (got %q)", knownTranslations, c.Translation.Provider)
	}

	if err := c.Enrichment.validate(); err != nil {
		return fmt.Errorf("enrichment: %w", err)
	}
	if err := c.Query.validate(); err != nil {
		return fmt.Errorf("query: %w", err)
	}

	return nil
}

func (e *EnrichmentConfig) validate() error {
	if e.PartialRetryAfter < 0 {
		return fmt.Errorf("partial_retry_after must be >= 0 (got %v)", e.PartialRetryAfter)
	}
	if e.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", e.BatchSize)
	}
	if e.BatchDelay < 0 {
		return fmt.Errorf("batch_delay must be >= 0 (got %v)", e.BatchDelay)
	}
	if e.MaxFailedAttempts <= 0 {
		return fmt.Errorf("max_failed_attempts must be > 0 (got %d)", e.MaxFailedAttempts)
	}

	langs, err := ParseLanguages(e.BatchLanguagesRaw)
	if err != nil {
		return fmt.Errorf("batch_languages: %w", err)
	}
	e.BatchLanguages = langs

	return nil
}

func (q *QueryConfig) validate() error {
	if q.DailySampleSize <= 0 {
		return fmt.Errorf("daily_sample_size must be > 0 (got %d)", q.DailySampleSize)
	}
	if q.DefaultPageSize <= 0 || q.DefaultPageSize > q.MaxPageSize {
		return fmt.Errorf("default_page_size must be in [1, max_page_size] (got %d)", q.DefaultPageSize)
	}
	if q.DefaultSearchLimit <= 0 || q.DefaultSearchLimit > q.MaxSearchLimit {
		return fmt.Errorf("default_search_limit must be in [1, max_search_limit] (got %d)", q.DefaultSearchLimit)
	}
	return nil
}

// ParseLanguages parses a comma-separated list of two-letter language codes
// (e.g. "es,hi,te"). Duplicates are dropped; an empty string is an error.
func ParseLanguages(raw string) ([]string, error) {
	var langs []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if len(p) != 2 {
			return nil, fmt.Errorf("invalid language code %q", p)
		}
		if !slices.Contains(langs, p) {
			langs = append(langs, p)
		}
	}
	if len(langs) == 0 {
		return nil, fmt.Errorf("at least one language is required")
	}
	return langs, nil
}
