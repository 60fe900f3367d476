// Package freedict implements the definition provider backed by the
// FreeDictionary API (dictionaryapi.dev).
package freedict

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/vocab-backend/internal/domain"
	"github.com/heartmarshall/vocab-backend/internal/provider"
)

// DefaultBaseURL is the public FreeDictionary endpoint for English entries.
const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

const (
	defaultTimeout    = 10 * time.Second
	defaultRetryDelay = 500 * time.Millisecond
	maxBodyBytes      = 1 << 20
)

// errNotFound is returned by fetch when the API answers 404.
var errNotFound = errors.New("word not found")

// Provider fetches definitions from the FreeDictionary API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
	log        *slog.Logger
}

// NewProvider creates a Provider. An empty baseURL selects DefaultBaseURL,
// a non-positive timeout selects 10s.
func NewProvider(baseURL string, timeout time.Duration, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: defaultRetryDelay,
		log:        logger.With("adapter", "freedict"),
	}
}

// FetchDefinition returns the first definition of the first meaning of the
// first entry for word. It never fails: any error yields the fallback
// placeholder with Found set to false.
func (p *Provider) FetchDefinition(ctx context.Context, word string) provider.DefinitionResult {
	entries, err := p.fetch(ctx, word)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, errNotFound) {
			level = slog.LevelInfo
		}
		p.log.Log(ctx, level, "dictionary lookup failed, using placeholder",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return Placeholder(word)
	}

	result, ok := mapAPIResponse(word, entries)
	if !ok {
		p.log.WarnContext(ctx, "dictionary returned no definition, using placeholder", slog.String("word", word))
		return Placeholder(word)
	}

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.String("part_of_speech", result.PartOfSpeech),
		slog.Int("synonyms", len(result.Synonyms)),
	)

	return result
}

// Placeholder is the deterministic result used when a lookup fails.
func Placeholder(word string) provider.DefinitionResult {
	return provider.DefinitionResult{
		Found:    false,
		Meaning:  domain.FallbackMeaning(word),
		Example:  domain.FallbackExample(word),
		Synonyms: []string{},
		Antonyms: []string{},
	}
}

func (p *Provider) fetch(ctx context.Context, word string) ([]apiEntry, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	resp, err := p.doWithRetry(ctx, reqURL, word)
	if err != nil {
		return nil, fmt.Errorf("freedict: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("freedict: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("freedict: read body: %w", err)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("freedict: decode json: %w", err)
	}
	return entries, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, reqURL, word string) (*http.Response, error) {
	resp, err := p.do(ctx, reqURL)

	shouldRetry := err != nil || resp.StatusCode >= 500
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	p.log.WarnContext(ctx, "freedict retry", slog.String("word", word), slog.String("reason", reason))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.retryDelay):
	}

	return p.do(ctx, reqURL)
}

func (p *Provider) do(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return p.httpClient.Do(req)
}

// mapAPIResponse takes the first entry, its first meaning and that meaning's
// first definition. Synonyms/antonyms come from the meaning, falling back to
// the definition's own lists. A missing example is replaced by the fallback
// example. ok is false when there is no definition text.
func mapAPIResponse(word string, entries []apiEntry) (provider.DefinitionResult, bool) {
	if len(entries) == 0 {
		return provider.DefinitionResult{}, false
	}
	entry := entries[0]
	if len(entry.Meanings) == 0 {
		return provider.DefinitionResult{}, false
	}
	meaning := entry.Meanings[0]
	if len(meaning.Definitions) == 0 {
		return provider.DefinitionResult{}, false
	}
	def := meaning.Definitions[0]
	definition := strings.TrimSpace(def.Definition)
	if definition == "" {
		return provider.DefinitionResult{}, false
	}

	example := strings.TrimSpace(def.Example)
	if example == "" {
		example = domain.FallbackExample(word)
	}

	synonyms := meaning.Synonyms
	if len(synonyms) == 0 {
		synonyms = def.Synonyms
	}
	antonyms := meaning.Antonyms
	if len(antonyms) == 0 {
		antonyms = def.Antonyms
	}

	return provider.DefinitionResult{
		Found:        true,
		Meaning:      definition,
		Example:      example,
		Phonetic:     phonetic(entry),
		PartOfSpeech: strings.TrimSpace(meaning.PartOfSpeech),
		Synonyms:     domain.CapRelated(synonyms),
		Antonyms:     domain.CapRelated(antonyms),
	}, true
}

// phonetic prefers the entry-level transcription, then the first phonetics
// item that carries text.
func phonetic(e apiEntry) string {
	if e.Phonetic != "" {
		return e.Phonetic
	}
	for _, ph := range e.Phonetics {
		if ph.Text != "" {
			return ph.Text
		}
	}
	return ""
}
