package freedict

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvider(url string) *Provider {
	p := NewProvider(url, 2*time.Second, newTestLogger())
	p.retryDelay = time.Millisecond
	return p
}

func TestProvider_FetchDefinition_Success(t *testing.T) {
	t.Parallel()

	body := `[{
		"word": "ephemeral",
		"phonetic": "/əˈfɛm(ə)ɹəl/",
		"meanings": [
			{
				"partOfSpeech": "adjective",
				"definitions": [
					{"definition": "Lasting for a short period of time.", "example": "ephemeral pleasures"},
					{"definition": "Existing for only one day."}
				],
				"synonyms": ["brief", "fleeting", "momentary", "passing", "short-lived", "temporary", "transient"],
				"antonyms": ["permanent"]
			},
			{
				"partOfSpeech": "noun",
				"definitions": [{"definition": "Something which lasts for a short time."}]
			}
		]
	}, {
		"word": "ephemeral",
		"meanings": [{"partOfSpeech": "verb", "definitions": [{"definition": "ignored"}]}]
	}]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ephemeral" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	result := newTestProvider(srv.URL).FetchDefinition(context.Background(), "ephemeral")

	if !result.Found {
		t.Fatal("expected Found = true")
	}
	if result.Meaning != "Lasting for a short period of time." {
		t.Errorf("Meaning = %q", result.Meaning)
	}
	if result.Example != "ephemeral pleasures" {
		t.Errorf("Example = %q", result.Example)
	}
	if result.PartOfSpeech != "adjective" {
		t.Errorf("PartOfSpeech = %q, want adjective", result.PartOfSpeech)
	}
	if result.Phonetic != "/əˈfɛm(ə)ɹəl/" {
		t.Errorf("Phonetic = %q", result.Phonetic)
	}
	if len(result.Synonyms) != 5 {
		t.Errorf("len(Synonyms) = %d, want 5 (capped)", len(result.Synonyms))
	}
	if len(result.Antonyms) != 1 || result.Antonyms[0] != "permanent" {
		t.Errorf("Antonyms = %v", result.Antonyms)
	}
}

func TestProvider_FetchDefinition_FallbacksWithinEntry(t *testing.T) {
	t.Parallel()

	body := `[{
		"word": "run",
		"phonetics": [{"text": ""}, {"text": "/ɹʌn/"}],
		"meanings": [{
			"partOfSpeech": "verb",
			"definitions": [{"definition": "To move swiftly.", "synonyms": ["sprint"]}]
		}]
	}]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	result := newTestProvider(srv.URL).FetchDefinition(context.Background(), "run")

	if !result.Found {
		t.Fatal("expected Found = true")
	}
	if result.Phonetic != "/ɹʌn/" {
		t.Errorf("Phonetic = %q, want first non-empty phonetics text", result.Phonetic)
	}
	if result.Example != `Example with "run"` {
		t.Errorf("Example = %q, want fallback example", result.Example)
	}
	if len(result.Synonyms) != 1 || result.Synonyms[0] != "sprint" {
		t.Errorf("Synonyms = %v, want definition-level synonyms", result.Synonyms)
	}
	if result.Antonyms == nil {
		t.Error("Antonyms should be an empty slice, not nil")
	}
}

func TestProvider_FetchDefinition_PlaceholderCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"title":"No Definitions Found"}`},
		{name: "bad request", status: http.StatusBadRequest, body: ``},
		{name: "malformed json", status: http.StatusOK, body: `{not json`},
		{name: "empty array", status: http.StatusOK, body: `[]`},
		{name: "no meanings", status: http.StatusOK, body: `[{"word":"zzz","meanings":[]}]`},
		{name: "blank definition", status: http.StatusOK, body: `[{"word":"zzz","meanings":[{"definitions":[{"definition":"  "}]}]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			result := newTestProvider(srv.URL).FetchDefinition(context.Background(), "zzz")

			if result.Found {
				t.Fatal("expected Found = false")
			}
			if result.Meaning != "Definition of zzz" {
				t.Errorf("Meaning = %q", result.Meaning)
			}
			if result.Example != `Example with "zzz"` {
				t.Errorf("Example = %q", result.Example)
			}
			if result.PartOfSpeech != "" || result.Phonetic != "" {
				t.Errorf("expected empty phonetic/partOfSpeech, got %q/%q", result.Phonetic, result.PartOfSpeech)
			}
		})
	}
}

func TestProvider_FetchDefinition_RetriesOn5xx(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"word":"hi","meanings":[{"partOfSpeech":"interjection","definitions":[{"definition":"A greeting."}]}]}]`))
	}))
	defer srv.Close()

	result := newTestProvider(srv.URL).FetchDefinition(context.Background(), "hi")

	if !result.Found {
		t.Fatal("expected Found = true after retry")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestProvider_FetchDefinition_NoRetryOn404(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	newTestProvider(srv.URL).FetchDefinition(context.Background(), "qwxz")

	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestProvider_FetchDefinition_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, 50*time.Millisecond, newTestLogger())
	p.retryDelay = time.Millisecond

	start := time.Now()
	result := p.FetchDefinition(context.Background(), "slow")

	if result.Found {
		t.Fatal("expected placeholder on timeout")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("FetchDefinition took %v, expected the client timeout to cut it short", elapsed)
	}
}
