package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/vocab-backend/internal/domain"
)

// WordResponse is the JSON shape of one word record. Every field is always
// present; lists are never null and the target languages are always keys of
// Translations.
type WordResponse struct {
	ID           string            `json:"id"`
	Word         string            `json:"word"`
	Meaning      string            `json:"meaning"`
	Example      string            `json:"example"`
	Phonetic     string            `json:"phonetic"`
	PartOfSpeech string            `json:"partOfSpeech"`
	Synonyms     []string          `json:"synonyms"`
	Antonyms     []string          `json:"antonyms"`
	Translations map[string]string `json:"translations"`
	Frequency    int               `json:"frequency"`
	Source       string            `json:"source"`
	Completeness string            `json:"completeness"`
	LastFetched  *time.Time        `json:"lastFetched,omitempty"`
}

// WordsResponse wraps a list of words.
type WordsResponse struct {
	Words []WordResponse `json:"words"`
}

// PageResponse is one page of the word listing.
type PageResponse struct {
	Words       []WordResponse `json:"words"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	TotalWords  int            `json:"totalWords"`
	HasNextPage bool           `json:"hasNextPage"`
	HasPrevPage bool           `json:"hasPrevPage"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
}

func toWordResponse(w *domain.Word) WordResponse {
	tr := make(map[string]string, len(w.Translations)+len(domain.TargetLanguages))
	for _, lang := range domain.TargetLanguages {
		tr[lang] = ""
	}
	for k, v := range w.Translations {
		tr[k] = v
	}

	resp := WordResponse{
		ID:           w.ID.String(),
		Word:         w.Word,
		Meaning:      w.Meaning,
		Example:      w.Example,
		Phonetic:     w.Phonetic,
		PartOfSpeech: w.PartOfSpeech,
		Synonyms:     nonNil(w.Synonyms),
		Antonyms:     nonNil(w.Antonyms),
		Translations: tr,
		Frequency:    w.Frequency,
		Source:       string(w.Source),
		Completeness: string(w.Completeness),
	}
	if !w.LastFetched.IsZero() {
		t := w.LastFetched.UTC()
		resp.LastFetched = &t
	}
	return resp
}

func toWordResponses(words []domain.Word) []WordResponse {
	out := make([]WordResponse, len(words))
	for i := range words {
		out[i] = toWordResponse(&words[i])
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError maps a service error to its status code. Store outages are 503,
// unknown errors 500; neither leaks the underlying message.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, fallback string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		msg := verr.Error()
		if len(verr.Errors) == 1 {
			msg = verr.Errors[0].Field + ": " + verr.Errors[0].Message
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: msg})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Message: "word not found"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.ErrorContext(r.Context(), fallback, slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Message: "word store unavailable"})
	default:
		log.ErrorContext(r.Context(), fallback, slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: fallback})
	}
}
