package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/vocab-backend/internal/domain"
	"github.com/heartmarshall/vocab-backend/internal/service/words"
)

type wordService interface {
	ListPage(ctx context.Context, p words.ListParams) (*words.PageResult, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Word, error)
	DailySample(ctx context.Context) ([]domain.Word, error)
	WordDetails(ctx context.Context, word string) (*domain.Word, error)
}

// WordsHandler serves the /words routes.
type WordsHandler struct {
	svc wordService
	log *slog.Logger
}

// NewWordsHandler creates a WordsHandler.
func NewWordsHandler(svc wordService, logger *slog.Logger) *WordsHandler {
	return &WordsHandler{svc: svc, log: logger.With("handler", "words")}
}

// Routes registers the handler on r.
func (h *WordsHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/useful", h.Useful)
	r.Get("/search", h.Search)
	r.Get("/{word}", h.Details)
}

// List handles GET /words?limit&page&search&sortBy.
func (h *WordsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.svc.ListPage(r.Context(), words.ListParams{
		Page:     intParam(q.Get("page")),
		PageSize: intParam(q.Get("limit")),
		Search:   q.Get("search"),
		SortBy:   q.Get("sortBy"),
	})
	if err != nil {
		writeError(w, r, h.log, "failed to fetch words", err)
		return
	}

	writeJSON(w, http.StatusOK, PageResponse{
		Words:       toWordResponses(res.Words),
		CurrentPage: res.CurrentPage,
		TotalPages:  res.TotalPages,
		TotalWords:  res.TotalWords,
		HasNextPage: res.HasNextPage,
		HasPrevPage: res.HasPrevPage,
	})
}

// Useful handles GET /words/useful.
func (h *WordsHandler) Useful(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.DailySample(r.Context())
	if err != nil {
		writeError(w, r, h.log, "failed to fetch useful words", err)
		return
	}
	writeJSON(w, http.StatusOK, WordsResponse{Words: toWordResponses(list)})
}

// Search handles GET /words/search?q&limit.
func (h *WordsHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.svc.Search(r.Context(), q.Get("q"), intParam(q.Get("limit")))
	if err != nil {
		writeError(w, r, h.log, "search failed", err)
		return
	}
	writeJSON(w, http.StatusOK, WordsResponse{Words: toWordResponses(list)})
}

// Details handles GET /words/{word}.
func (h *WordsHandler) Details(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.WordDetails(r.Context(), chi.URLParam(r, "word"))
	if err != nil {
		writeError(w, r, h.log, "failed to fetch word details", err)
		return
	}
	writeJSON(w, http.StatusOK, toWordResponse(rec))
}

// intParam parses a positive query integer; anything else yields 0 so the
// service applies its default.
func intParam(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
