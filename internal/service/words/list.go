package words

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/vocab-backend/internal/domain"
)

// ListParams selects one page of the word listing. Page is 1-based.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	SortBy   string
}

// PageResult is one page of words with its pagination metadata.
type PageResult struct {
	Words       []domain.Word
	CurrentPage int
	TotalPages  int
	TotalWords  int
	HasNextPage bool
	HasPrevPage bool
}

// ListPage returns one page of active words. Page defaults to 1, PageSize to
// the configured default and is capped at the configured maximum.
func (s *Service) ListPage(ctx context.Context, p ListParams) (*PageResult, error) {
	page := max(p.Page, 1)
	size := clamp(p.PageSize, s.cfg.DefaultPageSize, s.cfg.MaxPageSize)

	words, total, err := s.words.Page(ctx, domain.WordFilter{
		Search: strings.ToLower(strings.TrimSpace(p.Search)),
		SortBy: domain.ParseSortKey(p.SortBy),
		Limit:  size,
		Offset: (page - 1) * size,
	})
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}

	totalPages := (total + size - 1) / size
	return &PageResult{
		Words:       words,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalWords:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}, nil
}
