package words

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/vocab-backend/internal/domain"
)

// Search returns the exact match (when stored and active) followed by up to
// limit words starting with the query in ascending order. It reads stored
// records only and never enriches. A blank query yields an empty result.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.Word, error) {
	q := domain.NormalizeWord(query)
	if q == "" {
		return []domain.Word{}, nil
	}
	limit = clamp(limit, s.cfg.DefaultSearchLimit, s.cfg.MaxSearchLimit)

	var (
		result    []domain.Word
		excludeID *uuid.UUID
	)
	exact, err := s.words.GetByWord(ctx, q)
	switch {
	case err == nil && exact.IsActive:
		result = append(result, *exact)
		excludeID = &exact.ID
	case err == nil, errors.Is(err, domain.ErrNotFound):
	default:
		return nil, fmt.Errorf("search exact: %w", err)
	}

	prefixed, err := s.words.FindByPrefix(ctx, q, limit, excludeID)
	if err != nil {
		return nil, fmt.Errorf("search prefix: %w", err)
	}

	return append(result, prefixed...), nil
}
