package maintenance

import (
	"context"
	"fmt"

	"github.com/heartmarshall/vocab-backend/internal/domain"
)

// Verify returns the store counts used by the verify command.
func (s *Service) Verify(ctx context.Context) (domain.WordStats, error) {
	stats, err := s.words.Stats(ctx)
	if err != nil {
		return domain.WordStats{}, fmt.Errorf("verify: %w", err)
	}
	return stats, nil
}
