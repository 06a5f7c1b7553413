package leaderboard

import (
	"context"

	"mindshare/internal/domain"
	"mindshare/internal/ports"
)

// Service turns validated queries into normalized leaderboards. It owns the
// upstream payload transform; the upstream adapter only moves bytes.
type Service struct {
	source ports.MindshareSource
}

func New(source ports.MindshareSource) *Service {
	return &Service{source: source}
}

// Get validates the query, fetches the raw mindshare document and
// normalizes it. Validation failures never reach the upstream service.
func (s *Service) Get(ctx context.Context, q domain.Query) (*domain.Leaderboard, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	raw, err := s.source.CommunityMindshare(ctx, q)
	if err != nil {
		return nil, err
	}
	return normalize(q, raw)
}
