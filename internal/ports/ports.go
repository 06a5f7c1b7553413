package ports

import (
	"context"

	"mindshare/internal/domain"
)

// MindshareSource fetches the raw community mindshare document for a query
// from the upstream analytics service. Implementations hold the credential;
// nothing else in the process may call upstream.
type MindshareSource interface {
	CommunityMindshare(ctx context.Context, q domain.Query) (raw []byte, err error)
}

// Leaderboards produces normalized leaderboards for valid queries.
type Leaderboards interface {
	Get(ctx context.Context, q domain.Query) (*domain.Leaderboard, error)
}
