package query

import (
	"context"

	"github.com/kailas-cloud/memtier/internal/domain/query/result"
	"github.com/kailas-cloud/memtier/internal/shard"
)

// Router resolves query scopes to shard sets and shard storage locations.
type Router interface {
	TargetsFor(tenant string) []shard.ID
	LocationFor(id shard.ID) shard.Locator
}

// Searcher is the per-shard search capability implemented by the storage
// tier. A tenant-scoped call restricts hits to that tenant's records; an
// empty tenant searches the whole shard.
type Searcher interface {
	Search(
		ctx context.Context, sh shard.ID, loc shard.Locator,
		tenant string, vector []float32, k int,
	) ([]result.ScoredRecord, error)
}
