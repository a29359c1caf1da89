package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/memtier/internal/db"
	dbredis "github.com/kailas-cloud/memtier/internal/db/redis"
	"github.com/kailas-cloud/memtier/internal/domain"
	"github.com/kailas-cloud/memtier/internal/domain/query/result"
	"github.com/kailas-cloud/memtier/internal/shard"
)

// store is the consumer interface for shard search operations.
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements usecase/query.Searcher over one shard store.
type Repo struct {
	store store
}

// New creates a shard search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search runs a KNN similarity search against a single shard index and
// tags every hit with its source shard. A non-empty tenant restricts
// hits to that tenant's records within the shard.
func (r *Repo) Search(
	ctx context.Context, sh shard.ID, loc shard.Locator,
	tenant string, vector []float32, k int,
) ([]result.ScoredRecord, error) {
	q := &db.KNNQuery{
		IndexName:    loc.Index(),
		Vector:       vector,
		K:            k,
		ReturnFields: []string{"tenant", "content", "tier", "__embedding_score"},
	}
	if tenant != "" {
		q.Filter = fmt.Sprintf("@tenant:{%s}", dbredis.EscapeTag(tenant))
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: search %s: %w", classify(err), loc.Index(), err)
	}

	records := make([]result.ScoredRecord, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		records = append(records, result.NewScoredRecord(
			recordID(e.Key, loc),
			e.Score,
			sh,
			e.Fields["tenant"],
			e.Fields["content"],
			e.Fields["tier"],
		))
	}
	return records, nil
}

// recordID strips the shard key prefix so hit identity is the logical
// record id, comparable across shards.
func recordID(key string, loc shard.Locator) string {
	return strings.TrimPrefix(key, loc.KeyPrefix())
}

// classify maps a storage failure to the shard failure taxonomy.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrShardTimeout
	}
	return domain.ErrShardUnavailable
}
