package record

import (
	"context"

	domrec "github.com/kailas-cloud/memtier/internal/domain/record"
	"github.com/kailas-cloud/memtier/internal/shard"
)

// Router resolves a tenant to its owning shard's storage location.
type Router interface {
	ShardFor(tenant string) (shard.ID, error)
	LocationFor(id shard.ID) shard.Locator
}

// Repository defines the storage contract for record operations.
type Repository interface {
	Put(ctx context.Context, loc shard.Locator, rec *domrec.Record) error
	Get(ctx context.Context, loc shard.Locator, id string) (domrec.Record, error)
	Delete(ctx context.Context, loc shard.Locator, id string) error
}
