package shard

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/kailas-cloud/memtier/internal/domain"
)

// DefaultCount is the deployment default shard count. Changing the count
// invalidates the hash-to-shard mapping for every existing tenant, so it
// is fixed for the lifetime of a deployment.
const DefaultCount = 256

// Router deterministically assigns tenants to shards via hash mod N.
// It holds no mutable state and is safe for unbounded concurrent use.
type Router struct {
	count  int
	prefix string
}

// NewRouter creates a router over count shards. Keys and index names are
// namespaced under prefix.
func NewRouter(count int, prefix string) (*Router, error) {
	if count <= 0 {
		return nil, fmt.Errorf("shard count must be positive, got %d", count)
	}
	if prefix == "" {
		prefix = "memtier:"
	}
	return &Router{count: count, prefix: prefix}, nil
}

// Count returns the shard count N.
func (r *Router) Count() int { return r.count }

// ShardFor returns the shard owning the given tenant. The assignment is
// pure: SHA-256 of the tenant id, first 8 bytes big-endian, mod N.
func (r *Router) ShardFor(tenant string) (ID, error) {
	if tenant == "" {
		return 0, fmt.Errorf("%w: tenant is required", domain.ErrInvalidArgument)
	}
	sum := sha256.Sum256([]byte(tenant))
	return ID(binary.BigEndian.Uint64(sum[:8]) % uint64(r.count)), nil
}

// LocationFor maps a shard id to its storage locator. Pure and injective.
func (r *Router) LocationFor(id ID) Locator {
	base := fmt.Sprintf("%sshard:%d:", r.prefix, int(id))
	return Locator{
		index:     base + "idx",
		keyPrefix: base + "rec:",
	}
}

// TargetsFor resolves the shard set for a query scope: the single owning
// shard for a tenant-scoped query, all N shards for a broadcast (empty
// tenant). A scoped query touches exactly one shard regardless of N.
func (r *Router) TargetsFor(tenant string) []ID {
	if tenant == "" {
		all := make([]ID, r.count)
		for i := range all {
			all[i] = ID(i)
		}
		return all
	}
	id, err := r.ShardFor(tenant)
	if err != nil {
		return nil
	}
	return []ID{id}
}
