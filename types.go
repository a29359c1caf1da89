package memtier

import (
	"github.com/kailas-cloud/memtier/internal/domain/query/result"
	domrec "github.com/kailas-cloud/memtier/internal/domain/record"
)

// Re-exports so embedded-mode callers can use the domain types without
// reaching into internal packages.

// Record is a memory record owned by a tenant.
type Record = domrec.Record

// Tier identifies the storage tier a record lives in.
type Tier = domrec.Tier

// Storage tiers.
const (
	TierHot  = domrec.TierHot
	TierWarm = domrec.TierWarm
	TierCold = domrec.TierCold
)

// Merged is the outcome of a distributed query.
type Merged = result.Merged

// ScoredRecord is a single search hit.
type ScoredRecord = result.ScoredRecord

// ShardFailure describes one failed shard in a merged result.
type ShardFailure = result.ShardFailure

// NewRecord validates and creates a record for ingestion.
func NewRecord(id, tenant, content string, tier Tier, embedding []float32) (Record, error) {
	return domrec.New(id, tenant, content, tier, embedding)
}
