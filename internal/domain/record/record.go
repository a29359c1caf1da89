package record

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/memtier/internal/domain"
)

// Tier identifies the storage tier a record currently lives in.
type Tier string

const (
	// TierHot is the default tier for freshly ingested records.
	TierHot Tier = "hot"
	// TierWarm holds records aged out of the hot tier.
	TierWarm Tier = "warm"
	// TierCold holds archived records.
	TierCold Tier = "cold"
)

// IsValid reports whether t is a known tier.
func (t Tier) IsValid() bool {
	return t == TierHot || t == TierWarm || t == TierCold
}

// Record is a validated memory record owned by a tenant.
type Record struct {
	id        string
	tenant    string
	content   string
	tier      Tier
	embedding []float32
	storedAt  time.Time
}

// New validates and creates a record. An empty tier defaults to hot.
// The embedding must be precomputed by the caller; this core never vectorizes.
func New(id, tenant, content string, tier Tier, embedding []float32) (Record, error) {
	if id == "" {
		return Record{}, fmt.Errorf("%w: record id is required", domain.ErrInvalidArgument)
	}
	if tenant == "" {
		return Record{}, fmt.Errorf("%w: tenant is required", domain.ErrInvalidArgument)
	}
	if len(embedding) == 0 {
		return Record{}, fmt.Errorf("%w: embedding is required", domain.ErrInvalidArgument)
	}
	if tier == "" {
		tier = TierHot
	}
	if !tier.IsValid() {
		return Record{}, fmt.Errorf("%w: unknown tier %q", domain.ErrInvalidArgument, tier)
	}

	return Record{
		id:        id,
		tenant:    tenant,
		content:   content,
		tier:      tier,
		embedding: embedding,
		storedAt:  time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a record from storage without validation.
func Reconstruct(id, tenant, content string, tier Tier, embedding []float32, storedAt time.Time) Record {
	return Record{
		id: id, tenant: tenant, content: content,
		tier: tier, embedding: embedding, storedAt: storedAt,
	}
}

// ID returns the record identifier.
func (r *Record) ID() string { return r.id }

// Tenant returns the owning tenant id.
func (r *Record) Tenant() string { return r.tenant }

// Content returns the record payload.
func (r *Record) Content() string { return r.content }

// Tier returns the storage tier tag.
func (r *Record) Tier() Tier { return r.tier }

// Embedding returns the record embedding.
func (r *Record) Embedding() []float32 { return r.embedding }

// StoredAt returns the ingestion timestamp.
func (r *Record) StoredAt() time.Time { return r.storedAt }
