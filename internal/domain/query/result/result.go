package result

import "github.com/kailas-cloud/memtier/internal/shard"

// Status is the terminal state of one per-shard search task.
type Status string

const (
	// StatusOK indicates the shard returned results in time.
	StatusOK Status = "ok"
	// StatusTimeout indicates the shard exceeded its search bound.
	StatusTimeout Status = "timeout"
	// StatusError indicates a shard-side failure.
	StatusError Status = "error"
)

// ScoredRecord is a single search hit with its source-shard tag.
// Identity for deduplication is the record id alone, never (id, shard).
type ScoredRecord struct {
	id      string
	score   float64
	shard   shard.ID
	tenant  string
	content string
	tier    string
}

// NewScoredRecord creates a search hit.
func NewScoredRecord(id string, score float64, sh shard.ID, tenant, content, tier string) ScoredRecord {
	return ScoredRecord{id: id, score: score, shard: sh, tenant: tenant, content: content, tier: tier}
}

// ID returns the record identifier.
func (r *ScoredRecord) ID() string { return r.id }

// Score returns the similarity score, higher is more relevant.
func (r *ScoredRecord) Score() float64 { return r.score }

// Shard returns the shard that reported this hit.
func (r *ScoredRecord) Shard() shard.ID { return r.shard }

// Tenant returns the owning tenant id.
func (r *ScoredRecord) Tenant() string { return r.tenant }

// Content returns the record payload.
func (r *ScoredRecord) Content() string { return r.content }

// Tier returns the storage tier tag.
func (r *ScoredRecord) Tier() string { return r.tier }

// Partial is the outcome of one shard's search task. The status is part
// of the value: a failed shard is reported, never silently dropped.
type Partial struct {
	shard   shard.ID
	records []ScoredRecord
	status  Status
	err     error
}

// NewPartial creates a successful partial result.
func NewPartial(sh shard.ID, records []ScoredRecord) Partial {
	return Partial{shard: sh, records: records, status: StatusOK}
}

// NewPartialTimeout creates a timed-out partial result.
func NewPartialTimeout(sh shard.ID, err error) Partial {
	return Partial{shard: sh, status: StatusTimeout, err: err}
}

// NewPartialError creates a failed partial result.
func NewPartialError(sh shard.ID, err error) Partial {
	return Partial{shard: sh, status: StatusError, err: err}
}

// Shard returns the source shard id.
func (p *Partial) Shard() shard.ID { return p.shard }

// Records returns the ordered hits, nil unless the status is ok.
func (p *Partial) Records() []ScoredRecord { return p.records }

// Status returns the terminal task state.
func (p *Partial) Status() Status { return p.status }

// Err returns the shard failure, nil on success.
func (p *Partial) Err() error { return p.err }

// OK reports whether the shard search succeeded.
func (p *Partial) OK() bool { return p.status == StatusOK }

// ShardFailure describes one failed shard in a merged result.
type ShardFailure struct {
	Shard  shard.ID `json:"shard"`
	Status Status   `json:"status"`
	Reason string   `json:"reason,omitempty"`
}

// Merged is the final outcome of a distributed query: an ordered top-K
// list plus the per-shard failure summary for observability.
type Merged struct {
	records  []ScoredRecord
	failures []ShardFailure
	targeted int
}

// NewMerged creates a merged result.
func NewMerged(records []ScoredRecord, failures []ShardFailure, targeted int) Merged {
	return Merged{records: records, failures: failures, targeted: targeted}
}

// Records returns the merged hits, descending by score, length <= limit.
func (m *Merged) Records() []ScoredRecord { return m.records }

// Failures returns the per-shard failure summary.
func (m *Merged) Failures() []ShardFailure { return m.failures }

// Targeted returns how many shards the query fanned out to.
func (m *Merged) Targeted() int { return m.targeted }

// Degraded reports whether at least one targeted shard failed.
func (m *Merged) Degraded() bool { return len(m.failures) > 0 }

// AllFailed reports whether every targeted shard failed. Distinguishes
// "system down" from "no matches" without turning either into an error.
func (m *Merged) AllFailed() bool { return m.targeted > 0 && len(m.failures) == m.targeted }
