package request

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/memtier/internal/domain"
)

// Search parameter limits.
const (
	DefaultLimit = 10
	MaxLimit     = 500
)

// Request is a validated similarity query against the sharded store.
// An empty tenant means broadcast: every shard is targeted.
type Request struct {
	vector   []float32
	tenant   string
	limit    int
	deadline time.Duration
}

// New validates and normalizes query parameters.
// A zero deadline defers to the engine's configured default.
func New(vector []float32, tenant string, limit int, deadline time.Duration) (Request, error) {
	if len(vector) == 0 {
		return Request{}, fmt.Errorf("%w: query vector is required", domain.ErrInvalidArgument)
	}
	if limit <= 0 {
		return Request{}, fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidArgument, limit)
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if deadline < 0 {
		return Request{}, fmt.Errorf("%w: deadline must not be negative", domain.ErrInvalidArgument)
	}

	return Request{vector: vector, tenant: tenant, limit: limit, deadline: deadline}, nil
}

// Vector returns the query embedding.
func (r *Request) Vector() []float32 { return r.vector }

// Tenant returns the tenant scope, empty for broadcast.
func (r *Request) Tenant() string { return r.tenant }

// Broadcast reports whether the query targets every shard.
func (r *Request) Broadcast() bool { return r.tenant == "" }

// Limit returns the maximum number of merged results.
func (r *Request) Limit() int { return r.limit }

// Deadline returns the overall query budget, zero meaning engine default.
func (r *Request) Deadline() time.Duration { return r.deadline }
