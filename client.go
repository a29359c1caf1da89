// Package memtier provides an embedded-mode client for the sharded
// memory store: the same query engine the API server runs, wired
// directly over a shard store connection, without the HTTP layer.
package memtier

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/memtier/internal/db"
	dbRedis "github.com/kailas-cloud/memtier/internal/db/redis"
	"github.com/kailas-cloud/memtier/internal/domain/query/request"
	"github.com/kailas-cloud/memtier/internal/domain/query/result"
	domrec "github.com/kailas-cloud/memtier/internal/domain/record"
	recordrepo "github.com/kailas-cloud/memtier/internal/repository/record"
	searchrepo "github.com/kailas-cloud/memtier/internal/repository/search"
	"github.com/kailas-cloud/memtier/internal/shard"
	healthuc "github.com/kailas-cloud/memtier/internal/usecase/health"
	queryuc "github.com/kailas-cloud/memtier/internal/usecase/query"
	recorduc "github.com/kailas-cloud/memtier/internal/usecase/record"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so tests can substitute the usecases.
type queryUseCase interface {
	Search(ctx context.Context, req *request.Request) (result.Merged, error)
}

type recordUseCase interface {
	Put(ctx context.Context, rec *domrec.Record) error
	Get(ctx context.Context, tenant, id string) (domrec.Record, error)
	Delete(ctx context.Context, tenant, id string) error
}

// Options configures an embedded client.
type Options struct {
	// Addrs are the shard store addresses. Required.
	Addrs []string
	// Password authenticates against the shard store.
	Password string
	// VectorDim is the embedding dimensionality. Required.
	VectorDim int
	// ShardCount fixes N for this deployment. Defaults to shard.DefaultCount.
	ShardCount int
	// KeyPrefix namespaces all keys and index names. Defaults to "memtier:".
	KeyPrefix string
	// PerShardTimeout bounds each shard search. Defaults to 2s.
	PerShardTimeout time.Duration
	// OverallDeadline bounds a whole query. Defaults to 10s.
	OverallDeadline time.Duration
	// MaxFanout caps in-flight shard searches per query. Defaults to 64.
	MaxFanout int64
	// ReadinessTimeout bounds the initial connection wait. Defaults to 10s.
	ReadinessTimeout time.Duration
}

// Client is the memtier embedded entry point.
type Client struct {
	store   db.Store
	router  *shard.Router
	queries queryUseCase
	records recordUseCase
	health  *healthuc.Service
}

// New connects to the shard store and wires the query core.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.VectorDim <= 0 {
		return nil, fmt.Errorf("vector dim must be positive, got %d", opts.VectorDim)
	}
	if opts.ShardCount <= 0 {
		opts.ShardCount = shard.DefaultCount
	}
	if opts.ReadinessTimeout <= 0 {
		opts.ReadinessTimeout = defaultReadinessTimeout
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    opts.Addrs,
		Password: opts.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create shard store: %w", err)
	}

	if err := store.WaitForReady(ctx, opts.ReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("shard store not ready: %w", err)
	}

	router, err := shard.NewRouter(opts.ShardCount, opts.KeyPrefix)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Client{
		store:  store,
		router: router,
		queries: queryuc.New(router, searchrepo.New(store), queryuc.Config{
			PerShardTimeout: opts.PerShardTimeout,
			OverallDeadline: opts.OverallDeadline,
			MaxFanout:       opts.MaxFanout,
		}),
		records: recorduc.New(router, recordrepo.New(store), opts.VectorDim),
		health:  healthuc.New(store, opts.ShardCount),
	}, nil
}

// Search runs a similarity query. An empty tenant broadcasts to every
// shard; a non-empty tenant touches only its owning shard. Shard
// failures degrade the result instead of failing the call; inspect
// Merged.Failures for the per-shard summary.
func (c *Client) Search(
	ctx context.Context, vector []float32, tenant string, limit int,
) (result.Merged, error) {
	if limit <= 0 {
		limit = request.DefaultLimit
	}
	req, err := request.New(vector, tenant, limit, 0)
	if err != nil {
		return result.Merged{}, err
	}
	return c.queries.Search(ctx, &req)
}

// Put stores a memory record on its tenant's shard.
func (c *Client) Put(ctx context.Context, rec *domrec.Record) error {
	return c.records.Put(ctx, rec)
}

// Get reads a record owned by tenant.
func (c *Client) Get(ctx context.Context, tenant, id string) (domrec.Record, error) {
	return c.records.Get(ctx, tenant, id)
}

// Delete removes a record owned by tenant.
func (c *Client) Delete(ctx context.Context, tenant, id string) error {
	return c.records.Delete(ctx, tenant, id)
}

// Health reports shard store availability.
func (c *Client) Health(ctx context.Context) healthuc.Report {
	return c.health.Check(ctx)
}

// Close releases the shard store connection.
func (c *Client) Close() {
	c.store.Close()
}
