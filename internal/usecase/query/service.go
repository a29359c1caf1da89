package query

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/kailas-cloud/memtier/internal/domain"
	"github.com/kailas-cloud/memtier/internal/domain/query/request"
	"github.com/kailas-cloud/memtier/internal/domain/query/result"
	"github.com/kailas-cloud/memtier/internal/logger"
	"github.com/kailas-cloud/memtier/internal/metrics"
	"github.com/kailas-cloud/memtier/internal/shard"
)

// Config bounds a single distributed query.
type Config struct {
	// PerShardTimeout caps each shard search independently, so one slow
	// shard cannot starve the rest. Must be shorter than OverallDeadline.
	PerShardTimeout time.Duration
	// OverallDeadline bounds the whole call when the request carries none.
	OverallDeadline time.Duration
	// MaxFanout caps simultaneous in-flight shard searches per query.
	MaxFanout int64
}

// Service is the distributed query engine: it fans a similarity query
// out to the relevant shards in parallel, collects whatever returns
// within the deadline, and merges the partials into one top-K list.
// Shard failures degrade the result, they never fail the call.
type Service struct {
	router   Router
	searcher Searcher
	cfg      Config
}

// New creates a query engine.
func New(router Router, searcher Searcher, cfg Config) *Service {
	if cfg.PerShardTimeout <= 0 {
		cfg.PerShardTimeout = 2 * time.Second
	}
	if cfg.OverallDeadline <= 0 {
		cfg.OverallDeadline = 10 * time.Second
	}
	if cfg.MaxFanout <= 0 {
		cfg.MaxFanout = 64
	}
	return &Service{router: router, searcher: searcher, cfg: cfg}
}

// Search executes a similarity query across the shard set owning the
// request's scope. The returned Merged always carries the per-shard
// failure summary; the error is non-nil only for malformed input.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Merged, error) {
	if req == nil {
		return result.Merged{}, fmt.Errorf("%w: request is required", domain.ErrInvalidArgument)
	}

	targets := s.router.TargetsFor(req.Tenant())
	if len(targets) == 0 {
		// Degenerate resolution: nothing owns this scope. A valid empty
		// outcome, not an error.
		return result.NewMerged(nil, nil, 0), nil
	}

	deadline := req.Deadline()
	if deadline <= 0 {
		deadline = s.cfg.OverallDeadline
	}
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	start := time.Now()
	partials := s.fanOut(ctx, req, targets)

	merged, failures := s.collect(partials, targets, req.Limit())

	metrics.ObserveQuery(len(targets), len(failures), time.Since(start))
	if len(failures) > 0 {
		logger.FromContext(ctx).Warn("degraded query result",
			zap.Int("targeted", len(targets)),
			zap.Int("failed", len(failures)),
			zap.String("tenant", req.Tenant()),
		)
	}

	return result.NewMerged(merged, failures, len(targets)), nil
}

// fanOut launches one search task per target shard, each bounded by the
// per-shard timeout and admitted through the fan-out semaphore, and
// gathers whatever terminates before the overall deadline. Stragglers
// are abandoned: the channel is buffered for every task, so a late
// writer never blocks and its result is simply discarded.
func (s *Service) fanOut(
	ctx context.Context, req *request.Request, targets []shard.ID,
) []result.Partial {
	sem := semaphore.NewWeighted(s.cfg.MaxFanout)
	out := make(chan result.Partial, len(targets))

	for _, t := range targets {
		go func(t shard.ID) {
			if err := sem.Acquire(ctx, 1); err != nil {
				// Overall deadline elapsed while queued for admission.
				out <- result.NewPartialTimeout(t, err)
				return
			}
			defer sem.Release(1)
			out <- s.searchShard(ctx, req, t)
		}(t)
	}

	partials := make([]result.Partial, 0, len(targets))
	for range targets {
		select {
		case p := <-out:
			partials = append(partials, p)
		case <-ctx.Done():
			return partials
		}
	}
	return partials
}

// searchShard runs one shard search under its own timeout and maps the
// outcome to a terminal partial state.
func (s *Service) searchShard(
	ctx context.Context, req *request.Request, t shard.ID,
) result.Partial {
	sctx, cancel := context.WithTimeout(ctx, s.cfg.PerShardTimeout)
	defer cancel()

	start := time.Now()
	recs, err := s.searcher.Search(sctx, t, s.router.LocationFor(t), req.Tenant(), req.Vector(), req.Limit())

	switch {
	case err == nil:
		metrics.ObserveShardSearch(string(result.StatusOK), time.Since(start))
		return result.NewPartial(t, recs)
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, domain.ErrShardTimeout):
		metrics.ObserveShardSearch(string(result.StatusTimeout), time.Since(start))
		return result.NewPartialTimeout(t, err)
	default:
		metrics.ObserveShardSearch(string(result.StatusError), time.Since(start))
		return result.NewPartialError(t, err)
	}
}

// collect merges the successful partials and builds the failure summary.
// Partials are ordered by shard id first, so the merged output is a pure
// function of shard contents, independent of completion order.
// Shards that never reported before the deadline are marked timed out.
func (s *Service) collect(
	partials []result.Partial, targets []shard.ID, limit int,
) ([]result.ScoredRecord, []result.ShardFailure) {
	sort.Slice(partials, func(i, j int) bool {
		return partials[i].Shard() < partials[j].Shard()
	})

	reported := make(map[shard.ID]struct{}, len(partials))
	var failures []result.ShardFailure

	for i := range partials {
		p := &partials[i]
		reported[p.Shard()] = struct{}{}
		if p.OK() {
			continue
		}
		reason := ""
		if p.Err() != nil {
			reason = p.Err().Error()
		}
		failures = append(failures, result.ShardFailure{
			Shard: p.Shard(), Status: p.Status(), Reason: reason,
		})
	}

	for _, t := range targets {
		if _, ok := reported[t]; !ok {
			failures = append(failures, result.ShardFailure{
				Shard: t, Status: result.StatusTimeout, Reason: "overall deadline elapsed",
			})
		}
	}

	return merge(partials, limit), failures
}
