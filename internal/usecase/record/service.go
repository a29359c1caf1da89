package record

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/memtier/internal/domain"
	domrec "github.com/kailas-cloud/memtier/internal/domain/record"
	"github.com/kailas-cloud/memtier/internal/shard"
)

// Service handles record ingestion and retrieval, routing every
// operation to the shard owning the record's tenant.
type Service struct {
	router    Router
	repo      Repository
	vectorDim int
}

// New creates a record service. vectorDim is the deployment's embedding
// dimensionality; every ingested record must match it.
func New(router Router, repo Repository, vectorDim int) *Service {
	return &Service{router: router, repo: repo, vectorDim: vectorDim}
}

// Put stores a record on its tenant's shard.
func (s *Service) Put(ctx context.Context, rec *domrec.Record) error {
	if rec == nil {
		return fmt.Errorf("%w: record is required", domain.ErrInvalidArgument)
	}
	if len(rec.Embedding()) != s.vectorDim {
		return fmt.Errorf("%w: got %d, index expects %d",
			domain.ErrVectorDimMismatch, len(rec.Embedding()), s.vectorDim)
	}

	loc, err := s.locate(rec.Tenant())
	if err != nil {
		return err
	}
	return s.repo.Put(ctx, loc, rec)
}

// Get reads a record owned by tenant.
func (s *Service) Get(ctx context.Context, tenant, id string) (domrec.Record, error) {
	if id == "" {
		return domrec.Record{}, fmt.Errorf("%w: record id is required", domain.ErrInvalidArgument)
	}
	loc, err := s.locate(tenant)
	if err != nil {
		return domrec.Record{}, err
	}
	return s.repo.Get(ctx, loc, id)
}

// Delete removes a record owned by tenant.
func (s *Service) Delete(ctx context.Context, tenant, id string) error {
	if id == "" {
		return fmt.Errorf("%w: record id is required", domain.ErrInvalidArgument)
	}
	loc, err := s.locate(tenant)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, loc, id)
}

func (s *Service) locate(tenant string) (shard.Locator, error) {
	sh, err := s.router.ShardFor(tenant)
	if err != nil {
		return shard.Locator{}, err
	}
	return s.router.LocationFor(sh), nil
}
