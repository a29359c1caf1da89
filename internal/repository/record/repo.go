package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/memtier/internal/db"
	"github.com/kailas-cloud/memtier/internal/domain"
	domrec "github.com/kailas-cloud/memtier/internal/domain/record"
	"github.com/kailas-cloud/memtier/internal/shard"
)

// store is the consumer interface for record storage operations.
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

var _ store = (db.HashStore)(nil)

// Repo implements usecase/record.Repository over the shard store.
type Repo struct {
	store store
}

// New creates a record repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Put writes a record under its shard's key prefix. The shard FT index
// picks the hash up by prefix; no separate index write is needed.
func (r *Repo) Put(ctx context.Context, loc shard.Locator, rec *domrec.Record) error {
	if err := r.store.HSet(ctx, loc.Key(rec.ID()), buildHashFields(rec)); err != nil {
		return fmt.Errorf("put record %s: %w", rec.ID(), err)
	}
	return nil
}

// Get reads one record by id from its shard.
func (r *Repo) Get(ctx context.Context, loc shard.Locator, id string) (domrec.Record, error) {
	fields, err := r.store.HGetAll(ctx, loc.Key(id))
	if errors.Is(err, db.ErrKeyNotFound) {
		return domrec.Record{}, domain.ErrRecordNotFound
	}
	if err != nil {
		return domrec.Record{}, fmt.Errorf("get record %s: %w", id, err)
	}
	return parseHashFields(id, fields), nil
}

// Delete removes one record by id from its shard.
func (r *Repo) Delete(ctx context.Context, loc shard.Locator, id string) error {
	exists, err := r.store.Exists(ctx, loc.Key(id))
	if err != nil {
		return fmt.Errorf("check record %s: %w", id, err)
	}
	if !exists {
		return domain.ErrRecordNotFound
	}
	if err := r.store.Del(ctx, loc.Key(id)); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	return nil
}
