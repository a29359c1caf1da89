package health

import "context"

// StorePinger checks shard store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}
