// Package shard maps tenants onto a fixed set of storage shards.
package shard

import "fmt"

// ID identifies one shard, in [0, Count).
type ID int

// Locator is the physical location of one shard's storage slice:
// its FT index name and the key prefix its records live under.
type Locator struct {
	index     string
	keyPrefix string
}

// Index returns the shard's search index name.
func (l Locator) Index() string { return l.index }

// KeyPrefix returns the shard's record key prefix.
func (l Locator) KeyPrefix() string { return l.keyPrefix }

// Key returns the storage key for a record id within this shard.
func (l Locator) Key(recordID string) string { return l.keyPrefix + recordID }

func (id ID) String() string { return fmt.Sprintf("shard-%d", int(id)) }
