package query

import (
	"math"
	"sort"

	"github.com/kailas-cloud/memtier/internal/domain/query/result"
)

// merge flattens successful partials into one ordered top-K list:
// deduplicate by record id keeping the highest score, sort descending,
// truncate to limit. Ties keep the record reported first in partial
// iteration order, so the output is deterministic for a given input
// ordering regardless of which shard answered first.
//
// Malformed hits (empty id, NaN score) sort last instead of aborting the
// merge: partial shard data degrades, it does not fail the call.
func merge(partials []result.Partial, limit int) []result.ScoredRecord {
	type candidate struct {
		rec  result.ScoredRecord
		seen int
	}

	var pool []candidate
	byID := make(map[string]int)
	seen := 0

	for i := range partials {
		p := &partials[i]
		if !p.OK() {
			continue
		}
		for _, rec := range p.Records() {
			seen++
			id := rec.ID()
			if id == "" {
				// No identity to dedupe on; carried through as-is.
				pool = append(pool, candidate{rec: rec, seen: seen})
				continue
			}
			idx, ok := byID[id]
			if !ok {
				byID[id] = len(pool)
				pool = append(pool, candidate{rec: rec, seen: seen})
				continue
			}
			// Same logical record from another shard: keep the higher
			// score, first-seen wins ties. Position is kept so output
			// order stays independent of shard completion order.
			if sortKey(&rec) > sortKey(&pool[idx].rec) {
				pool[idx].rec = rec
			}
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		ki, kj := sortKey(&pool[i].rec), sortKey(&pool[j].rec)
		if ki != kj {
			return ki > kj
		}
		return pool[i].seen < pool[j].seen
	})

	if limit >= 0 && len(pool) > limit {
		pool = pool[:limit]
	}

	out := make([]result.ScoredRecord, len(pool))
	for i := range pool {
		out[i] = pool[i].rec
	}
	return out
}

// sortKey ranks a hit for merging. Hits missing an id or carrying a NaN
// score rank below every well-formed hit.
func sortKey(r *result.ScoredRecord) float64 {
	s := r.Score()
	if r.ID() == "" || math.IsNaN(s) {
		return math.Inf(-1)
	}
	return s
}
