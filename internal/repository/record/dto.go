package record

import (
	"strconv"
	"time"

	dbredis "github.com/kailas-cloud/memtier/internal/db/redis"
	domrec "github.com/kailas-cloud/memtier/internal/domain/record"
)

// buildHashFields converts a domain Record into a flat map[string]string for HSET.
func buildHashFields(rec *domrec.Record) map[string]string {
	return map[string]string{
		"tenant":    rec.Tenant(),
		"content":   rec.Content(),
		"tier":      string(rec.Tier()),
		"embedding": dbredis.VectorToBytes(rec.Embedding()),
		"stored_at": strconv.FormatInt(rec.StoredAt().UnixMilli(), 10),
	}
}

// parseHashFields converts a flat hash map back into a domain Record.
func parseHashFields(id string, m map[string]string) domrec.Record {
	var storedAt time.Time
	if ms, err := strconv.ParseInt(m["stored_at"], 10, 64); err == nil {
		storedAt = time.UnixMilli(ms).UTC()
	}

	return domrec.Reconstruct(
		id,
		m["tenant"],
		m["content"],
		domrec.Tier(m["tier"]),
		dbredis.BytesToVector(m["embedding"]),
		storedAt,
	)
}
