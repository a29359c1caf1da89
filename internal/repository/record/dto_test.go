package record

import (
	"testing"
	"time"

	domrec "github.com/kailas-cloud/memtier/internal/domain/record"
)

func TestHashFields_RoundTrip(t *testing.T) {
	storedAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	rec := domrec.Reconstruct(
		"conv-42", "acme", "quarterly planning notes",
		domrec.TierWarm, []float32{0.25, -1.5, 3}, storedAt,
	)

	got := parseHashFields("conv-42", buildHashFields(&rec))

	if got.ID() != rec.ID() {
		t.Errorf("id %q, want %q", got.ID(), rec.ID())
	}
	if got.Tenant() != rec.Tenant() || got.Content() != rec.Content() {
		t.Errorf("tenant/content mismatch: %q %q", got.Tenant(), got.Content())
	}
	if got.Tier() != domrec.TierWarm {
		t.Errorf("tier %q, want warm", got.Tier())
	}
	if !got.StoredAt().Equal(storedAt) {
		t.Errorf("storedAt %v, want %v", got.StoredAt(), storedAt)
	}

	emb := got.Embedding()
	want := rec.Embedding()
	if len(emb) != len(want) {
		t.Fatalf("embedding length %d, want %d", len(emb), len(want))
	}
	for i := range want {
		if emb[i] != want[i] {
			t.Errorf("embedding[%d] = %v, want %v", i, emb[i], want[i])
		}
	}
}

func TestParseHashFields_MissingStoredAt(t *testing.T) {
	got := parseHashFields("conv-1", map[string]string{
		"tenant": "acme",
		"tier":   "hot",
	})
	if !got.StoredAt().IsZero() {
		t.Errorf("storedAt %v, want zero for unparsable field", got.StoredAt())
	}
}
