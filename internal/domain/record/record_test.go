package record

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/memtier/internal/domain"
)

func TestNew_DefaultsToHotTier(t *testing.T) {
	rec, err := New("conv-1", "acme", "hello", "", []float32{0.1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Tier() != TierHot {
		t.Fatalf("tier = %s, want hot", rec.Tier())
	}
	if rec.StoredAt().IsZero() {
		t.Fatal("stored-at must be set")
	}
}

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name       string
		id, tenant string
		tier       Tier
		embedding  []float32
	}{
		{"missing id", "", "acme", TierHot, []float32{0.1}},
		{"missing tenant", "conv-1", "", TierHot, []float32{0.1}},
		{"missing embedding", "conv-1", "acme", TierHot, nil},
		{"unknown tier", "conv-1", "acme", "lukewarm", []float32{0.1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.id, tc.tenant, "", tc.tier, tc.embedding); !errors.Is(err, domain.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestReconstruct_RoundTrip(t *testing.T) {
	storedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := Reconstruct("conv-2", "globex", "payload", TierCold, []float32{1, 2}, storedAt)

	if rec.ID() != "conv-2" || rec.Tenant() != "globex" || rec.Tier() != TierCold {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !rec.StoredAt().Equal(storedAt) {
		t.Fatalf("stored-at = %v", rec.StoredAt())
	}
}

func TestTier_IsValid(t *testing.T) {
	for _, tier := range []Tier{TierHot, TierWarm, TierCold} {
		if !tier.IsValid() {
			t.Errorf("%s must be valid", tier)
		}
	}
	if Tier("frozen").IsValid() {
		t.Error("unknown tier accepted")
	}
}
