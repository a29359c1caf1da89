package query

import (
	"math"
	"reflect"
	"testing"

	"github.com/kailas-cloud/memtier/internal/domain/query/result"
	"github.com/kailas-cloud/memtier/internal/shard"
)

func hit(id string, score float64, sh int) result.ScoredRecord {
	return result.NewScoredRecord(id, score, shard.ID(sh), "", "", "")
}

func ids(records []result.ScoredRecord) []string {
	out := make([]string, len(records))
	for i := range records {
		out[i] = records[i].ID()
	}
	return out
}

func TestMerge_DedupeKeepsHighestScore(t *testing.T) {
	// Shard 7 and shard 42 both return record A with different scores.
	partials := []result.Partial{
		result.NewPartial(7, []result.ScoredRecord{hit("A", 0.9, 7), hit("B", 0.8, 7)}),
		result.NewPartial(42, []result.ScoredRecord{hit("A", 0.85, 42), hit("C", 0.7, 42)}),
	}

	merged := merge(partials, 10)

	if got, want := ids(merged), []string{"A", "B", "C"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("merged order = %v, want %v", got, want)
	}
	if merged[0].Score() != 0.9 {
		t.Fatalf("A kept score %v, want 0.9", merged[0].Score())
	}
	if merged[0].Shard() != 7 {
		t.Fatalf("A kept shard %d, want 7 (the higher-scoring source)", merged[0].Shard())
	}
}

func TestMerge_LimitTruncates(t *testing.T) {
	partials := []result.Partial{
		result.NewPartial(7, []result.ScoredRecord{hit("A", 0.9, 7), hit("B", 0.8, 7)}),
		result.NewPartial(42, []result.ScoredRecord{hit("A", 0.85, 42), hit("C", 0.7, 42)}),
	}

	merged := merge(partials, 1)

	if got, want := ids(merged), []string{"A"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("merged = %v, want %v", got, want)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	partials := []result.Partial{
		result.NewPartial(1, []result.ScoredRecord{hit("x", 0.5, 1), hit("y", 0.5, 1)}),
		result.NewPartial(2, []result.ScoredRecord{hit("z", 0.5, 2), hit("x", 0.5, 2)}),
	}

	first := merge(partials, 10)
	second := merge(partials, 10)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated merge differs: %v vs %v", ids(first), ids(second))
	}
}

func TestMerge_TieBreakFirstSeen(t *testing.T) {
	// Equal scores: the record reported first in iteration order wins
	// the earlier position, regardless of shard.
	partials := []result.Partial{
		result.NewPartial(3, []result.ScoredRecord{hit("late", 0.5, 3)}),
		result.NewPartial(1, []result.ScoredRecord{hit("later", 0.5, 1)}),
	}

	merged := merge(partials, 10)

	if got, want := ids(merged), []string{"late", "later"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("tie-break order = %v, want %v", got, want)
	}
}

func TestMerge_SkipsFailedPartials(t *testing.T) {
	partials := []result.Partial{
		result.NewPartial(1, []result.ScoredRecord{hit("a", 0.9, 1)}),
		result.NewPartialTimeout(2, nil),
		result.NewPartialError(3, nil),
	}

	merged := merge(partials, 10)

	if got, want := ids(merged), []string{"a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("merged = %v, want %v", got, want)
	}
}

func TestMerge_MalformedHitsSortLast(t *testing.T) {
	partials := []result.Partial{
		result.NewPartial(1, []result.ScoredRecord{
			hit("", 0.99, 1),            // missing id
			hit("nan", math.NaN(), 1),   // broken score
			hit("ok", 0.1, 1),
		}),
	}

	merged := merge(partials, 10)

	if len(merged) != 3 {
		t.Fatalf("expected malformed hits carried through, got %d records", len(merged))
	}
	if merged[0].ID() != "ok" {
		t.Fatalf("well-formed hit must sort first, got %q", merged[0].ID())
	}
}

func TestMerge_NaNDoesNotReplaceRealScore(t *testing.T) {
	partials := []result.Partial{
		result.NewPartial(1, []result.ScoredRecord{hit("a", 0.4, 1)}),
		result.NewPartial(2, []result.ScoredRecord{hit("a", math.NaN(), 2)}),
	}

	merged := merge(partials, 10)

	if len(merged) != 1 {
		t.Fatalf("expected 1 deduped record, got %d", len(merged))
	}
	if merged[0].Score() != 0.4 {
		t.Fatalf("NaN replaced real score: %v", merged[0].Score())
	}
}

func TestMerge_EmptyInput(t *testing.T) {
	if got := merge(nil, 10); len(got) != 0 {
		t.Fatalf("merge(nil) = %v, want empty", got)
	}
}
