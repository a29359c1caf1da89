package result

import (
	"errors"
	"testing"
)

func TestPartial_States(t *testing.T) {
	ok := NewPartial(3, []ScoredRecord{NewScoredRecord("a", 0.5, 3, "", "", "")})
	if !ok.OK() || ok.Status() != StatusOK || len(ok.Records()) != 1 {
		t.Fatalf("unexpected ok partial: %+v", ok)
	}

	timeoutErr := errors.New("deadline")
	to := NewPartialTimeout(4, timeoutErr)
	if to.OK() || to.Status() != StatusTimeout || !errors.Is(to.Err(), timeoutErr) {
		t.Fatalf("unexpected timeout partial: %+v", to)
	}

	failed := NewPartialError(5, errors.New("boom"))
	if failed.OK() || failed.Status() != StatusError {
		t.Fatalf("unexpected error partial: %+v", failed)
	}
}

func TestMerged_DegradedAndAllFailed(t *testing.T) {
	clean := NewMerged(nil, nil, 4)
	if clean.Degraded() || clean.AllFailed() {
		t.Fatal("clean result must not be degraded")
	}

	partial := NewMerged(nil, []ShardFailure{{Shard: 1, Status: StatusTimeout}}, 4)
	if !partial.Degraded() || partial.AllFailed() {
		t.Fatal("one failure of four must be degraded but not all-failed")
	}

	total := NewMerged(nil, []ShardFailure{
		{Shard: 0, Status: StatusError},
		{Shard: 1, Status: StatusError},
	}, 2)
	if !total.AllFailed() {
		t.Fatal("every target failed: AllFailed must be true")
	}

	empty := NewMerged(nil, nil, 0)
	if empty.AllFailed() {
		t.Fatal("zero targets is not a total failure")
	}
}
