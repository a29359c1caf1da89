package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct{ err error }

func (m *mockPinger) Ping(context.Context) error { return m.err }

func TestCheck_Healthy(t *testing.T) {
	svc := New(&mockPinger{}, 256)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status %q, want %q", report.Status, Healthy)
	}
	if report.Shards != 256 {
		t.Errorf("shards %d, want 256", report.Shards)
	}
	if report.Checks["shard_store"] != CheckOK {
		t.Errorf("shard_store check %q, want ok", report.Checks["shard_store"])
	}
}

func TestCheck_StoreDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("connection refused")}, 16)

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status %q, want %q", report.Status, Degraded)
	}
	if report.Checks["shard_store"] != CheckError {
		t.Errorf("shard_store check %q, want error", report.Checks["shard_store"])
	}
}
