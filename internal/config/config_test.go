package config

import "testing"

func validConfig() Config {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Storage: StorageConfig{VectorDim: 384},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingVectorDim(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.VectorDim = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing vector_dim")
	}
}

func TestValidate_PerShardTimeoutExceedsDeadline(t *testing.T) {
	cfg := validConfig()
	cfg.Sharding.PerShardTimeoutMS = 10000
	cfg.Sharding.OverallDeadlineMS = 5000

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error when per-shard timeout reaches the overall deadline")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Sharding.Count != 256 {
		t.Errorf("expected Count=256, got %d", cfg.Sharding.Count)
	}
	if cfg.Sharding.PerShardTimeoutMS != 2000 {
		t.Errorf("expected PerShardTimeoutMS=2000, got %d", cfg.Sharding.PerShardTimeoutMS)
	}
	if cfg.Sharding.OverallDeadlineMS != 10000 {
		t.Errorf("expected OverallDeadlineMS=10000, got %d", cfg.Sharding.OverallDeadlineMS)
	}
	if cfg.Sharding.MaxFanout != 64 {
		t.Errorf("expected MaxFanout=64, got %d", cfg.Sharding.MaxFanout)
	}
	if cfg.Storage.KeyPrefix != "memtier:" {
		t.Errorf("expected KeyPrefix='memtier:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Storage.HNSWM != 32 {
		t.Errorf("expected HNSWM=32, got %d", cfg.Storage.HNSWM)
	}
	if cfg.Storage.HNSWEFConstruct != 400 {
		t.Errorf("expected HNSWEFConstruct=400, got %d", cfg.Storage.HNSWEFConstruct)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Sharding: ShardingConfig{Count: 16, PerShardTimeoutMS: 500, OverallDeadlineMS: 3000, MaxFanout: 8},
		Storage:  StorageConfig{KeyPrefix: "custom:", HNSWM: 16, HNSWEFConstruct: 200},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Sharding.Count != 16 {
		t.Errorf("expected Count=16, got %d", cfg.Sharding.Count)
	}
	if cfg.Sharding.MaxFanout != 8 {
		t.Errorf("expected MaxFanout=8, got %d", cfg.Sharding.MaxFanout)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Storage.HNSWM != 16 {
		t.Errorf("expected HNSWM=16, got %d", cfg.Storage.HNSWM)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("MEMTIER_TEST_PASSWORD", "s3cret")

	in := []byte("password: ${MEMTIER_TEST_PASSWORD}\nprefix: ${MEMTIER_TEST_UNSET:-memtier:}\n")
	out := string(expandEnvVars(in))

	want := "password: s3cret\nprefix: memtier:\n"
	if out != want {
		t.Errorf("expanded config:\ngot:  %q\nwant: %q", out, want)
	}
}
