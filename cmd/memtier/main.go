package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/memtier/internal/config"
	"github.com/kailas-cloud/memtier/internal/db"
	dbRedis "github.com/kailas-cloud/memtier/internal/db/redis"
	logpkg "github.com/kailas-cloud/memtier/internal/logger"
	"github.com/kailas-cloud/memtier/internal/metrics"
	recordrepo "github.com/kailas-cloud/memtier/internal/repository/record"
	searchrepo "github.com/kailas-cloud/memtier/internal/repository/search"
	"github.com/kailas-cloud/memtier/internal/shard"
	chiTransport "github.com/kailas-cloud/memtier/internal/transport/chi"
	healthuc "github.com/kailas-cloud/memtier/internal/usecase/health"
	queryuc "github.com/kailas-cloud/memtier/internal/usecase/query"
	recorduc "github.com/kailas-cloud/memtier/internal/usecase/record"
	"github.com/kailas-cloud/memtier/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting memtier API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Int("shards", cfg.Sharding.Count),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create shard store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Shard store not ready", zap.Error(err))
	}
	logger.Info("Connected to shard store")

	router, err := shard.NewRouter(cfg.Sharding.Count, cfg.Storage.KeyPrefix)
	if err != nil {
		logger.Fatal("Failed to create shard router", zap.Error(err))
	}

	if err := ensureShardIndexes(ctx, store, router, cfg.Storage); err != nil {
		logger.Fatal("Failed to create shard indexes", zap.Error(err))
	}

	// Register query engine metrics explicitly (no init())
	metrics.RegisterQueryMetrics()

	queries := queryuc.New(router, searchrepo.New(store), queryuc.Config{
		PerShardTimeout: time.Duration(cfg.Sharding.PerShardTimeoutMS) * time.Millisecond,
		OverallDeadline: time.Duration(cfg.Sharding.OverallDeadlineMS) * time.Millisecond,
		MaxFanout:       int64(cfg.Sharding.MaxFanout),
	})
	records := recorduc.New(router, recordrepo.New(store), cfg.Storage.VectorDim)
	health := healthuc.New(store, cfg.Sharding.Count)

	server := chiTransport.NewServer(queries, records, health, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      server.Router(cfg.Auth.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// ensureShardIndexes creates the per-shard FT index for every shard that
// does not have one yet. Existing indexes are left untouched.
func ensureShardIndexes(
	ctx context.Context, store db.Store, router *shard.Router, cfg config.StorageConfig,
) error {
	for i := 0; i < router.Count(); i++ {
		loc := router.LocationFor(shard.ID(i))

		exists, err := store.IndexExists(ctx, loc.Index())
		if err != nil {
			return fmt.Errorf("check index %s: %w", loc.Index(), err)
		}
		if exists {
			continue
		}

		def := &db.IndexDefinition{
			Name:     loc.Index(),
			Prefixes: []string{loc.KeyPrefix()},
			Fields: []db.IndexField{
				{Name: "tenant", Type: db.IndexFieldTag},
				{Name: "tier", Type: db.IndexFieldTag},
				{Name: "stored_at", Type: db.IndexFieldNumeric},
				{
					Name:              "embedding",
					Type:              db.IndexFieldVector,
					VectorAlgo:        db.VectorHNSW,
					VectorDim:         cfg.VectorDim,
					VectorDistance:    db.DistanceCosine,
					VectorM:           cfg.HNSWM,
					VectorEFConstruct: cfg.HNSWEFConstruct,
				},
			},
		}
		if err := store.CreateIndex(ctx, def); err != nil && err != db.ErrIndexExists {
			return fmt.Errorf("create index %s: %w", loc.Index(), err)
		}
	}
	return nil
}
