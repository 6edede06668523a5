package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	appcfg "github.com/park285/wordle-backend/internal/config"
	"github.com/park285/wordle-backend/internal/httpapi"
	"github.com/park285/wordle-backend/internal/obslog"
	svcstats "github.com/park285/wordle-backend/internal/service/stats"
	"github.com/park285/wordle-backend/internal/statsdb"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()
	defer logger.Sync()

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal("invalid REDIS_URL", zap.Error(err))
	}
	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancel()
		logger.Fatal("redis ping failed", zap.Error(err))
	}
	cancel()

	var repo statsdb.ShardRepository
	var shards *statsdb.Shards
	if cfg.DBDriver == "memory" {
		logger.Warn("DB_DRIVER=memory: stats will not survive a restart")
		repo = statsdb.NewMemoryRepository(cfg.ShardCount)
	} else {
		shards, err = statsdb.Open(cfg)
		if err != nil {
			logger.Fatal("shard open failed", zap.Error(err))
		}
		repo = statsdb.NewRepository(shards)
	}

	svc := svcstats.New(repo, rdb, logger)
	handler := httpapi.NewStatsHandler(svc, logger)

	server := &fasthttp.Server{
		Handler:      handler.Handle,
		Name:         "stats-api",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(cfg.StatsListenAddr); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()
	logger.Info("stats-api listening",
		zap.String("addr", cfg.StatsListenAddr),
		zap.Int("shards", cfg.ShardCount),
		zap.String("driver", cfg.DBDriver))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	_ = server.Shutdown()
	if shards != nil {
		_ = shards.Close()
	}
	_ = rdb.Close()
}
