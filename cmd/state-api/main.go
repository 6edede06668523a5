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
	"github.com/park285/wordle-backend/internal/gamestate"
	"github.com/park285/wordle-backend/internal/httpapi"
	"github.com/park285/wordle-backend/internal/obslog"
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

	svc := gamestate.New(gamestate.NewStore(rdb), logger)
	handler := httpapi.NewStateHandler(svc, logger)

	server := &fasthttp.Server{
		Handler:      handler.Handle,
		Name:         "state-api",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(cfg.StateListenAddr); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()
	logger.Info("state-api listening", zap.String("addr", cfg.StateListenAddr))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	_ = server.Shutdown()
	_ = rdb.Close()
}
