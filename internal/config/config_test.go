package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ShardCount != 3 || cfg.DBDriver != "sqlite3" || cfg.DBDir != "./var" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.StateListenAddr != ":5200" || cfg.StatsListenAddr != ":5300" {
		t.Fatalf("unexpected listen addrs: %+v", cfg)
	}
}

func TestLoadRequiresRedisURL(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without REDIS_URL")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("DB_DRIVER", "oracle")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestLoadShardsFileOverridesCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shards.yaml")
	data := "shards:\n  - ./var/a.db\n  - ./var/b.db\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write shards file: %v", err)
	}
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SHARD_COUNT", "5")
	t.Setenv("SHARDS_FILE", path)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ShardCount != 2 || len(cfg.ShardDSNs) != 2 {
		t.Fatalf("shards file should pin shard count: %+v", cfg)
	}
}
