package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

type AppConfig struct {
	StateListenAddr string
	StatsListenAddr string

	RedisURL string

	ShardCount int
	DBDriver   string
	DBDir      string
	// DatabaseURLTemplate is a DSN with one %d verb for the shard index,
	// used by the postgres and mysql drivers.
	DatabaseURLTemplate string
	// ShardDSNs, when set (via SHARDS_FILE), overrides both ShardCount and
	// the template: one explicit DSN per shard, in shard order.
	ShardDSNs []string
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		StateListenAddr: ":5200",
		StatsListenAddr: ":5300",
		ShardCount:      3,
		DBDriver:        "sqlite3",
		DBDir:           "./var",
	}

	if v := strings.TrimSpace(os.Getenv("STATE_LISTEN_ADDR")); v != "" {
		cfg.StateListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("STATS_LISTEN_ADDR")); v != "" {
		cfg.StatsListenAddr = v
	}
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))

	if v := strings.TrimSpace(os.Getenv("SHARD_COUNT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("SHARD_COUNT must be a positive integer, got %q", v)
		}
		cfg.ShardCount = n
	}
	if v := strings.TrimSpace(os.Getenv("DB_DRIVER")); v != "" {
		cfg.DBDriver = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("DB_DIR")); v != "" {
		cfg.DBDir = v
	}
	cfg.DatabaseURLTemplate = strings.TrimSpace(os.Getenv("DATABASE_URL_TEMPLATE"))

	if path := strings.TrimSpace(os.Getenv("SHARDS_FILE")); path != "" {
		dsns, err := loadShardsFile(path)
		if err != nil {
			return nil, err
		}
		cfg.ShardDSNs = dsns
		cfg.ShardCount = len(dsns)
	}

	switch cfg.DBDriver {
	case "sqlite3", "postgres", "mysql", "memory":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if (cfg.DBDriver == "postgres" || cfg.DBDriver == "mysql") &&
		cfg.DatabaseURLTemplate == "" && len(cfg.ShardDSNs) == 0 {
		return nil, errors.New("DATABASE_URL_TEMPLATE or SHARDS_FILE is required for server database drivers")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}

	return cfg, nil
}

type shardsFile struct {
	Shards []string `yaml:"shards"`
}

func loadShardsFile(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shards file: %w", err)
	}
	var f shardsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse shards file: %w", err)
	}
	var dsns []string
	for _, s := range f.Shards {
		if v := strings.TrimSpace(s); v != "" {
			dsns = append(dsns, v)
		}
	}
	if len(dsns) == 0 {
		return nil, fmt.Errorf("shards file %s lists no shards", path)
	}
	return dsns, nil
}
