// Package statsdb owns the sharded relational history: one independent
// database per shard, selected by internal/shard. There are no cross-shard
// transactions; every operation runs against exactly one partition.
package statsdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/park285/wordle-backend/internal/config"
)

// Shards holds one *sql.DB per partition, opened eagerly at startup.
type Shards struct {
	dialect Dialect
	dbs     []*sql.DB
}

// Open connects every shard, verifies it with a ping and bootstraps the
// schema. DSNs come from an explicit per-shard list when configured,
// otherwise from the DSN template (server drivers) or DB_DIR (sqlite).
func Open(cfg *config.AppConfig) (*Shards, error) {
	dialect, err := DialectFor(cfg.DBDriver)
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == "sqlite3" && len(cfg.ShardDSNs) == 0 {
		if err := os.MkdirAll(cfg.DBDir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	s := &Shards{dialect: dialect}
	for i := 0; i < cfg.ShardCount; i++ {
		db, err := openShard(dialect, shardDSN(cfg, i))
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("shard %d: %w", i, err)
		}
		s.dbs = append(s.dbs, db)
	}
	return s, nil
}

func shardDSN(cfg *config.AppConfig, i int) string {
	if len(cfg.ShardDSNs) > 0 {
		return cfg.ShardDSNs[i]
	}
	if cfg.DBDriver == "sqlite3" {
		path := filepath.Join(cfg.DBDir, fmt.Sprintf("stats%d.db", i))
		return path + "?_busy_timeout=5000"
	}
	return fmt.Sprintf(cfg.DatabaseURLTemplate, i)
}

func openShard(dialect Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, err
	}
	if err := dialect.Configure(db); err != nil {
		db.Close()
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema: %w", err)
	}
	return db, nil
}

// ensureSchema applies the idempotent DDL for one shard. Column types stay in
// the intersection the three supported drivers accept.
func ensureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id  VARCHAR(36) PRIMARY KEY,
			username VARCHAR(64) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS games (
			user_id  VARCHAR(36) NOT NULL,
			game_id  INTEGER     NOT NULL,
			finished DATE,
			guesses  INTEGER     NOT NULL,
			won      BOOLEAN     NOT NULL,
			PRIMARY KEY (user_id, game_id)
		)`,
		`CREATE TABLE IF NOT EXISTS streaks (
			user_id VARCHAR(36) NOT NULL,
			streak  INTEGER     NOT NULL,
			ending  DATE        NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS wins (
			user_id VARCHAR(36) PRIMARY KEY,
			wins    INTEGER     NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// For returns the database handle for shard i.
func (s *Shards) For(i int) *sql.DB { return s.dbs[i] }

func (s *Shards) Count() int { return len(s.dbs) }

func (s *Shards) Dialect() Dialect { return s.dialect }

func (s *Shards) Close() error {
	var first error
	for _, db := range s.dbs {
		if err := db.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
