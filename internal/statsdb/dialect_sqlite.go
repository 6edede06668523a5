package statsdb

import (
	"database/sql"
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
)

type sqliteDialect struct{}

func (sqliteDialect) DriverName() string { return "sqlite3" }

func (sqliteDialect) Rewrite(query string) string { return query }

func (sqliteDialect) IsUniqueViolation(err error) bool {
	var serr sqlite3.Error
	if !errors.As(err, &serr) {
		return false
	}
	return serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		serr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func (sqliteDialect) Configure(db *sql.DB) error {
	// A file shard is a single-writer database; one connection avoids
	// SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return err
	}
	_, err := db.Exec("PRAGMA busy_timeout = 5000")
	return err
}
