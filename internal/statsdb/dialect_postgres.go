package statsdb

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

type postgresDialect struct{}

func (postgresDialect) DriverName() string { return "postgres" }

func (postgresDialect) Rewrite(query string) string {
	return rewritePlaceholdersToNumbered(query)
}

func (postgresDialect) IsUniqueViolation(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == "23505"
}

func (postgresDialect) Configure(db *sql.DB) error {
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	return nil
}
