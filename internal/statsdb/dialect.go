package statsdb

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
)

// Dialect abstracts the per-driver differences between shard backends:
// placeholder syntax, unique-violation detection and connection setup.
type Dialect interface {
	DriverName() string

	// Rewrite converts ? placeholders to the driver's syntax if needed.
	Rewrite(query string) string

	// IsUniqueViolation reports whether err is a primary-key/unique
	// constraint failure from this driver.
	IsUniqueViolation(err error) bool

	// Configure applies driver-specific pool and pragma settings.
	Configure(db *sql.DB) error
}

// DialectFor returns the dialect for a DB_DRIVER value.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "sqlite3":
		return sqliteDialect{}, nil
	case "postgres":
		return postgresDialect{}, nil
	case "mysql":
		return mysqlDialect{}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

var placeholderRegexp = regexp.MustCompile(`\?`)

func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}
