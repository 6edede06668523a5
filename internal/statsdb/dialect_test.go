package statsdb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
)

func TestDialectForRejectsUnknownDriver(t *testing.T) {
	if _, err := DialectFor("mssql"); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestPostgresPlaceholderRewrite(t *testing.T) {
	d, err := DialectFor("postgres")
	if err != nil {
		t.Fatalf("DialectFor: %v", err)
	}
	got := d.Rewrite("INSERT INTO games (user_id, game_id) VALUES (?, ?)")
	want := "INSERT INTO games (user_id, game_id) VALUES ($1, $2)"
	if got != want {
		t.Fatalf("rewrite mismatch:\n got  %q\n want %q", got, want)
	}
}

func TestSQLiteKeepsQuestionMarks(t *testing.T) {
	d, _ := DialectFor("sqlite3")
	q := "SELECT wins FROM wins WHERE user_id = ?"
	if got := d.Rewrite(q); got != q {
		t.Fatalf("sqlite rewrite changed query: %q", got)
	}
}

func TestUniqueViolationDetection(t *testing.T) {
	sqliteD, _ := DialectFor("sqlite3")
	pgD, _ := DialectFor("postgres")
	myD, _ := DialectFor("mysql")

	sqliteDup := sqlite3.Error{
		Code:         sqlite3.ErrConstraint,
		ExtendedCode: sqlite3.ErrConstraintPrimaryKey,
	}
	if !sqliteD.IsUniqueViolation(sqliteDup) {
		t.Fatal("sqlite primary-key violation not detected")
	}
	if !sqliteD.IsUniqueViolation(fmt.Errorf("insert game: %w", sqliteDup)) {
		t.Fatal("wrapped sqlite violation not detected")
	}

	if !pgD.IsUniqueViolation(&pq.Error{Code: "23505"}) {
		t.Fatal("postgres 23505 not detected")
	}
	if pgD.IsUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Fatal("postgres foreign-key violation misclassified as unique")
	}

	if !myD.IsUniqueViolation(&mysql.MySQLError{Number: 1062}) {
		t.Fatal("mysql 1062 not detected")
	}

	for _, d := range []Dialect{sqliteD, pgD, myD} {
		if d.IsUniqueViolation(errors.New("connection refused")) {
			t.Fatalf("%s misclassified a generic error", d.DriverName())
		}
	}
}
