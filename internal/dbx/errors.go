package dbx

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const pgUniqueViolation = "23505"

const sqliteUniqueMarker = "UNIQUE constraint failed: "

// UniqueViolation reports whether err is a unique-constraint failure from
// either driver. The returned name is the PostgreSQL constraint name or the
// first SQLite column named in the failure, e.g. "email_id".
func UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return "", false
		}
		return pgErr.ConstraintName, true
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch code := liteErr.Code(); {
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE, code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return sqliteColumn(liteErr.Error()), true
		case code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), sqliteUniqueMarker):
			// base result code only; fall back to the message
			return sqliteColumn(liteErr.Error()), true
		}
	}
	return "", false
}

// sqliteColumn extracts "email_id" from
// "... UNIQUE constraint failed: users.email_id (2067)".
func sqliteColumn(msg string) string {
	_, rest, ok := strings.Cut(msg, sqliteUniqueMarker)
	if !ok {
		return ""
	}
	rest, _, _ = strings.Cut(rest, " ")
	rest, _, _ = strings.Cut(rest, ",")
	if i := strings.LastIndexByte(rest, '.'); i >= 0 {
		rest = rest[i+1:]
	}
	return rest
}
