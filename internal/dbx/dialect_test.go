package dbx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestDialectFromDSN(t *testing.T) {
	tests := []struct {
		dsn    string
		want   Dialect
		driver string
		goose  string
	}{
		{"users.db", DialectSQLite, "sqlite", "sqlite3"},
		{"file:users.db?cache=shared", DialectSQLite, "sqlite", "sqlite3"},
		{":memory:", DialectSQLite, "sqlite", "sqlite3"},
		{"postgres://u:p@localhost:5432/users", DialectPostgres, "pgx", "pgx"},
		{"postgresql://localhost/users", DialectPostgres, "pgx", "pgx"},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			d := DialectFromDSN(tt.dsn)
			assert.Equal(t, tt.want, d)
			assert.Equal(t, tt.driver, d.DriverName())
			assert.Equal(t, tt.goose, d.GooseDialect())
		})
	}
}

func TestRebind(t *testing.T) {
	q := `UPDATE users SET first_name = ?, last_name = ? WHERE id = ?`

	assert.Equal(t, q, DialectSQLite.Rebind(q))
	assert.Equal(t, `UPDATE users SET first_name = $1, last_name = $2 WHERE id = $3`, DialectPostgres.Rebind(q))
	assert.Equal(t, `SELECT 1`, DialectPostgres.Rebind(`SELECT 1`))
}

func TestUniqueViolation_Postgres(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_id_key"}

	name, ok := UniqueViolation(fmt.Errorf("db error: %w", pgErr))
	assert.True(t, ok)
	assert.Equal(t, "users_email_id_key", name)

	_, ok = UniqueViolation(&pgconn.PgError{Code: "23502"})
	assert.False(t, ok)
}

func TestUniqueViolation_Other(t *testing.T) {
	_, ok := UniqueViolation(errors.New("UNIQUE constraint failed: users.email_id"))
	assert.False(t, ok, "plain errors are not driver errors")

	_, ok = UniqueViolation(nil)
	assert.False(t, ok)
}

func TestSQLiteColumn(t *testing.T) {
	assert.Equal(t, "email_id", sqliteColumn("constraint failed: UNIQUE constraint failed: users.email_id (2067)"))
	assert.Equal(t, "phone_number", sqliteColumn("UNIQUE constraint failed: users.phone_number, users.email_id"))
	assert.Equal(t, "", sqliteColumn("disk I/O error"))
}
