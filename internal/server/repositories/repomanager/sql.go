// Package repomanager vends dialect-aware repository implementations and
// applies the embedded goose migrations for the configured database.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userbook/internal/dbx"
	"github.com/dmitrijs2005/userbook/internal/filex"
	"github.com/dmitrijs2005/userbook/internal/server/migrations"
	"github.com/dmitrijs2005/userbook/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// sqliteBusyTimeout makes concurrent writers wait instead of failing with SQLITE_BUSY.
const sqliteBusyTimeout = "_pragma=busy_timeout(5000)"

// SQLRepositoryManager vends repositories for one SQL dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// NewSQLRepositoryManager constructs a RepositoryManager for the dialect.
func NewSQLRepositoryManager(d dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: d}
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations points goose at the embedded migrations for the dialect and
// applies everything not yet applied. Running it twice is a no-op.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.GooseDialect()); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, m.dialect.String()); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	return nil
}

// Open opens the database named by dsn, checks it is reachable and runs the
// migrations. The caller owns the returned *sql.DB.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {
	d := dbx.DialectFromDSN(dsn)

	if path, ok := filex.SQLitePath(dsn); ok && d == dbx.DialectSQLite {
		if _, err := filex.EnsureDirFor(path); err != nil {
			return nil, nil, fmt.Errorf("db dir error: %w", err)
		}
	}

	db, err := sql.Open(d.DriverName(), driverDSN(d, dsn))
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	if d == dbx.DialectSQLite {
		// one writer at a time; also keeps ":memory:" on a single database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}

	m := NewSQLRepositoryManager(d)
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, m, nil
}

func driverDSN(d dbx.Dialect, dsn string) string {
	if d != dbx.DialectSQLite || strings.Contains(dsn, "busy_timeout") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqliteBusyTimeout
	}
	return dsn + "?" + sqliteBusyTimeout
}
