// Package filex holds small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDirFor creates the directory that will hold the file at path, so a
// DSN like "data/users.db" works on a fresh checkout. It returns the
// directory. Paths without a directory component need nothing.
func EnsureDirFor(path string) (string, error) {
	dir := filepath.Dir(path)
	if dir == "." {
		return dir, nil
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// SQLitePath returns the file path inside a SQLite DSN such as
// "file:data/users.db?_pragma=foreign_keys(1)". In-memory databases report
// ok == false.
func SQLitePath(dsn string) (path string, ok bool) {
	path = strings.TrimPrefix(dsn, "file:")
	path, _, _ = strings.Cut(path, "?")
	if path == "" || path == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return "", false
	}
	return path, true
}
