package db

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// execRawProvider accepts *bun.DB, bun.Tx or bun.IDB; all expose NewRaw.
type execRawProvider interface {
	NewRaw(query string, args ...interface{}) *bun.RawQuery
}

// ExecRaw executes a raw SQL statement using the provided Bun DB or transaction.
func ExecRaw(ctx context.Context, exec execRawProvider, query string, args ...interface{}) (sql.Result, error) {
	return exec.NewRaw(query, args...).Exec(ctx)
}

// QueryRawInto runs a raw query and scans the first row into dest.
func QueryRawInto(ctx context.Context, exec execRawProvider, dest interface{}, query string, args ...interface{}) error {
	return exec.NewRaw(query, args...).Scan(ctx, dest)
}

// tableExists reports whether a table with the given name exists.
func tableExists(ctx context.Context, exec execRawProvider, name string) (bool, error) {
	var n int
	if err := QueryRawInto(ctx, exec, &n, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name); err != nil {
		return false, err
	}
	return n > 0, nil
}
