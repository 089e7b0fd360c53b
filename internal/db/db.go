// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the data access layer for AdAway.
// It owns the local SQLite file holding the hosts_sources table and hands
// out an explicit store handle that callers release with Close.
package db // import "github.com/adaway/adaway/internal/db"

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is the database file used when no path is configured.
const DefaultPath = "adaway.db"

// sqlOpenFunc allows tests to override database opening behavior.
var sqlOpenFunc = sql.Open

// Options configures Open.
type Options struct {
	// Path is a file path or a sqlite DSN ("file:...?mode=memory").
	Path string
	// UpgradePolicy controls Upgrade; empty means UpgradeAdditive.
	UpgradePolicy UpgradePolicy
	// Migrations overrides the embedded migration files.
	Migrations fs.FS
	// SkipMigrate leaves the schema as found. The caller is expected to
	// run MigrateTo before using the store.
	SkipMigrate bool
}

// SqliteStore is the SQLite implementation of Store and SchemaManager.
type SqliteStore struct {
	bun        *bun.DB
	policy     UpgradePolicy
	migrations fs.FS
	migrator   *goose.Provider
}

// Open opens (or creates) the database, brings the schema to the latest
// version and returns the store. The caller owns the handle and must
// Close it.
func Open(ctx context.Context, opts Options) (*SqliteStore, error) {
	policy, err := ParseUpgradePolicy(string(opts.UpgradePolicy))
	if err != nil {
		return nil, err
	}
	migrations := opts.Migrations
	if migrations == nil {
		if migrations, err = defaultMigrations(); err != nil {
			return nil, err
		}
	}

	dsn := strings.TrimSpace(opts.Path)
	if dsn == "" {
		dsn = DefaultPath
	}

	start := time.Now()
	sqlDB, err := sqlOpenFunc("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// The process owns the file; one connection keeps statements strictly
	// ordered and keeps in-memory databases alive for the store's lifetime.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	_, _ = sqlDB.ExecContext(ctx, "PRAGMA busy_timeout = 5000;")
	_, _ = sqlDB.ExecContext(ctx, "PRAGMA journal_mode = WAL;")
	dbLogf("db: opened %s in %s", dsn, time.Since(start))

	s := &SqliteStore{
		bun:        bun.NewDB(sqlDB, sqlitedialect.New()),
		policy:     policy,
		migrations: migrations,
	}

	if opts.SkipMigrate {
		return s, nil
	}
	migStart := time.Now()
	if _, _, err := s.MigrateTo(ctx, 0); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	dbLogf("db: migrations completed in %s", time.Since(migStart))
	return s, nil
}

// WithStore opens a store, runs fn and always closes the store afterwards.
func WithStore(ctx context.Context, opts Options, fn func(*SqliteStore) error) (err error) {
	s, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

// Close releases the underlying database file handle. It is safe to call
// more than once.
func (s *SqliteStore) Close() error {
	if s == nil || s.bun == nil {
		return nil
	}
	b := s.bun
	s.bun = nil
	// The goose provider shares the same *sql.DB; closing it would close
	// the database twice.
	s.migrator = nil
	return b.Close()
}

// Policy reports the upgrade policy the store was opened with.
func (s *SqliteStore) Policy() UpgradePolicy {
	return s.policy
}

func (s *SqliteStore) db() (*bun.DB, error) {
	if s == nil || s.bun == nil {
		return nil, ErrClosed
	}
	return s.bun, nil
}

// RunMaintenance runs PRAGMA optimize, VACUUM, a WAL checkpoint and an
// integrity check against the open database.
func (s *SqliteStore) RunMaintenance(ctx context.Context) error {
	bdb, err := s.db()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	// PRAGMA optimize is not useful for every environment (e.g. in-memory
	// databases); its failure is not fatal.
	if _, err := ExecRaw(ctx, bdb, "PRAGMA optimize;"); err != nil {
		dbLogf("db: sqlite optimize failed (ignored): %v", err)
	}
	if _, err := ExecRaw(ctx, bdb, "VACUUM;"); err != nil {
		return fmt.Errorf("sqlite vacuum failed: %w", err)
	}
	_, _ = ExecRaw(ctx, bdb, "PRAGMA wal_checkpoint(TRUNCATE);")

	var res string
	if err := QueryRawInto(ctx, bdb, &res, "PRAGMA integrity_check;"); err != nil {
		return fmt.Errorf("sqlite integrity_check failed: %w", err)
	}
	if res != "ok" {
		return fmt.Errorf("sqlite integrity_check failed: %s", res)
	}
	return nil
}
