// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/adaway/adaway/internal/logging"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// UpgradePolicy selects what Upgrade does with existing rows.
type UpgradePolicy string

const (
	// UpgradeAdditive applies the forward-only migration chain and keeps rows.
	UpgradeAdditive UpgradePolicy = "additive"
	// UpgradeDestructive drops hosts_sources and recreates it from scratch,
	// discarding all user data.
	UpgradeDestructive UpgradePolicy = "destructive"
)

// ParseUpgradePolicy validates a policy name. The empty string selects
// UpgradeAdditive.
func ParseUpgradePolicy(s string) (UpgradePolicy, error) {
	switch UpgradePolicy(s) {
	case "", UpgradeAdditive:
		return UpgradeAdditive, nil
	case UpgradeDestructive:
		return UpgradeDestructive, nil
	default:
		return "", fmt.Errorf("unknown upgrade policy %q (want %q or %q)", s, UpgradeAdditive, UpgradeDestructive)
	}
}

// defaultMigrations returns the embedded migration files as a flat filesystem.
func defaultMigrations() (fs.FS, error) {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to create sub filesystem: %w", err)
	}
	return sub, nil
}

func (s *SqliteStore) provider() (*goose.Provider, error) {
	bdb, err := s.db()
	if err != nil {
		return nil, err
	}
	if s.migrator != nil {
		return s.migrator, nil
	}
	p, err := goose.NewProvider(database.DialectSQLite3, bdb.DB, s.migrations)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}
	s.migrator = p
	return p, nil
}

// LatestSchemaVersion returns the highest version in the migration chain.
func (s *SqliteStore) LatestSchemaVersion() (int64, error) {
	p, err := s.provider()
	if err != nil {
		return 0, err
	}
	var latest int64
	for _, src := range p.ListSources() {
		if src.Version > latest {
			latest = src.Version
		}
	}
	return latest, nil
}

// SchemaVersion returns the version currently recorded in the database,
// or 0 for a database that has never been initialized.
func (s *SqliteStore) SchemaVersion(ctx context.Context) (int64, error) {
	p, err := s.provider()
	if err != nil {
		return 0, err
	}
	v, err := p.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}

// Initialize creates hosts_sources and seeds the default sources. Seeding
// is part of the first migration, so it happens exactly once per database.
func (s *SqliteStore) Initialize(ctx context.Context) error {
	p, err := s.provider()
	if err != nil {
		return err
	}
	start := time.Now()
	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	dbLogf("db: applied %d migration(s) in %s", len(results), time.Since(start))
	return nil
}

// Upgrade moves the schema from oldVersion to newVersion under the store's
// policy. The additive policy applies pending migrations in order and
// keeps every row. The destructive policy rolls the whole chain back,
// which drops hosts_sources, then re-applies it up to newVersion.
func (s *SqliteStore) Upgrade(ctx context.Context, oldVersion, newVersion int64) error {
	if newVersion < oldVersion {
		return fmt.Errorf("cannot downgrade schema from version %d to %d", oldVersion, newVersion)
	}
	latest, err := s.LatestSchemaVersion()
	if err != nil {
		return err
	}
	if newVersion > latest {
		return fmt.Errorf("target schema version %d is beyond the latest known version %d", newVersion, latest)
	}
	p, err := s.provider()
	if err != nil {
		return err
	}

	switch s.policy {
	case UpgradeDestructive:
		logging.Warnf("Upgrading database from version %d to %d, this will drop tables and recreate.", oldVersion, newVersion)
		if _, err := p.DownTo(ctx, 0); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	default:
		logging.Infof("Upgrading database from version %d to %d", oldVersion, newVersion)
	}

	results, err := p.UpTo(ctx, newVersion)
	if err != nil {
		return fmt.Errorf("failed to upgrade schema to version %d: %w", newVersion, err)
	}
	dbLogf("db: upgrade applied %d migration(s)", len(results))
	return s.syncUserVersion(ctx)
}

// Reset drops hosts_sources and recreates it with only the default
// sources, regardless of the configured upgrade policy.
func (s *SqliteStore) Reset(ctx context.Context) error {
	p, err := s.provider()
	if err != nil {
		return err
	}
	if _, err := p.DownTo(ctx, 0); err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("failed to recreate schema: %w", err)
	}
	logging.Infof("hosts sources reset to defaults")
	return s.syncUserVersion(ctx)
}

// gooseVersionTable is the bookkeeping table goose keeps applied versions in.
const gooseVersionTable = "goose_db_version"

// MigrateTo brings the schema to target, or to the latest version when
// target is 0, and mirrors the result into PRAGMA user_version. Databases
// with an untracked hosts_sources table are adopted as version 1 first.
func (s *SqliteStore) MigrateTo(ctx context.Context, target int64) (from, to int64, err error) {
	current, err := s.SchemaVersion(ctx)
	if err != nil {
		return 0, 0, err
	}
	if current == 0 {
		if current, err = s.adoptLegacySchema(ctx); err != nil {
			return 0, 0, err
		}
	}
	latest, err := s.LatestSchemaVersion()
	if err != nil {
		return current, current, err
	}
	if current > latest {
		return current, current, fmt.Errorf("%w: database at version %d, build supports %d", ErrSchemaTooNew, current, latest)
	}
	if target == 0 {
		target = latest
	}
	switch {
	case current == target:
	case current == 0 && target == latest:
		err = s.Initialize(ctx)
	default:
		err = s.Upgrade(ctx, current, target)
	}
	if err != nil {
		return current, current, err
	}
	if err := s.syncUserVersion(ctx); err != nil {
		return current, current, err
	}
	to, err = s.SchemaVersion(ctx)
	return current, to, err
}

// adoptLegacySchema records version 1 for databases whose hosts_sources
// table was created before migrations were tracked, so the seed rows are
// not inserted a second time.
func (s *SqliteStore) adoptLegacySchema(ctx context.Context) (int64, error) {
	bdb, err := s.db()
	if err != nil {
		return 0, err
	}
	exists, err := tableExists(ctx, bdb, "hosts_sources")
	if err != nil || !exists {
		return 0, err
	}
	logging.Infof("adopting existing hosts_sources table as schema version 1")
	if _, err := ExecRaw(ctx, bdb, "INSERT INTO "+gooseVersionTable+" (version_id, is_applied) VALUES (?, ?)", 1, true); err != nil {
		return 0, fmt.Errorf("failed to record legacy schema version: %w", err)
	}
	return 1, nil
}

func (s *SqliteStore) syncUserVersion(ctx context.Context) error {
	bdb, err := s.db()
	if err != nil {
		return err
	}
	v, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	// PRAGMA does not accept bound parameters.
	if _, err := ExecRaw(ctx, bdb, fmt.Sprintf("PRAGMA user_version = %d", v)); err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
