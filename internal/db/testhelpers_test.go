// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"
)

// newTestStore opens a store on a fresh file in a per-test temp dir and
// closes it when the test ends.
func newTestStore(t *testing.T) *SqliteStore {
	t.Helper()
	s, err := Open(context.Background(), Options{Path: filepath.Join(t.TempDir(), "adaway.db")})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// migrationsWithV2 returns the embedded chain plus a second version that
// adds a column, for upgrade tests.
func migrationsWithV2(t *testing.T) fs.FS {
	t.Helper()
	base, err := defaultMigrations()
	if err != nil {
		t.Fatalf("defaultMigrations: %v", err)
	}
	v1, err := fs.ReadFile(base, "00001_create_hosts_sources.sql")
	if err != nil {
		t.Fatalf("read v1 migration: %v", err)
	}
	fsys := fstest.MapFS{}
	fsys["00001_create_hosts_sources.sql"] = &fstest.MapFile{Data: v1}
	fsys["00002_add_title.sql"] = &fstest.MapFile{Data: []byte(addTitleMigration)}
	return fsys
}

const addTitleMigration = `-- +goose Up
ALTER TABLE hosts_sources ADD COLUMN title TEXT;

-- +goose Down
ALTER TABLE hosts_sources DROP COLUMN title;
`

func mustInsert(t *testing.T, s Store, url string) int64 {
	t.Helper()
	id, err := s.Insert(context.Background(), url)
	if err != nil {
		t.Fatalf("Insert(%q) failed: %v", url, err)
	}
	return id
}

func mustCount(t *testing.T, s Store) int {
	t.Helper()
	n, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	return n
}
