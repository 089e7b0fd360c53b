// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"

	"github.com/adaway/adaway/internal/model"
)

// Store defines the operations on the hosts_sources table.
// Update, SetEnabled and Delete on an unknown id are silent no-ops.
type Store interface {
	// Mutations
	Insert(ctx context.Context, url string) (int64, error)
	Update(ctx context.Context, id int64, url string) error
	SetEnabled(ctx context.Context, id int64, enabled bool) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	ReplaceAll(ctx context.Context, sources []model.HostsSource) error

	// Queries
	Get(ctx context.Context, id int64) (*model.HostsSource, error)
	Count(ctx context.Context) (int, error)
	ListAll(ctx context.Context) ([]model.HostsSource, error)
	ListEnabledURLs(ctx context.Context) ([]string, error)

	Close() error
}

// SchemaManager controls creation and versioning of the schema.
type SchemaManager interface {
	Initialize(ctx context.Context) error
	Upgrade(ctx context.Context, oldVersion, newVersion int64) error
	Reset(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int64, error)
	LatestSchemaVersion() (int64, error)
	MigrateTo(ctx context.Context, target int64) (from, to int64, err error)
}

// Compile-time checks.
var (
	_ Store         = (*SqliteStore)(nil)
	_ SchemaManager = (*SqliteStore)(nil)
)
