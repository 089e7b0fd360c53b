// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the data access layer for AdAway.
// This file contains the hosts_sources operations of the SQLite store.
package db // import "github.com/adaway/adaway/internal/db"

import (
	"context"

	"github.com/adaway/adaway/internal/model"
)

// Insert adds a new, enabled hosts source and returns its id.
func (s *SqliteStore) Insert(ctx context.Context, url string) (int64, error) {
	bdb, err := s.db()
	if err != nil {
		return 0, err
	}
	id, err := InsertHostsSourceBun(ctx, bdb, url)
	if err == nil {
		dbLogf("db: inserted hosts source %d: %s", id, url)
	}
	return id, err
}

// Update sets the url of a hosts source. Unknown ids are ignored.
func (s *SqliteStore) Update(ctx context.Context, id int64, url string) error {
	bdb, err := s.db()
	if err != nil {
		return err
	}
	return UpdateHostsSourceURLBun(ctx, bdb, id, url)
}

// SetEnabled sets the enabled flag of a hosts source. Unknown ids are ignored.
func (s *SqliteStore) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	bdb, err := s.db()
	if err != nil {
		return err
	}
	return SetHostsSourceEnabledBun(ctx, bdb, id, enabled)
}

// Delete removes a hosts source. Unknown ids are ignored.
func (s *SqliteStore) Delete(ctx context.Context, id int64) error {
	bdb, err := s.db()
	if err != nil {
		return err
	}
	return DeleteHostsSourceBun(ctx, bdb, id)
}

// DeleteAll removes every hosts source. The table itself is kept.
func (s *SqliteStore) DeleteAll(ctx context.Context) error {
	bdb, err := s.db()
	if err != nil {
		return err
	}
	return DeleteAllHostsSourcesBun(ctx, bdb)
}

// ReplaceAll atomically swaps the table contents for sources. Ids are
// kept when positive and assigned otherwise.
func (s *SqliteStore) ReplaceAll(ctx context.Context, sources []model.HostsSource) error {
	bdb, err := s.db()
	if err != nil {
		return err
	}
	return ReplaceAllHostsSourcesBun(ctx, bdb, sources)
}

// Get returns the hosts source with the given id, or (nil, nil) when
// there is none.
func (s *SqliteStore) Get(ctx context.Context, id int64) (*model.HostsSource, error) {
	bdb, err := s.db()
	if err != nil {
		return nil, err
	}
	return GetHostsSourceBun(ctx, bdb, id)
}

// Count returns the number of hosts sources.
func (s *SqliteStore) Count(ctx context.Context) (int, error) {
	bdb, err := s.db()
	if err != nil {
		return 0, err
	}
	return CountHostsSourcesBun(ctx, bdb)
}

// ListAll returns every hosts source sorted ascending by url.
func (s *SqliteStore) ListAll(ctx context.Context) ([]model.HostsSource, error) {
	bdb, err := s.db()
	if err != nil {
		return nil, err
	}
	return ListHostsSourcesBun(ctx, bdb)
}

// ListEnabledURLs returns the urls of enabled sources sorted descending by
// url, the order the hosts file builder consumes them in.
func (s *SqliteStore) ListEnabledURLs(ctx context.Context) ([]string, error) {
	bdb, err := s.db()
	if err != nil {
		return nil, err
	}
	return ListEnabledURLsBun(ctx, bdb)
}
