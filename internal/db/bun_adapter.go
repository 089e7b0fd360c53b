package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adaway/adaway/internal/model"
	"github.com/uptrace/bun"
)

// HostsSourceModel maps the hosts_sources table for Bun queries.
type HostsSourceModel struct {
	bun.BaseModel `bun:"table:hosts_sources"`
	ID            int64  `bun:"_id,pk,autoincrement"`
	URL           string `bun:"url"`
	Enabled       bool   `bun:"enabled"`
}

func hostsSourceModelToModel(m HostsSourceModel) model.HostsSource {
	return model.HostsSource{ID: m.ID, URL: m.URL, Enabled: m.Enabled}
}

// InsertHostsSourceBun inserts an enabled source and returns its id.
func InsertHostsSourceBun(ctx context.Context, bdb bun.IDB, url string) (int64, error) {
	m := &HostsSourceModel{URL: url, Enabled: true}
	if _, err := bdb.NewInsert().Model(m).Column("url", "enabled").Returning("_id").Exec(ctx); err != nil {
		return 0, MapDBError(err)
	}
	if m.ID <= 0 {
		return 0, fmt.Errorf("insert returned invalid id %d", m.ID)
	}
	return m.ID, nil
}

// insertHostsSourceWithIDBun inserts a source keeping its id, used by restores.
func insertHostsSourceWithIDBun(ctx context.Context, bdb bun.IDB, src model.HostsSource) error {
	m := &HostsSourceModel{ID: src.ID, URL: src.URL, Enabled: src.Enabled}
	q := bdb.NewInsert().Model(m)
	if src.ID <= 0 {
		q = q.Column("url", "enabled")
	}
	_, err := q.Exec(ctx)
	return MapDBError(err)
}

// UpdateHostsSourceURLBun sets the url of the row with the given id.
func UpdateHostsSourceURLBun(ctx context.Context, bdb bun.IDB, id int64, url string) error {
	_, err := bdb.NewUpdate().Model((*HostsSourceModel)(nil)).Set("url = ?", url).Where("_id = ?", id).Exec(ctx)
	return err
}

// SetHostsSourceEnabledBun sets the enabled flag of the row with the given id.
func SetHostsSourceEnabledBun(ctx context.Context, bdb bun.IDB, id int64, enabled bool) error {
	_, err := bdb.NewUpdate().Model((*HostsSourceModel)(nil)).Set("enabled = ?", boolToInt(enabled)).Where("_id = ?", id).Exec(ctx)
	return err
}

// DeleteHostsSourceBun removes a row by id.
func DeleteHostsSourceBun(ctx context.Context, bdb bun.IDB, id int64) error {
	_, err := bdb.NewDelete().Model((*HostsSourceModel)(nil)).Where("_id = ?", id).Exec(ctx)
	return err
}

// DeleteAllHostsSourcesBun empties the table. A raw statement is used
// because Bun refuses DELETE without a WHERE clause.
func DeleteAllHostsSourcesBun(ctx context.Context, bdb bun.IDB) error {
	_, err := ExecRaw(ctx, bdb, "DELETE FROM hosts_sources")
	return err
}

// GetHostsSourceBun returns one row, or nil when the id is unknown.
func GetHostsSourceBun(ctx context.Context, bdb bun.IDB, id int64) (*model.HostsSource, error) {
	var m HostsSourceModel
	err := bdb.NewSelect().Model(&m).Where("_id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	hs := hostsSourceModelToModel(m)
	return &hs, nil
}

// CountHostsSourcesBun returns the number of rows.
func CountHostsSourcesBun(ctx context.Context, bdb bun.IDB) (int, error) {
	return bdb.NewSelect().Model((*HostsSourceModel)(nil)).Count(ctx)
}

// ListHostsSourcesBun returns every row ordered by url ascending, ties by id.
func ListHostsSourcesBun(ctx context.Context, bdb bun.IDB) ([]model.HostsSource, error) {
	var ms []HostsSourceModel
	if err := bdb.NewSelect().Model(&ms).OrderExpr("url ASC, _id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.HostsSource, 0, len(ms))
	for _, m := range ms {
		out = append(out, hostsSourceModelToModel(m))
	}
	return out, nil
}

// SearchHostsSourcesBun returns rows whose url contains every token, ordered
// by url ascending. Matching happens in Go through FilterSourcesByTokens:
// SQLite's LOWER and LIKE fold ASCII only, and the TUI filter must agree
// with this result for non-ASCII urls.
func SearchHostsSourcesBun(ctx context.Context, bdb bun.IDB, tokens []string) ([]model.HostsSource, error) {
	all, err := ListHostsSourcesBun(ctx, bdb)
	if err != nil {
		return nil, err
	}
	return FilterSourcesByTokens(all, tokens), nil
}

// ListEnabledURLsBun returns the urls of enabled rows ordered by url
// descending.
func ListEnabledURLsBun(ctx context.Context, bdb bun.IDB) ([]string, error) {
	urls := []string{}
	err := bdb.NewSelect().Model((*HostsSourceModel)(nil)).Column("url").Where("enabled = ?", 1).OrderExpr("url DESC").Scan(ctx, &urls)
	if err != nil {
		return nil, err
	}
	return urls, nil
}

// ReplaceAllHostsSourcesBun replaces the table contents in one transaction.
func ReplaceAllHostsSourcesBun(ctx context.Context, bdb *bun.DB, sources []model.HostsSource) error {
	return bdb.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := DeleteAllHostsSourcesBun(ctx, tx); err != nil {
			return fmt.Errorf("failed to clear hosts sources: %w", err)
		}
		for _, src := range sources {
			if err := insertHostsSourceWithIDBun(ctx, tx, src); err != nil {
				return fmt.Errorf("failed to restore %q: %w", src.URL, err)
			}
		}
		return nil
	})
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
