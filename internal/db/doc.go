// Package db contains the data-access layer for the hosts_sources table.
//
// Lifecycle
//   - `Open` returns a `*SqliteStore` that owns the database file until
//     `Close` is called. There is no package-level connection; pass the
//     store (or the `Store` interface) to whoever needs it. `WithStore`
//     wraps open/close around a function.
//
// Schema
//   - The schema is a chain of embedded goose migrations under
//     `migrations/`. Version 1 creates `hosts_sources` and seeds the two
//     default sources, so seeding happens once per database.
//   - `Upgrade` follows the store's `UpgradePolicy`: `additive` keeps rows,
//     `destructive` drops and recreates the table. `Reset` always drops.
//
// Queries
//   - All statements are parameterized Bun queries (see `bun_adapter.go`).
//     Search matches in Go with `FilterSourcesByTokens`.
//     `ListAll` sorts ascending by url (then id); `ListEnabledURLs` sorts descending.
//     Update, SetEnabled and Delete on unknown ids are silent no-ops.
//
// Testing notes
//   - Prefer `Open(ctx, Options{Path: filepath.Join(t.TempDir(), "adaway.db")})`
//     in tests that need real DB semantics and migrations.
//   - For UI tests that don't need a DB, use `NewFakeStore`.
package db
