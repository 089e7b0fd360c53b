// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

// package backup exports and imports the hosts sources table as
// Zstandard-compressed JSON.
package backup // import "github.com/adaway/adaway/internal/backup"

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/adaway/adaway/internal/logging"
	"github.com/adaway/adaway/internal/model"
	"github.com/klauspost/compress/zstd"
)

// Store is the subset of the hosts sources store used for backups.
type Store interface {
	ListAll(ctx context.Context) ([]model.HostsSource, error)
	Insert(ctx context.Context, url string) (int64, error)
	SetEnabled(ctx context.Context, id int64, enabled bool) error
	ReplaceAll(ctx context.Context, sources []model.HostsSource) error
}

// ErrNoSources is returned by a full Restore when the backup has no
// hosts_sources list at all. An empty list is a valid backup.
var ErrNoSources = errors.New("backup contains no hosts_sources list")

// RestoreOptions controls how a backup is applied.
type RestoreOptions struct {
	// Full replaces the table contents. When false, only urls that are not
	// already present are added.
	Full bool
	// SchemaVersion is the schema version of the target database. A backup
	// taken from a newer schema is restored with a warning. Zero skips the
	// check.
	SchemaVersion int64
}

// DefaultFilename returns the backup name used when none is given.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("adaway-backup-%s.json.zst", now.Format("2006-01-02"))
}

// Export reads every hosts source from st.
func Export(ctx context.Context, st Store, schemaVersion int64) (*model.BackupData, error) {
	sources, err := st.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hosts sources: %w", err)
	}
	return &model.BackupData{SchemaVersion: schemaVersion, HostsSources: sources}, nil
}

// Write encodes data as indented JSON into a zstd stream on w.
func Write(data *model.BackupData, w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode backup: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush zstd writer: %w", err)
	}
	return nil
}

// Read decodes a backup written by Write.
func Read(r io.Reader) (*model.BackupData, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()
	var data model.BackupData
	if err := json.NewDecoder(zr).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	return &data, nil
}

// Restore applies data to st and returns the number of sources written.
func Restore(ctx context.Context, st Store, data *model.BackupData, opts RestoreOptions) (int, error) {
	if opts.SchemaVersion > 0 && data.SchemaVersion > opts.SchemaVersion {
		logging.Warnf("backup: schema version %d is newer than the database (%d); fields it added are ignored",
			data.SchemaVersion, opts.SchemaVersion)
	}
	if opts.Full {
		if data.HostsSources == nil {
			return 0, ErrNoSources
		}
		if err := st.ReplaceAll(ctx, data.HostsSources); err != nil {
			return 0, fmt.Errorf("replace hosts sources: %w", err)
		}
		logging.Infof("backup: restored %d hosts sources", len(data.HostsSources))
		return len(data.HostsSources), nil
	}

	existing, err := st.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list hosts sources: %w", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, src := range existing {
		seen[src.URL] = struct{}{}
	}

	added := 0
	for _, src := range data.HostsSources {
		if _, ok := seen[src.URL]; ok {
			logging.Debugf("backup: skipping existing source %s", src.URL)
			continue
		}
		id, err := st.Insert(ctx, src.URL)
		if err != nil {
			return added, fmt.Errorf("insert %q: %w", src.URL, err)
		}
		if !src.Enabled {
			if err := st.SetEnabled(ctx, id, false); err != nil {
				return added, fmt.Errorf("disable %q: %w", src.URL, err)
			}
		}
		seen[src.URL] = struct{}{}
		added++
	}
	logging.Infof("backup: integrated %d new hosts sources", added)
	return added, nil
}
