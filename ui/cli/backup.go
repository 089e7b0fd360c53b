// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/adaway/adaway/internal/backup"
	"github.com/adaway/adaway/internal/db"
	"github.com/adaway/adaway/internal/i18n"
)

func newBackupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup [output-file]",
		Short: i18n.T("backup.short"),
		Long: `Writes every hosts source into a single Zstandard-compressed JSON file.

If an output file is given, '.zst' is appended when missing. Without one,
adaway-backup-YYYY-MM-DD.json.zst is written to the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFile := backup.DefaultFilename(time.Now())
			if len(args) == 1 {
				outputFile = args[0]
				if !strings.HasSuffix(outputFile, ".zst") {
					outputFile += ".zst"
				}
			}
			return a.withStore(cmd, func(st *db.SqliteStore) error {
				version, err := st.SchemaVersion(cmd.Context())
				if err != nil {
					return err
				}
				data, err := backup.Export(cmd.Context(), st, version)
				if err != nil {
					return err
				}
				f, err := os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("could not create backup file: %w", err)
				}
				if err := backup.Write(data, f); err != nil {
					_ = f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("backup.written", outputFile, len(data.HostsSources)))
				return nil
			})
		},
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "restore <backup-file>",
		Short: i18n.T("backup.restore_short"),
		Long: `Restores hosts sources from a backup written by 'adaway backup'.

By default the backup is integrated: only urls that are not already present
are added. With --full the table is replaced by the backup contents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]
			f, err := os.Open(inputFile)
			if err != nil {
				return fmt.Errorf("could not open backup file: %w", err)
			}
			defer func() { _ = f.Close() }()
			data, err := backup.Read(f)
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(st *db.SqliteStore) error {
				version, err := st.SchemaVersion(cmd.Context())
				if err != nil {
					return err
				}
				n, err := backup.Restore(cmd.Context(), st, data, backup.RestoreOptions{Full: full, SchemaVersion: version})
				if err != nil {
					return err
				}
				msg := "backup.integrated"
				if full {
					msg = "backup.restored"
				}
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T(msg, n, inputFile))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "Replace all hosts sources with the backup contents")
	return cmd
}
