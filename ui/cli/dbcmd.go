// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/adaway/adaway/internal/db"
	"github.com/adaway/adaway/internal/i18n"
	"github.com/adaway/adaway/internal/logging"
)

func newDBCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: i18n.T("db.short"),
	}

	var to int64
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: i18n.T("db.migrate_short"),
		Long: `Applies pending schema migrations. With the default "additive" policy
rows are kept; the "destructive" policy drops hosts_sources and recreates it
with only the default sources.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.storeOptions()
			opts.SkipMigrate = true
			st, err := db.Open(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			from, now, err := st.MigrateTo(cmd.Context(), to)
			if err != nil {
				return err
			}
			if from == now {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("db.up_to_date", now))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("db.migrated", now, st.Policy()))
			return nil
		},
	}
	migrateCmd.Flags().Int64Var(&to, "to", 0, "target schema version (0 means latest)")

	var yes bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: i18n.T("db.reset_short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirm(cmd, i18n.T("db.confirm_reset"), yes)
			if err != nil || !ok {
				return err
			}
			return a.withStore(cmd, func(st *db.SqliteStore) error {
				if err := st.Reset(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("db.reset_done"))
				return nil
			})
		},
	}
	resetCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: i18n.T("db.version_short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.storeOptions()
			opts.SkipMigrate = true
			st, err := db.Open(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			current, err := st.SchemaVersion(cmd.Context())
			if err != nil {
				return err
			}
			latest, err := st.LatestSchemaVersion()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("db.version", current, latest))
			return nil
		},
	}

	var timeout int
	maintenanceCmd := &cobra.Command{
		Use:   "maintenance",
		Short: i18n.T("db.maintenance_short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
				defer cancel()
			}
			return a.withStore(cmd, func(st *db.SqliteStore) error {
				start := time.Now()
				if err := st.RunMaintenance(ctx); err != nil {
					return err
				}
				logging.Infof("database maintenance finished in %s", time.Since(start))
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("db.maintenance_done"))
				return nil
			})
		},
	}
	maintenanceCmd.Flags().IntVar(&timeout, "timeout", 0, "Timeout in seconds for maintenance (0 means no timeout)")

	cmd.AddCommand(migrateCmd, resetCmd, versionCmd, maintenanceCmd)
	return cmd
}
