// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/adaway/adaway/internal/db"
	"github.com/adaway/adaway/internal/i18n"
	"github.com/adaway/adaway/internal/logging"
	"github.com/adaway/adaway/internal/model"
)

var tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var tableCellStyle = lipgloss.NewStyle().Padding(0, 1)

func newSourcesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sources",
		Aliases: []string{"source", "src"},
		Short:   i18n.T("sources.short"),
	}

	var search string
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   i18n.T("sources.list_short"),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(st *db.SqliteStore) error {
				all, err := st.SearchSources(cmd.Context(), search)
				if err != nil {
					return err
				}
				if len(all) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), i18n.T("sources.empty"))
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderSourcesTable(all))
				return nil
			})
		},
	}
	listCmd.Flags().StringVarP(&search, "search", "s", "", "only list urls containing every word of this query")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "enabled",
		Short: i18n.T("sources.enabled_short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(st *db.SqliteStore) error {
				urls, err := st.ListEnabledURLs(cmd.Context())
				if err != nil {
					return err
				}
				for _, u := range urls {
					fmt.Fprintln(cmd.OutOrStdout(), u)
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <url>",
		Short: i18n.T("sources.add_short"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := parseURL(args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(st *db.SqliteStore) error {
				id, err := st.Insert(cmd.Context(), url)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("sources.added", id, url))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "update <id> <url>",
		Short: i18n.T("sources.update_short"),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			url, err := parseURL(args[1])
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(st *db.SqliteStore) error {
				warnIfMissing(cmd, st, id)
				if err := st.Update(cmd.Context(), id, url); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("sources.updated", id))
				return nil
			})
		},
	})

	cmd.AddCommand(newSetEnabledCmd(a, true), newSetEnabledCmd(a, false))

	cmd.AddCommand(&cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   i18n.T("sources.delete_short"),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(st *db.SqliteStore) error {
				warnIfMissing(cmd, st, id)
				if err := st.Delete(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("sources.deleted", id))
				return nil
			})
		},
	})

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: i18n.T("sources.clear_short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirm(cmd, i18n.T("sources.confirm_clear"), yes)
			if err != nil || !ok {
				return err
			}
			return a.withStore(cmd, func(st *db.SqliteStore) error {
				if err := st.DeleteAll(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("sources.cleared"))
				return nil
			})
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.AddCommand(clearCmd)

	return cmd
}

func newSetEnabledCmd(a *app, enabled bool) *cobra.Command {
	use, short, done := "disable <id>", i18n.T("sources.disable_short"), "sources.disabled"
	if enabled {
		use, short, done = "enable <id>", i18n.T("sources.enable_short"), "sources.enabled"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(st *db.SqliteStore) error {
				warnIfMissing(cmd, st, id)
				if err := st.SetEnabled(cmd.Context(), id, enabled); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T(done, id))
				return nil
			})
		},
	}
}

func renderSourcesTable(sources []model.HostsSource) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(i18n.T("sources.header_id"), i18n.T("sources.header_url"), i18n.T("sources.header_enabled")).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
	for _, src := range sources {
		flag := i18n.T("sources.no")
		if src.Enabled {
			flag = i18n.T("sources.yes")
		}
		t.Row(strconv.FormatInt(src.ID, 10), src.URL, flag)
	}
	return t.Render()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New(i18n.T("sources.invalid_id", s))
	}
	return id, nil
}

func parseURL(s string) (string, error) {
	if err := model.ValidateURL(s); err != nil {
		logging.Debugf("rejecting url %q: %v", s, err)
		return "", errors.New(i18n.T("sources.invalid_url", s))
	}
	return strings.TrimSpace(s), nil
}

// warnIfMissing logs when id does not exist. The store treats such writes
// as no-ops, so the command still succeeds.
func warnIfMissing(cmd *cobra.Command, st db.Store, id int64) {
	src, err := st.Get(cmd.Context(), id)
	if err == nil && src == nil {
		logging.Warnf("no hosts source with id %d", id)
	}
}
