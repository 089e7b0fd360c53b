// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adaway/adaway/buildvars"
	"github.com/adaway/adaway/internal/config"
	"github.com/adaway/adaway/internal/db"
	"github.com/adaway/adaway/internal/i18n"
	"github.com/adaway/adaway/internal/logging"
	"github.com/adaway/adaway/internal/tui"
)

// app carries the state shared by the commands of one root command.
type app struct {
	cfgFile string
	verbose bool
	cfg     config.Config
}

// runTUI is swapped out in tests.
var runTUI = tui.Run

// Execute runs the CLI entrypoint. The cmd/adaway main package should call
// this function and handle process exit.
func Execute() error {
	// Help texts are built before flags are parsed, so pick the language
	// from the environment up front.
	if lang := os.Getenv("ADAWAY_LANGUAGE"); lang != "" {
		i18n.Init(lang)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd creates and configures a new root cobra command. Every call
// returns an independent command tree, which keeps tests isolated.
func NewRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "adaway",
		Short: i18n.T("root.short"),
		Long: i18n.T("root.short") + `

The sources are kept in a local SQLite database. Running without a
subcommand launches the interactive editor.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(st *db.SqliteStore) error {
				return runTUI(cmd.Context(), st)
			})
		},
	}
	cmd.Version = versionString(nil)

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file")
	pf.String("db", "", "path to the SQLite database (default ./adaway.db)")
	pf.String("upgrade-policy", "", `schema upgrade policy ("additive", "destructive")`)
	pf.String("lang", "", `language ("en", "de")`)
	pf.String("log-level", "", `log level ("debug", "info", "warn", "error")`)
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output (debug logs including DB timings)")

	cmd.AddCommand(
		newSourcesCmd(a),
		newDBCmd(a),
		newBackupCmd(a),
		newRestoreCmd(a),
		newConfigCmd(a),
	)
	return cmd
}

// setup loads the configuration and initializes logging and i18n.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfgPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	defaults := config.Defaults()
	cfg, err := config.LoadConfig[config.Config](cmd, defaults, cfgPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Empty values in a config file fall back to the defaults.
	if cfg.Database.Path == "" {
		cfg.Database.Path = defaults["database.path"].(string)
	}
	if cfg.Database.UpgradePolicy == "" {
		cfg.Database.UpgradePolicy = defaults["database.upgrade_policy"].(string)
	}
	if cfg.Language == "" {
		cfg.Language = defaults["language"].(string)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults["log.level"].(string)
	}
	a.cfg = cfg

	logging.Configure(cfg.Log.Level)
	if a.verbose {
		logging.Configure("debug")
		db.SetDebug(true)
	}
	i18n.Init(cfg.Language)
	return nil
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

func (a *app) storeOptions() db.Options {
	return db.Options{
		Path:          a.cfg.Database.Path,
		UpgradePolicy: db.UpgradePolicy(a.cfg.Database.UpgradePolicy),
	}
}

// withStore opens the configured store for the duration of fn.
func (a *app) withStore(cmd *cobra.Command, fn func(*db.SqliteStore) error) error {
	opened := false
	err := db.WithStore(cmd.Context(), a.storeOptions(), func(st *db.SqliteStore) error {
		opened = true
		return fn(st)
	})
	if err != nil && !opened {
		if errors.Is(err, db.ErrSchemaTooNew) {
			return err
		}
		return errors.New(i18n.T("root.error_open_db", err))
	}
	return err
}

// versionString combines the link-time version with VCS data from the
// build info, when present.
func versionString(info *debug.BuildInfo) string {
	v := buildvars.VersionOrDefault("dev")
	var commit, date string
	if info == nil {
		info, _ = debug.ReadBuildInfo()
	}
	if info != nil {
		if v == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				commit = s.Value
			case "vcs.time":
				date = s.Value
			}
		}
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if commit != "" {
		v += " (" + commit + ")"
	}
	if date != "" {
		v += " built: " + date
	}
	return v
}
