package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adaway/adaway/internal/config"
	"github.com/adaway/adaway/internal/i18n"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: i18n.T("config.short"),
	}

	var system bool
	var output string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: i18n.T("config.init_short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				path string
				err  error
			)
			if output != "" {
				path, err = output, config.WriteConfigFileTo(&a.cfg, output)
			} else {
				path, err = config.WriteConfigFile(&a.cfg, system)
			}
			if err != nil {
				return fmt.Errorf("could not write config file: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("config.written", path))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&system, "system", false, "Write the system-wide config file instead of the user one")
	initCmd.Flags().StringVarP(&output, "output", "o", "", "Write to this path instead")

	cmd.AddCommand(initCmd)
	return cmd
}
