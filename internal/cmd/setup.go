package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prepwise/prepwise/pkg/prefs"
	"github.com/prepwise/prepwise/pkg/wizard"
)

// NewSetupCommand creates the 'prepwise setup' command
func NewSetupCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Run the interactive preference setup wizard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := prefs.DefaultStore()
			if err != nil {
				return err
			}

			if !force && !store.NeedsSetup() {
				fmt.Fprintln(cmd.OutOrStdout(),
					"Setup already completed. Re-run with --force to start over.")
				return nil
			}

			return wizard.Run(store)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "re-run setup even if already completed")
	return cmd
}
