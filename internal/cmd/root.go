// Package cmd wires the prepwise CLI together. Each subcommand file owns one
// area: cart procurement, browser session management, preferences, favorite
// sites, recipe parsing, meal history, and first-run setup.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/prepwise/prepwise/pkg/storage"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for prepwise
func NewRootCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "prepwise",
		Short: "Meal planning and grocery procurement assistant",
		Long: `Prepwise learns your food preferences, parses recipes from the web,
and fills your HEB grocery cart through browser automation.

The first run opens an interactive setup wizard. After logging in once
with 'prepwise login', your browser session is saved and reused.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if dataDir != "" {
				storage.SetBaseDir(dataDir)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"override the data directory (default ~/.prepwise)")

	cmd.AddCommand(NewCartCommand())
	cmd.AddCommand(NewStatusCommand())
	cmd.AddCommand(NewLoginCommand())
	cmd.AddCommand(NewPrefsCommand())
	cmd.AddCommand(NewSitesCommand())
	cmd.AddCommand(NewRecipeCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewSetupCommand())

	return cmd
}
