package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/prepwise/prepwise/pkg/sites"
)

// NewSitesCommand creates the 'prepwise sites' command group
func NewSitesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "Manage favorite recipe websites",
	}

	cmd.AddCommand(newSitesListCommand())
	cmd.AddCommand(newSitesAddCommand())
	cmd.AddCommand(newSitesRemoveCommand())
	cmd.AddCommand(newSitesQueriesCommand())
	return cmd
}

func newSitesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favorite recipe sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sites.DefaultStore()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range store.Load().Sites {
				fmt.Fprintf(out, "%s %s\n", color.CyanString("%-20s", s.Name), s.URL)
			}
			return nil
		},
	}
}

func newSitesAddCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Add a favorite recipe site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sites.DefaultStore()
			if err != nil {
				return err
			}

			l, err := store.Add(args[0], name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d favorite site(s)\n",
				color.GreenString("✓"), len(l.Sites))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name for the site")
	return cmd
}

func newSitesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <url>",
		Short: "Remove a favorite recipe site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sites.DefaultStore()
			if err != nil {
				return err
			}

			l, err := store.Remove(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d favorite site(s) remain\n", len(l.Sites))
			return nil
		},
	}
}

func newSitesQueriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "queries <search terms>",
		Short: "Print site-scoped web search queries for the favorites",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sites.DefaultStore()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, q := range store.Load().SearchQueries(strings.Join(args, " ")) {
				fmt.Fprintln(out, q)
			}
			return nil
		},
	}
}
