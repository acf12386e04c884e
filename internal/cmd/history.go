package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/prepwise/prepwise/pkg/history"
)

// NewHistoryCommand creates the 'prepwise history' command group
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Record and analyze cooked meals",
	}

	cmd.AddCommand(newHistoryLogCommand())
	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryAnalyzeCommand())
	return cmd
}

func newHistoryLogCommand() *cobra.Command {
	var (
		cuisines  []string
		mealTypes []string
		diff      string
		rating    int
		prep      int
		cook      int
		source    string
	)

	cmd := &cobra.Command{
		Use:   "log <meal name>",
		Short: "Record a cooked meal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.OpenDefault()
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.Log(history.Entry{
				Name:            strings.Join(args, " "),
				Cuisines:        cuisines,
				MealTypes:       mealTypes,
				Difficulty:      diff,
				Rating:          rating,
				PrepTimeMinutes: prep,
				CookTimeMinutes: cook,
				SourceURL:       source,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged meal #%d\n", color.GreenString("✓"), id)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&cuisines, "cuisine", nil, "cuisine(s) of the meal")
	cmd.Flags().StringSliceVar(&mealTypes, "type", nil, "meal type(s), e.g. Dinner")
	cmd.Flags().StringVar(&diff, "difficulty", "", "Easy, Medium, or Hard")
	cmd.Flags().IntVar(&rating, "rating", 0, "rating from 1 to 5")
	cmd.Flags().IntVar(&prep, "prep", 0, "prep time in minutes")
	cmd.Flags().IntVar(&cook, "cook", 0, "cook time in minutes")
	cmd.Flags().StringVar(&source, "source", "", "recipe source URL")
	return cmd
}

func newHistoryListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recently logged meals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.OpenDefault()
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No meals logged yet.")
				return nil
			}
			for _, e := range entries {
				line := fmt.Sprintf("%s  %s", e.LoggedAt.Format("2006-01-02"), e.Name)
				if len(e.Cuisines) > 0 {
					line += " [" + strings.Join(e.Cuisines, ", ") + "]"
				}
				if e.Rating > 0 {
					line += " " + color.YellowString(strings.Repeat("*", e.Rating))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum meals to show")
	return cmd
}

func newHistoryAnalyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Analyze meal history and suggest preference updates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.OpenDefault()
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.All()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), history.Analyze(entries).Summary())
			return nil
		},
	}
}
