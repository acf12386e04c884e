package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/prepwise/prepwise/pkg/prefs"
)

// NewPrefsCommand creates the 'prepwise prefs' command group
func NewPrefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "View and edit food preferences",
	}

	cmd.AddCommand(newPrefsShowCommand())
	cmd.AddCommand(newPrefsSetCommand())
	cmd.AddCommand(newPrefsMacrosCommand())
	cmd.AddCommand(newPrefsDietCommand())
	return cmd
}

func newPrefsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current preference profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := prefs.DefaultStore()
			if err != nil {
				return err
			}
			p := store.Load()
			out := cmd.OutOrStdout()

			bold := color.New(color.Bold)
			bold.Fprintln(out, "Macro Targets")
			fmt.Fprintf(out, "  Calories: %d  Protein: %dg  Carbs: %dg  Fat: %dg\n\n",
				p.MacroTargets.DailyCalories, p.MacroTargets.DailyProteinG,
				p.MacroTargets.DailyCarbsG, p.MacroTargets.DailyFatG)

			printRatings(out, "Cuisines", p.Cuisines)
			printRatings(out, "Ingredients", p.Ingredients)
			printRatings(out, "Cooking Methods", p.CookingMethods)

			bold.Fprintln(out, "Dietary Restrictions")
			if len(p.DietaryRestrictions) == 0 {
				fmt.Fprintln(out, "  none")
			}
			for _, r := range p.DietaryRestrictions {
				fmt.Fprintf(out, "  - %s\n", r)
			}
			return nil
		},
	}
}

var ratingWords = map[int]string{
	-2: "hate", -1: "dislike", 1: "like", 2: "love",
}

func printRatings(out io.Writer, title string, m map[string]int) {
	color.New(color.Bold).Fprintln(out, title)
	if len(m) == 0 {
		fmt.Fprintln(out, "  none rated")
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %-20s %s\n", k, ratingWords[m[k]])
	}
	fmt.Fprintln(out)
}

func newPrefsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <item> <rating>",
		Short: "Rate an ingredient, cuisine, or cooking_method from -2 to 2",
		Long: `Rate how much you like something. Categories: ingredient, cuisine,
cooking_method. Ratings: -2 hate, -1 dislike, 0 remove rating, 1 like, 2 love.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("rating must be a number from -2 to 2, got %q", args[2])
			}

			store, err := prefs.DefaultStore()
			if err != nil {
				return err
			}
			if _, err := store.UpdateRating(prefs.Category(args[0]), args[1], rating); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s set to %s\n",
				color.GreenString("✓"), args[1], describeRating(rating))
			return nil
		},
	}
}

func describeRating(rating int) string {
	if w, ok := ratingWords[rating]; ok {
		return w
	}
	return "neutral (removed)"
}

func newPrefsMacrosCommand() *cobra.Command {
	var calories, protein, carbs, fat int

	cmd := &cobra.Command{
		Use:   "macros",
		Short: "Update daily macro targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := prefs.DefaultStore()
			if err != nil {
				return err
			}

			var update prefs.MacroUpdate
			if cmd.Flags().Changed("calories") {
				update.DailyCalories = &calories
			}
			if cmd.Flags().Changed("protein") {
				update.DailyProteinG = &protein
			}
			if cmd.Flags().Changed("carbs") {
				update.DailyCarbsG = &carbs
			}
			if cmd.Flags().Changed("fat") {
				update.DailyFatG = &fat
			}

			p, err := store.UpdateMacroTargets(update)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"Macro targets: %d cal, %dg protein, %dg carbs, %dg fat\n",
				p.MacroTargets.DailyCalories, p.MacroTargets.DailyProteinG,
				p.MacroTargets.DailyCarbsG, p.MacroTargets.DailyFatG)
			return nil
		},
	}

	cmd.Flags().IntVar(&calories, "calories", 0, "daily calorie target")
	cmd.Flags().IntVar(&protein, "protein", 0, "daily protein target in grams")
	cmd.Flags().IntVar(&carbs, "carbs", 0, "daily carb target in grams")
	cmd.Flags().IntVar(&fat, "fat", 0, "daily fat target in grams")
	return cmd
}

func newPrefsDietCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diet <add|remove> <restriction>",
		Short: "Add or remove a dietary restriction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := prefs.DefaultStore()
			if err != nil {
				return err
			}

			var p *prefs.Profile
			switch strings.ToLower(args[0]) {
			case "add":
				p, err = store.AddDietaryRestriction(args[1])
			case "remove":
				p, err = store.RemoveDietaryRestriction(args[1])
			default:
				return fmt.Errorf("expected add or remove, got %q", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Dietary restrictions: %s\n",
				strings.Join(p.DietaryRestrictions, ", "))
			return nil
		},
	}
	return cmd
}
