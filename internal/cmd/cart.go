package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/prepwise/prepwise/pkg/grocer"
	"github.com/prepwise/prepwise/pkg/logging"
	"github.com/prepwise/prepwise/pkg/storage"
)

// NewCartCommand creates the 'prepwise cart' command group
func NewCartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the HEB grocery cart",
	}

	cmd.AddCommand(newCartAddCommand())
	return cmd
}

func newCartAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <ingredient>...",
		Short: "Search for ingredients and add them to the cart",
		Long: `Adds each ingredient to the HEB cart through browser automation.

Ingredient lines are cleaned of quantities, units, and preparation notes
before searching, so raw recipe lines like "2 lbs boneless chicken thighs,
diced" work directly. Requires a saved login session; run 'prepwise login'
first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCartAdd,
	}
	return cmd
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	// One browser session at a time. A second concurrent run would corrupt
	// the shared browser profile.
	lockPath, err := storage.SessionLockPath()
	if err != nil {
		return err
	}
	if _, err := storage.EnsureDataDir(); err != nil {
		return err
	}
	lock := flock.New(lockPath)
	acquired, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire session lock: %w", err)
	}
	if !acquired {
		return fmt.Errorf("another prepwise run is using the browser session")
	}
	defer lock.Unlock()

	orch, log, err := newOrchestrator()
	if err != nil {
		return err
	}
	defer log.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Adding %d item(s) to cart...\n\n", len(args))

	result, err := orch.Run(cmd.Context(), args)
	if err != nil {
		return err
	}

	for _, item := range result.Items {
		switch {
		case item.Success:
			line := item.ProductName
			if line == "" {
				line = item.SearchTerm
			}
			if item.Price != nil {
				line = fmt.Sprintf("%s ($%.2f)", line, *item.Price)
			}
			fmt.Fprintf(out, "%s %s\n", color.GreenString("✓"), line)
		case item.Suggestion != "":
			fmt.Fprintf(out, "%s %s: not found. %s\n",
				color.YellowString("?"), item.SearchTerm, item.Suggestion)
		default:
			fmt.Fprintf(out, "%s %s: %s\n",
				color.RedString("✗"), item.SearchTerm, item.Error)
		}
	}

	fmt.Fprintf(out, "\n%s\n", result.Summary())
	return nil
}

// newOrchestrator assembles the browser automation stack against the real
// playwright backend.
func newOrchestrator() (*grocer.Orchestrator, *logging.Logger, error) {
	manager, site, log, err := newSessionManager("cart")
	if err != nil {
		return nil, nil, err
	}
	return grocer.NewOrchestrator(manager, site, nil, log), log, nil
}

func newSessionManager(component string) (*grocer.Manager, grocer.SiteConfig, *logging.Logger, error) {
	log, err := logging.NewLogger(component)
	if err != nil {
		return nil, grocer.SiteConfig{}, nil, err
	}

	sitePath, err := storage.SiteConfigPath()
	if err != nil {
		return nil, grocer.SiteConfig{}, nil, err
	}
	site, err := grocer.LoadSiteConfig(sitePath)
	if err != nil {
		return nil, grocer.SiteConfig{}, nil, err
	}

	profileDir, err := storage.SessionProfileDir()
	if err != nil {
		return nil, grocer.SiteConfig{}, nil, err
	}

	manager := grocer.NewManager(grocer.NewPlaywrightBackend(), site, profileDir, log)
	return manager, site, log, nil
}
