package grocer

import (
	"context"
	"fmt"
	"time"

	"github.com/prepwise/prepwise/pkg/logging"
)

// Orchestrator sequences cart procurement over an ordered ingredient list.
// It owns the browser page exclusively for the duration of a run; items are
// processed strictly one at a time because every search re-navigates the
// same page.
type Orchestrator struct {
	sessions *Manager
	site     SiteConfig
	delay    DelayPolicy
	log      *logging.Logger

	// sleep is swapped out in tests to avoid real settle delays.
	sleep func(time.Duration)
}

// NewOrchestrator creates a cart orchestrator. A nil delay falls back to the
// default randomized pacing.
func NewOrchestrator(sessions *Manager, site SiteConfig, delay DelayPolicy, log *logging.Logger) *Orchestrator {
	if delay == nil {
		delay = DefaultDelay()
	}
	return &Orchestrator{
		sessions: sessions,
		site:     site,
		delay:    delay,
		log:      log,
		sleep:    time.Sleep,
	}
}

// Run searches for each ingredient in order and adds the first matching
// product to the cart, returning one result record per input.
//
// Failing to open a browser session aborts the whole run; no partial result
// is produced in that case. A failed individual item never does: it is
// recorded and the run moves on. After the last item a best-effort probe
// reads the displayed cart total.
//
// On success the browser session is deliberately left open so the user can
// review the cart. Cancellation via ctx closes the session and returns the
// context error with no result.
func (o *Orchestrator) Run(ctx context.Context, ingredients []string) (*CartResult, error) {
	session, err := o.sessions.OpenSession(false)
	if err != nil {
		return nil, err
	}

	page := session.Page()
	result := &CartResult{CartURL: o.site.CartURL}

	for i, ingredient := range ingredients {
		if err := ctx.Err(); err != nil {
			o.log.Infof("run cancelled after %d of %d items", i, len(ingredients))
			session.Close()
			return nil, fmt.Errorf("cart run cancelled: %w", err)
		}

		item := o.addItem(page, ingredient)
		result.Items = append(result.Items, item)

		switch {
		case item.Success:
			result.TotalAdded++
		case item.Error != "":
			result.TotalErrors++
		default:
			result.TotalNotFound++
		}

		if i < len(ingredients)-1 {
			o.delay.Pause(ctx)
		}
	}

	o.probeCartTotal(page, result)

	o.log.Infof("cart run finished: %d added, %d not found, %d errors",
		result.TotalAdded, result.TotalNotFound, result.TotalErrors)

	// The session stays open so the user can review the cart.
	return result, nil
}

// probeCartTotal navigates to the cart page and tries to read the displayed
// total. Every failure is logged and swallowed; collected item results are
// never touched.
func (o *Orchestrator) probeCartTotal(page Page, result *CartResult) {
	if err := page.Navigate(o.site.CartURL, DefaultNavigationTimeout); err != nil {
		o.log.Warnf("could not get cart total: %v", err)
		return
	}
	if err := page.WaitForLoad(DefaultSettleTimeout); err != nil {
		o.log.Warnf("could not get cart total: %v", err)
		return
	}

	count, err := page.Count(o.site.Selectors.CartTotal)
	if err != nil || count == 0 {
		if err != nil {
			o.log.Warnf("could not get cart total: %v", err)
		}
		return
	}

	text, err := page.TextContent(o.site.Selectors.CartTotal)
	if err != nil {
		o.log.Warnf("could not get cart total: %v", err)
		return
	}
	result.CartTotal = parsePrice(text)
}
