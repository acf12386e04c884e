package grocer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator(t *testing.T, backend Backend) *Orchestrator {
	t.Helper()
	log := newTestLogger(t)
	site := DefaultSiteConfig()
	m := NewManager(backend, site, t.TempDir(), log)
	o := NewOrchestrator(m, site, NoDelay{}, log)
	o.sleep = func(time.Duration) {}
	return o
}

// assertCounts checks the counter invariant: the three counters partition
// the item list and match recomputed classification counts.
func assertCounts(t *testing.T, result *CartResult) {
	t.Helper()

	var added, notFound, errored int
	for _, item := range result.Items {
		switch {
		case item.Success:
			added++
		case item.Error != "":
			errored++
		default:
			notFound++
		}
	}
	assert.Equal(t, added, result.TotalAdded, "totalAdded mismatch")
	assert.Equal(t, notFound, result.TotalNotFound, "totalNotFound mismatch")
	assert.Equal(t, errored, result.TotalErrors, "totalErrors mismatch")
	assert.Equal(t, len(result.Items), result.TotalAdded+result.TotalNotFound+result.TotalErrors)
}

func TestRunAddsAllItems(t *testing.T) {
	site := DefaultSiteConfig()
	page := &stubPage{
		textHook: func(selector string) (string, error) {
			switch selector {
			case site.Selectors.ProductTitle:
				return "  H-E-B Boneless Chicken Thighs  ", nil
			case site.Selectors.ProductPrice:
				return "$6.49", nil
			case site.Selectors.CartTotal:
				return "Total: $18.97", nil
			}
			return "", nil
		},
	}
	session := &stubSession{page: page}
	o := newTestOrchestrator(t, &stubBackend{session: session})

	result, err := o.Run(context.Background(), []string{
		"2 lbs chicken thighs",
		"1 large onion",
		"garlic",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalAdded)
	assert.Equal(t, 0, result.TotalNotFound)
	assert.Equal(t, 0, result.TotalErrors)
	assertCounts(t, result)

	first := result.Items[0]
	assert.True(t, first.Success)
	assert.Equal(t, "2 lbs chicken thighs", first.SearchTerm)
	assert.Equal(t, "H-E-B Boneless Chicken Thighs", first.ProductName)
	require.NotNil(t, first.Price)
	assert.InDelta(t, 6.49, *first.Price, 0.001)
	assert.Equal(t, 1, first.Quantity)
	assert.Empty(t, first.Error)
	assert.Empty(t, first.Suggestion)

	require.NotNil(t, result.CartTotal)
	assert.InDelta(t, 18.97, *result.CartTotal, 0.001)
	assert.Equal(t, site.CartURL, result.CartURL)
	assert.Zero(t, session.closeCount, "session is left open for cart review")
}

func TestRunPreservesInputOrder(t *testing.T) {
	page := &stubPage{}
	o := newTestOrchestrator(t, &stubBackend{session: &stubSession{page: page}})

	ingredients := []string{"milk", "eggs", "bread", "butter"}
	result, err := o.Run(context.Background(), ingredients)
	require.NoError(t, err)

	require.Len(t, result.Items, len(ingredients))
	for i, ing := range ingredients {
		assert.Equal(t, ing, result.Items[i].SearchTerm)
	}
}

func TestRunSearchTimeoutIsNotFound(t *testing.T) {
	site := DefaultSiteConfig()
	page := &stubPage{
		waitHook: func(selector string) error {
			if selector == site.Selectors.ProductTile {
				return errors.New("timeout 10000ms exceeded")
			}
			return nil
		},
	}
	o := newTestOrchestrator(t, &stubBackend{session: &stubSession{page: page}})

	result, err := o.Run(context.Background(), []string{"2 lbs unicorn steaks fresh"})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	item := result.Items[0]
	assert.False(t, item.Success)
	assert.Empty(t, item.Error, "a timed-out search is not an error")
	assert.NotEmpty(t, item.Suggestion)
	assert.Equal(t, 1, result.TotalNotFound)
	assertCounts(t, result)
	assert.Empty(t, page.clicks)
}

func TestRunMissingAddToCartControlIsNotFound(t *testing.T) {
	site := DefaultSiteConfig()
	page := &stubPage{
		countHook: func(selector string) (int, error) {
			if selector == site.Selectors.AddToCartButton {
				return 0, nil
			}
			return 1, nil
		},
	}
	o := newTestOrchestrator(t, &stubBackend{session: &stubSession{page: page}})

	result, err := o.Run(context.Background(), []string{"dragonfruit"})
	require.NoError(t, err)

	item := result.Items[0]
	assert.False(t, item.Success)
	assert.Empty(t, item.Error)
	assert.NotEmpty(t, item.Suggestion)
	assertCounts(t, result)
}

func TestRunAutomationErrorRecordsErrorWithoutSuggestion(t *testing.T) {
	page := &stubPage{
		navigateHook: func(url string) error {
			if strings.Contains(url, "search") {
				return errors.New("net::ERR_CONNECTION_RESET")
			}
			return nil
		},
	}
	o := newTestOrchestrator(t, &stubBackend{session: &stubSession{page: page}})

	result, err := o.Run(context.Background(), []string{"onions"})
	require.NoError(t, err, "a single bad item never aborts the run")

	item := result.Items[0]
	assert.False(t, item.Success)
	assert.Contains(t, item.Error, "ERR_CONNECTION_RESET")
	assert.Empty(t, item.Suggestion, "error path skips suggestion generation")
	assert.Equal(t, 1, result.TotalErrors)
	assertCounts(t, result)
}

func TestRunLateClickFailureCountsAsError(t *testing.T) {
	// The product was already matched; a failing click is an automation
	// error, not a not-found outcome.
	page := &stubPage{
		clickHook: func(string) error { return errors.New("element detached") },
	}
	o := newTestOrchestrator(t, &stubBackend{session: &stubSession{page: page}})

	result, err := o.Run(context.Background(), []string{"milk"})
	require.NoError(t, err)

	item := result.Items[0]
	assert.False(t, item.Success)
	assert.Contains(t, item.Error, "element detached")
	assert.Empty(t, item.Suggestion)
	assertCounts(t, result)
}

func TestRunMixedOutcomes(t *testing.T) {
	site := DefaultSiteConfig()
	page := &stubPage{}
	// Script per-item behavior off the search URL.
	page.navigateHook = func(url string) error {
		if strings.Contains(url, "broken") {
			return errors.New("boom")
		}
		return nil
	}
	page.waitHook = func(selector string) error {
		if selector != site.Selectors.ProductTile {
			return nil
		}
		if len(page.navigations) > 0 && strings.Contains(page.navigations[len(page.navigations)-1], "unobtainium") {
			return errors.New("timeout")
		}
		return nil
	}
	o := newTestOrchestrator(t, &stubBackend{session: &stubSession{page: page}})

	result, err := o.Run(context.Background(), []string{"milk", "unobtainium", "broken", "eggs"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalAdded)
	assert.Equal(t, 1, result.TotalNotFound)
	assert.Equal(t, 1, result.TotalErrors)
	assertCounts(t, result)

	// Outcomes landed on the right items, in input order.
	assert.True(t, result.Items[0].Success)
	assert.NotEmpty(t, result.Items[1].Suggestion)
	assert.NotEmpty(t, result.Items[2].Error)
	assert.True(t, result.Items[3].Success)
}

func TestRunCartTotalProbeFailureLeavesItemsIntact(t *testing.T) {
	site := DefaultSiteConfig()
	page := &stubPage{
		navigateHook: func(url string) error {
			if url == site.CartURL {
				return errors.New("cart page down")
			}
			return nil
		},
	}
	o := newTestOrchestrator(t, &stubBackend{session: &stubSession{page: page}})

	result, err := o.Run(context.Background(), []string{"milk", "eggs"})
	require.NoError(t, err, "the cart total probe never fails the run")

	assert.Nil(t, result.CartTotal)
	assert.Equal(t, 2, result.TotalAdded)
	assertCounts(t, result)
}

func TestRunSessionFailureIsFatal(t *testing.T) {
	o := newTestOrchestrator(t, &stubBackend{openErr: errors.New("no browser installed")})

	result, err := o.Run(context.Background(), []string{"milk"})

	require.Error(t, err)
	assert.Nil(t, result, "no partial result on session failure")
	assert.Contains(t, err.Error(), "no browser installed")
}

func TestRunCancellationClosesSession(t *testing.T) {
	session := &stubSession{page: &stubPage{}}
	o := newTestOrchestrator(t, &stubBackend{session: session})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := o.Run(ctx, []string{"milk", "eggs"})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, session.closeCount)
}

func TestRunOpensVisibleSession(t *testing.T) {
	backend := &stubBackend{session: &stubSession{page: &stubPage{}}}
	o := newTestOrchestrator(t, backend)

	_, err := o.Run(context.Background(), []string{"milk"})
	require.NoError(t, err)

	require.Len(t, backend.opens, 1)
	assert.False(t, backend.opens[0].Headless, "cart runs use a visible browser")
}

func TestSummaryRendersAddedAndFailed(t *testing.T) {
	price := 4.99
	total := 12.48
	result := &CartResult{
		Items: []CartItemResult{
			{SearchTerm: "2 lbs chicken", ProductName: "Chicken Thighs", Price: &price, Quantity: 1, Success: true},
			{SearchTerm: "unicorn dust", Quantity: 1, Suggestion: "dust"},
		},
		TotalAdded:    1,
		TotalNotFound: 1,
		CartTotal:     &total,
		CartURL:       "https://www.heb.com/cart",
	}

	summary := result.Summary()
	assert.Contains(t, summary, "Added (1 items):")
	assert.Contains(t, summary, "Chicken Thighs - $4.99")
	assert.Contains(t, summary, "Not Found (1 items):")
	assert.Contains(t, summary, "unicorn dust -> Try: dust")
	assert.Contains(t, summary, "Estimated Total: $12.48")
	assert.Contains(t, summary, "Review cart: https://www.heb.com/cart")
}

func TestLoadSiteConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadSiteConfig(t.TempDir() + "/absent.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultSiteConfig(), cfg)
}
