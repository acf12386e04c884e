package grocer

import (
	"fmt"
	"strings"
	"time"
)

// CartItemResult is the outcome for a single input ingredient.
type CartItemResult struct {
	// SearchTerm is the original ingredient text as given by the caller.
	SearchTerm string `json:"search_term"`

	// ProductName is the display name of the matched product, set only on success.
	ProductName string `json:"product_name,omitempty"`

	// Price is the matched product's price, set on success when extractable.
	Price *float64 `json:"price,omitempty"`

	// Quantity added. Currently always 1.
	Quantity int `json:"quantity"`

	// Success reports whether the item was added to the cart.
	Success bool `json:"success"`

	// Error holds the failure message when an unexpected automation error
	// occurred. Never set together with Suggestion.
	Error string `json:"error,omitempty"`

	// Suggestion is an alternative search term offered when no product was
	// found. Never set together with Error.
	Suggestion string `json:"suggestion,omitempty"`
}

// CartResult aggregates the outcomes of a single procurement run.
type CartResult struct {
	Items         []CartItemResult `json:"items"`
	TotalAdded    int              `json:"total_added"`
	TotalNotFound int              `json:"total_not_found"`
	TotalErrors   int              `json:"total_errors"`

	// CartTotal is the displayed cart total, when the post-run probe could
	// read it.
	CartTotal *float64 `json:"cart_total,omitempty"`

	// CartURL points at the site's cart page for manual review.
	CartURL string `json:"cart_url"`
}

// AddedItems returns the successfully added items.
func (r *CartResult) AddedItems() []CartItemResult {
	var added []CartItemResult
	for _, item := range r.Items {
		if item.Success {
			added = append(added, item)
		}
	}
	return added
}

// FailedItems returns the items that were not added.
func (r *CartResult) FailedItems() []CartItemResult {
	var failed []CartItemResult
	for _, item := range r.Items {
		if !item.Success {
			failed = append(failed, item)
		}
	}
	return failed
}

// Summary renders a human-readable report of the run.
func (r *CartResult) Summary() string {
	var b strings.Builder
	b.WriteString("HEB Cart Summary\n")
	b.WriteString(strings.Repeat("=", 40))
	b.WriteString("\n\n")

	if added := r.AddedItems(); len(added) > 0 {
		fmt.Fprintf(&b, "Added (%d items):\n", len(added))
		for _, item := range added {
			name := item.ProductName
			if name == "" {
				name = item.SearchTerm
			}
			if item.Price != nil {
				fmt.Fprintf(&b, "  - %s - $%.2f\n", name, *item.Price)
			} else {
				fmt.Fprintf(&b, "  - %s\n", name)
			}
		}
		b.WriteString("\n")
	}

	if failed := r.FailedItems(); len(failed) > 0 {
		fmt.Fprintf(&b, "Not Found (%d items):\n", len(failed))
		for _, item := range failed {
			if item.Suggestion != "" {
				fmt.Fprintf(&b, "  - %s -> Try: %s\n", item.SearchTerm, item.Suggestion)
			} else {
				fmt.Fprintf(&b, "  - %s\n", item.SearchTerm)
			}
		}
		b.WriteString("\n")
	}

	if r.CartTotal != nil {
		fmt.Fprintf(&b, "Estimated Total: $%.2f\n", *r.CartTotal)
	}
	fmt.Fprintf(&b, "Review cart: %s", r.CartURL)

	return b.String()
}

// SessionStatus is a transient snapshot of the browser session state.
// It is recomputed on every query and never cached.
type SessionStatus struct {
	LoggedIn      bool   `json:"logged_in"`
	SessionExists bool   `json:"session_exists"`
	Message       string `json:"message"`
}

// Default timeouts for browser operations.
const (
	// DefaultNavigationTimeout bounds page navigations.
	DefaultNavigationTimeout = 30 * time.Second

	// DefaultResultTimeout bounds the wait for search results to appear.
	// Expiry means "no products found", not a hard error.
	DefaultResultTimeout = 10 * time.Second

	// DefaultSettleTimeout bounds waits for a page to finish loading.
	DefaultSettleTimeout = 10 * time.Second

	// DefaultSettleDelay is the fixed pause after an add-to-cart click that
	// lets the cart state catch up. There is no confirmation check.
	DefaultSettleDelay = 1 * time.Second

	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 800
)

// defaultUserAgent is presented to the site instead of the automation
// engine's own UA string.
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
