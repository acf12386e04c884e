package grocer

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// priceRe matches the first decimal-number-like substring, optionally
// preceded by a dollar sign, in extracted price text.
var priceRe = regexp.MustCompile(`\$?(\d+(?:\.\d+)?)`)

// parsePrice extracts a price from display text like "$4.99 each".
// No match leaves the price unset; this never fails.
func parsePrice(text string) *float64 {
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}

// addItem searches for one ingredient and adds the first matching product to
// the cart. It always returns a terminal CartItemResult:
//
//   - found and added: Success true, name/price filled in best-effort
//   - no results or no add-to-cart control within the timeout: Success
//     false with a simplified Suggestion (the not-found path)
//   - anything else going wrong: Success false with Error set; the
//     suggestion is skipped because a hard failure says nothing about
//     whether the term itself was bad
//
// A failure after a product was already matched (the click itself) counts as
// an error, not as not-found, since a candidate was identified.
func (o *Orchestrator) addItem(page Page, ingredient string) CartItemResult {
	searchTerm := CleanForSearch(ingredient)

	searchURL := o.site.SearchURL + url.QueryEscape(searchTerm)
	if err := page.Navigate(searchURL, DefaultNavigationTimeout); err != nil {
		o.log.Warnf("error adding %q: %v", ingredient, err)
		return CartItemResult{SearchTerm: ingredient, Quantity: 1, Error: err.Error()}
	}

	// A timeout here means the site returned no products for the term.
	if err := page.WaitForSelector(o.site.Selectors.ProductTile, DefaultResultTimeout); err != nil {
		return o.notFound(ingredient)
	}

	count, err := page.Count(o.site.Selectors.AddToCartButton)
	if err != nil {
		o.log.Warnf("error adding %q: %v", ingredient, err)
		return CartItemResult{SearchTerm: ingredient, Quantity: 1, Error: err.Error()}
	}
	if count == 0 {
		return o.notFound(ingredient)
	}

	productName, price := o.extractProduct(page)

	if err := page.Click(o.site.Selectors.AddToCartButton, DefaultNavigationTimeout); err != nil {
		o.log.Warnf("error adding %q: %v", ingredient, err)
		return CartItemResult{SearchTerm: ingredient, Quantity: 1, Error: err.Error()}
	}

	// Give the cart a moment to register the click. There is no
	// confirmation check.
	o.sleep(DefaultSettleDelay)

	return CartItemResult{
		SearchTerm:  ingredient,
		ProductName: productName,
		Price:       price,
		Quantity:    1,
		Success:     true,
	}
}

func (o *Orchestrator) notFound(ingredient string) CartItemResult {
	return CartItemResult{
		SearchTerm: ingredient,
		Quantity:   1,
		Suggestion: SuggestFallback(ingredient),
	}
}

// extractProduct reads the first result's display name and price. Extraction
// is best-effort: failures are logged and leave the fields unset without
// failing the add attempt.
func (o *Orchestrator) extractProduct(page Page) (string, *float64) {
	var productName string
	var price *float64

	name, err := page.TextContent(o.site.Selectors.ProductTitle)
	if err != nil {
		o.log.Debugf("could not extract product name: %v", err)
	} else {
		productName = strings.TrimSpace(name)
	}

	priceText, err := page.TextContent(o.site.Selectors.ProductPrice)
	if err != nil {
		o.log.Debugf("could not extract product price: %v", err)
	} else {
		price = parsePrice(priceText)
	}

	return productName, price
}
