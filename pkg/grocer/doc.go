// Package grocer automates grocery procurement against the HEB website.
//
// Given a list of free-text ingredient strings it drives a browser to search
// for each one, adds the first plausible product to the shopping cart, and
// reports a per-item outcome plus a best-effort cart total.
//
// # Architecture
//
// The package is built around four pieces:
//
//  1. Manager: owns the persistent browser profile directory and opens
//     sessions against it (login cookies survive between runs)
//  2. Ingredient normalization: CleanForSearch / SuggestFallback turn a raw
//     recipe line like "2 lbs chicken thighs, diced" into a search term
//  3. Item engine: searches for one term, picks the first result tile, and
//     clicks its add-to-cart control
//  4. Orchestrator: runs the engine over an ordered ingredient list with
//     human-paced delays and aggregates a CartResult
//
// The browser is reached exclusively through the Backend, BrowserSession,
// and Page interfaces. Production wires in the Playwright backend; tests
// substitute a scripted stub, so no test ever opens a real browser.
//
// # Failure model
//
// Failures are contained at the smallest scope that preserves progress.
// A search that finds nothing is a normal outcome (success=false plus a
// simplified suggestion). An unexpected automation failure marks only that
// item as errored; the run continues. Only the inability to open a browser
// session at all aborts a run. The post-run cart-total probe is best effort
// and never disturbs already-collected results.
//
// # Preconditions
//
// A run owns the browser page exclusively: items are processed one at a
// time because every search re-navigates the same page. Concurrent runs
// against the same profile directory are unsupported; callers must prevent
// them (the CLI holds a file lock around each run).
package grocer
