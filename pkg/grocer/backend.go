package grocer

import "time"

// Page is the minimal surface of a browser page the cart automation drives.
// The production implementation wraps a Playwright page; tests provide a
// scripted stub.
type Page interface {
	// Navigate loads the given URL, waiting for the page load event.
	Navigate(url string, timeout time.Duration) error

	// WaitForLoad waits for in-flight network activity to quiet down.
	WaitForLoad(timeout time.Duration) error

	// WaitForSelector waits until at least one element matching the selector
	// is visible. An expired timeout is returned as an error; callers decide
	// whether that is a failure or merely "nothing there".
	WaitForSelector(selector string, timeout time.Duration) error

	// Count returns the number of elements matching the selector.
	Count(selector string) (int, error)

	// TextContent returns the text content of the first element matching the
	// selector.
	TextContent(selector string) (string, error)

	// Click clicks the first element matching the selector.
	Click(selector string, timeout time.Duration) error
}

// BrowserSession is an open browser bound to the persistent profile.
// A session's page is owned by exactly one logical operation at a time.
type BrowserSession interface {
	Page() Page
	Close() error
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window.
	Headless bool

	// ProfileDir is the on-disk browser profile keeping login cookies alive
	// between runs. Created if absent.
	ProfileDir string

	// Viewport sets the window size. Zero values fall back to defaults.
	ViewportWidth  int
	ViewportHeight int
}

// Backend launches browser sessions. It is the seam through which tests
// substitute a stub automation layer.
type Backend interface {
	Open(opts SessionOptions) (BrowserSession, error)
}
