package grocer

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightBackend launches Chromium sessions bound to a persistent profile
// directory via Playwright.
type PlaywrightBackend struct {
	mu          sync.Mutex
	pw          *playwright.Playwright
	initialized bool
}

// NewPlaywrightBackend creates an uninitialized Playwright backend. The
// driver is installed and started lazily on first Open.
func NewPlaywrightBackend() *PlaywrightBackend {
	return &PlaywrightBackend{}
}

// initialize installs and starts the Playwright driver once.
func (b *PlaywrightBackend) initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	// Discard driver output so it does not interleave with CLI output.
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	b.pw = pw
	b.initialized = true
	return nil
}

// Open launches a Chromium instance bound to opts.ProfileDir, creating the
// directory if absent. Cookies written by the site persist there across runs.
func (b *PlaywrightBackend) Open(opts SessionOptions) (BrowserSession, error) {
	if err := b.initialize(); err != nil {
		return nil, err
	}

	if opts.ProfileDir == "" {
		return nil, fmt.Errorf("profile directory is required")
	}
	if err := os.MkdirAll(opts.ProfileDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}

	width := opts.ViewportWidth
	if width == 0 {
		width = DefaultViewportWidth
	}
	height := opts.ViewportHeight
	if height == 0 {
		height = DefaultViewportHeight
	}

	context, err := b.pw.Chromium.LaunchPersistentContext(
		opts.ProfileDir,
		playwright.BrowserTypeLaunchPersistentContextOptions{
			Headless:  playwright.Bool(opts.Headless),
			Viewport:  &playwright.Size{Width: width, Height: height},
			UserAgent: playwright.String(defaultUserAgent),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	// Persistent contexts open with an initial blank page; reuse it.
	var page playwright.Page
	if pages := context.Pages(); len(pages) > 0 {
		page = pages[0]
	} else {
		page, err = context.NewPage()
		if err != nil {
			context.Close()
			return nil, fmt.Errorf("failed to create page: %w", err)
		}
	}

	return &playwrightSession{
		context: context,
		page:    &playwrightPage{page: page},
	}, nil
}

// Shutdown stops the Playwright driver. Open sessions should be closed first.
func (b *PlaywrightBackend) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized || b.pw == nil {
		return nil
	}
	if err := b.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	b.initialized = false
	return nil
}

type playwrightSession struct {
	context playwright.BrowserContext
	page    *playwrightPage
}

func (s *playwrightSession) Page() Page {
	return s.page
}

func (s *playwrightSession) Close() error {
	if err := s.context.Close(); err != nil {
		return fmt.Errorf("failed to close browser context: %w", err)
	}
	return nil
}

// playwrightPage adapts a Playwright page to the Page interface.
type playwrightPage struct {
	page playwright.Page
}

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

func (p *playwrightPage) Navigate(url string, timeout time.Duration) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		Timeout: ms(timeout),
	})
	if err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	return nil
}

func (p *playwrightPage) WaitForLoad(timeout time.Duration) error {
	err := p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: ms(timeout),
	})
	if err != nil {
		return fmt.Errorf("wait for load failed: %w", err)
	}
	return nil
}

func (p *playwrightPage) WaitForSelector(selector string, timeout time.Duration) error {
	_, err := p.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: ms(timeout),
	})
	if err != nil {
		return fmt.Errorf("wait for %q failed: %w", selector, err)
	}
	return nil
}

func (p *playwrightPage) Count(selector string) (int, error) {
	count, err := p.page.Locator(selector).Count()
	if err != nil {
		return 0, fmt.Errorf("count of %q failed: %w", selector, err)
	}
	return count, nil
}

func (p *playwrightPage) TextContent(selector string) (string, error) {
	text, err := p.page.Locator(selector).First().TextContent(playwright.LocatorTextContentOptions{
		Timeout: ms(DefaultSettleTimeout),
	})
	if err != nil {
		return "", fmt.Errorf("text content of %q failed: %w", selector, err)
	}
	return text, nil
}

func (p *playwrightPage) Click(selector string, timeout time.Duration) error {
	err := p.page.Locator(selector).First().Click(playwright.LocatorClickOptions{
		Timeout: ms(timeout),
	})
	if err != nil {
		return fmt.Errorf("click on %q failed: %w", selector, err)
	}
	return nil
}
