package grocer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/prepwise/prepwise/pkg/logging"
	"github.com/prepwise/prepwise/pkg/storage"
)

// stubPage is a scriptable Page implementation. Unset hooks succeed: waits
// pass, counts return 1, text is empty. Every call is recorded.
type stubPage struct {
	navigations []string
	clicks      []string
	textQueries []string

	navigateHook func(url string) error
	waitLoadErr  error
	waitHook     func(selector string) error
	countHook    func(selector string) (int, error)
	textHook     func(selector string) (string, error)
	clickHook    func(selector string) error
}

func (p *stubPage) Navigate(url string, _ time.Duration) error {
	p.navigations = append(p.navigations, url)
	if p.navigateHook != nil {
		return p.navigateHook(url)
	}
	return nil
}

func (p *stubPage) WaitForLoad(_ time.Duration) error {
	return p.waitLoadErr
}

func (p *stubPage) WaitForSelector(selector string, _ time.Duration) error {
	if p.waitHook != nil {
		return p.waitHook(selector)
	}
	return nil
}

func (p *stubPage) Count(selector string) (int, error) {
	if p.countHook != nil {
		return p.countHook(selector)
	}
	return 1, nil
}

func (p *stubPage) TextContent(selector string) (string, error) {
	p.textQueries = append(p.textQueries, selector)
	if p.textHook != nil {
		return p.textHook(selector)
	}
	return "", nil
}

func (p *stubPage) Click(selector string, _ time.Duration) error {
	p.clicks = append(p.clicks, selector)
	if p.clickHook != nil {
		return p.clickHook(selector)
	}
	return nil
}

type stubSession struct {
	page       *stubPage
	closeCount int
}

func (s *stubSession) Page() Page   { return s.page }
func (s *stubSession) Close() error { s.closeCount++; return nil }

// stubBackend hands out a fixed session and records every open.
type stubBackend struct {
	session *stubSession
	openErr error
	opens   []SessionOptions
}

func (b *stubBackend) Open(opts SessionOptions) (BrowserSession, error) {
	b.opens = append(b.opens, opts)
	if b.openErr != nil {
		return nil, b.openErr
	}
	return b.session, nil
}

func newTestLogger(t *testing.T) *logging.Logger {
	t.Helper()
	storage.SetBaseDir(t.TempDir())
	t.Cleanup(func() { storage.SetBaseDir("") })

	log, err := logging.NewLogger("test")
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return log
}
