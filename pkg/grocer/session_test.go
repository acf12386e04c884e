package grocer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// populatedProfileDir creates a profile directory with one file in it, the
// signal that a saved session exists.
func populatedProfileDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "heb_session")
	require.NoError(t, os.MkdirAll(dir, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cookies"), []byte("x"), 0600))
	return dir
}

func TestCheckStatusNoProfileDirSkipsBrowser(t *testing.T) {
	backend := &stubBackend{session: &stubSession{page: &stubPage{}}}
	missing := filepath.Join(t.TempDir(), "absent")
	m := NewManager(backend, DefaultSiteConfig(), missing, newTestLogger(t))

	status := m.CheckStatus()

	assert.False(t, status.LoggedIn)
	assert.False(t, status.SessionExists)
	assert.NotEmpty(t, status.Message)
	assert.Empty(t, backend.opens, "no browser should be opened when no profile exists")
}

func TestCheckStatusEmptyProfileDirSkipsBrowser(t *testing.T) {
	backend := &stubBackend{session: &stubSession{page: &stubPage{}}}
	empty := t.TempDir()
	m := NewManager(backend, DefaultSiteConfig(), empty, newTestLogger(t))

	status := m.CheckStatus()

	assert.False(t, status.SessionExists)
	assert.Empty(t, backend.opens)
}

func TestCheckStatusLoggedIn(t *testing.T) {
	site := DefaultSiteConfig()
	page := &stubPage{
		countHook: func(selector string) (int, error) {
			if selector == site.Selectors.LoggedInMarker {
				return 1, nil
			}
			return 0, nil
		},
	}
	session := &stubSession{page: page}
	backend := &stubBackend{session: session}
	m := NewManager(backend, site, populatedProfileDir(t), newTestLogger(t))

	status := m.CheckStatus()

	assert.True(t, status.LoggedIn)
	assert.True(t, status.SessionExists)
	require.Len(t, backend.opens, 1)
	assert.True(t, backend.opens[0].Headless, "status probe must be headless")
	assert.Equal(t, 1, session.closeCount, "probe session must be closed")
	require.NotEmpty(t, page.navigations)
	assert.Equal(t, site.BaseURL, page.navigations[0])
}

func TestCheckStatusMarkerAbsentMeansLoggedOut(t *testing.T) {
	page := &stubPage{
		countHook: func(string) (int, error) { return 0, nil },
	}
	backend := &stubBackend{session: &stubSession{page: page}}
	m := NewManager(backend, DefaultSiteConfig(), populatedProfileDir(t), newTestLogger(t))

	status := m.CheckStatus()

	assert.False(t, status.LoggedIn)
	assert.True(t, status.SessionExists)
	assert.Contains(t, status.Message, "log in again")
}

func TestCheckStatusNavigationFailureNeverPropagates(t *testing.T) {
	page := &stubPage{
		navigateHook: func(string) error { return errors.New("net::ERR_TIMED_OUT") },
	}
	session := &stubSession{page: page}
	backend := &stubBackend{session: session}
	m := NewManager(backend, DefaultSiteConfig(), populatedProfileDir(t), newTestLogger(t))

	status := m.CheckStatus()

	assert.False(t, status.LoggedIn)
	assert.True(t, status.SessionExists)
	assert.Contains(t, status.Message, "ERR_TIMED_OUT")
	assert.Equal(t, 1, session.closeCount)
}

func TestCheckStatusOpenFailureReported(t *testing.T) {
	backend := &stubBackend{openErr: errors.New("chromium missing")}
	m := NewManager(backend, DefaultSiteConfig(), populatedProfileDir(t), newTestLogger(t))

	status := m.CheckStatus()

	assert.False(t, status.LoggedIn)
	assert.True(t, status.SessionExists)
	assert.Contains(t, status.Message, "chromium missing")
}

func TestOpenSessionCreatesProfileDir(t *testing.T) {
	backend := &stubBackend{session: &stubSession{page: &stubPage{}}}
	dir := filepath.Join(t.TempDir(), "fresh")
	m := NewManager(backend, DefaultSiteConfig(), dir, newTestLogger(t))

	_, err := m.OpenSession(false)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	require.Len(t, backend.opens, 1)
	assert.Equal(t, dir, backend.opens[0].ProfileDir)
	assert.False(t, backend.opens[0].Headless)
}

func TestOpenLoginPageLeavesSessionOpen(t *testing.T) {
	site := DefaultSiteConfig()
	page := &stubPage{}
	session := &stubSession{page: page}
	backend := &stubBackend{session: session}
	m := NewManager(backend, site, t.TempDir(), newTestLogger(t))

	msg, err := m.OpenLoginPage()
	require.NoError(t, err)

	assert.Contains(t, msg, "log in manually")
	require.Len(t, backend.opens, 1)
	assert.False(t, backend.opens[0].Headless, "login page must be visible")
	assert.Equal(t, []string{site.LoginURL}, page.navigations)
	assert.Zero(t, session.closeCount, "login session is left open for the user")
}

func TestOpenLoginPageReleasesSessionOnFailure(t *testing.T) {
	page := &stubPage{
		navigateHook: func(string) error { return fmt.Errorf("connection refused") },
	}
	session := &stubSession{page: page}
	backend := &stubBackend{session: session}
	m := NewManager(backend, DefaultSiteConfig(), t.TempDir(), newTestLogger(t))

	_, err := m.OpenLoginPage()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 1, session.closeCount, "partially opened browser must be released")
}
