package grocer

import (
	"fmt"
	"os"

	"github.com/prepwise/prepwise/pkg/logging"
)

// Manager owns the persistent browser profile directory and opens sessions
// against it. The profile keeps the site's login cookies between runs; its
// contents are opaque, only its existence matters here.
type Manager struct {
	backend    Backend
	site       SiteConfig
	profileDir string
	log        *logging.Logger
}

// NewManager creates a session manager bound to the given profile directory.
func NewManager(backend Backend, site SiteConfig, profileDir string, log *logging.Logger) *Manager {
	return &Manager{
		backend:    backend,
		site:       site,
		profileDir: profileDir,
		log:        log,
	}
}

// ProfileDir returns the profile directory the manager is bound to.
func (m *Manager) ProfileDir() string {
	return m.profileDir
}

// OpenSession launches a browser bound to the profile directory, creating
// the directory if absent. The caller owns the returned session.
func (m *Manager) OpenSession(headless bool) (BrowserSession, error) {
	if err := os.MkdirAll(m.profileDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}
	session, err := m.backend.Open(SessionOptions{
		Headless:   headless,
		ProfileDir: m.profileDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open browser session: %w", err)
	}
	return session, nil
}

// sessionExists reports whether the profile directory is present and
// non-empty.
func (m *Manager) sessionExists() bool {
	entries, err := os.ReadDir(m.profileDir)
	return err == nil && len(entries) > 0
}

// CheckStatus reports whether a saved session exists and whether the user is
// still logged in. When no profile is on disk the answer is immediate; no
// browser is opened. The check never returns an error: any failure along the
// way is folded into the status message.
func (m *Manager) CheckStatus() SessionStatus {
	if !m.sessionExists() {
		return SessionStatus{
			LoggedIn:      false,
			SessionExists: false,
			Message:       "No HEB session found. You'll need to log in.",
		}
	}

	status, err := m.probeLogin()
	if err != nil {
		m.log.Warnf("session status check failed: %v", err)
		return SessionStatus{
			LoggedIn:      false,
			SessionExists: true,
			Message:       fmt.Sprintf("Could not verify session status: %v", err),
		}
	}
	return status
}

// probeLogin opens a headless session, loads the home page, and looks for
// the logged-in DOM marker.
func (m *Manager) probeLogin() (SessionStatus, error) {
	session, err := m.OpenSession(true)
	if err != nil {
		return SessionStatus{}, err
	}
	defer session.Close()

	page := session.Page()
	if err := page.Navigate(m.site.BaseURL, DefaultNavigationTimeout); err != nil {
		return SessionStatus{}, err
	}
	if err := page.WaitForLoad(DefaultSettleTimeout); err != nil {
		return SessionStatus{}, err
	}

	count, err := page.Count(m.site.Selectors.LoggedInMarker)
	if err != nil {
		return SessionStatus{}, err
	}

	if count > 0 {
		return SessionStatus{
			LoggedIn:      true,
			SessionExists: true,
			Message:       "You are logged in to HEB.",
		}, nil
	}
	return SessionStatus{
		LoggedIn:      false,
		SessionExists: true,
		Message:       "Session exists but you may need to log in again.",
	}, nil
}

// OpenLoginPage opens a visible browser on the sign-in page and leaves it
// open for the user to enter credentials. The session is deliberately not
// closed on success; on failure the partially opened browser is released
// before the error is returned.
func (m *Manager) OpenLoginPage() (string, error) {
	session, err := m.OpenSession(false)
	if err != nil {
		return "", fmt.Errorf("failed to open login page: %w", err)
	}

	if err := session.Page().Navigate(m.site.LoginURL, DefaultNavigationTimeout); err != nil {
		session.Close()
		return "", fmt.Errorf("failed to open login page: %w", err)
	}

	return "HEB login page opened in browser. Please log in manually.\n" +
		"Once logged in, your session will be saved for future use.\n" +
		"Close the browser window when done, or leave it open to continue shopping.", nil
}
