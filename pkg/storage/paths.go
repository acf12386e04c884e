// Package storage provides the on-disk layout for PrepWise data and a
// generic JSON file store for persisting application state.
//
// All state lives under a single dot-directory (~/.prepwise by default):
//
//	preferences.json    user food preference profile
//	favorite_sites.json favorite recipe websites
//	history.db          meal history database
//	heb_session/        persistent browser profile (opaque, owned by the browser)
//	site.yaml           optional selector/URL overrides for the grocery site
//	logs/               application logs
//	setup_complete      marker file written after the setup wizard finishes
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const dirName = ".prepwise"

var (
	baseMu   sync.Mutex
	baseDir  string
	baseOnce sync.Once
	baseErr  error
)

// SetBaseDir overrides the data directory. Used by the --data-dir CLI flag
// and by tests. Must be called before any path accessor.
func SetBaseDir(dir string) {
	baseMu.Lock()
	defer baseMu.Unlock()
	baseDir = dir
	baseOnce = sync.Once{}
	baseErr = nil
}

// DataDir returns the PrepWise data directory, resolving it on first use.
func DataDir() (string, error) {
	baseMu.Lock()
	defer baseMu.Unlock()

	baseOnce.Do(func() {
		if baseDir != "" {
			return
		}
		home, err := os.UserHomeDir()
		if err != nil {
			baseErr = fmt.Errorf("failed to resolve home directory: %w", err)
			return
		}
		baseDir = filepath.Join(home, dirName)
	})
	return baseDir, baseErr
}

// EnsureDataDir creates the data directory if it does not exist and returns it.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

func join(name string) (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// PreferencesPath returns the path of the preference profile file.
func PreferencesPath() (string, error) { return join("preferences.json") }

// FavoriteSitesPath returns the path of the favorite sites file.
func FavoriteSitesPath() (string, error) { return join("favorite_sites.json") }

// HistoryPath returns the path of the meal history database.
func HistoryPath() (string, error) { return join("history.db") }

// SessionProfileDir returns the browser profile directory used to keep the
// grocery site login alive between runs.
func SessionProfileDir() (string, error) { return join("heb_session") }

// SessionLockPath returns the lock file guarding the browser profile against
// concurrent runs.
func SessionLockPath() (string, error) { return join("heb_session.lock") }

// SiteConfigPath returns the path of the optional site override file.
func SiteConfigPath() (string, error) { return join("site.yaml") }

// LogDir returns the directory where log files are written.
func LogDir() (string, error) { return join("logs") }

// IsSetupComplete reports whether the setup wizard marker file exists.
func IsSetupComplete() bool {
	path, err := join("setup_complete")
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// MarkSetupComplete writes the setup wizard marker file.
func MarkSetupComplete() error {
	if _, err := EnsureDataDir(); err != nil {
		return err
	}
	path, err := join("setup_complete")
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to write setup marker: %w", err)
	}
	return f.Close()
}
