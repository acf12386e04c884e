// Package sites manages the user's favorite recipe websites. Favorites are
// prioritized when searching for new recipes and used to recognize recipe
// URLs from preferred sources.
package sites

import (
	"fmt"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"github.com/prepwise/prepwise/pkg/storage"
)

// Site is one favorite recipe website.
type Site struct {
	URL     string    `json:"url"`
	Name    string    `json:"name"`
	AddedAt time.Time `json:"added_at"`
}

// Domain returns the site's host without scheme or path.
func (s Site) Domain() string {
	return extractDomain(s.URL)
}

func extractDomain(rawURL string) string {
	u := strings.TrimPrefix(rawURL, "https://")
	u = strings.TrimPrefix(u, "http://")
	if i := strings.IndexByte(u, '/'); i >= 0 {
		u = u[:i]
	}
	return u
}

// List is the collection of favorite sites.
type List struct {
	Sites []Site `json:"sites"`
}

// Domains returns the domain of every favorite, for site: search queries.
func (l *List) Domains() []string {
	domains := make([]string, 0, len(l.Sites))
	for _, s := range l.Sites {
		domains = append(domains, s.Domain())
	}
	return domains
}

// Match reports which favorite, if any, the given recipe URL belongs to.
// The "www." prefix is ignored, so a favorite saved as www.budgetbytes.com
// matches budgetbytes.com links and vice versa.
func (l *List) Match(rawURL string) (Site, bool) {
	host := strings.TrimPrefix(extractDomain(rawURL), "www.")
	for _, s := range l.Sites {
		base := strings.TrimPrefix(s.Domain(), "www.")
		if host == base {
			return s, true
		}
		g, err := glob.Compile("*." + base)
		if err == nil && g.Match(host) {
			return s, true
		}
	}
	return Site{}, false
}

// SearchQueries generates "site:domain query" strings for each favorite.
func (l *List) SearchQueries(query string) []string {
	queries := make([]string, 0, len(l.Sites))
	for _, d := range l.Domains() {
		queries = append(queries, fmt.Sprintf("site:%s %s", d, query))
	}
	return queries
}

// defaultList returns the pre-populated favorites for a fresh install.
func defaultList() *List {
	return &List{Sites: []Site{
		{URL: "https://www.budgetbytes.com", Name: "Budget Bytes", AddedAt: time.Now().UTC()},
		{URL: "https://www.allrecipes.com", Name: "AllRecipes", AddedAt: time.Now().UTC()},
		{URL: "https://www.seriouseats.com", Name: "Serious Eats", AddedAt: time.Now().UTC()},
	}}
}

// Store persists the favorite site list.
type Store struct {
	store *storage.Store[*List]
}

// NewStore creates a favorites store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{store: storage.NewStore(path, defaultList)}
}

// DefaultStore creates a favorites store at the standard location.
func DefaultStore() (*Store, error) {
	path, err := storage.FavoriteSitesPath()
	if err != nil {
		return nil, err
	}
	return NewStore(path), nil
}

// Load returns the stored favorites, or the pre-populated defaults.
func (s *Store) Load() *List {
	return s.store.Load()
}

// Add appends a favorite site. Adding a URL that is already present updates
// its display name instead of duplicating it.
func (s *Store) Add(url, name string) (*List, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("site URL is required")
	}

	l := s.Load()
	for i, site := range l.Sites {
		if site.URL == url {
			l.Sites[i].Name = strings.TrimSpace(name)
			if err := s.store.Save(l); err != nil {
				return nil, err
			}
			return l, nil
		}
	}

	l.Sites = append(l.Sites, Site{
		URL:     url,
		Name:    strings.TrimSpace(name),
		AddedAt: time.Now().UTC(),
	})
	if err := s.store.Save(l); err != nil {
		return nil, err
	}
	return l, nil
}

// Remove deletes the favorite with the given URL, if present.
func (s *Store) Remove(url string) (*List, error) {
	l := s.Load()
	for i, site := range l.Sites {
		if site.URL == url {
			l.Sites = append(l.Sites[:i], l.Sites[i+1:]...)
			if err := s.store.Save(l); err != nil {
				return nil, err
			}
			break
		}
	}
	return l, nil
}
