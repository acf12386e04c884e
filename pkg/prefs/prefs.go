package prefs

import (
	"fmt"
	"strings"

	"github.com/prepwise/prepwise/pkg/storage"
)

// Category identifies which preference map an update targets.
type Category string

const (
	CategoryIngredient    Category = "ingredient"
	CategoryCuisine       Category = "cuisine"
	CategoryCookingMethod Category = "cooking_method"
)

// Store persists the preference profile.
type Store struct {
	store *storage.Store[*Profile]
}

// NewStore creates a preference store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{store: storage.NewStore(path, NewProfile)}
}

// DefaultStore creates a preference store at the standard location.
func DefaultStore() (*Store, error) {
	path, err := storage.PreferencesPath()
	if err != nil {
		return nil, err
	}
	return NewStore(path), nil
}

// Load returns the stored profile, or a fresh default one.
func (s *Store) Load() *Profile {
	p := s.store.Load()
	// Maps may be nil after decoding an older or partial file.
	if p.Ingredients == nil {
		p.Ingredients = make(map[string]int)
	}
	if p.Cuisines == nil {
		p.Cuisines = make(map[string]int)
	}
	if p.CookingMethods == nil {
		p.CookingMethods = make(map[string]int)
	}
	return p
}

// Save writes the profile to disk.
func (s *Store) Save(p *Profile) error {
	return s.store.Save(p)
}

// normalizeKey lowercases and underscores an item name for map keys.
func normalizeKey(item string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(item)), " ", "_")
}

// titleCase capitalizes each word, used for cuisine display names.
func titleCase(item string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(item)))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// UpdateRating sets a single preference rating. Rating must be within -2..+2;
// a rating of 0 removes the entry.
func (s *Store) UpdateRating(category Category, item string, rating int) (*Profile, error) {
	if rating < -2 || rating > 2 {
		return nil, fmt.Errorf("rating must be between -2 and +2, got %d", rating)
	}

	p := s.Load()

	var m map[string]int
	var key string
	switch category {
	case CategoryIngredient:
		m, key = p.Ingredients, normalizeKey(item)
	case CategoryCuisine:
		m, key = p.Cuisines, titleCase(item)
	case CategoryCookingMethod:
		m, key = p.CookingMethods, normalizeKey(item)
	default:
		return nil, fmt.Errorf("unknown category %q: must be %q, %q, or %q",
			category, CategoryIngredient, CategoryCuisine, CategoryCookingMethod)
	}

	if rating == 0 {
		delete(m, key)
	} else {
		m[key] = rating
	}

	if err := s.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// MacroUpdate carries partial macro target changes; nil fields are left
// untouched.
type MacroUpdate struct {
	DailyCalories *int
	DailyProteinG *int
	DailyCarbsG   *int
	DailyFatG     *int
}

// UpdateMacroTargets applies a partial macro target update.
func (s *Store) UpdateMacroTargets(u MacroUpdate) (*Profile, error) {
	p := s.Load()

	if u.DailyCalories != nil {
		p.MacroTargets.DailyCalories = *u.DailyCalories
	}
	if u.DailyProteinG != nil {
		p.MacroTargets.DailyProteinG = *u.DailyProteinG
	}
	if u.DailyCarbsG != nil {
		p.MacroTargets.DailyCarbsG = *u.DailyCarbsG
	}
	if u.DailyFatG != nil {
		p.MacroTargets.DailyFatG = *u.DailyFatG
	}

	if err := s.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddDietaryRestriction adds a restriction if not already present.
func (s *Store) AddDietaryRestriction(restriction string) (*Profile, error) {
	p := s.Load()
	normalized := strings.ToLower(strings.TrimSpace(restriction))

	for _, r := range p.DietaryRestrictions {
		if r == normalized {
			return p, nil
		}
	}
	p.DietaryRestrictions = append(p.DietaryRestrictions, normalized)

	if err := s.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveDietaryRestriction removes a restriction if present.
func (s *Store) RemoveDietaryRestriction(restriction string) (*Profile, error) {
	p := s.Load()
	normalized := strings.ToLower(strings.TrimSpace(restriction))

	for i, r := range p.DietaryRestrictions {
		if r == normalized {
			p.DietaryRestrictions = append(p.DietaryRestrictions[:i], p.DietaryRestrictions[i+1:]...)
			if err := s.Save(p); err != nil {
				return nil, err
			}
			break
		}
	}
	return p, nil
}

// CompleteSetup marks the initial setup as done, both in the profile and via
// the marker file.
func (s *Store) CompleteSetup() (*Profile, error) {
	p := s.Load()
	p.SetupCompleted = true
	if err := s.Save(p); err != nil {
		return nil, err
	}
	if err := storage.MarkSetupComplete(); err != nil {
		return nil, err
	}
	return p, nil
}

// NeedsSetup reports whether the user still has to run the setup wizard.
func (s *Store) NeedsSetup() bool {
	return !s.Load().SetupCompleted && !storage.IsSetupComplete()
}
