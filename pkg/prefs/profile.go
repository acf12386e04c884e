// Package prefs stores and updates the user's food preference profile:
// ingredient, cuisine, and cooking-method ratings, daily macro targets, and
// dietary restrictions.
//
// Ratings run from -2 (strongly dislike) to +2 (love); 0 removes the entry.
package prefs

// MacroTargets holds daily macronutrient targets.
type MacroTargets struct {
	DailyCalories int `json:"daily_calories"`
	DailyProteinG int `json:"daily_protein_g"`
	DailyCarbsG   int `json:"daily_carbs_g"`
	DailyFatG     int `json:"daily_fat_g"`
}

// Profile is the user's complete food preference profile.
type Profile struct {
	// Ingredients maps ingredient key -> rating (-2 to +2).
	Ingredients map[string]int `json:"ingredients"`

	// Cuisines maps cuisine name -> rating (-2 to +2). Cuisine names are
	// kept title-cased for display.
	Cuisines map[string]int `json:"cuisines"`

	// CookingMethods maps method key -> rating (-2 to +2).
	CookingMethods map[string]int `json:"cooking_methods"`

	MacroTargets MacroTargets `json:"macro_targets"`

	// DietaryRestrictions lists restrictions and allergies, e.g.
	// "dairy-free", "gluten-free".
	DietaryRestrictions []string `json:"dietary_restrictions"`

	// SetupCompleted records whether the initial setup wizard has run.
	SetupCompleted bool `json:"setup_completed"`
}

// NewProfile returns an empty profile with default macro targets.
func NewProfile() *Profile {
	return &Profile{
		Ingredients:    make(map[string]int),
		Cuisines:       make(map[string]int),
		CookingMethods: make(map[string]int),
		MacroTargets: MacroTargets{
			DailyCalories: 2000,
			DailyProteinG: 150,
			DailyCarbsG:   200,
			DailyFatG:     70,
		},
	}
}

func keysWithRating(m map[string]int, positive bool) []string {
	var out []string
	for k, v := range m {
		if (positive && v > 0) || (!positive && v < 0) {
			out = append(out, k)
		}
	}
	return out
}

// LikedIngredients returns ingredients rated +1 or +2.
func (p *Profile) LikedIngredients() []string { return keysWithRating(p.Ingredients, true) }

// DislikedIngredients returns ingredients rated -1 or -2.
func (p *Profile) DislikedIngredients() []string { return keysWithRating(p.Ingredients, false) }

// LikedCuisines returns cuisines rated +1 or +2.
func (p *Profile) LikedCuisines() []string { return keysWithRating(p.Cuisines, true) }

// DislikedCuisines returns cuisines rated -1 or -2.
func (p *Profile) DislikedCuisines() []string { return keysWithRating(p.Cuisines, false) }

// PreferredMethods returns cooking methods rated +1 or +2.
func (p *Profile) PreferredMethods() []string { return keysWithRating(p.CookingMethods, true) }

// Question pairs a stable key with the prompt shown to the user.
type Question struct {
	Key    string
	Prompt string
}

// IngredientQuestions are the canned ingredient prompts for the setup wizard.
var IngredientQuestions = []Question{
	{"cilantro", "cilantro/coriander"},
	{"mushrooms", "mushrooms"},
	{"olives", "olives"},
	{"spicy_food", "spicy food"},
	{"seafood", "seafood"},
	{"tofu", "tofu"},
	{"avocado", "avocado"},
	{"coconut", "coconut"},
	{"blue_cheese", "blue cheese / strong cheeses"},
	{"raw_onion", "raw onions"},
	{"bell_peppers", "bell peppers"},
	{"eggplant", "eggplant"},
	{"beans", "beans/legumes"},
	{"nuts", "nuts"},
}

// CommonCuisines are the cuisines offered during setup and used by the meal
// history analyzer to detect avoided cuisines.
var CommonCuisines = []string{
	"Mexican", "Italian", "Chinese", "Japanese", "Indian", "Thai",
	"Mediterranean", "American", "Korean", "Vietnamese",
	"Middle Eastern", "Greek", "French",
}

// CookingMethodQuestions are the canned cooking-method prompts for setup.
var CookingMethodQuestions = []Question{
	{"quick_meals", "Quick meals (under 30 min)"},
	{"slow_cooker", "Slow cooker / crockpot"},
	{"air_fryer", "Air fryer"},
	{"grilling", "Grilling / BBQ"},
	{"meal_prep", "Batch cooking / meal prep"},
	{"one_pot", "One-pot meals"},
	{"sheet_pan", "Sheet pan dinners"},
	{"instant_pot", "Instant Pot / pressure cooker"},
	{"stir_fry", "Stir fry"},
	{"baking", "Baking"},
}

// DietaryOptions are the selectable dietary restrictions.
var DietaryOptions = []string{
	"dairy-free", "gluten-free", "vegetarian", "vegan", "keto",
	"low-carb", "nut-free", "egg-free", "pescatarian", "halal", "kosher",
}
