// Package recipe models recipes and extracts them from web pages.
//
// Extraction reads the schema.org/Recipe JSON-LD block most recipe sites
// embed, which covers the large majority of popular sources without any
// per-site scraping code.
package recipe

import (
	"fmt"
	"strings"
)

// Ingredient is a single ingredient line in a recipe.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
	Notes    string `json:"notes,omitempty"`

	// RawText is the original ingredient text as found on the page.
	RawText string `json:"raw_text"`
}

func (i Ingredient) String() string {
	var parts []string
	if i.Quantity != "" {
		parts = append(parts, i.Quantity)
	}
	if i.Unit != "" {
		parts = append(parts, i.Unit)
	}
	parts = append(parts, i.Name)
	if i.Notes != "" {
		parts = append(parts, "("+i.Notes+")")
	}
	return strings.Join(parts, " ")
}

// Nutrition holds estimated nutritional information per serving.
type Nutrition struct {
	Calories *int     `json:"calories,omitempty"`
	ProteinG *float64 `json:"protein_g,omitempty"`
	CarbsG   *float64 `json:"carbs_g,omitempty"`
	FatG     *float64 `json:"fat_g,omitempty"`
	FiberG   *float64 `json:"fiber_g,omitempty"`
	SodiumMG *float64 `json:"sodium_mg,omitempty"`
}

// Recipe is a complete recipe with metadata.
type Recipe struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	SourceURL  string `json:"source_url,omitempty"`
	SourceName string `json:"source_name,omitempty"`
	Author     string `json:"author,omitempty"`

	Ingredients    []Ingredient `json:"ingredients"`
	IngredientsRaw []string     `json:"ingredients_raw"`
	Instructions   []string     `json:"instructions"`

	PrepTimeMinutes  int `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes  int `json:"cook_time_minutes,omitempty"`
	TotalTimeMinutes int `json:"total_time_minutes,omitempty"`
	Servings         int `json:"servings,omitempty"`

	MealType   string `json:"meal_type,omitempty"`
	Cuisine    string `json:"cuisine,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`

	Nutrition *Nutrition `json:"nutrition,omitempty"`

	Tags        []string `json:"tags,omitempty"`
	DietaryInfo []string `json:"dietary_info,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// TotalTime returns the total time in minutes, deriving it from prep and
// cook time when the source did not state it directly.
func (r *Recipe) TotalTime() int {
	if r.TotalTimeMinutes > 0 {
		return r.TotalTimeMinutes
	}
	if r.PrepTimeMinutes > 0 && r.CookTimeMinutes > 0 {
		return r.PrepTimeMinutes + r.CookTimeMinutes
	}
	if r.PrepTimeMinutes > 0 {
		return r.PrepTimeMinutes
	}
	return r.CookTimeMinutes
}

// IngredientNames returns lowercased ingredient names for preference matching.
func (r *Recipe) IngredientNames() []string {
	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		names = append(names, strings.ToLower(ing.Name))
	}
	return names
}

// Markdown renders the recipe for export.
func (r *Recipe) Markdown() string {
	var b strings.Builder

	if r.Description != "" {
		b.WriteString(r.Description)
		b.WriteString("\n\n")
	}

	var timeParts []string
	if r.PrepTimeMinutes > 0 {
		timeParts = append(timeParts, fmt.Sprintf("Prep: %d min", r.PrepTimeMinutes))
	}
	if r.CookTimeMinutes > 0 {
		timeParts = append(timeParts, fmt.Sprintf("Cook: %d min", r.CookTimeMinutes))
	}
	if r.Servings > 0 {
		timeParts = append(timeParts, fmt.Sprintf("Servings: %d", r.Servings))
	}
	if len(timeParts) > 0 {
		b.WriteString(strings.Join(timeParts, " | "))
		b.WriteString("\n\n")
	}

	b.WriteString("**Ingredients**\n")
	lines := r.IngredientsRaw
	if len(lines) == 0 {
		for _, ing := range r.Ingredients {
			lines = append(lines, ing.String())
		}
	}
	for _, line := range lines {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	b.WriteString("\n**Instructions**\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	if r.SourceURL != "" {
		source := r.SourceName
		if source == "" {
			source = "Source"
		}
		fmt.Fprintf(&b, "\n*Recipe from [%s](%s)*\n", source, r.SourceURL)
	}

	return b.String()
}
