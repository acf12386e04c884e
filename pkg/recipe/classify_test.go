package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateMealType(t *testing.T) {
	tests := []struct {
		name        string
		ingredients []string
		want        string
	}{
		{"Blueberry Pancakes", nil, "Breakfast"},
		{"Veggie Scramble", []string{"3 eggs", "spinach"}, "Breakfast"},
		{"Chocolate Chip Cookies", nil, "Dessert"},
		{"Seven Layer Dip", nil, "Snack"},
		{"Beef Stew", []string{"beef", "carrots"}, "Dinner"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EstimateMealType(tt.name, tt.ingredients), tt.name)
	}
}

func TestEstimateCuisine(t *testing.T) {
	got := EstimateCuisine("Chicken Tikka Masala", []string{"garam masala", "naan"})
	assert.Equal(t, "Indian", got)

	got = EstimateCuisine("Weeknight Tacos", []string{"tortilla", "salsa", "cilantro"})
	assert.Equal(t, "Mexican", got)

	got = EstimateCuisine("Plain Roast Chicken", []string{"chicken", "salt"})
	assert.Equal(t, "", got, "no indicators means no guess")
}

func TestEstimateDifficulty(t *testing.T) {
	assert.Equal(t, "Easy", EstimateDifficulty(10, 15, 4))
	assert.Equal(t, "Medium", EstimateDifficulty(15, 40, 8))
	assert.Equal(t, "Medium", EstimateDifficulty(5, 10, 10), "many steps bump easy to medium")
	assert.Equal(t, "Hard", EstimateDifficulty(30, 60, 15))
}

func TestTotalTimeDerivation(t *testing.T) {
	r := &Recipe{TotalTimeMinutes: 45}
	assert.Equal(t, 45, r.TotalTime())

	r = &Recipe{PrepTimeMinutes: 10, CookTimeMinutes: 20}
	assert.Equal(t, 30, r.TotalTime())

	r = &Recipe{CookTimeMinutes: 25}
	assert.Equal(t, 25, r.TotalTime())
}

func TestMarkdownExport(t *testing.T) {
	r := &Recipe{
		Name:            "Toast",
		Description:     "Crispy bread.",
		IngredientsRaw:  []string{"2 slices bread", "butter"},
		Instructions:    []string{"Toast the bread.", "Spread the butter."},
		PrepTimeMinutes: 2,
		Servings:        1,
		SourceURL:       "https://example.com/toast",
		SourceName:      "Example",
	}

	md := r.Markdown()
	assert.Contains(t, md, "Crispy bread.")
	assert.Contains(t, md, "Prep: 2 min | Servings: 1")
	assert.Contains(t, md, "- 2 slices bread")
	assert.Contains(t, md, "1. Toast the bread.")
	assert.Contains(t, md, "*Recipe from [Example](https://example.com/toast)*")
}
