package prefs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepwise/prepwise/pkg/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	storage.SetBaseDir(dir)
	t.Cleanup(func() { storage.SetBaseDir("") })
	return NewStore(filepath.Join(dir, "preferences.json"))
}

func TestLoadDefaults(t *testing.T) {
	s := newTestStore(t)

	p := s.Load()
	assert.Equal(t, 2000, p.MacroTargets.DailyCalories)
	assert.Equal(t, 150, p.MacroTargets.DailyProteinG)
	assert.Empty(t, p.Ingredients)
	assert.False(t, p.SetupCompleted)
}

func TestUpdateRatingNormalizesIngredientKey(t *testing.T) {
	s := newTestStore(t)

	p, err := s.UpdateRating(CategoryIngredient, "  Blue Cheese ", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Ingredients["blue_cheese"])

	// Persisted across loads.
	assert.Equal(t, 2, s.Load().Ingredients["blue_cheese"])
}

func TestUpdateRatingTitleCasesCuisine(t *testing.T) {
	s := newTestStore(t)

	p, err := s.UpdateRating(CategoryCuisine, "middle eastern", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Cuisines["Middle Eastern"])
}

func TestUpdateRatingZeroRemovesEntry(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateRating(CategoryCookingMethod, "slow_cooker", 2)
	require.NoError(t, err)

	p, err := s.UpdateRating(CategoryCookingMethod, "slow_cooker", 0)
	require.NoError(t, err)
	_, ok := p.CookingMethods["slow_cooker"]
	assert.False(t, ok)
}

func TestUpdateRatingRejectsOutOfRange(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateRating(CategoryIngredient, "cilantro", 3)
	assert.Error(t, err)
	_, err = s.UpdateRating(CategoryIngredient, "cilantro", -3)
	assert.Error(t, err)
}

func TestUpdateRatingRejectsUnknownCategory(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateRating(Category("color"), "blue", 1)
	assert.Error(t, err)
}

func TestLikedAndDisliked(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateRating(CategoryIngredient, "avocado", 2)
	require.NoError(t, err)
	_, err = s.UpdateRating(CategoryIngredient, "olives", -1)
	require.NoError(t, err)

	p := s.Load()
	assert.Equal(t, []string{"avocado"}, p.LikedIngredients())
	assert.Equal(t, []string{"olives"}, p.DislikedIngredients())
}

func TestUpdateMacroTargetsPartial(t *testing.T) {
	s := newTestStore(t)

	protein := 180
	p, err := s.UpdateMacroTargets(MacroUpdate{DailyProteinG: &protein})
	require.NoError(t, err)

	assert.Equal(t, 180, p.MacroTargets.DailyProteinG)
	assert.Equal(t, 2000, p.MacroTargets.DailyCalories, "untouched targets keep defaults")
}

func TestDietaryRestrictions(t *testing.T) {
	s := newTestStore(t)

	p, err := s.AddDietaryRestriction(" Gluten-Free ")
	require.NoError(t, err)
	assert.Equal(t, []string{"gluten-free"}, p.DietaryRestrictions)

	// Adding twice does not duplicate.
	p, err = s.AddDietaryRestriction("gluten-free")
	require.NoError(t, err)
	assert.Len(t, p.DietaryRestrictions, 1)

	p, err = s.RemoveDietaryRestriction("gluten-free")
	require.NoError(t, err)
	assert.Empty(t, p.DietaryRestrictions)
}

func TestCompleteSetup(t *testing.T) {
	s := newTestStore(t)

	assert.True(t, s.NeedsSetup())

	p, err := s.CompleteSetup()
	require.NoError(t, err)
	assert.True(t, p.SetupCompleted)
	assert.False(t, s.NeedsSetup())
	assert.True(t, storage.IsSetupComplete())
}
