package wizard

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepwise/prepwise/pkg/prefs"
	"github.com/prepwise/prepwise/pkg/storage"
)

func newTestWizard(t *testing.T) (*Model, *prefs.Store) {
	t.Helper()
	dir := t.TempDir()
	storage.SetBaseDir(dir)
	t.Cleanup(func() { storage.SetBaseDir("") })

	store := prefs.NewStore(filepath.Join(dir, "preferences.json"))
	return New(store), store
}

func press(m tea.Model, key string) tea.Model {
	var msg tea.Msg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next
}

func TestDietaryPhaseTogglesAndAdvances(t *testing.T) {
	m, store := newTestWizard(t)

	var cur tea.Model = m
	cur = press(cur, " ")     // select first option
	cur = press(cur, "j")     // move down
	cur = press(cur, " ")     // select second option
	cur = press(cur, "enter") // commit

	assert.Equal(t, phaseCuisines, m.phase)
	p := store.Load()
	require.Len(t, p.DietaryRestrictions, 2)
	_ = cur
}

func TestRatingPhaseRecordsAnswers(t *testing.T) {
	m, store := newTestWizard(t)
	m.phase = phaseCuisines

	var cur tea.Model = m
	cur = press(cur, "5") // love the first cuisine
	cur = press(cur, "3") // neutral on the second, not recorded
	cur = press(cur, "1") // hate the third

	p := store.Load()
	assert.Len(t, p.Cuisines, 2, "neutral answers are not stored")

	first := prefs.CommonCuisines[0]
	assert.Equal(t, 2, p.Cuisines[first])
	_ = cur
}

func TestSkipAdvancesPhase(t *testing.T) {
	m, _ := newTestWizard(t)
	m.phase = phaseCuisines

	press(m, "s")
	assert.Equal(t, phaseIngredients, m.phase)
	press(m, "s")
	assert.Equal(t, phaseMethods, m.phase)
	press(m, "s")
	assert.Equal(t, phaseMacros, m.phase)
}

func TestMacroPhaseSavesAndCompletes(t *testing.T) {
	m, store := newTestWizard(t)
	m.phase = phaseMacros

	var cur tea.Model = m
	cur = press(cur, "2")
	cur = press(cur, "2")
	cur = press(cur, "0")
	cur = press(cur, "0") // calories 2200
	cur = press(cur, "tab")
	cur = press(cur, "enter") // protein left blank
	cur = press(cur, "enter") // carbs blank
	cur = press(cur, "enter") // fat blank, last field saves

	assert.True(t, m.Done())
	assert.Equal(t, phaseDone, m.phase)

	p := store.Load()
	assert.Equal(t, 2200, p.MacroTargets.DailyCalories)
	assert.Equal(t, 150, p.MacroTargets.DailyProteinG, "blank keeps default")
	assert.True(t, p.SetupCompleted)
	assert.False(t, store.NeedsSetup())
	_ = cur
}

func TestMacroPhaseRejectsBadInput(t *testing.T) {
	m, _ := newTestWizard(t)
	m.phase = phaseMacros

	var cur tea.Model = m
	cur = press(cur, "x")
	for i := 0; i < 4; i++ {
		cur = press(cur, "enter")
	}

	assert.False(t, m.Done())
	assert.NotEmpty(t, m.macros.errMsg)
	_ = cur
}

func TestViewRendersEachPhase(t *testing.T) {
	m, _ := newTestWizard(t)

	assert.Contains(t, m.View(), "dietary restrictions")

	m.phase = phaseCuisines
	assert.Contains(t, m.View(), "cuisines")

	m.phase = phaseMacros
	assert.Contains(t, m.View(), "macro targets")

	m.phase = phaseDone
	assert.Contains(t, m.View(), "Setup complete")
}
