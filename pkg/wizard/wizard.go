// Package wizard implements the interactive first-run setup flow. It walks
// the user through dietary restrictions, cuisine and ingredient ratings,
// cooking methods, and macro targets, then saves the completed profile.
package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/prepwise/prepwise/pkg/prefs"
)

type phase int

const (
	phaseDietary phase = iota
	phaseCuisines
	phaseIngredients
	phaseMethods
	phaseMacros
	phaseDone
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// ratingKeys maps the 1-5 answer keys onto the -2..+2 rating scale.
var ratingKeys = map[string]int{
	"1": -2, // hate
	"2": -1, // dislike
	"3": 0,  // neutral, not recorded
	"4": 1,  // like
	"5": 2,  // love
}

var ratingLegend = "1 hate · 2 dislike · 3 neutral · 4 like · 5 love · s skip rest"

type ratingItem struct {
	key    string
	prompt string
}

type ratingStep struct {
	category prefs.Category
	prompt   string
	items    []ratingItem
	index    int
}

// Model is the bubbletea model for the setup wizard.
type Model struct {
	store   *prefs.Store
	profile *prefs.Profile

	phase   phase
	dietary dietaryState
	steps   map[phase]*ratingStep
	macros  macroState

	err  error
	done bool
}

type dietaryState struct {
	options  []string
	cursor   int
	selected map[int]bool
}

type macroState struct {
	inputs  []textinput.Model
	labels  []string
	focused int
	errMsg  string
}

// New creates a setup wizard backed by the given preference store.
func New(store *prefs.Store) *Model {
	ingredients := make([]ratingItem, 0, len(prefs.IngredientQuestions))
	for _, q := range prefs.IngredientQuestions {
		ingredients = append(ingredients, ratingItem{key: q.Key, prompt: q.Prompt})
	}
	methods := make([]ratingItem, 0, len(prefs.CookingMethodQuestions))
	for _, q := range prefs.CookingMethodQuestions {
		methods = append(methods, ratingItem{key: q.Key, prompt: q.Prompt})
	}
	cuisines := make([]ratingItem, 0, len(prefs.CommonCuisines))
	for _, c := range prefs.CommonCuisines {
		cuisines = append(cuisines, ratingItem{key: c, prompt: c})
	}

	m := &Model{
		store:   store,
		profile: store.Load(),
		phase:   phaseDietary,
		dietary: dietaryState{
			options:  prefs.DietaryOptions,
			selected: map[int]bool{},
		},
		steps: map[phase]*ratingStep{
			phaseCuisines: {
				category: prefs.CategoryCuisine,
				prompt:   "How do you feel about these cuisines?",
				items:    cuisines,
			},
			phaseIngredients: {
				category: prefs.CategoryIngredient,
				prompt:   "How do you feel about these ingredients?",
				items:    ingredients,
			},
			phaseMethods: {
				category: prefs.CategoryCookingMethod,
				prompt:   "How do you feel about these cooking methods?",
				items:    methods,
			},
		},
	}
	m.macros = newMacroState(m.profile)
	return m
}

func newMacroState(p *prefs.Profile) macroState {
	labels := []string{"Calories", "Protein (g)", "Carbs (g)", "Fat (g)"}
	defaults := []int{
		p.MacroTargets.DailyCalories, p.MacroTargets.DailyProteinG,
		p.MacroTargets.DailyCarbsG, p.MacroTargets.DailyFatG,
	}

	inputs := make([]textinput.Model, len(labels))
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = strconv.Itoa(defaults[i])
		ti.CharLimit = 5
		ti.Width = 8
		if i == 0 {
			ti.Focus()
		}
		inputs[i] = ti
	}
	return macroState{inputs: inputs, labels: labels}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateMacroInputs(msg)
	}

	if key.String() == "ctrl+c" || (key.String() == "q" && m.phase != phaseMacros) {
		return m, tea.Quit
	}

	switch m.phase {
	case phaseDietary:
		return m.updateDietary(key)
	case phaseCuisines, phaseIngredients, phaseMethods:
		return m.updateRating(key)
	case phaseMacros:
		return m.updateMacros(key)
	case phaseDone:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateDietary(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.dietary.cursor > 0 {
			m.dietary.cursor--
		}
	case "down", "j":
		if m.dietary.cursor < len(m.dietary.options)-1 {
			m.dietary.cursor++
		}
	case " ":
		m.dietary.selected[m.dietary.cursor] = !m.dietary.selected[m.dietary.cursor]
	case "enter":
		for i, on := range m.dietary.selected {
			if !on {
				continue
			}
			if _, err := m.store.AddDietaryRestriction(m.dietary.options[i]); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		m.phase = phaseCuisines
	}
	return m, nil
}

func (m *Model) updateRating(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := m.steps[m.phase]

	switch k := key.String(); {
	case k == "s":
		m.advancePhase()
	case ratingKeysContain(k):
		rating := ratingKeys[k]
		if rating != 0 {
			item := step.items[step.index].key
			if _, err := m.store.UpdateRating(step.category, item, rating); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		step.index++
		if step.index >= len(step.items) {
			m.advancePhase()
		}
	}
	return m, nil
}

func ratingKeysContain(k string) bool {
	_, ok := ratingKeys[k]
	return ok
}

func (m *Model) advancePhase() {
	switch m.phase {
	case phaseCuisines:
		m.phase = phaseIngredients
	case phaseIngredients:
		m.phase = phaseMethods
	case phaseMethods:
		m.phase = phaseMacros
	}
}

func (m *Model) updateMacros(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "tab", "down":
		m.focusMacro(m.macros.focused + 1)
		return m, nil
	case "shift+tab", "up":
		m.focusMacro(m.macros.focused - 1)
		return m, nil
	case "enter":
		if m.macros.focused < len(m.macros.inputs)-1 {
			m.focusMacro(m.macros.focused + 1)
			return m, nil
		}
		return m.finish()
	}
	return m.updateMacroInputs(key)
}

func (m *Model) focusMacro(i int) {
	if i < 0 || i >= len(m.macros.inputs) {
		return
	}
	m.macros.inputs[m.macros.focused].Blur()
	m.macros.focused = i
	m.macros.inputs[i].Focus()
}

func (m *Model) updateMacroInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for i := range m.macros.inputs {
		var cmd tea.Cmd
		m.macros.inputs[i], cmd = m.macros.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) finish() (tea.Model, tea.Cmd) {
	fields := []*int{nil, nil, nil, nil}
	for i, ti := range m.macros.inputs {
		val := strings.TrimSpace(ti.Value())
		if val == "" {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			m.macros.errMsg = fmt.Sprintf("%s must be a positive number", m.macros.labels[i])
			m.focusMacro(i)
			return m, nil
		}
		fields[i] = &n
	}
	update := prefs.MacroUpdate{
		DailyCalories: fields[0],
		DailyProteinG: fields[1],
		DailyCarbsG:   fields[2],
		DailyFatG:     fields[3],
	}

	if _, err := m.store.UpdateMacroTargets(update); err != nil {
		m.err = err
		return m, tea.Quit
	}
	if _, err := m.store.CompleteSetup(); err != nil {
		m.err = err
		return m, tea.Quit
	}

	m.done = true
	m.phase = phaseDone
	return m, tea.Quit
}

// Done reports whether the wizard saved a completed profile.
func (m *Model) Done() bool { return m.done }

// Err returns the error that aborted the wizard, if any.
func (m *Model) Err() error { return m.err }

// View implements tea.Model.
func (m *Model) View() string {
	if m.err != nil {
		return errorStyle.Render("Setup failed: "+m.err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Prepwise Setup"))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseDietary:
		b.WriteString("Any dietary restrictions?\n\n")
		for i, opt := range m.dietary.options {
			cursor := "  "
			if i == m.dietary.cursor {
				cursor = cursorStyle.Render("> ")
			}
			check := "[ ]"
			line := fmt.Sprintf("%s %s", check, opt)
			if m.dietary.selected[i] {
				line = selectedStyle.Render(fmt.Sprintf("[x] %s", opt))
			}
			fmt.Fprintf(&b, "%s%s\n", cursor, line)
		}
		b.WriteString(helpStyle.Render("space toggle · enter continue · q quit"))

	case phaseCuisines, phaseIngredients, phaseMethods:
		step := m.steps[m.phase]
		b.WriteString(step.prompt + "\n\n")
		fmt.Fprintf(&b, "  %s %s\n",
			selectedStyle.Render(step.items[step.index].prompt),
			subtitleStyle.Render(fmt.Sprintf("(%d/%d)", step.index+1, len(step.items))))
		b.WriteString(helpStyle.Render(ratingLegend))

	case phaseMacros:
		b.WriteString("Daily macro targets (blank keeps the default):\n\n")
		for i, ti := range m.macros.inputs {
			fmt.Fprintf(&b, "  %-12s %s\n", m.macros.labels[i], ti.View())
		}
		if m.macros.errMsg != "" {
			b.WriteString("\n" + errorStyle.Render(m.macros.errMsg))
		}
		b.WriteString(helpStyle.Render("tab next field · enter on last field saves"))

	case phaseDone:
		b.WriteString(selectedStyle.Render("Setup complete.") +
			" Your preferences are saved.\n")
	}

	b.WriteString("\n")
	return b.String()
}

// Run executes the wizard against the terminal.
func Run(store *prefs.Store) error {
	m := New(store)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("setup wizard: %w", err)
	}
	if m.err != nil {
		return m.err
	}
	return nil
}
