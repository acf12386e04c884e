package grocer

import (
	"regexp"
	"strings"
)

var (
	// Leading quantity: digits optionally followed by fractions, decimals,
	// or further digits ("2", "1 1/2", "1.5 ").
	leadingQuantityRe = regexp.MustCompile(`^\d+[\d./\s]*`)

	// Parenthetical notes like "(14 oz)" or "(optional)".
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// unitWords are measurement and packaging words stripped from ingredient
// lines, matched case-insensitively as whole words with an optional trailing
// period.
var unitWords = []string{
	"cups?", "tbsp?", "tsp?", "tablespoons?", "teaspoons?",
	"oz", "ounces?", "lbs?", "pounds?", "grams?", "g", "ml",
	"liters?", "quarts?", "pints?", "gallons?",
	"cloves?", "heads?", "bunche?s?", "cans?", "jars?",
	"packages?", "bags?", "boxes?", "containers?",
	"small", "medium", "large", "extra-large",
}

// prepWords are preparation and state descriptors stripped from ingredient
// lines, consuming a trailing comma when present.
var prepWords = []string{
	"chopped", "diced", "minced", "sliced", "cubed", "crushed",
	"grated", "shredded", "melted", "softened",
	"fresh", "frozen", "canned", "dried", "ground",
	"optional", "to taste", "for serving", "divided",
}

var (
	unitWordsRe = regexp.MustCompile(`(?i)\b(` + strings.Join(unitWords, "|") + `)\b\.?`)
	prepWordsRe = regexp.MustCompile(`(?i)\b(` + strings.Join(prepWords, "|") + `)\b,?`)
)

// CleanForSearch strips quantities, units, and preparation instructions from
// a free-text ingredient line, leaving a term suited to a product search.
//
// Quantity and parenthetical removal run before the word filters because
// prep words frequently live inside the parenthetical.
func CleanForSearch(raw string) string {
	s := leadingQuantityRe.ReplaceAllString(raw, "")
	s = parentheticalRe.ReplaceAllString(s, "")
	s = unitWordsRe.ReplaceAllString(s, "")
	s = prepWordsRe.ReplaceAllString(s, "")

	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.Trim(s, " ,.-")
}

// SuggestFallback produces a simplified search term for an ingredient whose
// search found nothing. Long cleaned terms are cut down to their last two
// words, which usually carry the head noun of a grocery description.
//
// It never fails; degenerate input (an ingredient consisting only of units)
// may yield an empty suggestion, which callers must tolerate.
func SuggestFallback(raw string) string {
	cleaned := CleanForSearch(raw)

	words := strings.Fields(cleaned)
	if len(words) > 2 {
		return strings.Join(words[len(words)-2:], " ")
	}
	return "Try simpler search: " + cleaned
}
