package history

import (
	"fmt"
	"sort"
	"strings"
)

// knownCuisines is the reference set used to detect cuisines the user never
// cooks.
var knownCuisines = []string{
	"American", "Chinese", "French", "Greek", "Indian", "Italian",
	"Japanese", "Korean", "Mediterranean", "Mexican", "Middle Eastern",
	"Thai", "Vietnamese",
}

// Suggestion is a proposed preference update derived from history.
type Suggestion struct {
	Category        string `json:"category"`
	Item            string `json:"item"`
	SuggestedRating int    `json:"suggested_rating"`
	Reason          string `json:"reason"`
	Confidence      string `json:"confidence"`
}

// Analysis summarizes the user's meal history.
type Analysis struct {
	CuisineCounts      map[string]int `json:"cuisine_counts"`
	MealTypeCounts     map[string]int `json:"meal_type_counts"`
	DifficultyCounts   map[string]int `json:"difficulty_counts"`
	RatingDistribution map[int]int    `json:"rating_distribution"`

	FavoriteCuisines    []string `json:"favorite_cuisines"`
	AvoidedCuisines     []string `json:"avoided_cuisines"`
	PreferredDifficulty string   `json:"preferred_difficulty,omitempty"`
	AveragePrepTime     float64  `json:"average_prep_time,omitempty"`
	AverageCookTime     float64  `json:"average_cook_time,omitempty"`
	TotalMeals          int      `json:"total_meals"`

	SuggestedUpdates []Suggestion `json:"suggested_updates"`
}

// Analyze computes counts, insights, and preference suggestions from a set of
// logged meals.
func Analyze(entries []Entry) *Analysis {
	a := &Analysis{
		CuisineCounts:      map[string]int{},
		MealTypeCounts:     map[string]int{},
		DifficultyCounts:   map[string]int{},
		RatingDistribution: map[int]int{},
		TotalMeals:         len(entries),
	}

	var prepTimes, cookTimes []float64
	for _, e := range entries {
		for _, c := range e.Cuisines {
			a.CuisineCounts[c]++
		}
		for _, mt := range e.MealTypes {
			a.MealTypeCounts[mt]++
		}
		if e.Difficulty != "" {
			a.DifficultyCounts[e.Difficulty]++
		}
		if e.Rating > 0 {
			a.RatingDistribution[e.Rating]++
		}
		if e.PrepTimeMinutes > 0 {
			prepTimes = append(prepTimes, float64(e.PrepTimeMinutes))
		}
		if e.CookTimeMinutes > 0 {
			cookTimes = append(cookTimes, float64(e.CookTimeMinutes))
		}
	}

	a.FavoriteCuisines = topCuisines(a.CuisineCounts)

	// Only call a cuisine avoided once there is enough history to mean it.
	if a.TotalMeals >= 5 {
		for _, c := range knownCuisines {
			if a.CuisineCounts[c] == 0 {
				a.AvoidedCuisines = append(a.AvoidedCuisines, c)
			}
		}
	}

	a.PreferredDifficulty = mostCommon(a.DifficultyCounts)
	a.AveragePrepTime = average(prepTimes)
	a.AverageCookTime = average(cookTimes)
	a.SuggestedUpdates = suggestions(a)

	return a
}

// topCuisines returns up to three cuisines cooked at least twice, most
// frequent first.
func topCuisines(counts map[string]int) []string {
	type pair struct {
		name  string
		count int
	}
	var pairs []pair
	for name, count := range counts {
		if count >= 2 {
			pairs = append(pairs, pair{name, count})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].name < pairs[j].name
	})
	if len(pairs) > 3 {
		pairs = pairs[:3]
	}
	var out []string
	for _, p := range pairs {
		out = append(out, p.name)
	}
	return out
}

func mostCommon(counts map[string]int) string {
	best := ""
	bestCount := 0
	for name, count := range counts {
		if count > bestCount || (count == bestCount && count > 0 && name < best) {
			best = name
			bestCount = count
		}
	}
	return best
}

func average(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// suggestions derives preference updates. Frequently cooked cuisines earn a
// positive rating; the preferred difficulty maps to cooking methods. Negative
// ratings are never suggested automatically since lack of use does not mean
// dislike.
func suggestions(a *Analysis) []Suggestion {
	if a.TotalMeals < 3 {
		return nil
	}

	var out []Suggestion
	for _, cuisine := range a.FavoriteCuisines {
		count := a.CuisineCounts[cuisine]
		share := float64(count) / float64(a.TotalMeals)
		switch {
		case share > 0.3:
			out = append(out, Suggestion{
				Category:        "cuisine",
				Item:            cuisine,
				SuggestedRating: 2,
				Reason: fmt.Sprintf("You've made %d %s meals (%d%% of your history)",
					count, cuisine, count*100/a.TotalMeals),
				Confidence: "high",
			})
		case share > 0.15:
			out = append(out, Suggestion{
				Category:        "cuisine",
				Item:            cuisine,
				SuggestedRating: 1,
				Reason:          fmt.Sprintf("You've made %d %s meals", count, cuisine),
				Confidence:      "medium",
			})
		}
	}

	methodsByDifficulty := map[string][]string{
		"Easy":   {"one_pot", "sheet_pan", "slow_cooker"},
		"Medium": {"air_fryer", "instant_pot"},
		"Hard":   {"sous_vide", "smoking"},
	}
	for _, method := range methodsByDifficulty[a.PreferredDifficulty] {
		out = append(out, Suggestion{
			Category:        "cooking_method",
			Item:            method,
			SuggestedRating: 1,
			Reason: fmt.Sprintf("You tend to prefer %s recipes",
				strings.ToLower(a.PreferredDifficulty)),
			Confidence: "low",
		})
	}

	return out
}

// Summary renders the analysis as human-readable markdown.
func (a *Analysis) Summary() string {
	var b strings.Builder

	b.WriteString("## Meal History Analysis\n\n")
	fmt.Fprintf(&b, "**Total Meals:** %d\n\n", a.TotalMeals)

	if len(a.FavoriteCuisines) > 0 {
		fmt.Fprintf(&b, "**Favorite Cuisines:** %s\n", strings.Join(a.FavoriteCuisines, ", "))
	}
	if a.PreferredDifficulty != "" {
		fmt.Fprintf(&b, "**Preferred Difficulty:** %s\n", a.PreferredDifficulty)
	}
	if a.AveragePrepTime > 0 {
		fmt.Fprintf(&b, "**Average Prep Time:** %.1f minutes\n", a.AveragePrepTime)
	}
	if a.AverageCookTime > 0 {
		fmt.Fprintf(&b, "**Average Cook Time:** %.1f minutes\n", a.AverageCookTime)
	}
	b.WriteString("\n")

	if len(a.CuisineCounts) > 0 {
		b.WriteString("### Cuisine Breakdown\n")
		names := make([]string, 0, len(a.CuisineCounts))
		for name := range a.CuisineCounts {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if a.CuisineCounts[names[i]] != a.CuisineCounts[names[j]] {
				return a.CuisineCounts[names[i]] > a.CuisineCounts[names[j]]
			}
			return names[i] < names[j]
		})
		for _, name := range names {
			fmt.Fprintf(&b, "- %s: %d\n", name, a.CuisineCounts[name])
		}
		b.WriteString("\n")
	}

	if len(a.RatingDistribution) > 0 {
		b.WriteString("### Rating Distribution\n")
		for rating := 5; rating >= 1; rating-- {
			if count := a.RatingDistribution[rating]; count > 0 {
				fmt.Fprintf(&b, "- %s (%d): %d meals\n",
					strings.Repeat("*", rating), rating, count)
			}
		}
		b.WriteString("\n")
	}

	if len(a.SuggestedUpdates) > 0 {
		ratingWords := map[int]string{2: "love", 1: "like", -1: "dislike", -2: "hate"}
		b.WriteString("### Suggested Preference Updates\n")
		for _, s := range a.SuggestedUpdates {
			word := ratingWords[s.SuggestedRating]
			if word == "" {
				word = "neutral"
			}
			fmt.Fprintf(&b, "- Set **%s** (%s) to `%s` (%s confidence)\n",
				s.Item, s.Category, word, s.Confidence)
			fmt.Fprintf(&b, "  - Reason: %s\n", s.Reason)
		}
		b.WriteString("\n")
	}

	return b.String()
}
