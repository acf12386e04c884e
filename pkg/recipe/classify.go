package recipe

import "strings"

// Classification heuristics. These are deliberately plain keyword tables:
// they run offline, cost nothing, and are easy to audit and extend.

var breakfastKeywords = []string{
	"breakfast", "pancake", "waffle", "oatmeal", "egg", "bacon",
	"french toast", "muffin", "smoothie", "cereal", "granola",
	"omelet", "frittata", "hash brown",
}

var dessertKeywords = []string{
	"cake", "cookie", "brownie", "pie", "ice cream", "dessert",
	"chocolate", "pudding", "cheesecake", "tart", "sweet", "candy",
	"frosting", "cupcake",
}

var snackKeywords = []string{"snack", "dip", "appetizer", "chip", "popcorn", "bite"}

var cuisineIndicators = map[string][]string{
	"Mexican": {
		"taco", "burrito", "enchilada", "salsa", "tortilla", "jalapeño",
		"cilantro", "cumin", "mexican", "quesadilla", "fajita",
	},
	"Italian": {
		"pasta", "spaghetti", "lasagna", "risotto", "parmesan",
		"mozzarella", "marinara", "pesto", "italian", "gnocchi",
	},
	"Chinese": {
		"soy sauce", "stir fry", "stir-fry", "wok", "hoisin", "szechuan",
		"chinese", "lo mein", "fried rice", "dumpling",
	},
	"Japanese": {
		"teriyaki", "miso", "sushi", "ramen", "japanese", "tempura", "udon",
	},
	"Indian": {
		"curry", "masala", "tikka", "garam", "naan", "indian", "tandoori",
		"turmeric", "dal",
	},
	"Thai": {
		"thai", "pad thai", "coconut milk", "lemongrass", "fish sauce",
		"green curry", "red curry",
	},
	"Mediterranean": {
		"hummus", "falafel", "tahini", "mediterranean", "couscous",
		"olive", "feta",
	},
	"Korean": {
		"kimchi", "gochujang", "korean", "bulgogi", "bibimbap",
	},
	"Greek": {
		"greek", "tzatziki", "gyro", "souvlaki", "moussaka",
	},
	"French": {
		"french", "ratatouille", "coq au vin", "béchamel", "crêpe", "quiche",
	},
	"Vietnamese": {
		"pho", "banh mi", "vietnamese", "nuoc cham",
	},
	"American": {
		"burger", "bbq", "barbecue", "mac and cheese", "meatloaf",
		"fried chicken", "cornbread",
	},
}

// EstimateMealType guesses the meal type from the recipe name and
// ingredients: Breakfast, Dessert, Snack, or Dinner as the default for main
// dishes.
func EstimateMealType(name string, ingredients []string) string {
	nameLower := strings.ToLower(name)
	ingredientsText := strings.ToLower(strings.Join(ingredients, " "))
	if len(ingredientsText) > 200 {
		ingredientsText = ingredientsText[:200]
	}

	for _, kw := range breakfastKeywords {
		if strings.Contains(nameLower, kw) || strings.Contains(ingredientsText, kw) {
			return "Breakfast"
		}
	}
	for _, kw := range dessertKeywords {
		if strings.Contains(nameLower, kw) {
			return "Dessert"
		}
	}
	for _, kw := range snackKeywords {
		if strings.Contains(nameLower, kw) {
			return "Snack"
		}
	}
	return "Dinner"
}

// EstimateCuisine guesses the cuisine from the recipe name and ingredients.
// Returns the cuisine with the most keyword hits, or empty when nothing
// matches.
func EstimateCuisine(name string, ingredients []string) string {
	combined := strings.ToLower(name) + " " + strings.ToLower(strings.Join(ingredients, " "))

	best := ""
	bestHits := 0
	for cuisine, keywords := range cuisineIndicators {
		hits := 0
		for _, kw := range keywords {
			if strings.Contains(combined, kw) {
				hits++
			}
		}
		if hits > bestHits || (hits == bestHits && hits > 0 && cuisine < best) {
			best = cuisine
			bestHits = hits
		}
	}
	if bestHits == 0 {
		return ""
	}
	return best
}

// EstimateDifficulty rates a recipe Easy, Medium, or Hard from its total
// time and step count.
func EstimateDifficulty(prepMinutes, cookMinutes, numSteps int) string {
	totalTime := prepMinutes + cookMinutes

	switch {
	case totalTime <= 30 && numSteps <= 6:
		return "Easy"
	case totalTime <= 60 && numSteps <= 12:
		return "Medium"
	default:
		return "Hard"
	}
}
