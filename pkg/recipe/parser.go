package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const fetchTimeout = 30 * time.Second

// ParseURL fetches a recipe page and extracts its structured recipe data.
func ParseURL(ctx context.Context, rawURL string) (*Recipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid recipe URL: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", rawURL, resp.StatusCode)
	}

	return ParseDocument(resp.Body, rawURL)
}

// ParseDocument extracts a recipe from an HTML document by locating its
// schema.org/Recipe JSON-LD block.
func ParseDocument(r io.Reader, sourceURL string) (*Recipe, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, block := range jsonLDBlocks(doc) {
		if raw := findRecipeNode(block); raw != nil {
			return buildRecipe(raw, sourceURL)
		}
	}
	return nil, fmt.Errorf("no schema.org/Recipe data found at %s", sourceURL)
}

// jsonLDBlocks collects the text of every <script type="application/ld+json">
// element in the document.
func jsonLDBlocks(doc *html.Node) []string {
	var blocks []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" {
			for _, attr := range n.Attr {
				if attr.Key == "type" && attr.Val == "application/ld+json" {
					if n.FirstChild != nil {
						blocks = append(blocks, n.FirstChild.Data)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return blocks
}

// findRecipeNode digs through a JSON-LD block for an object whose @type is
// (or includes) "Recipe". Handles top-level objects, arrays, and @graph
// containers.
func findRecipeNode(block string) map[string]interface{} {
	var decoded interface{}
	if err := json.Unmarshal([]byte(block), &decoded); err != nil {
		return nil
	}
	return searchRecipe(decoded)
}

func searchRecipe(node interface{}) map[string]interface{} {
	switch v := node.(type) {
	case map[string]interface{}:
		if isRecipeType(v["@type"]) {
			return v
		}
		if graph, ok := v["@graph"]; ok {
			return searchRecipe(graph)
		}
	case []interface{}:
		for _, item := range v {
			if found := searchRecipe(item); found != nil {
				return found
			}
		}
	}
	return nil
}

func isRecipeType(t interface{}) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

// buildRecipe maps a schema.org/Recipe object onto the Recipe model and
// fills in the estimated classification fields.
func buildRecipe(raw map[string]interface{}, sourceURL string) (*Recipe, error) {
	r := &Recipe{
		Name:        jsonString(raw["name"]),
		Description: jsonString(raw["description"]),
		SourceURL:   sourceURL,
		SourceName:  SourceNameFromURL(sourceURL),
		Author:      authorName(raw["author"]),
		ImageURL:    imageURL(raw["image"]),
	}
	if r.Name == "" {
		return nil, fmt.Errorf("recipe data at %s has no name", sourceURL)
	}

	r.IngredientsRaw = jsonStringSlice(raw["recipeIngredient"])
	for _, line := range r.IngredientsRaw {
		r.Ingredients = append(r.Ingredients, Ingredient{Name: line, RawText: line})
	}

	r.Instructions = instructionSteps(raw["recipeInstructions"])

	r.PrepTimeMinutes = parseISODuration(jsonString(raw["prepTime"]))
	r.CookTimeMinutes = parseISODuration(jsonString(raw["cookTime"]))
	r.TotalTimeMinutes = parseISODuration(jsonString(raw["totalTime"]))
	r.Servings = parseServings(raw["recipeYield"])

	if cuisines := jsonStringSlice(raw["recipeCuisine"]); len(cuisines) > 0 {
		r.Cuisine = cuisines[0]
	}
	if n := parseNutrition(raw["nutrition"]); n != nil {
		r.Nutrition = n
	}
	r.Tags = jsonStringSlice(raw["keywords"])

	// Fill classification gaps heuristically.
	if r.MealType == "" {
		r.MealType = EstimateMealType(r.Name, r.IngredientsRaw)
	}
	if r.Cuisine == "" {
		r.Cuisine = EstimateCuisine(r.Name, r.IngredientsRaw)
	}
	r.Difficulty = EstimateDifficulty(r.PrepTimeMinutes, r.CookTimeMinutes, len(r.Instructions))

	return r, nil
}

// SourceNameFromURL derives a display name from a recipe URL's domain,
// e.g. "https://www.budgetbytes.com/x" -> "Budgetbytes".
func SourceNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	parts := strings.Split(host, ".")
	if len(parts) == 0 || parts[0] == "" {
		return ""
	}
	name := parts[0]
	return strings.ToUpper(name[:1]) + name[1:]
}

func jsonString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func jsonStringSlice(v interface{}) []string {
	switch val := v.(type) {
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return nil
		}
		// Keywords are often a single comma-separated string.
		if strings.Contains(trimmed, ",") {
			var out []string
			for _, part := range strings.Split(trimmed, ",") {
				if p := strings.TrimSpace(part); p != "" {
					out = append(out, p)
				}
			}
			return out
		}
		return []string{trimmed}
	case []interface{}:
		var out []string
		for _, item := range val {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return nil
}

// instructionSteps flattens recipeInstructions, which may be plain strings,
// HowToStep objects, or HowToSection groups of steps.
func instructionSteps(v interface{}) []string {
	var steps []string

	var collect func(interface{})
	collect = func(node interface{}) {
		switch val := node.(type) {
		case string:
			if s := strings.TrimSpace(val); s != "" {
				steps = append(steps, s)
			}
		case []interface{}:
			for _, item := range val {
				collect(item)
			}
		case map[string]interface{}:
			if items, ok := val["itemListElement"]; ok {
				collect(items)
				return
			}
			if text := jsonString(val["text"]); text != "" {
				steps = append(steps, text)
			}
		}
	}
	collect(v)
	return steps
}

var isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?`)

// parseISODuration converts an ISO 8601 duration like "PT1H30M" to minutes.
// Unparseable input yields 0.
func parseISODuration(s string) int {
	if s == "" {
		return 0
	}
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	days, _ := strconv.Atoi(m[1])
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	return days*24*60 + hours*60 + minutes
}

var leadingIntRe = regexp.MustCompile(`\d+`)

// parseServings reads recipeYield, which may be a number, a string like
// "6 servings", or a list of such strings.
func parseServings(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		if m := leadingIntRe.FindString(val); m != "" {
			n, _ := strconv.Atoi(m)
			return n
		}
	case []interface{}:
		for _, item := range val {
			if n := parseServings(item); n > 0 {
				return n
			}
		}
	}
	return 0
}

var numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

func parseNutrition(v interface{}) *Nutrition {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}

	num := func(key string) *float64 {
		s := jsonString(m[key])
		if s == "" {
			return nil
		}
		match := numberRe.FindString(s)
		if match == "" {
			return nil
		}
		f, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return nil
		}
		return &f
	}

	n := &Nutrition{
		ProteinG: num("proteinContent"),
		CarbsG:   num("carbohydrateContent"),
		FatG:     num("fatContent"),
		FiberG:   num("fiberContent"),
		SodiumMG: num("sodiumContent"),
	}
	if cal := num("calories"); cal != nil {
		c := int(*cal)
		n.Calories = &c
	}

	if n.Calories == nil && n.ProteinG == nil && n.CarbsG == nil &&
		n.FatG == nil && n.FiberG == nil && n.SodiumMG == nil {
		return nil
	}
	return n
}

func authorName(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]interface{}:
		return jsonString(val["name"])
	case []interface{}:
		for _, item := range val {
			if name := authorName(item); name != "" {
				return name
			}
		}
	}
	return ""
}

func imageURL(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]interface{}:
		return jsonString(val["url"])
	case []interface{}:
		for _, item := range val {
			if u := imageURL(item); u != "" {
				return u
			}
		}
	}
	return ""
}
