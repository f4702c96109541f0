package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"cullinary-backend/domain"
	"cullinary-backend/entities"

	"github.com/google/uuid"
)

var nonVegKeywords = []string{
	"chicken", "mutton", "lamb", "beef", "pork", "fish", "prawn", "shrimp",
	"crab", "egg", "anchovy", "bacon", "ham", "sausage", "squid", "turkey", "duck",
}

var spicyKeywords = []string{
	"chilli", "chili", "chile", "cayenne", "jalapeno", "habanero", "sriracha",
	"pepper flakes", "red pepper", "masala", "vindaloo",
}

var mildKeywords = []string{"sweet", "dessert", "pudding", "custard", "kheer", "halwa"}

var breakfastKeywords = []string{
	"breakfast", "pancake", "waffle", "oat", "porridge", "idli", "dosa",
	"upma", "poha", "paratha", "omelette", "cereal", "toast", "muesli",
}

var snackKeywords = []string{
	"snack", "chaat", "pakora", "samosa", "vada", "cutlet", "fries",
	"chips", "bhajji", "tikki", "roll", "puff", "dessert", "sweet",
}

// LoadCSV parses the recipe dataset into dish records. Malformed rows are
// skipped with a warning; only an unreadable file fails the load.
func LoadCSV(path string) ([]*entities.Dish, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogSource, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogSource, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("%w: missing name column", domain.ErrCatalogSource)
	}

	var dishes []*entities.Dish
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Printf("catalog: skipping malformed row %d: %v", line, err)
			continue
		}

		dish, ok := dishFromRecord(record, cols)
		if !ok {
			log.Printf("catalog: skipping row %d: missing dish name", line)
			continue
		}
		dishes = append(dishes, dish)
	}

	return dishes, nil
}

func dishFromRecord(record []string, cols map[string]int) (*entities.Dish, bool) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := field("name")
	if name == "" {
		return nil, false
	}

	ingredients := field("ingredients")
	description := field("description")
	course := field("course")
	diet := field("diet")
	cuisine := field("cuisine")
	if cuisine == "" {
		cuisine = field("state") // regional datasets label cuisine by state
	}

	prepMinutes := 0
	if v := field("prep_time"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			prepMinutes = n
		}
	}

	dish := &entities.Dish{
		ID:          uuid.New(),
		Name:        name,
		Category:    string(inferCategory(name, course)),
		Preference:  string(inferPreference(name, ingredients, diet)),
		Cuisines:    normalizeCuisines(cuisine),
		Ingredients: ingredients,
		DietaryTags: inferDietaryTags(name, ingredients, diet),
		SpiceLevel:  string(inferSpiceLevel(name, ingredients, field("flavor_profile"))),
		PrepMinutes: prepMinutes,
		Description: description,
		ImageURL:    field("image_url"),
	}
	return dish, true
}

func inferCategory(name, course string) domain.Category {
	haystack := strings.ToLower(course + " " + name)
	for _, kw := range breakfastKeywords {
		if strings.Contains(haystack, kw) {
			return domain.CategoryBreakfast
		}
	}
	for _, kw := range snackKeywords {
		if strings.Contains(haystack, kw) {
			return domain.CategorySnack
		}
	}
	if strings.Contains(haystack, "main course") || strings.Contains(haystack, "dinner") {
		return domain.CategoryDinner
	}
	return domain.CategoryLunch
}

func inferPreference(name, ingredients, diet string) domain.DietPreference {
	if diet != "" {
		if pref, err := domain.ParseDietPreference(diet); err == nil {
			return pref
		}
	}
	haystack := strings.ToLower(name + " " + ingredients)
	for _, kw := range nonVegKeywords {
		if strings.Contains(haystack, kw) {
			return domain.PreferenceNonVeg
		}
	}
	return domain.PreferenceVeg
}

func inferSpiceLevel(name, ingredients, flavor string) domain.SpiceLevel {
	haystack := strings.ToLower(name + " " + ingredients + " " + flavor)
	for _, kw := range spicyKeywords {
		if strings.Contains(haystack, kw) {
			return domain.SpiceSpicy
		}
	}
	for _, kw := range mildKeywords {
		if strings.Contains(haystack, kw) {
			return domain.SpiceMild
		}
	}
	return domain.SpiceMedium
}

func inferDietaryTags(name, ingredients, diet string) string {
	var tags []string
	haystack := strings.ToLower(name + " " + ingredients)
	if inferPreference(name, ingredients, diet) == domain.PreferenceVeg {
		tags = append(tags, "vegetarian")
	}
	if !strings.Contains(haystack, "milk") && !strings.Contains(haystack, "cream") &&
		!strings.Contains(haystack, "butter") && !strings.Contains(haystack, "cheese") &&
		!strings.Contains(haystack, "ghee") && !strings.Contains(haystack, "curd") &&
		!strings.Contains(haystack, "paneer") && !strings.Contains(haystack, "yogurt") {
		tags = append(tags, "dairy-free")
	}
	if !strings.Contains(haystack, "wheat") && !strings.Contains(haystack, "flour") &&
		!strings.Contains(haystack, "bread") && !strings.Contains(haystack, "maida") {
		tags = append(tags, "gluten-free")
	}
	return strings.Join(tags, ",")
}

// normalizeCuisines splits a comma-separated cuisine field, falling back to
// the "Other" sentinel so the list is never empty.
func normalizeCuisines(raw string) string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "-1" {
			continue
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return "Other"
	}
	return strings.Join(out, ",")
}
