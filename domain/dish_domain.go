package domain

import (
	"errors"
	"strings"
)

var (
	MessageSuccessGetDishes     = "dishes retrieved successfully"
	MessageSuccessGetDishDetail = "dish retrieved successfully"
	MessageSuccessUploadImage   = "dish image uploaded successfully"
	MessageFailedGetDishes      = "failed to retrieve dishes"
	MessageFailedGetDishDetail  = "failed to retrieve dish"
	MessageFailedUploadImage    = "failed to upload dish image"

	ErrDishNotFound  = errors.New("dish not found")
	ErrInvalidFilter = errors.New("invalid filter value")
	ErrCatalogSource = errors.New("dish catalog source unreadable")
	ErrInvalidImage  = errors.New("invalid image format")
)

// Category is a closed meal-slot enum. Filters are validated at the HTTP
// boundary; an unknown value is an ErrInvalidFilter, never a pass-through.
type Category string

const (
	CategoryBreakfast Category = "Breakfast"
	CategoryLunch     Category = "Lunch"
	CategoryDinner    Category = "Dinner"
	CategorySnack     Category = "Snack"
)

func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "breakfast":
		return CategoryBreakfast, nil
	case "lunch":
		return CategoryLunch, nil
	case "dinner":
		return CategoryDinner, nil
	case "snack":
		return CategorySnack, nil
	default:
		return "", ErrInvalidFilter
	}
}

func Categories() []Category {
	return []Category{CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnack}
}

type DietPreference string

const (
	PreferenceVeg    DietPreference = "Veg"
	PreferenceNonVeg DietPreference = "Non-Veg"
)

func ParseDietPreference(s string) (DietPreference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "veg", "vegetarian":
		return PreferenceVeg, nil
	case "non-veg", "nonveg", "non veg":
		return PreferenceNonVeg, nil
	default:
		return "", ErrInvalidFilter
	}
}

type SpiceLevel string

const (
	SpiceMild   SpiceLevel = "Mild"
	SpiceMedium SpiceLevel = "Medium"
	SpiceSpicy  SpiceLevel = "Spicy"
)

func ParseSpiceLevel(s string) (SpiceLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mild":
		return SpiceMild, nil
	case "medium":
		return SpiceMedium, nil
	case "spicy", "hot":
		return SpiceSpicy, nil
	default:
		return "", ErrInvalidFilter
	}
}

type (
	// DishFilter is the conjunction of its non-zero fields.
	DishFilter struct {
		Category   Category
		Preference DietPreference
		Cuisine    string
		Query      string
	}

	DishResponse struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Category    string   `json:"category"`
		Preference  string   `json:"preference"`
		Cuisines    []string `json:"cuisines"`
		Ingredients []string `json:"ingredients"`
		DietaryTags []string `json:"dietary_tags"`
		SpiceLevel  string   `json:"spice_level"`
		PrepMinutes int      `json:"prep_minutes,omitempty"`
		Description string   `json:"description,omitempty"`
		ImageURL    string   `json:"image_url,omitempty"`
	}

	Pagination struct {
		Total      int64 `json:"total"`
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		TotalPages int64 `json:"total_pages"`
		HasMore    bool  `json:"has_more"`
	}

	DishListResponse struct {
		Dishes     []DishResponse `json:"dishes"`
		Pagination Pagination     `json:"pagination"`
	}
)
