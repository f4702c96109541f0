package entities

import (
	"github.com/google/uuid"
)

// Dish is read-only at runtime; rows are written only by the catalog seeder.
type Dish struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name        string    `gorm:"index" json:"name"`
	Category    string    `gorm:"index" json:"category"`   // "Breakfast", "Lunch", "Dinner", "Snack"
	Preference  string    `gorm:"index" json:"preference"` // "Veg", "Non-Veg"
	Cuisines    string    `gorm:"type:text" json:"cuisines"`    // comma-separated, never empty ("Other" sentinel)
	Ingredients string    `gorm:"type:text" json:"ingredients"` // comma-separated
	DietaryTags string    `gorm:"type:text" json:"dietary_tags"`
	SpiceLevel  string    `json:"spice_level"` // "Mild", "Medium", "Spicy"
	PrepMinutes int       `json:"prep_minutes,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`

	Timestamp
}
