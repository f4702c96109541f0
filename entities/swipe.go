package entities

import (
	"time"

	"github.com/google/uuid"
)

// Swipe is a write-once-per-key fact; a re-swipe on the same
// (menu, user, dish) overwrites the prior decision.
type Swipe struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	MenuID    uuid.UUID `gorm:"uniqueIndex:idx_swipe_key" json:"menu_id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_swipe_key" json:"user_id"`
	DishID    uuid.UUID `gorm:"uniqueIndex:idx_swipe_key" json:"dish_id"`
	Liked     bool      `gorm:"index" json:"liked"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`

	Menu *Menu `gorm:"foreignKey:MenuID"`
	User *User `gorm:"foreignKey:UserID"`
	Dish *Dish `gorm:"foreignKey:DishID"`
}
