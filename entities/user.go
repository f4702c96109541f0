package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DisplayName string    `json:"display_name,omitempty"`

	// Dietary preference profile.
	IsVegetarian      bool   `json:"is_vegetarian"`
	PreferredCuisines string `gorm:"type:text" json:"preferred_cuisines,omitempty"` // comma-separated
	PreferredProteins string `gorm:"type:text" json:"preferred_proteins,omitempty"` // comma-separated
	Likes             string `gorm:"type:text" json:"likes,omitempty"`
	Avoidances        string `gorm:"type:text" json:"avoidances,omitempty"`
	DayRules          string `gorm:"type:text" json:"day_rules,omitempty"`

	Favorites   []*UserFavorite `gorm:"foreignKey:UserID" json:"-"`
	RecentMenus []*RecentMenu   `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

type UserFavorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_user_favorite_dish" json:"user_id"`
	DishID    uuid.UUID `gorm:"uniqueIndex:idx_user_favorite_dish" json:"dish_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User *User `gorm:"foreignKey:UserID"`
	Dish *Dish `gorm:"foreignKey:DishID"`
}

// RecentMenu tracks codes a user has created or joined, for the home-screen
// "recent menus" list.
type RecentMenu struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID `gorm:"uniqueIndex:idx_user_recent_menu" json:"user_id"`
	MenuCode   string    `gorm:"uniqueIndex:idx_user_recent_menu" json:"menu_code"`
	LastUsedAt time.Time `gorm:"type:timestamp" json:"last_used_at"`

	User *User `gorm:"foreignKey:UserID"`
}
