package entities

import (
	"time"

	"github.com/google/uuid"
)

type Menu struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Code         string    `gorm:"uniqueIndex;size:6" json:"code"` // stored upper-case
	StartDate    time.Time `gorm:"type:date" json:"start_date"`
	EndDate      time.Time `gorm:"type:date" json:"end_date"`
	Status       string    `gorm:"index" json:"status"` // "pending", "active", "completed"
	PasscodeHash string    `json:"-"`

	Participants []*MenuParticipant `gorm:"foreignKey:MenuID" json:"participants,omitempty"`
	Matches      []*MenuMatch       `gorm:"foreignKey:MenuID" json:"matches,omitempty"`
	Timestamp
}

type MenuParticipant struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	MenuID   uuid.UUID `gorm:"uniqueIndex:idx_menu_participant" json:"menu_id"`
	UserID   uuid.UUID `gorm:"uniqueIndex:idx_menu_participant" json:"user_id"`
	Position int       `json:"position"` // join order, creator is 0
	JoinedAt time.Time `gorm:"type:timestamp" json:"joined_at"`

	Menu *Menu `gorm:"foreignKey:MenuID"`
	User *User `gorm:"foreignKey:UserID"`
}

// MenuMatch is one cell of the weekly grid. The unique (menu_id, dish_id)
// index makes concurrent appends of the same dish collapse to one row.
type MenuMatch struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	MenuID    uuid.UUID `gorm:"uniqueIndex:idx_menu_match_dish;index:idx_menu_match_slot" json:"menu_id"`
	DishID    uuid.UUID `gorm:"uniqueIndex:idx_menu_match_dish" json:"dish_id"`
	Category  string    `gorm:"index:idx_menu_match_slot" json:"category"`
	Position  int       `json:"position"` // 0..6 within the slot
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	Menu *Menu `gorm:"foreignKey:MenuID"`
	Dish *Dish `gorm:"foreignKey:DishID"`
}
