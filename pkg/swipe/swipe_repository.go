package swipe

import (
	"context"
	"time"

	"cullinary-backend/domain"
	"cullinary-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	SwipeRepository interface {
		UpsertSwipe(ctx context.Context, swipe *entities.Swipe) error
		GetSwipedDishIDs(ctx context.Context, menuID, userID uuid.UUID) ([]uuid.UUID, error)
		// RecordMatchIfUnanimous appends the dish to the menu's match list
		// for the given category when every current participant has liked
		// it. Returns whether the dish is matched after the call.
		RecordMatchIfUnanimous(ctx context.Context, menuID, dishID uuid.UUID, category string) (bool, error)
	}

	swipeRepository struct {
		db *gorm.DB
	}
)

func NewSwipeRepository(db *gorm.DB) SwipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) UpsertSwipe(ctx context.Context, swipe *entities.Swipe) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "menu_id"}, {Name: "user_id"}, {Name: "dish_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"liked":      swipe.Liked,
			"updated_at": time.Now(),
		}),
	}).Create(swipe).Error
}

func (r *swipeRepository) GetSwipedDishIDs(ctx context.Context, menuID, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.Swipe{}).
		Where("menu_id = ? AND user_id = ?", menuID, userID).
		Pluck("dish_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// The count-then-append runs under a FOR UPDATE lock on the menu row so two
// participants liking the same dish at once serialize; the unique
// (menu_id, dish_id) index is the backstop.
func (r *swipeRepository) RecordMatchIfUnanimous(ctx context.Context, menuID, dishID uuid.UUID, category string) (bool, error) {
	matched := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var menu entities.Menu
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", menuID).
			First(&menu).Error; err != nil {
			return err
		}

		var participants int64
		if err := tx.Model(&entities.MenuParticipant{}).
			Where("menu_id = ?", menuID).
			Count(&participants).Error; err != nil {
			return err
		}

		var likes int64
		if err := tx.Model(&entities.Swipe{}).
			Where("menu_id = ? AND dish_id = ? AND liked = ?", menuID, dishID, true).
			Count(&likes).Error; err != nil {
			return err
		}

		if participants == 0 || likes < participants {
			return nil
		}
		matched = true

		var existing int64
		if err := tx.Model(&entities.MenuMatch{}).
			Where("menu_id = ? AND dish_id = ?", menuID, dishID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		var slotCount int64
		if err := tx.Model(&entities.MenuMatch{}).
			Where("menu_id = ? AND category = ?", menuID, category).
			Count(&slotCount).Error; err != nil {
			return err
		}
		if slotCount >= domain.MenuDays {
			matched = false
			return nil
		}

		match := entities.MenuMatch{
			ID:        uuid.New(),
			MenuID:    menuID,
			DishID:    dishID,
			Category:  category,
			Position:  int(slotCount),
			CreatedAt: time.Now(),
		}
		return tx.Create(&match).Error
	})
	if err != nil {
		return false, err
	}
	return matched, nil
}
