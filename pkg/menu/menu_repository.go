package menu

import (
	"context"
	"errors"

	"cullinary-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MenuRepository interface {
		CreateMenu(ctx context.Context, menu *entities.Menu) error
		GetMenuByCode(ctx context.Context, code string) (*entities.Menu, error)
		CodeInUse(ctx context.Context, code string) (bool, error)
		AddParticipant(ctx context.Context, participant *entities.MenuParticipant) error
		UpdateMenuStatus(ctx context.Context, menuID uuid.UUID, status string) error
	}

	menuRepository struct {
		db *gorm.DB
	}
)

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) CreateMenu(ctx context.Context, menu *entities.Menu) error {
	return r.db.WithContext(ctx).Create(menu).Error
}

func (r *menuRepository) GetMenuByCode(ctx context.Context, code string) (*entities.Menu, error) {
	var menu entities.Menu
	if err := r.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("menu_participants.position asc")
		}).
		Preload("Participants.User").
		Preload("Matches", func(db *gorm.DB) *gorm.DB {
			return db.Order("menu_matches.position asc")
		}).
		Preload("Matches.Dish").
		Where("code = ?", code).
		First(&menu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &menu, nil
}

// CodeInUse considers menus of every status: code carries a global unique
// index, so a completed menu keeps its code reserved.
func (r *menuRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Menu{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *menuRepository) AddParticipant(ctx context.Context, participant *entities.MenuParticipant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

func (r *menuRepository) UpdateMenuStatus(ctx context.Context, menuID uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Menu{}).
		Where("id = ?", menuID).
		Update("status", status).Error
}
