package user

import (
	"context"
	"errors"
	"time"

	"cullinary-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		UpdateUser(ctx context.Context, user *entities.User) error
		AddFavorite(ctx context.Context, userID, dishID string) error
		RemoveFavorite(ctx context.Context, userID, dishID string) error
		GetFavoriteDishes(ctx context.Context, userID string, page, limit int) ([]*entities.Dish, int64, error)
		TouchRecentMenu(ctx context.Context, userID string, code string) error
		GetRecentMenuCodes(ctx context.Context, userID string) ([]string, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) AddFavorite(ctx context.Context, userID, dishID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return err
	}
	dishUUID, err := uuid.Parse(dishID)
	if err != nil {
		return err
	}

	var existing entities.UserFavorite
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND dish_id = ?", userUUID, dishUUID).
		First(&existing).Error; err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	favorite := entities.UserFavorite{
		ID:        uuid.New(),
		UserID:    userUUID,
		DishID:    dishUUID,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&favorite).Error
}

func (r *userRepository) RemoveFavorite(ctx context.Context, userID, dishID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND dish_id = ?", userID, dishID).
		Delete(&entities.UserFavorite{}).Error
}

func (r *userRepository) GetFavoriteDishes(ctx context.Context, userID string, page, limit int) ([]*entities.Dish, int64, error) {
	var dishes []*entities.Dish
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Dish{}).
		Joins("JOIN user_favorites ON dishes.id = user_favorites.dish_id").
		Where("user_favorites.user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Joins("JOIN user_favorites ON dishes.id = user_favorites.dish_id").
		Where("user_favorites.user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Order("user_favorites.created_at desc").
		Find(&dishes).Error; err != nil {
		return nil, 0, err
	}

	return dishes, count, nil
}

func (r *userRepository) TouchRecentMenu(ctx context.Context, userID string, code string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return err
	}

	var existing entities.RecentMenu
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND menu_code = ?", userUUID, code).
		First(&existing).Error; err == nil {
		existing.LastUsedAt = time.Now()
		return r.db.WithContext(ctx).Save(&existing).Error
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	recent := entities.RecentMenu{
		ID:         uuid.New(),
		UserID:     userUUID,
		MenuCode:   code,
		LastUsedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&recent).Error
}

func (r *userRepository) GetRecentMenuCodes(ctx context.Context, userID string) ([]string, error) {
	var recents []*entities.RecentMenu
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_used_at desc").
		Limit(10).
		Find(&recents).Error; err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(recents))
	for _, recent := range recents {
		codes = append(codes, recent.MenuCode)
	}
	return codes, nil
}
