package catalog

import (
	"context"
	"errors"

	"cullinary-backend/entities"

	"gorm.io/gorm"
)

type (
	CatalogRepository interface {
		GetAllDishes(ctx context.Context) ([]*entities.Dish, error)
		GetDishByID(ctx context.Context, id string) (*entities.Dish, error)
		UpdateDishImage(ctx context.Context, id string, imageURL string) error
		ReplaceCatalog(ctx context.Context, dishes []*entities.Dish) error
	}

	catalogRepository struct {
		db *gorm.DB
	}
)

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetAllDishes(ctx context.Context) ([]*entities.Dish, error) {
	var dishes []*entities.Dish
	if err := r.db.WithContext(ctx).
		Order("created_at asc, name asc").
		Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

func (r *catalogRepository) GetDishByID(ctx context.Context, id string) (*entities.Dish, error) {
	var dish entities.Dish
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&dish).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dish, nil
}

func (r *catalogRepository) UpdateDishImage(ctx context.Context, id string, imageURL string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Dish{}).
		Where("id = ?", id).
		Update("image_url", imageURL).Error
}

// ReplaceCatalog is used only by the seed command.
func (r *catalogRepository) ReplaceCatalog(ctx context.Context, dishes []*entities.Dish) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entities.Dish{}).Error; err != nil {
			return err
		}
		if len(dishes) == 0 {
			return nil
		}
		return tx.CreateInBatches(dishes, 200).Error
	})
}
