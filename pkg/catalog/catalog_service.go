package catalog

import (
	"context"
	"mime/multipart"
	"strings"

	"cullinary-backend/domain"
	"cullinary-backend/entities"
	"cullinary-backend/internal/utils/storage"

	"github.com/google/uuid"
)

type (
	CatalogService interface {
		ListDishes(ctx context.Context, filter domain.DishFilter, page, limit int) (domain.DishListResponse, error)
		ListEligible(ctx context.Context, category domain.Category, preference domain.DietPreference, excluded map[uuid.UUID]struct{}, page, limit int) ([]domain.DishResponse, domain.Pagination, error)
		GetDishByID(ctx context.Context, id string) (domain.DishResponse, error)
		UploadDishImage(ctx context.Context, id string, file *multipart.FileHeader) (string, error)
		InvalidateCache()
	}

	catalogService struct {
		catalogRepository CatalogRepository
		cache             *Cache
		s3                storage.AwsS3
	}
)

func NewCatalogService(catalogRepository CatalogRepository, cache *Cache, s3 storage.AwsS3) CatalogService {
	return &catalogService{
		catalogRepository: catalogRepository,
		cache:             cache,
		s3:                s3,
	}
}

// getCatalog reads through the injected cache, filling it lazily.
func (s *catalogService) getCatalog(ctx context.Context) ([]*entities.Dish, error) {
	if dishes, ok := s.cache.Get(); ok {
		return dishes, nil
	}

	dishes, err := s.catalogRepository.GetAllDishes(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(dishes)
	return dishes, nil
}

func (s *catalogService) ListDishes(ctx context.Context, filter domain.DishFilter, page, limit int) (domain.DishListResponse, error) {
	dishes, err := s.getCatalog(ctx)
	if err != nil {
		return domain.DishListResponse{}, err
	}

	var filtered []*entities.Dish
	for _, dish := range dishes {
		if matchesFilter(dish, filter) {
			filtered = append(filtered, dish)
		}
	}

	pageDishes, pagination := paginate(filtered, page, limit)
	return domain.DishListResponse{
		Dishes:     toDishResponses(pageDishes),
		Pagination: pagination,
	}, nil
}

func (s *catalogService) ListEligible(ctx context.Context, category domain.Category, preference domain.DietPreference, excluded map[uuid.UUID]struct{}, page, limit int) ([]domain.DishResponse, domain.Pagination, error) {
	dishes, err := s.getCatalog(ctx)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	filter := domain.DishFilter{Category: category, Preference: preference}
	var eligible []*entities.Dish
	for _, dish := range dishes {
		if !matchesFilter(dish, filter) {
			continue
		}
		if _, swiped := excluded[dish.ID]; swiped {
			continue
		}
		eligible = append(eligible, dish)
	}

	pageDishes, pagination := paginate(eligible, page, limit)
	return toDishResponses(pageDishes), pagination, nil
}

func (s *catalogService) GetDishByID(ctx context.Context, id string) (domain.DishResponse, error) {
	// Compare uuid values, not raw strings: postgres folds uuid case on the
	// cold path and the warm path must agree with it.
	dishID, err := uuid.Parse(id)
	if err != nil {
		return domain.DishResponse{}, domain.ErrDishNotFound
	}

	// Served from the cache when warm so detail reads stay consistent with
	// list reads.
	if dishes, ok := s.cache.Get(); ok {
		for _, dish := range dishes {
			if dish.ID == dishID {
				return toDishResponse(dish), nil
			}
		}
		return domain.DishResponse{}, domain.ErrDishNotFound
	}

	dish, err := s.catalogRepository.GetDishByID(ctx, dishID.String())
	if err != nil {
		return domain.DishResponse{}, err
	}
	if dish == nil {
		return domain.DishResponse{}, domain.ErrDishNotFound
	}
	return toDishResponse(dish), nil
}

func (s *catalogService) UploadDishImage(ctx context.Context, id string, file *multipart.FileHeader) (string, error) {
	dish, err := s.catalogRepository.GetDishByID(ctx, id)
	if err != nil {
		return "", err
	}
	if dish == nil {
		return "", domain.ErrDishNotFound
	}

	url, err := s.s3.UploadFile(ctx, file, "dish-images")
	if err != nil {
		return "", err
	}

	if err := s.catalogRepository.UpdateDishImage(ctx, id, url); err != nil {
		return "", err
	}
	s.cache.Invalidate()
	return url, nil
}

func (s *catalogService) InvalidateCache() {
	s.cache.Invalidate()
}

func matchesFilter(dish *entities.Dish, filter domain.DishFilter) bool {
	if filter.Category != "" && dish.Category != string(filter.Category) {
		return false
	}
	if filter.Preference != "" && dish.Preference != string(filter.Preference) {
		return false
	}
	if filter.Cuisine != "" {
		found := false
		for _, cuisine := range splitList(dish.Cuisines) {
			if strings.EqualFold(cuisine, filter.Cuisine) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Query != "" {
		query := strings.ToLower(filter.Query)
		haystack := strings.ToLower(
			dish.Name + " " + dish.Ingredients + " " + dish.Cuisines + " " + dish.Description,
		)
		if !strings.Contains(haystack, query) {
			return false
		}
	}
	return true
}

// paginate slices a filtered catalog; out-of-range pages yield an empty
// page rather than an error.
func paginate(dishes []*entities.Dish, page, limit int) ([]*entities.Dish, domain.Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	total := int64(len(dishes))
	totalPages := (total + int64(limit) - 1) / int64(limit)

	start := (page - 1) * limit
	end := start + limit
	if start > len(dishes) {
		start = len(dishes)
	}
	if end > len(dishes) {
		end = len(dishes)
	}

	return dishes[start:end], domain.Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasMore:    int64(page) < totalPages,
	}
}

func toDishResponse(dish *entities.Dish) domain.DishResponse {
	return domain.DishResponse{
		ID:          dish.ID.String(),
		Name:        dish.Name,
		Category:    dish.Category,
		Preference:  dish.Preference,
		Cuisines:    splitList(dish.Cuisines),
		Ingredients: splitList(dish.Ingredients),
		DietaryTags: splitList(dish.DietaryTags),
		SpiceLevel:  dish.SpiceLevel,
		PrepMinutes: dish.PrepMinutes,
		Description: dish.Description,
		ImageURL:    dish.ImageURL,
	}
}

func toDishResponses(dishes []*entities.Dish) []domain.DishResponse {
	out := make([]domain.DishResponse, 0, len(dishes))
	for _, dish := range dishes {
		out = append(out, toDishResponse(dish))
	}
	return out
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
