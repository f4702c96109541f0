package user

import (
	"context"
	"strings"

	"cullinary-backend/domain"
	"cullinary-backend/entities"
	"cullinary-backend/pkg/catalog"
	"cullinary-backend/pkg/jwt"

	"github.com/google/uuid"
)

type (
	UserService interface {
		CreateSession(ctx context.Context, existingToken string) (domain.SessionResponse, error)
		Me(ctx context.Context, userID string) (domain.ProfileResponse, error)
		UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) (domain.ProfileResponse, error)
		AddFavorite(ctx context.Context, req domain.FavoriteRequest, userID string) error
		RemoveFavorite(ctx context.Context, dishID string, userID string) error
		GetFavorites(ctx context.Context, page, limit int, userID string) (domain.FavoriteListResponse, error)
	}

	userService struct {
		userRepository    UserRepository
		catalogRepository catalog.CatalogRepository
		jwtService        jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, catalogRepository catalog.CatalogRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository:    userRepository,
		catalogRepository: catalogRepository,
		jwtService:        jwtService,
	}
}

// CreateSession is idempotent: a valid token for an existing user returns
// that identity unchanged, anything else mints a fresh participant.
func (s *userService) CreateSession(ctx context.Context, existingToken string) (domain.SessionResponse, error) {
	if existingToken != "" {
		if userID, err := s.jwtService.GetUserIDByToken(existingToken); err == nil {
			existing, err := s.userRepository.GetUserByID(ctx, userID)
			if err != nil {
				return domain.SessionResponse{}, err
			}
			if existing != nil {
				return domain.SessionResponse{
					UserID: existing.ID.String(),
					Token:  existingToken,
					IsNew:  false,
				}, nil
			}
		}
	}

	user := &entities.User{ID: uuid.New()}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.SessionResponse{}, err
	}

	return domain.SessionResponse{
		UserID: user.ID.String(),
		Token:  s.jwtService.GenerateTokenUser(user.ID.String()),
		IsNew:  true,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.ProfileResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.ProfileResponse{}, err
	}
	if user == nil {
		return domain.ProfileResponse{}, domain.ErrUserNotFound
	}

	recents, err := s.userRepository.GetRecentMenuCodes(ctx, userID)
	if err != nil {
		return domain.ProfileResponse{}, err
	}

	return toProfileResponse(user, recents), nil
}

func (s *userService) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) (domain.ProfileResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.ProfileResponse{}, err
	}
	if user == nil {
		return domain.ProfileResponse{}, domain.ErrUserNotFound
	}

	if req.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.IsVegetarian != nil {
		user.IsVegetarian = *req.IsVegetarian
	}
	if req.PreferredCuisines != nil {
		user.PreferredCuisines = strings.Join(req.PreferredCuisines, ",")
	}
	if req.PreferredProteins != nil {
		user.PreferredProteins = strings.Join(req.PreferredProteins, ",")
	}
	if req.Likes != nil {
		user.Likes = *req.Likes
	}
	if req.Avoidances != nil {
		user.Avoidances = *req.Avoidances
	}
	if req.DayRules != nil {
		user.DayRules = *req.DayRules
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.ProfileResponse{}, err
	}

	recents, err := s.userRepository.GetRecentMenuCodes(ctx, userID)
	if err != nil {
		return domain.ProfileResponse{}, err
	}
	return toProfileResponse(user, recents), nil
}

func (s *userService) AddFavorite(ctx context.Context, req domain.FavoriteRequest, userID string) error {
	dish, err := s.catalogRepository.GetDishByID(ctx, req.DishID)
	if err != nil {
		return err
	}
	if dish == nil {
		return domain.ErrDishNotFound
	}
	return s.userRepository.AddFavorite(ctx, userID, req.DishID)
}

func (s *userService) RemoveFavorite(ctx context.Context, dishID string, userID string) error {
	return s.userRepository.RemoveFavorite(ctx, userID, dishID)
}

func (s *userService) GetFavorites(ctx context.Context, page, limit int, userID string) (domain.FavoriteListResponse, error) {
	dishes, count, err := s.userRepository.GetFavoriteDishes(ctx, userID, page, limit)
	if err != nil {
		return domain.FavoriteListResponse{}, err
	}

	responses := make([]domain.DishResponse, 0, len(dishes))
	for _, dish := range dishes {
		responses = append(responses, domain.DishResponse{
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
		})
	}

	totalPages := (count + int64(limit) - 1) / int64(limit)
	return domain.FavoriteListResponse{
		Dishes: responses,
		Pagination: domain.Pagination{
			Total:      count,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
			HasMore:    int64(page) < totalPages,
		},
	}, nil
}

func toProfileResponse(user *entities.User, recents []string) domain.ProfileResponse {
	return domain.ProfileResponse{
		ID:                user.ID.String(),
		DisplayName:       user.DisplayName,
		IsVegetarian:      user.IsVegetarian,
		PreferredCuisines: splitList(user.PreferredCuisines),
		PreferredProteins: splitList(user.PreferredProteins),
		Likes:             user.Likes,
		Avoidances:        user.Avoidances,
		DayRules:          user.DayRules,
		RecentMenus:       recents,
	}
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
