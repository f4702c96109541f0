package domain

import "errors"

var (
	MessageSuccessSession        = "session created successfully"
	MessageSuccessGetProfile     = "profile retrieved successfully"
	MessageSuccessUpdateProfile  = "profile updated successfully"
	MessageSuccessAddFavorite    = "favorite added successfully"
	MessageSuccessRemoveFavorite = "favorite removed successfully"
	MessageSuccessGetFavorites   = "favorites retrieved successfully"

	MessageFailedSession        = "failed to create session"
	MessageFailedGetProfile     = "failed to retrieve profile"
	MessageFailedUpdateProfile  = "failed to update profile"
	MessageFailedAddFavorite    = "failed to add favorite"
	MessageFailedRemoveFavorite = "failed to remove favorite"
	MessageFailedGetFavorites   = "failed to retrieve favorites"

	ErrUserNotFound = errors.New("user not found")
)

type (
	SessionResponse struct {
		UserID string `json:"user_id"`
		Token  string `json:"token"`
		IsNew  bool   `json:"is_new"`
	}

	UpdateProfileRequest struct {
		DisplayName       *string  `json:"display_name,omitempty" validate:"omitempty,max=64"`
		IsVegetarian      *bool    `json:"is_vegetarian,omitempty"`
		PreferredCuisines []string `json:"preferred_cuisines,omitempty"`
		PreferredProteins []string `json:"preferred_proteins,omitempty"`
		Likes             *string  `json:"likes,omitempty"`
		Avoidances        *string  `json:"avoidances,omitempty"`
		DayRules          *string  `json:"day_rules,omitempty"`
	}

	ProfileResponse struct {
		ID                string   `json:"id"`
		DisplayName       string   `json:"display_name,omitempty"`
		IsVegetarian      bool     `json:"is_vegetarian"`
		PreferredCuisines []string `json:"preferred_cuisines,omitempty"`
		PreferredProteins []string `json:"preferred_proteins,omitempty"`
		Likes             string   `json:"likes,omitempty"`
		Avoidances        string   `json:"avoidances,omitempty"`
		DayRules          string   `json:"day_rules,omitempty"`
		RecentMenus       []string `json:"recent_menus,omitempty"`
	}

	FavoriteRequest struct {
		DishID string `json:"dish_id" validate:"required,uuid"`
	}

	FavoriteListResponse struct {
		Dishes     []DishResponse `json:"dishes"`
		Pagination Pagination     `json:"pagination"`
	}
)
