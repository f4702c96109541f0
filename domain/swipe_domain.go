package domain

import "errors"

var (
	MessageSuccessGetFeed = "feed retrieved successfully"
	MessageSuccessSwipe   = "swipe recorded successfully"
	MessageFailedGetFeed  = "failed to retrieve feed"
	MessageFailedSwipe    = "failed to record swipe"

	ErrNotParticipant  = errors.New("user is not a participant of this menu")
	ErrMenuNotSwipable = errors.New("menu is not accepting swipes")
)

type (
	FeedRequest struct {
		Slot string `json:"slot" validate:"required"`
	}

	FeedResponse struct {
		Dishes    []DishResponse `json:"dishes"`
		Exhausted bool           `json:"exhausted"` // catalog cycled for this filter
	}

	SwipeRequest struct {
		DishID string `json:"dish_id" validate:"required,uuid"`
		Liked  *bool  `json:"liked" validate:"required"`
	}

	SwipeResponse struct {
		DishID   string `json:"dish_id"`
		Liked    bool   `json:"liked"`
		Matched  bool   `json:"matched"`
		Category string `json:"category,omitempty"` // slot the match was filed under
	}
)
