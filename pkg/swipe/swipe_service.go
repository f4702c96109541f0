package swipe

import (
	"context"
	"time"

	"cullinary-backend/domain"
	"cullinary-backend/entities"
	"cullinary-backend/pkg/catalog"
	"cullinary-backend/pkg/menu"
	"cullinary-backend/pkg/user"

	"github.com/google/uuid"
)

// FeedBatchSize is the page size used when assembling a swipe feed.
const FeedBatchSize = 30

type (
	SwipeService interface {
		GetFeed(ctx context.Context, code string, slot string, userID string) (domain.FeedResponse, error)
		ProcessSwipe(ctx context.Context, code string, req domain.SwipeRequest, userID string) (domain.SwipeResponse, error)
	}

	swipeService struct {
		swipeRepository SwipeRepository
		menuRepository  menu.MenuRepository
		userRepository  user.UserRepository
		catalogService  catalog.CatalogService
		sessions        *sessionTracker
	}
)

func NewSwipeService(
	swipeRepository SwipeRepository,
	menuRepository menu.MenuRepository,
	userRepository user.UserRepository,
	catalogService catalog.CatalogService,
) SwipeService {
	return &swipeService{
		swipeRepository: swipeRepository,
		menuRepository:  menuRepository,
		userRepository:  userRepository,
		catalogService:  catalogService,
		sessions:        newSessionTracker(),
	}
}

func (s *swipeService) GetFeed(ctx context.Context, code string, slot string, userID string) (domain.FeedResponse, error) {
	category, err := domain.ParseCategory(slot)
	if err != nil {
		return domain.FeedResponse{}, err
	}

	menuEntity, userUUID, err := s.requireParticipant(ctx, code, userID)
	if err != nil {
		return domain.FeedResponse{}, err
	}
	if err := s.requireSwipable(menuEntity); err != nil {
		return domain.FeedResponse{}, err
	}

	preference := domain.DietPreference("")
	if profile, err := s.userRepository.GetUserByID(ctx, userID); err != nil {
		return domain.FeedResponse{}, err
	} else if profile != nil && profile.IsVegetarian {
		preference = domain.PreferenceVeg
	}

	excluded, err := s.exclusionSet(ctx, menuEntity.ID, userUUID)
	if err != nil {
		return domain.FeedResponse{}, err
	}

	// Serialize per (menu, user, slot) only; catalog reads for one feed must
	// not block every other participant's.
	sess := s.sessions.get(sessionKey{menuEntity.ID, userUUID, category})
	sess.mu.Lock()
	defer sess.mu.Unlock()

	return s.assembleFeed(ctx, sess, category, preference, excluded)
}

// assembleFeed walks catalog pages until it finds dishes the participant
// has neither swiped nor been dealt this session. When the catalog is
// exhausted for the filter, delivered tracking resets and the feed wraps
// around, so it never permanently empties while a dish matches the filter.
func (s *swipeService) assembleFeed(
	ctx context.Context,
	sess *feedSession,
	category domain.Category,
	preference domain.DietPreference,
	excluded map[uuid.UUID]struct{},
) (domain.FeedResponse, error) {
	exhausted := false
	restarted := false
	page := sess.deliveredCount/FeedBatchSize + 1

	for cycle := 0; cycle < 4; cycle++ {
		dishes, pagination, err := s.catalogService.ListEligible(
			ctx, category, preference, excluded, page, FeedBatchSize,
		)
		if err != nil {
			return domain.FeedResponse{}, err
		}

		if len(dishes) == 0 {
			if pagination.HasMore {
				// An empty page with more pages remaining: advance once.
				page++
				continue
			}
			if pagination.Total == 0 || restarted {
				return domain.FeedResponse{Dishes: []domain.DishResponse{}, Exhausted: true}, nil
			}
			// Last page reached with nothing new: wrap around.
			sess.reset()
			exhausted = true
			restarted = true
			page = 1
			continue
		}

		fresh := make([]domain.DishResponse, 0, len(dishes))
		for _, dish := range dishes {
			id, err := uuid.Parse(dish.ID)
			if err != nil {
				continue
			}
			if sess.isDelivered(id) {
				continue
			}
			fresh = append(fresh, dish)
		}

		if len(fresh) == 0 {
			// Every dish on a non-empty page was already dealt this
			// session: the filter is exhausted. Re-deliver seen-but-
			// unswiped dishes to keep the stack moving.
			sess.reset()
			exhausted = true
			fresh = dishes
		}

		for _, dish := range fresh {
			if id, err := uuid.Parse(dish.ID); err == nil {
				sess.deliver(id)
			}
		}
		return domain.FeedResponse{Dishes: fresh, Exhausted: exhausted}, nil
	}

	return domain.FeedResponse{Dishes: []domain.DishResponse{}, Exhausted: true}, nil
}

func (s *swipeService) ProcessSwipe(ctx context.Context, code string, req domain.SwipeRequest, userID string) (domain.SwipeResponse, error) {
	menuEntity, userUUID, err := s.requireParticipant(ctx, code, userID)
	if err != nil {
		return domain.SwipeResponse{}, err
	}
	if err := s.requireSwipable(menuEntity); err != nil {
		return domain.SwipeResponse{}, err
	}

	dish, err := s.catalogService.GetDishByID(ctx, req.DishID)
	if err != nil {
		return domain.SwipeResponse{}, err
	}

	dishUUID, err := uuid.Parse(req.DishID)
	if err != nil {
		return domain.SwipeResponse{}, domain.ErrParseUUID
	}

	liked := req.Liked != nil && *req.Liked
	swipe := &entities.Swipe{
		ID:        uuid.New(),
		MenuID:    menuEntity.ID,
		UserID:    userUUID,
		DishID:    dishUUID,
		Liked:     liked,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.swipeRepository.UpsertSwipe(ctx, swipe); err != nil {
		return domain.SwipeResponse{}, err
	}

	s.sessions.markSwiped(menuEntity.ID, userUUID, dishUUID)

	res := domain.SwipeResponse{DishID: req.DishID, Liked: liked}
	if !liked {
		return res, nil
	}

	// The match is filed under the dish's own category, which may differ
	// from the slot being browsed.
	matched, err := s.swipeRepository.RecordMatchIfUnanimous(
		ctx, menuEntity.ID, dishUUID, dish.Category,
	)
	if err != nil {
		return domain.SwipeResponse{}, err
	}
	res.Matched = matched
	if matched {
		res.Category = dish.Category
	}
	return res, nil
}

// requireSwipable admits only active menus. A pending menu must not accept
// swipes: a solo creator's likes would auto-match before the second
// participant joins, and joins close once the menu locks.
func (s *swipeService) requireSwipable(menuEntity *entities.Menu) error {
	switch menuEntity.Status {
	case domain.MenuStatusActive:
		return nil
	case domain.MenuStatusCompleted:
		// The menu will never swipe again; its feed sessions can go.
		s.sessions.dropMenu(menuEntity.ID)
	}
	return domain.ErrMenuNotSwipable
}

func (s *swipeService) requireParticipant(ctx context.Context, code string, userID string) (*entities.Menu, uuid.UUID, error) {
	menuEntity, err := s.menuRepository.GetMenuByCode(ctx, menu.NormalizeCode(code))
	if err != nil {
		return nil, uuid.Nil, err
	}
	if menuEntity == nil {
		return nil, uuid.Nil, domain.ErrMenuNotFound
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, uuid.Nil, domain.ErrParseUUID
	}

	for _, participant := range menuEntity.Participants {
		if participant.UserID == userUUID {
			return menuEntity, userUUID, nil
		}
	}
	return nil, uuid.Nil, domain.ErrNotParticipant
}

func (s *swipeService) exclusionSet(ctx context.Context, menuID, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	ids, err := s.swipeRepository.GetSwipedDishIDs(ctx, menuID, userID)
	if err != nil {
		return nil, err
	}
	excluded := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		excluded[id] = struct{}{}
	}
	return excluded, nil
}
