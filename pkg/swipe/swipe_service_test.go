package swipe

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cullinary-backend/domain"
	"cullinary-backend/entities"
	"cullinary-backend/pkg/catalog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes -----------------------------------------------------------------

type fakeMenuRepository struct {
	menus map[string]*entities.Menu
}

func (f *fakeMenuRepository) CreateMenu(ctx context.Context, menu *entities.Menu) error {
	f.menus[menu.Code] = menu
	return nil
}

func (f *fakeMenuRepository) GetMenuByCode(ctx context.Context, code string) (*entities.Menu, error) {
	menu, ok := f.menus[code]
	if !ok {
		return nil, nil
	}
	return menu, nil
}

func (f *fakeMenuRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	_, ok := f.menus[code]
	return ok, nil
}

func (f *fakeMenuRepository) AddParticipant(ctx context.Context, participant *entities.MenuParticipant) error {
	for _, menu := range f.menus {
		if menu.ID == participant.MenuID {
			menu.Participants = append(menu.Participants, participant)
			return nil
		}
	}
	return domain.ErrMenuNotFound
}

func (f *fakeMenuRepository) UpdateMenuStatus(ctx context.Context, menuID uuid.UUID, status string) error {
	for _, menu := range f.menus {
		if menu.ID == menuID {
			menu.Status = status
			return nil
		}
	}
	return domain.ErrMenuNotFound
}

type swipeKey struct {
	menuID, userID, dishID uuid.UUID
}

// fakeSwipeRepository mirrors the repository contract: upsert by composite
// key, unanimous-like match detection, idempotent append with a 7-per-slot
// cap.
type fakeSwipeRepository struct {
	menus   *fakeMenuRepository
	swipes  map[swipeKey]*entities.Swipe
	matches []*entities.MenuMatch
}

func (f *fakeSwipeRepository) UpsertSwipe(ctx context.Context, swipe *entities.Swipe) error {
	key := swipeKey{swipe.MenuID, swipe.UserID, swipe.DishID}
	if existing, ok := f.swipes[key]; ok {
		existing.Liked = swipe.Liked
		existing.UpdatedAt = time.Now()
		return nil
	}
	f.swipes[key] = swipe
	return nil
}

func (f *fakeSwipeRepository) GetSwipedDishIDs(ctx context.Context, menuID, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for key := range f.swipes {
		if key.menuID == menuID && key.userID == userID {
			ids = append(ids, key.dishID)
		}
	}
	return ids, nil
}

func (f *fakeSwipeRepository) RecordMatchIfUnanimous(ctx context.Context, menuID, dishID uuid.UUID, category string) (bool, error) {
	var participants int
	for _, menu := range f.menus.menus {
		if menu.ID == menuID {
			participants = len(menu.Participants)
		}
	}

	likes := 0
	for key, swipe := range f.swipes {
		if key.menuID == menuID && key.dishID == dishID && swipe.Liked {
			likes++
		}
	}
	if participants == 0 || likes < participants {
		return false, nil
	}

	slotCount := 0
	for _, match := range f.matches {
		if match.MenuID == menuID && match.DishID == dishID {
			return true, nil
		}
		if match.MenuID == menuID && match.Category == category {
			slotCount++
		}
	}
	if slotCount >= domain.MenuDays {
		return false, nil
	}

	f.matches = append(f.matches, &entities.MenuMatch{
		ID:       uuid.New(),
		MenuID:   menuID,
		DishID:   dishID,
		Category: category,
		Position: slotCount,
	})
	return true, nil
}

type fakeUserRepository struct {
	users map[string]*entities.User
}

func (f *fakeUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepository) AddFavorite(ctx context.Context, userID, dishID string) error {
	return nil
}

func (f *fakeUserRepository) RemoveFavorite(ctx context.Context, userID, dishID string) error {
	return nil
}

func (f *fakeUserRepository) GetFavoriteDishes(ctx context.Context, userID string, page, limit int) ([]*entities.Dish, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepository) TouchRecentMenu(ctx context.Context, userID string, code string) error {
	return nil
}

func (f *fakeUserRepository) GetRecentMenuCodes(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}

type fakeCatalogRepository struct {
	dishes []*entities.Dish
}

func (f *fakeCatalogRepository) GetAllDishes(ctx context.Context) ([]*entities.Dish, error) {
	return f.dishes, nil
}

func (f *fakeCatalogRepository) GetDishByID(ctx context.Context, id string) (*entities.Dish, error) {
	for _, dish := range f.dishes {
		if dish.ID.String() == id {
			return dish, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalogRepository) UpdateDishImage(ctx context.Context, id string, imageURL string) error {
	return nil
}

func (f *fakeCatalogRepository) ReplaceCatalog(ctx context.Context, dishes []*entities.Dish) error {
	f.dishes = dishes
	return nil
}

// --- fixture ---------------------------------------------------------------

type fixture struct {
	service   SwipeService
	swipeRepo *fakeSwipeRepository
	menuRepo  *fakeMenuRepository
	userRepo  *fakeUserRepository
	menu      *entities.Menu
	userA     uuid.UUID
	userB     uuid.UUID
}

func newDish(name string, category domain.Category, preference domain.DietPreference) *entities.Dish {
	return &entities.Dish{
		ID:         uuid.New(),
		Name:       name,
		Category:   string(category),
		Preference: string(preference),
		Cuisines:   "Other",
		SpiceLevel: string(domain.SpiceMedium),
	}
}

func newFixture(t *testing.T, participants int, dishes []*entities.Dish) *fixture {
	t.Helper()

	menuRepo := &fakeMenuRepository{menus: make(map[string]*entities.Menu)}
	swipeRepo := &fakeSwipeRepository{menus: menuRepo, swipes: make(map[swipeKey]*entities.Swipe)}
	userRepo := &fakeUserRepository{users: make(map[string]*entities.User)}
	catalogService := catalog.NewCatalogService(
		&fakeCatalogRepository{dishes: dishes}, catalog.NewCache(time.Hour), nil,
	)

	userA := uuid.New()
	userB := uuid.New()
	userRepo.users[userA.String()] = &entities.User{ID: userA}
	userRepo.users[userB.String()] = &entities.User{ID: userB}

	menuEntity := &entities.Menu{
		ID:     uuid.New(),
		Code:   "WYAJRF",
		Status: domain.MenuStatusActive,
	}
	menuEntity.Participants = []*entities.MenuParticipant{
		{ID: uuid.New(), MenuID: menuEntity.ID, UserID: userA, Position: 0},
	}
	if participants > 1 {
		menuEntity.Participants = append(menuEntity.Participants, &entities.MenuParticipant{
			ID: uuid.New(), MenuID: menuEntity.ID, UserID: userB, Position: 1,
		})
	}
	menuRepo.menus[menuEntity.Code] = menuEntity

	return &fixture{
		service:   NewSwipeService(swipeRepo, menuRepo, userRepo, catalogService),
		swipeRepo: swipeRepo,
		menuRepo:  menuRepo,
		userRepo:  userRepo,
		menu:      menuEntity,
		userA:     userA,
		userB:     userB,
	}
}

func (f *fixture) swipe(t *testing.T, userID uuid.UUID, dishID uuid.UUID, liked bool) domain.SwipeResponse {
	t.Helper()
	res, err := f.service.ProcessSwipe(context.Background(), f.menu.Code, domain.SwipeRequest{
		DishID: dishID.String(),
		Liked:  &liked,
	}, userID.String())
	require.NoError(t, err)
	return res
}

// --- swipe processing ------------------------------------------------------

// A dish matches exactly when every participant has liked it.
func TestMatchRequiresAllParticipants(t *testing.T) {
	dish := newDish("Paneer Tikka", domain.CategoryLunch, domain.PreferenceVeg)
	f := newFixture(t, 2, []*entities.Dish{dish})

	res := f.swipe(t, f.userA, dish.ID, true)
	assert.False(t, res.Matched, "one like out of two is not a match")
	assert.Empty(t, f.swipeRepo.matches)

	res = f.swipe(t, f.userB, dish.ID, true)
	assert.True(t, res.Matched)
	assert.Equal(t, dish.Category, res.Category)
	require.Len(t, f.swipeRepo.matches, 1)
	assert.Equal(t, dish.ID, f.swipeRepo.matches[0].DishID)
}

func TestMatchRecordedOncePerDish(t *testing.T) {
	dish := newDish("Biryani", domain.CategoryDinner, domain.PreferenceNonVeg)
	f := newFixture(t, 2, []*entities.Dish{dish})

	f.swipe(t, f.userA, dish.ID, true)
	f.swipe(t, f.userB, dish.ID, true)
	// A re-like after the match must not duplicate the grid entry.
	res := f.swipe(t, f.userA, dish.ID, true)
	assert.True(t, res.Matched)
	assert.Len(t, f.swipeRepo.matches, 1)
}

// A solo locked menu auto-matches on every like.
func TestSoloAutoMatch(t *testing.T) {
	dishes := []*entities.Dish{
		newDish("Idli", domain.CategoryBreakfast, domain.PreferenceVeg),
		newDish("Upma", domain.CategoryBreakfast, domain.PreferenceVeg),
	}
	f := newFixture(t, 1, dishes)

	for _, dish := range dishes {
		res := f.swipe(t, f.userA, dish.ID, true)
		assert.Truef(t, res.Matched, "solo like of %s should match", dish.Name)
	}
	assert.Len(t, f.swipeRepo.matches, 2)
}

func TestDislikeNeverMatches(t *testing.T) {
	dish := newDish("Kheer", domain.CategorySnack, domain.PreferenceVeg)
	f := newFixture(t, 1, []*entities.Dish{dish})

	res := f.swipe(t, f.userA, dish.ID, false)
	assert.False(t, res.Matched)
	assert.Empty(t, f.swipeRepo.matches)
}

func TestReswipeOverwritesDecision(t *testing.T) {
	dish := newDish("Poha", domain.CategoryBreakfast, domain.PreferenceVeg)
	f := newFixture(t, 2, []*entities.Dish{dish})

	f.swipe(t, f.userA, dish.ID, false)
	f.swipe(t, f.userA, dish.ID, true)

	key := swipeKey{f.menu.ID, f.userA, dish.ID}
	require.Contains(t, f.swipeRepo.swipes, key)
	assert.True(t, f.swipeRepo.swipes[key].Liked)
	assert.Len(t, f.swipeRepo.swipes, 1, "same key overwritten, not duplicated")
}

// Matches are monotonic: a later dislike does not remove one.
func TestDislikeAfterMatchKeepsMatch(t *testing.T) {
	dish := newDish("Dosa", domain.CategoryBreakfast, domain.PreferenceVeg)
	f := newFixture(t, 1, []*entities.Dish{dish})

	f.swipe(t, f.userA, dish.ID, true)
	require.Len(t, f.swipeRepo.matches, 1)

	f.swipe(t, f.userA, dish.ID, false)
	assert.Len(t, f.swipeRepo.matches, 1)
}

func TestSlotCapStopsAppends(t *testing.T) {
	var dishes []*entities.Dish
	for i := 0; i < domain.MenuDays+1; i++ {
		dishes = append(dishes, newDish(fmt.Sprintf("Lunch %d", i), domain.CategoryLunch, domain.PreferenceVeg))
	}
	f := newFixture(t, 1, dishes)

	for i := 0; i < domain.MenuDays; i++ {
		res := f.swipe(t, f.userA, dishes[i].ID, true)
		assert.True(t, res.Matched)
	}

	res := f.swipe(t, f.userA, dishes[domain.MenuDays].ID, true)
	assert.False(t, res.Matched, "eighth like lands on a full slot")
	assert.Len(t, f.swipeRepo.matches, domain.MenuDays)

	key := swipeKey{f.menu.ID, f.userA, dishes[domain.MenuDays].ID}
	assert.Contains(t, f.swipeRepo.swipes, key, "the swipe itself is still recorded")
}

func TestSwipeUnknownDish(t *testing.T) {
	f := newFixture(t, 1, nil)
	liked := true

	_, err := f.service.ProcessSwipe(context.Background(), f.menu.Code, domain.SwipeRequest{
		DishID: uuid.NewString(),
		Liked:  &liked,
	}, f.userA.String())
	assert.ErrorIs(t, err, domain.ErrDishNotFound)
}

// A pending menu accepts no swipes. A solo creator's likes would otherwise
// auto-match before the second participant joins, seeding the grid with
// dishes the joiner never saw.
func TestSwipeRejectedOnPendingMenu(t *testing.T) {
	dish := newDish("Dosa", domain.CategoryBreakfast, domain.PreferenceVeg)
	f := newFixture(t, 1, []*entities.Dish{dish})
	f.menu.Status = domain.MenuStatusPending
	liked := true

	_, err := f.service.ProcessSwipe(context.Background(), f.menu.Code, domain.SwipeRequest{
		DishID: dish.ID.String(),
		Liked:  &liked,
	}, f.userA.String())
	assert.ErrorIs(t, err, domain.ErrMenuNotSwipable)
	assert.Empty(t, f.swipeRepo.swipes)
	assert.Empty(t, f.swipeRepo.matches, "no pre-join matches to inherit")

	_, err = f.service.GetFeed(context.Background(), f.menu.Code, "breakfast", f.userA.String())
	assert.ErrorIs(t, err, domain.ErrMenuNotSwipable)
}

func TestSwipeRejectedOnCompletedMenu(t *testing.T) {
	dish := newDish("Dosa", domain.CategoryBreakfast, domain.PreferenceVeg)
	f := newFixture(t, 1, []*entities.Dish{dish})
	f.menu.Status = domain.MenuStatusCompleted
	liked := true

	_, err := f.service.ProcessSwipe(context.Background(), f.menu.Code, domain.SwipeRequest{
		DishID: dish.ID.String(),
		Liked:  &liked,
	}, f.userA.String())
	assert.ErrorIs(t, err, domain.ErrMenuNotSwipable)
}

// --- feed assembly ---------------------------------------------------------

func feedIDs(res domain.FeedResponse) map[string]bool {
	out := make(map[string]bool, len(res.Dishes))
	for _, dish := range res.Dishes {
		out[dish.ID] = true
	}
	return out
}

func TestFeedFiltersBySlot(t *testing.T) {
	breakfast := newDish("Idli", domain.CategoryBreakfast, domain.PreferenceVeg)
	dinner := newDish("Biryani", domain.CategoryDinner, domain.PreferenceNonVeg)
	f := newFixture(t, 1, []*entities.Dish{breakfast, dinner})

	res, err := f.service.GetFeed(context.Background(), f.menu.Code, "breakfast", f.userA.String())
	require.NoError(t, err)
	ids := feedIDs(res)
	assert.True(t, ids[breakfast.ID.String()])
	assert.False(t, ids[dinner.ID.String()])
}

func TestFeedInvalidSlot(t *testing.T) {
	f := newFixture(t, 1, nil)

	_, err := f.service.GetFeed(context.Background(), f.menu.Code, "brunch", f.userA.String())
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}

func TestFeedRequiresMembership(t *testing.T) {
	f := newFixture(t, 1, nil)

	_, err := f.service.GetFeed(context.Background(), f.menu.Code, "lunch", uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotParticipant)
}

func TestFeedHonorsVegetarianProfile(t *testing.T) {
	veg := newDish("Dal", domain.CategoryDinner, domain.PreferenceVeg)
	nonVeg := newDish("Biryani", domain.CategoryDinner, domain.PreferenceNonVeg)
	f := newFixture(t, 1, []*entities.Dish{veg, nonVeg})
	f.userRepo.users[f.userA.String()].IsVegetarian = true

	res, err := f.service.GetFeed(context.Background(), f.menu.Code, "dinner", f.userA.String())
	require.NoError(t, err)
	ids := feedIDs(res)
	assert.True(t, ids[veg.ID.String()])
	assert.False(t, ids[nonVeg.ID.String()])
}

// Once swiped, a dish never reappears in the feed for that menu.
func TestFeedNeverReoffersSwipedDishes(t *testing.T) {
	var dishes []*entities.Dish
	for i := 0; i < 10; i++ {
		dishes = append(dishes, newDish(fmt.Sprintf("Snack %d", i), domain.CategorySnack, domain.PreferenceVeg))
	}
	f := newFixture(t, 1, dishes)

	first, err := f.service.GetFeed(context.Background(), f.menu.Code, "snack", f.userA.String())
	require.NoError(t, err)
	require.NotEmpty(t, first.Dishes)

	swiped := dishes[0]
	f.swipe(t, f.userA, swiped.ID, false)

	// Several refill cycles, including wrap-arounds, never resurface it.
	for cycle := 0; cycle < 5; cycle++ {
		res, err := f.service.GetFeed(context.Background(), f.menu.Code, "snack", f.userA.String())
		require.NoError(t, err)
		assert.NotContains(t, feedIDs(res), swiped.ID.String(), "cycle %d re-offered a swiped dish", cycle)
	}
}

// When every eligible dish has been dealt but not swiped, the feed wraps
// around and re-delivers instead of emptying.
func TestFeedWrapsAroundWhenExhausted(t *testing.T) {
	var dishes []*entities.Dish
	for i := 0; i < 4; i++ {
		dishes = append(dishes, newDish(fmt.Sprintf("Lunch %d", i), domain.CategoryLunch, domain.PreferenceVeg))
	}
	f := newFixture(t, 1, dishes)

	first, err := f.service.GetFeed(context.Background(), f.menu.Code, "lunch", f.userA.String())
	require.NoError(t, err)
	assert.Len(t, first.Dishes, 4)
	assert.False(t, first.Exhausted)

	second, err := f.service.GetFeed(context.Background(), f.menu.Code, "lunch", f.userA.String())
	require.NoError(t, err)
	assert.Len(t, second.Dishes, 4, "seen-but-unswiped dishes are re-delivered")
	assert.True(t, second.Exhausted)
}

func TestFeedEmptyWhenEverythingSwiped(t *testing.T) {
	dish := newDish("Dosa", domain.CategoryBreakfast, domain.PreferenceVeg)
	f := newFixture(t, 1, []*entities.Dish{dish})

	f.swipe(t, f.userA, dish.ID, true)

	res, err := f.service.GetFeed(context.Background(), f.menu.Code, "breakfast", f.userA.String())
	require.NoError(t, err)
	assert.Empty(t, res.Dishes)
	assert.True(t, res.Exhausted)
}

// Completing a menu releases its feed session state.
func TestCompletedMenuEvictsFeedSessions(t *testing.T) {
	dish := newDish("Dosa", domain.CategoryBreakfast, domain.PreferenceVeg)
	f := newFixture(t, 1, []*entities.Dish{dish})

	_, err := f.service.GetFeed(context.Background(), f.menu.Code, "breakfast", f.userA.String())
	require.NoError(t, err)
	svc := f.service.(*swipeService)
	require.NotEmpty(t, svc.sessions.sessions)

	f.menu.Status = domain.MenuStatusCompleted
	_, err = f.service.GetFeed(context.Background(), f.menu.Code, "breakfast", f.userA.String())
	assert.ErrorIs(t, err, domain.ErrMenuNotSwipable)
	assert.Empty(t, svc.sessions.sessions)
}

func TestFeedUnknownMenu(t *testing.T) {
	f := newFixture(t, 1, nil)

	_, err := f.service.GetFeed(context.Background(), "ZZZZZZ", "lunch", f.userA.String())
	assert.ErrorIs(t, err, domain.ErrMenuNotFound)
}
