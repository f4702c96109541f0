package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"cullinary-backend/domain"
	"cullinary-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogRepository struct {
	dishes    []*entities.Dish
	loadCalls int
}

func (f *fakeCatalogRepository) GetAllDishes(ctx context.Context) ([]*entities.Dish, error) {
	f.loadCalls++
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

func newDish(name string, category domain.Category, preference domain.DietPreference) *entities.Dish {
	return &entities.Dish{
		ID:          uuid.New(),
		Name:        name,
		Category:    string(category),
		Preference:  string(preference),
		Cuisines:    "Other",
		Ingredients: "salt",
		SpiceLevel:  string(domain.SpiceMedium),
	}
}

func newTestService(dishes []*entities.Dish) (CatalogService, *fakeCatalogRepository) {
	repo := &fakeCatalogRepository{dishes: dishes}
	return NewCatalogService(repo, NewCache(time.Hour), nil), repo
}

func TestListDishesFiltersByCategoryAndPreference(t *testing.T) {
	service, _ := newTestService([]*entities.Dish{
		newDish("Dosa", domain.CategoryBreakfast, domain.PreferenceVeg),
		newDish("Omelette", domain.CategoryBreakfast, domain.PreferenceNonVeg),
		newDish("Biryani", domain.CategoryDinner, domain.PreferenceNonVeg),
	})

	res, err := service.ListDishes(context.Background(), domain.DishFilter{
		Category:   domain.CategoryBreakfast,
		Preference: domain.PreferenceVeg,
	}, 1, 20)
	require.NoError(t, err)
	require.Len(t, res.Dishes, 1)
	assert.Equal(t, "Dosa", res.Dishes[0].Name)
	assert.Equal(t, int64(1), res.Pagination.Total)
	assert.False(t, res.Pagination.HasMore)
}

func TestListDishesFreeTextSearch(t *testing.T) {
	pancake := newDish("Pancake", domain.CategoryBreakfast, domain.PreferenceVeg)
	pancake.Description = "fluffy maple stack"
	curry := newDish("Prawn Curry", domain.CategoryDinner, domain.PreferenceNonVeg)
	curry.Ingredients = "prawn, coconut milk"
	service, _ := newTestService([]*entities.Dish{pancake, curry})

	res, err := service.ListDishes(context.Background(), domain.DishFilter{Query: "MAPLE"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, res.Dishes, 1)
	assert.Equal(t, "Pancake", res.Dishes[0].Name)

	// Any-field match: ingredients qualify too.
	res, err = service.ListDishes(context.Background(), domain.DishFilter{Query: "coconut"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, res.Dishes, 1)
	assert.Equal(t, "Prawn Curry", res.Dishes[0].Name)
}

// Pages 1..ceil(N/L) cover all N dishes exactly once.
func TestListDishesPaginationConsistency(t *testing.T) {
	var dishes []*entities.Dish
	for i := 0; i < 23; i++ {
		dishes = append(dishes, newDish(fmt.Sprintf("Dish %02d", i), domain.CategoryLunch, domain.PreferenceVeg))
	}
	service, _ := newTestService(dishes)

	const limit = 5
	seen := make(map[string]int)
	page := 1
	for {
		res, err := service.ListDishes(context.Background(), domain.DishFilter{}, page, limit)
		require.NoError(t, err)
		assert.Equal(t, int64(23), res.Pagination.Total)
		for _, dish := range res.Dishes {
			seen[dish.ID]++
		}
		if !res.Pagination.HasMore {
			break
		}
		page++
	}

	assert.Equal(t, 5, page, "ceil(23/5) pages")
	assert.Len(t, seen, 23, "no omissions")
	for id, count := range seen {
		assert.Equalf(t, 1, count, "dish %s returned more than once", id)
	}
}

func TestListDishesOutOfRangePageIsEmpty(t *testing.T) {
	service, _ := newTestService([]*entities.Dish{
		newDish("Dosa", domain.CategoryBreakfast, domain.PreferenceVeg),
	})

	res, err := service.ListDishes(context.Background(), domain.DishFilter{}, 99, 20)
	require.NoError(t, err)
	assert.Empty(t, res.Dishes)
	assert.Equal(t, int64(1), res.Pagination.Total)
	assert.False(t, res.Pagination.HasMore)
}

func TestCatalogCacheIsLazyAndInvalidatable(t *testing.T) {
	service, repo := newTestService([]*entities.Dish{
		newDish("Dosa", domain.CategoryBreakfast, domain.PreferenceVeg),
	})

	_, err := service.ListDishes(context.Background(), domain.DishFilter{}, 1, 20)
	require.NoError(t, err)
	_, err = service.ListDishes(context.Background(), domain.DishFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.loadCalls, "second list served from cache")

	service.InvalidateCache()
	_, err = service.ListDishes(context.Background(), domain.DishFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.loadCalls, "invalidation forces a reload")
}

func TestGetDishByIDNotFound(t *testing.T) {
	service, _ := newTestService(nil)

	_, err := service.GetDishByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrDishNotFound)

	_, err = service.GetDishByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrDishNotFound)
}

// ID lookup folds uuid case whether the catalog cache is cold or warm.
func TestGetDishByIDCaseInsensitive(t *testing.T) {
	dosa := newDish("Dosa", domain.CategoryBreakfast, domain.PreferenceVeg)
	service, _ := newTestService([]*entities.Dish{dosa})
	upper := strings.ToUpper(dosa.ID.String())

	res, err := service.GetDishByID(context.Background(), upper)
	require.NoError(t, err, "cold cache")
	assert.Equal(t, dosa.ID.String(), res.ID)

	_, err = service.ListDishes(context.Background(), domain.DishFilter{}, 1, 20)
	require.NoError(t, err)

	res, err = service.GetDishByID(context.Background(), upper)
	require.NoError(t, err, "warm cache")
	assert.Equal(t, dosa.ID.String(), res.ID)
}

func TestListEligibleExcludesGivenIDs(t *testing.T) {
	dosa := newDish("Dosa", domain.CategoryBreakfast, domain.PreferenceVeg)
	poha := newDish("Poha", domain.CategoryBreakfast, domain.PreferenceVeg)
	service, _ := newTestService([]*entities.Dish{dosa, poha})

	excluded := map[uuid.UUID]struct{}{dosa.ID: {}}
	dishes, pagination, err := service.ListEligible(
		context.Background(), domain.CategoryBreakfast, "", excluded, 1, 20,
	)
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.Equal(t, "Poha", dishes[0].Name)
	assert.Equal(t, int64(1), pagination.Total, "excluded dishes are invisible to pagination")
}
