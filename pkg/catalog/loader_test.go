package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"cullinary-backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dishes.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, `name,ingredients,diet,course,cuisine,prep_time,description
Masala Dosa,"rice, urad dal, potato, chilli",vegetarian,breakfast,South Indian,30,Crispy fermented crepe
Chicken Curry,"chicken, onion, tomato, masala",non vegetarian,main course,Punjabi,45,Slow-cooked curry
Kheer,"milk, rice, sugar",vegetarian,dessert,,20,Sweet rice pudding
`)

	dishes, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, dishes, 3)

	dosa := dishes[0]
	assert.Equal(t, "Masala Dosa", dosa.Name)
	assert.Equal(t, string(domain.CategoryBreakfast), dosa.Category)
	assert.Equal(t, string(domain.PreferenceVeg), dosa.Preference)
	assert.Equal(t, string(domain.SpiceSpicy), dosa.SpiceLevel)
	assert.Equal(t, "South Indian", dosa.Cuisines)
	assert.Equal(t, 30, dosa.PrepMinutes)

	curry := dishes[1]
	assert.Equal(t, string(domain.CategoryDinner), curry.Category)
	assert.Equal(t, string(domain.PreferenceNonVeg), curry.Preference)

	kheer := dishes[2]
	assert.Equal(t, string(domain.CategorySnack), kheer.Category)
	assert.Equal(t, string(domain.SpiceMild), kheer.SpiceLevel)
	assert.Equal(t, "Other", kheer.Cuisines, "empty cuisine falls back to the sentinel")
}

func TestLoadCSVSkipsRowsWithoutName(t *testing.T) {
	path := writeCSV(t, `name,ingredients,course
Poha,"flattened rice, peanuts",breakfast
,"mystery",lunch
Samosa,"potato, peas, flour",snack
`)

	dishes, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, dishes, 2)
	assert.Equal(t, "Poha", dishes[0].Name)
	assert.Equal(t, "Samosa", dishes[1].Name)
}

func TestLoadCSVUnreadableFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogSource)
}

func TestLoadCSVMissingNameColumn(t *testing.T) {
	path := writeCSV(t, `title,ingredients
Dosa,"rice"
`)
	_, err := LoadCSV(path)
	assert.ErrorIs(t, err, domain.ErrCatalogSource)
}

func TestInferPreferenceFromIngredients(t *testing.T) {
	tests := []struct {
		name        string
		ingredients string
		want        domain.DietPreference
	}{
		{"Veg Pulao", "rice, carrot, peas", domain.PreferenceVeg},
		{"Fried Rice", "rice, egg, soy sauce", domain.PreferenceNonVeg},
		{"Fish Fry", "fish, turmeric", domain.PreferenceNonVeg},
		{"Paneer Tikka", "paneer, yogurt", domain.PreferenceVeg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferPreference(tt.name, tt.ingredients, ""))
		})
	}
}

func TestInferPreferenceDietColumnWins(t *testing.T) {
	// An explicit diet column overrides keyword inference.
	assert.Equal(t, domain.PreferenceVeg, inferPreference("Egg-free Cake", "flour, sugar", "vegetarian"))
}

func TestNormalizeCuisines(t *testing.T) {
	assert.Equal(t, "North Indian,Mughlai", normalizeCuisines("North Indian, Mughlai"))
	assert.Equal(t, "Other", normalizeCuisines(""))
	assert.Equal(t, "Other", normalizeCuisines("-1"))
}
