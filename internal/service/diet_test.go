package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/dishtail/backend/internal/models"
)

func TestCorrectDietType(t *testing.T) {
	tests := []struct {
		name   string
		recipe models.Recipe
		want   models.DietType
	}{
		{
			name:   "eggs make vegetarian eggetarian",
			recipe: models.Recipe{Title: "Veggie Scramble", Ingredients: []string{"2 Eggs", "spinach"}, DietType: models.DietVegetarian},
			want:   models.DietEggetarian,
		},
		{
			name:   "omelette in title",
			recipe: models.Recipe{Title: "Masala Omelette", Ingredients: []string{"onion"}, DietType: models.DietVegetarian},
			want:   models.DietEggetarian,
		},
		{
			name:   "meat overrides any tag",
			recipe: models.Recipe{Title: "Curry", Ingredients: []string{"500g chicken thighs"}, DietType: models.DietVegan},
			want:   models.DietNonVegetarian,
		},
		{
			name:   "meat in description",
			recipe: models.Recipe{Title: "Fried Rice", Description: "Tossed with shrimp", Ingredients: []string{"rice"}, DietType: models.DietEggetarian},
			want:   models.DietNonVegetarian,
		},
		{
			name:   "egg terms leave vegan alone",
			recipe: models.Recipe{Title: "Vegan scrambled tofu", Ingredients: []string{"tofu"}, DietType: models.DietVegan},
			want:   models.DietVegan,
		},
		{
			name:   "word boundaries",
			recipe: models.Recipe{Title: "Eggplant Parmesan", Ingredients: []string{"eggplant", "hamburger buns"}, DietType: models.DietVegetarian},
			want:   models.DietVegetarian,
		},
		{
			name:   "unknown tag kept",
			recipe: models.Recipe{Title: "Salad", Ingredients: []string{"lettuce"}, DietType: "Pescatarian"},
			want:   "Pescatarian",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CorrectDietType(tt.recipe))
		})
	}
}

func TestCorrectDietTypesInPlace(t *testing.T) {
	recipes := []models.Recipe{
		{Title: "Egg Curry", Ingredients: []string{"eggs"}, DietType: models.DietVegetarian},
		{Title: "Dal", Ingredients: []string{"lentils"}, DietType: models.DietVegan},
	}
	CorrectDietTypes(recipes, zap.NewNop())
	assert.Equal(t, models.DietEggetarian, recipes[0].DietType)
	assert.Equal(t, models.DietVegan, recipes[1].DietType)
}
