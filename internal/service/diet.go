package service

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/dishtail/backend/internal/metrics"
	"github.com/dishtail/backend/internal/models"
)

var (
	eggPattern  = regexp.MustCompile(`\beggs?\b|\bomelette\b|\bomelet\b|\bscrambled\b|\bfried egg\b|\bpoached egg\b|\begg curry\b|\begg bhurji\b`)
	meatPattern = regexp.MustCompile(`\bchicken\b|\bmutton\b|\blamb\b|\bbeef\b|\bpork\b|\bfish\b|\bprawn\b|\bshrimp\b|\bcrab\b|\blobster\b|\bturkey\b|\bduck\b|\bbacon\b|\bham\b|\bsausage\b|\bseafood\b`)
)

func recipeText(recipe models.Recipe) string {
	ingredients := make([]string, len(recipe.Ingredients))
	for i, ingredient := range recipe.Ingredients {
		ingredients[i] = strings.ToLower(ingredient)
	}
	return strings.Join(ingredients, " ") + " " + strings.ToLower(recipe.Title) + " " + strings.ToLower(recipe.Description)
}

// CorrectDietType applies the keyword rules to the model's tag: any meat term
// forces Non-Vegetarian, an egg term turns Vegetarian into Eggetarian, and
// every other tag is kept.
func CorrectDietType(recipe models.Recipe) models.DietType {
	text := recipeText(recipe)
	if meatPattern.MatchString(text) {
		return models.DietNonVegetarian
	}
	if recipe.DietType == models.DietVegetarian && eggPattern.MatchString(text) {
		return models.DietEggetarian
	}
	return recipe.DietType
}

// CorrectDietTypes rewrites each recipe's diet tag in place and logs changes.
func CorrectDietTypes(recipes []models.Recipe, logger *zap.Logger) {
	for i := range recipes {
		corrected := CorrectDietType(recipes[i])
		if corrected == recipes[i].DietType {
			continue
		}
		logger.Info("Fixed diet type",
			zap.String("title", recipes[i].Title),
			zap.String("from", string(recipes[i].DietType)),
			zap.String("to", string(corrected)),
		)
		metrics.DietCorrectionsTotal.WithLabelValues(string(recipes[i].DietType), string(corrected)).Inc()
		recipes[i].DietType = corrected
	}
}
