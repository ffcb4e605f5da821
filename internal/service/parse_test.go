package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dishtail/backend/internal/models"
)

func malformedKind(t *testing.T, err error) string {
	t.Helper()
	var malformed *MalformedResponseError
	require.True(t, errors.As(err, &malformed), "expected MalformedResponseError, got %v", err)
	return malformed.Kind
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `[{"a":1}]`, StripCodeFences("```json\n[{\"a\":1}]\n```"))
	assert.Equal(t, `[]`, StripCodeFences("```\n[]\n```"))
	assert.Equal(t, `[]`, StripCodeFences("  []  "))
}

func TestParseRecipes(t *testing.T) {
	logger := zap.NewNop()

	t.Run("fenced array", func(t *testing.T) {
		content := "```json\n" + `[{"title":"Tomato Soup","description":"Warm","ingredients":["2 tomatoes"],"instructions":["Simmer"],"prepTime":"20 minutes","dietType":"Vegan","isHealthy":true,"source":"Web Search"}]` + "\n```"
		recipes, err := ParseRecipes(content, logger)
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, models.Recipe{
			Title:        "Tomato Soup",
			Description:  "Warm",
			Ingredients:  []string{"2 tomatoes"},
			Instructions: []string{"Simmer"},
			PrepTime:     "20 minutes",
			DietType:     models.DietVegan,
			IsHealthy:    true,
			Source:       "Web Search",
		}, recipes[0])
	})

	t.Run("lenient field types", func(t *testing.T) {
		content := `[{"title":"Dal","ingredients":["lentils", 2],"instructions":["Boil"],"prepTime":25,"isHealthy":"true"}]`
		recipes, err := ParseRecipes(content, logger)
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "25", recipes[0].PrepTime)
		assert.True(t, recipes[0].IsHealthy)
		assert.Equal(t, []string{"lentils", "2"}, recipes[0].Ingredients)
	})

	t.Run("incomplete records are dropped", func(t *testing.T) {
		content := `[
			{"title":"Kept","ingredients":["a"],"instructions":["b"]},
			{"title":"No steps","ingredients":["a"]},
			{"ingredients":["a"],"instructions":["b"]},
			"not an object"
		]`
		recipes, err := ParseRecipes(content, logger)
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "Kept", recipes[0].Title)
	})

	t.Run("empty array", func(t *testing.T) {
		recipes, err := ParseRecipes("[]", logger)
		require.NoError(t, err)
		assert.NotNil(t, recipes)
		assert.Empty(t, recipes)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := ParseRecipes("Here are some recipes you might enjoy!", logger)
		assert.Equal(t, MalformedNotJSON, malformedKind(t, err))
	})

	t.Run("object instead of array", func(t *testing.T) {
		_, err := ParseRecipes(`{"title":"Soup"}`, logger)
		assert.Equal(t, MalformedNotArray, malformedKind(t, err))
	})

	t.Run("no usable records", func(t *testing.T) {
		_, err := ParseRecipes(`[{"title":"Nothing else"}]`, nil)
		assert.Equal(t, MalformedNoValidRecords, malformedKind(t, err))
	})
}

func TestExtractJSONObject(t *testing.T) {
	object, ok := ExtractJSONObject("Sure! {\"calories\": \"300\"} Enjoy.")
	require.True(t, ok)
	assert.Equal(t, `{"calories": "300"}`, object)

	_, ok = ExtractJSONObject("no braces here")
	assert.False(t, ok)

	_, ok = ExtractJSONObject("} backwards {")
	assert.False(t, ok)
}

func TestParseNutrition(t *testing.T) {
	t.Run("object with prose around it", func(t *testing.T) {
		content := "Here you go:\n```json\n" + `{"calories":350,"macros":{"protein":"12g","carbs":"40g","fat":"9g","fiber":6},"vitamins":["C"],"healthScore":8,"summary":"Balanced."}` + "\n```"
		nutrition, err := ParseNutrition(content)
		require.NoError(t, err)
		assert.Equal(t, models.FlexString("350"), nutrition.Calories)
		assert.Equal(t, models.FlexString("6"), nutrition.Macros.Fiber)
		assert.Equal(t, models.FlexStrings{"C"}, nutrition.Vitamins)
		assert.Equal(t, models.FlexStrings{}, nutrition.Minerals)
		assert.Equal(t, models.FlexString("8"), nutrition.HealthScore)
		assert.Equal(t, "Balanced.", nutrition.Summary)
	})

	t.Run("no object", func(t *testing.T) {
		_, err := ParseNutrition("I cannot analyze that recipe.")
		assert.Equal(t, MalformedNoJSONObject, malformedKind(t, err))
	})

	t.Run("broken object", func(t *testing.T) {
		_, err := ParseNutrition(`{"calories": }`)
		assert.Equal(t, MalformedNotJSON, malformedKind(t, err))
	})
}
