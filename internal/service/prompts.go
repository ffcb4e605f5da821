package service

import (
	"fmt"
	"strings"

	"github.com/dishtail/backend/internal/models"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// buildSearchMessages renders the system and user prompts for a recipe search.
func buildSearchMessages(ingredients []string, cuisine string, servingSize int) []Message {
	cuisineInstruction := "You can suggest recipes from any cuisine."
	if cuisine != "" {
		cuisineInstruction = fmt.Sprintf("Focus on %s cuisine recipes.", cuisine)
	}
	people := plural(servingSize, "person", "people")
	servings := plural(servingSize, "serving", "servings")

	system := fmt.Sprintf(`You are a recipe expert. Respond with a JSON array of recipes. Each recipe must be a JSON object with these exact fields:
{
  "title": "Recipe name",
  "description": "Brief description",
  "ingredients": ["ingredient 1 with quantity", "ingredient 2 with quantity", ...],
  "instructions": ["step 1", "step 2", ...],
  "prepTime": "time in minutes format like '25 minutes'",
  "dietType": "one of: Vegetarian, Eggetarian, Vegan, Non-Vegetarian",
  "isHealthy": true/false,
  "source": "Web Search"
}

CRITICAL DIET TYPE CLASSIFICATION RULES:
- "Vegan": No animal products at all (no meat, fish, eggs, dairy, honey)
- "Vegetarian": No meat or fish, but may include dairy products like milk, cheese, butter, paneer. NO EGGS!
- "Eggetarian": Vegetarian diet PLUS eggs. If a recipe contains eggs but no meat/fish, it MUST be "Eggetarian", NOT "Vegetarian"
- "Non-Vegetarian": Contains meat, poultry, fish, or seafood

EXAMPLES:
- Recipe with eggs and vegetables = "Eggetarian" (NOT Vegetarian!)
- Recipe with cheese and vegetables = "Vegetarian"
- Recipe with only vegetables and plant-based ingredients = "Vegan"
- Recipe with chicken = "Non-Vegetarian"
- Egg curry, omelette, egg fried rice = "Eggetarian"

IMPORTANT: All ingredient quantities should be for %d %s.
Return ONLY valid JSON array, no markdown or extra text.`, servingSize, servings)

	user := fmt.Sprintf(`Find complete cooking recipes that use ALL of these ingredients: %s.
%s
The recipe should serve %d %s - adjust all ingredient quantities accordingly.

For each recipe found, provide:
- Title
- Brief description (1-2 sentences)
- Complete list of all ingredients with quantities for %d %s
- Step-by-step cooking instructions
- Preparation time
- Diet type classification (IMPORTANT: Follow these rules exactly!)
- Whether it's healthy (low sugar, not too oily)

Return 5-7 different recipes. Make sure each recipe uses ALL the provided ingredients.`,
		strings.Join(ingredients, ", "), cuisineInstruction, servingSize, people, servingSize, servings)

	return []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

const nutritionSystemPrompt = "You are a nutrition expert. Provide accurate nutritional analysis based on standard ingredient databases. Always respond with valid JSON only, no markdown or extra text."

// buildNutritionMessages renders the prompts for a nutrition analysis.
func buildNutritionMessages(recipe models.Recipe, servingSize int) []Message {
	user := fmt.Sprintf(`Analyze the nutritional content of this recipe for %d serving(s).

Recipe: %s
Ingredients: %s

Provide a detailed nutritional analysis including:
1. Estimated calories per serving
2. Macronutrients (protein, carbohydrates, fats)
3. Key vitamins and minerals
4. Health benefits
5. Any dietary considerations (allergens, sodium content, etc.)

Format the response as JSON with this structure:
{
  "calories": "estimated calories per serving",
  "macros": {
    "protein": "amount in grams",
    "carbs": "amount in grams",
    "fat": "amount in grams",
    "fiber": "amount in grams"
  },
  "vitamins": ["list of key vitamins"],
  "minerals": ["list of key minerals"],
  "healthBenefits": ["list of health benefits"],
  "considerations": ["dietary considerations or warnings"],
  "healthScore": "1-10 rating",
  "summary": "brief 2-3 sentence summary"
}`, servingSize, recipe.Title, strings.Join(recipe.Ingredients, ", "))

	return []Message{
		{Role: "system", Content: nutritionSystemPrompt},
		{Role: "user", Content: user},
	}
}
