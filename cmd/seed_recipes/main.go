package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dishtail/backend/config"
	"github.com/dishtail/backend/internal/database"
	"github.com/dishtail/backend/internal/models"
	"github.com/dishtail/backend/internal/service"
	"github.com/dishtail/backend/internal/types"
)

// pantries are the ingredient sets searched for sample recipes
var pantries = []types.SearchRequest{
	{Ingredients: []string{"chickpeas", "spinach", "tomato"}, Cuisine: "Indian"},
	{Ingredients: []string{"eggs", "potato", "onion"}, Cuisine: "Spanish"},
	{Ingredients: []string{"pasta", "garlic", "olive oil"}, Cuisine: "Italian"},
	{Ingredients: []string{"tofu", "rice", "broccoli"}, Cuisine: "Chinese"},
	{Ingredients: []string{"chicken", "lemon", "yogurt"}},
	{Ingredients: []string{"black beans", "corn", "avocado"}, Cuisine: "Mexican"},
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	email := flag.String("user", "john.doe@example.com", "email of the user the recipes are saved for")
	perPantry := flag.Int("per-search", 2, "recipes to keep from each search")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Open(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	var user models.User
	if err := db.Where("email = ?", strings.ToLower(*email)).First(&user).Error; err != nil {
		log.Fatalf("Seed user %s not found, run seed_test_users first: %v", *email, err)
	}

	llmService := service.NewLLMService(cfg.AI, logger)
	searchService := service.NewRecipeSearchService(llmService, nil, service.SearchOptions{
		MaxServingSize: cfg.Search.MaxServingSize,
	}, logger)
	savedService := service.NewSavedRecipeService(db, cfg.Search.MaxServingSize, logger)

	ctx := context.Background()
	saved := 0
	for _, pantry := range pantries {
		pantry.ServingSize = 2
		recipes, err := searchService.Search(ctx, pantry)
		if err != nil {
			log.Printf("Failed to search %v: %v", pantry.Ingredients, err)
			continue
		}

		for i, recipe := range recipes {
			if i >= *perPantry {
				break
			}
			if _, err := savedService.Save(ctx, user.ID, recipe, pantry.ServingSize); err != nil {
				log.Printf("Failed to save recipe %q: %v", recipe.Title, err)
				continue
			}
			saved++
			log.Printf("Saved recipe: %s (%s)", recipe.Title, recipe.DietType)
		}

		// Add a small delay between searches to avoid rate limiting
		time.Sleep(2 * time.Second)
	}

	log.Printf("Successfully seeded %d recipes for %s", saved, user.Email)
}
