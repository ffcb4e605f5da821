package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dishtail/backend/internal/metrics"
	"github.com/dishtail/backend/internal/models"
	"github.com/dishtail/backend/internal/types"
)

const operationSearch = "search_recipes"

// SearchOptions tunes RecipeSearchService
type SearchOptions struct {
	MaxServingSize int
	CacheTTL       time.Duration
}

// RecipeSearchService asks the model for recipes using a set of ingredients
// and returns them corrected and ranked.
type RecipeSearchService struct {
	llm    ChatCompleter
	cache  SearchCache
	opts   SearchOptions
	logger *zap.Logger
}

// NewRecipeSearchService wires the search pipeline. cache may be nil.
func NewRecipeSearchService(llm ChatCompleter, cache SearchCache, opts SearchOptions, logger *zap.Logger) *RecipeSearchService {
	if opts.MaxServingSize < 1 {
		opts.MaxServingSize = 20
	}
	return &RecipeSearchService{
		llm:    llm,
		cache:  cache,
		opts:   opts,
		logger: logger,
	}
}

func cleanIngredients(ingredients []string) []string {
	cleaned := make([]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		if trimmed := strings.TrimSpace(ingredient); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

// ClampServingSize keeps a requested serving size within 1..limit.
func ClampServingSize(servingSize, limit int) int {
	if servingSize < 1 {
		return 1
	}
	if limit > 0 && servingSize > limit {
		return limit
	}
	return servingSize
}

func normalizeCuisine(cuisine string) string {
	cuisine = strings.TrimSpace(cuisine)
	if cuisine == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ToLower(cuisine))
}

func searchCacheKey(ingredients []string, cuisine string, servingSize int) string {
	normalized := make([]string, len(ingredients))
	for i, ingredient := range ingredients {
		normalized[i] = strings.ToLower(ingredient)
	}
	sort.Strings(normalized)

	h := sha256.New()
	h.Write([]byte(strings.Join(normalized, "\x1f")))
	h.Write([]byte("|" + strings.ToLower(cuisine) + "|" + strconv.Itoa(servingSize)))
	return hex.EncodeToString(h.Sum(nil))
}

// Search validates the request, queries the model and ranks the reply. An
// unusable reply yields an empty list rather than an error.
func (s *RecipeSearchService) Search(ctx context.Context, req types.SearchRequest) ([]models.Recipe, error) {
	ingredients := cleanIngredients(req.Ingredients)
	if len(ingredients) == 0 {
		return nil, NewValidationError("Please provide ingredients")
	}
	servingSize := ClampServingSize(req.ServingSize, s.opts.MaxServingSize)
	cuisine := normalizeCuisine(req.Cuisine)

	s.logger.Info("Searching for recipes",
		zap.Strings("ingredients", ingredients),
		zap.String("cuisine", cuisine),
		zap.Int("serving_size", servingSize),
	)

	key := searchCacheKey(ingredients, cuisine, servingSize)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.logger.Warn("Search cache lookup failed", zap.Error(err))
		case ok:
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		}
	}

	var recipes []models.Recipe
	content, err := s.llm.Complete(ctx, operationSearch, buildSearchMessages(ingredients, cuisine, servingSize))
	if err == nil {
		recipes, err = ParseRecipes(content, s.logger)
	}
	if err != nil {
		var malformed *MalformedResponseError
		if !errors.As(err, &malformed) {
			return nil, fmt.Errorf("failed to search recipes: %w", err)
		}
		metrics.MalformedResponsesTotal.WithLabelValues(operationSearch, malformed.Kind).Inc()
		s.logger.Warn("Failed to parse AI response", zap.Error(err))
		return []models.Recipe{}, nil
	}

	CorrectDietTypes(recipes, s.logger)
	RankRecipes(recipes)

	if s.cache != nil && len(recipes) > 0 && s.opts.CacheTTL > 0 {
		if err := s.cache.Set(ctx, key, recipes, s.opts.CacheTTL); err != nil {
			s.logger.Warn("Failed to cache search result", zap.Error(err))
		}
	}

	s.logger.Info("Found recipes", zap.Int("count", len(recipes)), zap.Int("serving_size", servingSize))
	return recipes, nil
}
