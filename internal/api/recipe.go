package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dishtail/backend/internal/middleware"
	"github.com/dishtail/backend/internal/models"
	"github.com/dishtail/backend/internal/service"
	"github.com/dishtail/backend/internal/types"
)

// SessionHeader lets the browser attach its analytics session to function calls
const SessionHeader = "X-Session-ID"

// RecipeHandler serves recipe search, nutrition analysis and saved recipes
type RecipeHandler struct {
	search    service.IRecipeSearchService
	nutrition service.INutritionService
	saved     service.ISavedRecipeService
	analytics service.IAnalyticsService
	logger    *zap.Logger
}

func NewRecipeHandler(
	search service.IRecipeSearchService,
	nutrition service.INutritionService,
	saved service.ISavedRecipeService,
	analytics service.IAnalyticsService,
	logger *zap.Logger,
) *RecipeHandler {
	return &RecipeHandler{
		search:    search,
		nutrition: nutrition,
		saved:     saved,
		analytics: analytics,
		logger:    logger,
	}
}

// RegisterRoutes mounts the saved recipe routes; the group must already
// require authentication.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	saved := router.Group("/saved-recipes")
	{
		saved.GET("", h.ListSaved)
		saved.POST("", h.SaveRecipe)
		saved.DELETE("/:id", h.DeleteSaved)
	}
}

// track files a server-side event when the caller sent a session id.
// Without one the browser is expected to track the event itself.
func (h *RecipeHandler) track(c *gin.Context, eventType string, data map[string]interface{}) {
	if h.analytics == nil {
		return
	}
	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		return
	}
	h.analytics.Track(c.Request.Context(), types.TrackEventRequest{
		EventType: eventType,
		EventData: data,
		SessionID: sessionID,
		PagePath:  c.Request.URL.Path,
		UserAgent: c.Request.UserAgent(),
	}, middleware.UserIDPtr(c))
}

// SearchRecipes asks the model for recipes that use the given ingredients
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	recipes, err := h.search.Search(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, opSearch, err)
		return
	}

	h.track(c, models.EventRecipeSearch, map[string]interface{}{
		"ingredients": req.Ingredients,
		"cuisine":     req.Cuisine,
		"servingSize": req.ServingSize,
		"resultCount": len(recipes),
	})

	c.JSON(http.StatusOK, types.SearchResponse{Recipes: recipes})
}

// AnalyzeNutrition estimates nutrition for one recipe
func (h *RecipeHandler) AnalyzeNutrition(c *gin.Context) {
	var req types.NutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	nutrition, err := h.nutrition.Analyze(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, opNutrition, err)
		return
	}

	h.track(c, models.EventNutritionAnalysis, map[string]interface{}{
		"title":       req.Recipe.Title,
		"servingSize": req.ServingSize,
	})

	c.JSON(http.StatusOK, types.NutritionResponse{Nutrition: nutrition})
}

func (h *RecipeHandler) ListSaved(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipes, err := h.saved.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, opDefault, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	saved, err := h.saved.Save(c.Request.Context(), userID, req.Recipe, req.ServingSize)
	if err != nil {
		respondError(c, h.logger, opDefault, err)
		return
	}

	h.track(c, models.EventRecipeSave, map[string]interface{}{
		"title":    req.Recipe.Title,
		"dietType": string(req.Recipe.DietType),
	})

	c.JSON(http.StatusCreated, saved)
}

func (h *RecipeHandler) DeleteSaved(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	if err := h.saved.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.logger, opDefault, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
