package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/dishtail/backend/internal/mocks"
	"github.com/dishtail/backend/internal/models"
	"github.com/dishtail/backend/internal/service"
	"github.com/dishtail/backend/internal/types"
)

type recipeMocks struct {
	search    *mocks.MockRecipeSearchService
	nutrition *mocks.MockNutritionService
	saved     *mocks.MockSavedRecipeService
	analytics *mocks.MockAnalyticsService
}

func setupRecipeRouter(userID uuid.UUID) (*gin.Engine, *recipeMocks) {
	m := &recipeMocks{
		search:    new(mocks.MockRecipeSearchService),
		nutrition: new(mocks.MockNutritionService),
		saved:     new(mocks.MockSavedRecipeService),
		analytics: new(mocks.MockAnalyticsService),
	}
	handler := NewRecipeHandler(m.search, m.nutrition, m.saved, m.analytics, zap.NewNop())

	r := gin.New()
	r.POST("/functions/v1/search-recipes", handler.SearchRecipes)
	r.POST("/functions/v1/analyze-nutrition", handler.AnalyzeNutrition)

	protected := r.Group("/api/v1")
	if userID != uuid.Nil {
		protected.Use(SetUserIDInContext(userID))
	}
	handler.RegisterRoutes(protected)
	return r, m
}

func sampleRecipe() models.Recipe {
	return models.Recipe{
		Title:        "Tomato Soup",
		Description:  "Simple and warm",
		Ingredients:  []string{"tomato", "onion"},
		Instructions: []string{"Chop", "Simmer"},
		PrepTime:     "25 minutes",
		DietType:     models.DietVegan,
		IsHealthy:    true,
	}
}

func TestSearchRecipes(t *testing.T) {
	t.Run("returns ranked recipes", func(t *testing.T) {
		r, m := setupRecipeRouter(uuid.Nil)
		req := types.SearchRequest{Ingredients: []string{"tomato"}, ServingSize: 2}
		m.search.On("Search", mock.Anything, req).Return([]models.Recipe{sampleRecipe()}, nil)

		w := PerformRequest(r, http.MethodPost, "/functions/v1/search-recipes", req, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		recipes := decodeBody(t, w)["recipes"].([]interface{})
		assert.Len(t, recipes, 1)
		assert.Equal(t, "Tomato Soup", recipes[0].(map[string]interface{})["title"])
		m.analytics.AssertNotCalled(t, "Track", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		r, m := setupRecipeRouter(uuid.Nil)
		m.search.On("Search", mock.Anything, mock.Anything).Return([]models.Recipe{}, nil)

		w := PerformRequest(r, http.MethodPost, "/functions/v1/search-recipes", types.SearchRequest{Ingredients: []string{"x"}}, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"recipes":[]}`, w.Body.String())
	})

	t.Run("tracks the search when a session is sent", func(t *testing.T) {
		r, m := setupRecipeRouter(uuid.Nil)
		m.search.On("Search", mock.Anything, mock.Anything).Return([]models.Recipe{sampleRecipe()}, nil)
		m.analytics.On("Track", mock.Anything, mock.MatchedBy(func(req types.TrackEventRequest) bool {
			return req.EventType == models.EventRecipeSearch &&
				req.SessionID == "session_1_abc" &&
				req.EventData["resultCount"] == 1
		}), (*uuid.UUID)(nil)).Return("session_1_abc")

		w := PerformRequest(r, http.MethodPost, "/functions/v1/search-recipes",
			types.SearchRequest{Ingredients: []string{"tomato"}},
			map[string]string{SessionHeader: "session_1_abc"})

		assert.Equal(t, http.StatusOK, w.Code)
		m.analytics.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		r, m := setupRecipeRouter(uuid.Nil)

		w := PerformRequest(r, http.MethodPost, "/functions/v1/search-recipes", "{not json", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, errInvalidBody, decodeBody(t, w)["error"])
		m.search.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("missing ingredients", func(t *testing.T) {
		r, m := setupRecipeRouter(uuid.Nil)
		m.search.On("Search", mock.Anything, mock.Anything).
			Return(nil, service.NewValidationError("Please provide ingredients"))

		w := PerformRequest(r, http.MethodPost, "/functions/v1/search-recipes", map[string]interface{}{"ingredients": []string{}}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Please provide ingredients", decodeBody(t, w)["error"])
	})

	t.Run("gateway out of credits", func(t *testing.T) {
		r, m := setupRecipeRouter(uuid.Nil)
		m.search.On("Search", mock.Anything, mock.Anything).
			Return(nil, &service.UpstreamError{StatusCode: http.StatusPaymentRequired})

		w := PerformRequest(r, http.MethodPost, "/functions/v1/search-recipes", types.SearchRequest{Ingredients: []string{"x"}}, nil)

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
	})
}

func TestAnalyzeNutrition(t *testing.T) {
	t.Run("returns the analysis", func(t *testing.T) {
		r, m := setupRecipeRouter(uuid.Nil)
		nutrition := &models.NutritionData{Calories: "320 kcal", Summary: "Light"}
		m.nutrition.On("Analyze", mock.Anything, mock.MatchedBy(func(req types.NutritionRequest) bool {
			return req.Recipe.Title == "Tomato Soup" && req.ServingSize == 4
		})).Return(nutrition, nil)

		w := PerformRequest(r, http.MethodPost, "/functions/v1/analyze-nutrition",
			types.NutritionRequest{Recipe: sampleRecipe(), ServingSize: 4}, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "320 kcal", body["nutrition"].(map[string]interface{})["calories"])
	})

	t.Run("gateway throttled", func(t *testing.T) {
		r, m := setupRecipeRouter(uuid.Nil)
		m.nutrition.On("Analyze", mock.Anything, mock.Anything).
			Return(nil, &service.UpstreamError{StatusCode: http.StatusTooManyRequests})

		w := PerformRequest(r, http.MethodPost, "/functions/v1/analyze-nutrition",
			types.NutritionRequest{Recipe: sampleRecipe()}, nil)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "Rate limit exceeded. Please try again later.", decodeBody(t, w)["error"])
	})
}

func TestSavedRecipes(t *testing.T) {
	userID := uuid.New()

	t.Run("requires a user", func(t *testing.T) {
		r, _ := setupRecipeRouter(uuid.Nil)

		w := PerformRequest(r, http.MethodGet, "/api/v1/saved-recipes", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("lists", func(t *testing.T) {
		r, m := setupRecipeRouter(userID)
		m.saved.On("List", mock.Anything, userID).Return([]models.SavedRecipe{{ID: uuid.New(), UserID: userID, Title: "Tomato Soup"}}, nil)

		w := PerformRequest(r, http.MethodGet, "/api/v1/saved-recipes", nil, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody(t, w)["recipes"], 1)
	})

	t.Run("saves", func(t *testing.T) {
		r, m := setupRecipeRouter(userID)
		recipe := sampleRecipe()
		m.saved.On("Save", mock.Anything, userID, recipe, 3).
			Return(&models.SavedRecipe{ID: uuid.New(), UserID: userID, Title: recipe.Title, ServingSize: 3}, nil)

		w := PerformRequest(r, http.MethodPost, "/api/v1/saved-recipes",
			types.SaveRecipeRequest{Recipe: recipe, ServingSize: 3}, nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Tomato Soup", decodeBody(t, w)["title"])
	})

	t.Run("rejects an incomplete recipe", func(t *testing.T) {
		r, m := setupRecipeRouter(userID)
		m.saved.On("Save", mock.Anything, userID, mock.Anything, mock.Anything).
			Return(nil, service.NewValidationError("Recipe title is required"))

		w := PerformRequest(r, http.MethodPost, "/api/v1/saved-recipes", types.SaveRecipeRequest{}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("deletes", func(t *testing.T) {
		r, m := setupRecipeRouter(userID)
		id := uuid.New()
		m.saved.On("Delete", mock.Anything, userID, id).Return(nil)

		w := PerformRequest(r, http.MethodDelete, "/api/v1/saved-recipes/"+id.String(), nil, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, id.String(), decodeBody(t, w)["id"])
	})

	t.Run("delete of another user's recipe", func(t *testing.T) {
		r, m := setupRecipeRouter(userID)
		m.saved.On("Delete", mock.Anything, userID, mock.Anything).Return(service.ErrNotFound)

		w := PerformRequest(r, http.MethodDelete, "/api/v1/saved-recipes/"+uuid.NewString(), nil, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		r, _ := setupRecipeRouter(userID)

		w := PerformRequest(r, http.MethodDelete, "/api/v1/saved-recipes/not-a-uuid", nil, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		r, m := setupRecipeRouter(userID)
		m.saved.On("List", mock.Anything, userID).Return(nil, errors.New("connection refused"))

		w := PerformRequest(r, http.MethodGet, "/api/v1/saved-recipes", nil, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
