package types

import (
	"github.com/dishtail/backend/internal/models"
)

// SearchRequest is the body of the recipe search function
type SearchRequest struct {
	Ingredients []string `json:"ingredients"`
	Cuisine     string   `json:"cuisine"`
	ServingSize int      `json:"servingSize"`
}

// SearchResponse wraps ranked recipes
type SearchResponse struct {
	Recipes []models.Recipe `json:"recipes"`
}

// NutritionRequest is the body of the nutrition analysis function
type NutritionRequest struct {
	Recipe      models.Recipe `json:"recipe"`
	ServingSize int           `json:"servingSize"`
}

// NutritionResponse wraps the analysis
type NutritionResponse struct {
	Nutrition *models.NutritionData `json:"nutrition"`
}

// ContactRequest is the body of the contact email function
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// TrackEventRequest records one analytics event from the browser
type TrackEventRequest struct {
	EventType string                 `json:"eventType" binding:"required"`
	EventData map[string]interface{} `json:"eventData"`
	SessionID string                 `json:"sessionId"`
	PagePath  string                 `json:"pagePath"`
	Referrer  *string                `json:"referrer"`
	UserAgent string                 `json:"-"`
}

// SaveRecipeRequest stores a suggestion for the current user
type SaveRecipeRequest struct {
	Recipe      models.Recipe `json:"recipe"`
	ServingSize int           `json:"servingSize"`
}

// AuthRequest is used by both register and login
type AuthRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// TokenResponse carries a signed JWT
type TokenResponse struct {
	Token string `json:"token"`
}
