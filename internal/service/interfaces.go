package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dishtail/backend/internal/models"
	"github.com/dishtail/backend/internal/types"
)

// ChatCompleter sends one chat completion and returns the reply text
type ChatCompleter interface {
	Complete(ctx context.Context, operation string, messages []Message) (string, error)
}

// IRecipeSearchService defines the interface for ingredient-based recipe search
type IRecipeSearchService interface {
	Search(ctx context.Context, req types.SearchRequest) ([]models.Recipe, error)
}

// INutritionService defines the interface for nutrition analysis
type INutritionService interface {
	Analyze(ctx context.Context, req types.NutritionRequest) (*models.NutritionData, error)
}

// IContactService defines the interface for the contact form relay
type IContactService interface {
	Send(ctx context.Context, req types.ContactRequest, meta ContactMeta) error
	ListMessages(ctx context.Context, filters *models.ContactMessageFilters) ([]*models.ContactMessage, error)
}

// ISavedRecipeService defines the interface for a user's saved recipes
type ISavedRecipeService interface {
	Save(ctx context.Context, userID uuid.UUID, recipe models.Recipe, servingSize int) (*models.SavedRecipe, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.SavedRecipe, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// IAnalyticsService defines the interface for site analytics
type IAnalyticsService interface {
	Track(ctx context.Context, req types.TrackEventRequest, userID *uuid.UUID) string
	Summary(ctx context.Context, dateRange DateRange) (*AnalyticsSummary, error)
	Export(ctx context.Context, dateRange DateRange) (*ExportResult, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// EmailSender delivers one rendered email
type EmailSender interface {
	Name() string
	Send(ctx context.Context, msg EmailMessage) error
}

// ObjectStore is the subset of S3 used by the analytics export
type ObjectStore interface {
	PutObject(ctx context.Context, objectKey string, body []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
}
