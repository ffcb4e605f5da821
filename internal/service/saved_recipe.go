package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dishtail/backend/internal/models"
)

// SavedRecipeService stores recipe snapshots per user
type SavedRecipeService struct {
	db             *gorm.DB
	maxServingSize int
	logger         *zap.Logger
}

func NewSavedRecipeService(db *gorm.DB, maxServingSize int, logger *zap.Logger) *SavedRecipeService {
	return &SavedRecipeService{
		db:             db,
		maxServingSize: maxServingSize,
		logger:         logger,
	}
}

func (s *SavedRecipeService) Save(ctx context.Context, userID uuid.UUID, recipe models.Recipe, servingSize int) (*models.SavedRecipe, error) {
	if strings.TrimSpace(recipe.Title) == "" {
		return nil, NewValidationError("Recipe title is required")
	}
	if len(recipe.Ingredients) == 0 || len(recipe.Instructions) == 0 {
		return nil, NewValidationError("Recipe ingredients and instructions are required")
	}

	saved := models.NewSavedRecipe(userID, recipe, ClampServingSize(servingSize, s.maxServingSize))
	if err := s.db.WithContext(ctx).Create(saved).Error; err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	s.logger.Info("Recipe saved", zap.String("user_id", userID.String()), zap.String("title", saved.Title))
	return saved, nil
}

// List returns the user's saved recipes, newest first
func (s *SavedRecipeService) List(ctx context.Context, userID uuid.UUID) ([]models.SavedRecipe, error) {
	recipes := []models.SavedRecipe{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}
	return recipes, nil
}

// Delete removes one of the user's saved recipes. Rows owned by someone else
// are reported as not found.
func (s *SavedRecipeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.SavedRecipe{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete saved recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
