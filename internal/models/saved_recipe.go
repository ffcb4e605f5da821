package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedRecipe is a user's stored snapshot of a suggested recipe. Rows are
// created and deleted, never updated.
type SavedRecipe struct {
	ID           uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID       uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title        string           `gorm:"not null" json:"title"`
	Description  string           `gorm:"type:text" json:"description"`
	Ingredients  JSONBStringArray `gorm:"type:jsonb;not null" json:"ingredients"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null" json:"instructions"`
	PrepTime     string           `gorm:"size:100" json:"prep_time"`
	DietType     DietType         `gorm:"size:32" json:"diet_type"`
	IsVegetarian bool             `json:"is_vegetarian"`
	IsHealthy    bool             `json:"is_healthy"`
	Source       string           `gorm:"size:255" json:"source,omitempty"`
	URL          string           `gorm:"size:2048" json:"url,omitempty"`
	ServingSize  int              `gorm:"not null;default:1" json:"serving_size"`
	CreatedAt    time.Time        `gorm:"index" json:"created_at"`
}

func (SavedRecipe) TableName() string {
	return "saved_recipes"
}

// BeforeCreate assigns the id and derives the vegetarian flag.
func (r *SavedRecipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.IsVegetarian = r.DietType.IsVegetarian()
	if r.ServingSize < 1 {
		r.ServingSize = 1
	}
	return nil
}

// NewSavedRecipe snapshots recipe for userID.
func NewSavedRecipe(userID uuid.UUID, recipe Recipe, servingSize int) *SavedRecipe {
	return &SavedRecipe{
		UserID:       userID,
		Title:        recipe.Title,
		Description:  recipe.Description,
		Ingredients:  JSONBStringArray(recipe.Ingredients),
		Instructions: JSONBStringArray(recipe.Instructions),
		PrepTime:     recipe.PrepTime,
		DietType:     recipe.DietType,
		IsHealthy:    recipe.IsHealthy,
		Source:       recipe.Source,
		URL:          recipe.URL,
		ServingSize:  servingSize,
	}
}
