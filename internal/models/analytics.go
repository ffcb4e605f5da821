package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Known analytics event types.
const (
	EventPageView          = "page_view"
	EventRecipeSearch      = "recipe_search"
	EventRecipeView        = "recipe_view"
	EventRecipeSave        = "recipe_save"
	EventNutritionAnalysis = "nutrition_analysis"
)

// JSONMap stores a free-form JSON object.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for JSONMap: %T", value)
	}

	return json.Unmarshal(bytes, m)
}

// AnalyticsEvent is an append-only row in site_analytics.
type AnalyticsEvent struct {
	ID        uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	EventType string     `gorm:"size:64;not null;index" json:"event_type"`
	EventData JSONMap    `gorm:"type:jsonb" json:"event_data"`
	SessionID string     `gorm:"size:64;not null;index" json:"session_id"`
	UserID    *uuid.UUID `gorm:"type:varchar(36)" json:"user_id,omitempty"`
	PagePath  string     `gorm:"size:2048" json:"page_path"`
	UserAgent string     `gorm:"size:1024" json:"user_agent"`
	Referrer  *string    `gorm:"size:2048" json:"referrer,omitempty"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

func (AnalyticsEvent) TableName() string {
	return "site_analytics"
}

func (e *AnalyticsEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.EventData == nil {
		e.EventData = JSONMap{}
	}
	return nil
}
