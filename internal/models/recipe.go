package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DietType classifies a recipe by the animal products it contains.
type DietType string

const (
	DietVegan         DietType = "Vegan"
	DietVegetarian    DietType = "Vegetarian"
	DietEggetarian    DietType = "Eggetarian"
	DietNonVegetarian DietType = "Non-Vegetarian"
)

// unknownDietTier ranks any tag outside the four known diets last.
const unknownDietTier = 4

var dietTiers = map[DietType]int{
	DietVegan:         0,
	DietVegetarian:    1,
	DietEggetarian:    2,
	DietNonVegetarian: 3,
}

// Tier returns the ranking position of the diet, lower sorts first.
func (d DietType) Tier() int {
	if tier, ok := dietTiers[d]; ok {
		return tier
	}
	return unknownDietTier
}

// IsVegetarian reports whether the diet excludes meat and fish.
func (d DietType) IsVegetarian() bool {
	switch d {
	case DietVegan, DietVegetarian, DietEggetarian:
		return true
	default:
		return false
	}
}

// Recipe is a single model-generated suggestion. It is never persisted as is;
// see SavedRecipe for the stored snapshot.
type Recipe struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	PrepTime     string   `json:"prepTime"`
	DietType     DietType `json:"dietType"`
	IsHealthy    bool     `json:"isHealthy"`
	Source       string   `json:"source,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for JSONBStringArray: %T", value)
	}

	return json.Unmarshal(bytes, a)
}
