package service

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/dishtail/backend/internal/models"
)

var (
	jsonFence  = regexp.MustCompile("```json\\n?")
	plainFence = regexp.MustCompile("```\\n?")
)

// StripCodeFences removes markdown code fences the model wraps JSON in.
func StripCodeFences(content string) string {
	cleaned := jsonFence.ReplaceAllString(content, "")
	cleaned = plainFence.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// rawRecipe mirrors the model's recipe object with lenient field types.
// Pointers distinguish a missing field from an empty one.
type rawRecipe struct {
	Title        *models.FlexString  `json:"title"`
	Description  models.FlexString   `json:"description"`
	Ingredients  *models.FlexStrings `json:"ingredients"`
	Instructions *models.FlexStrings `json:"instructions"`
	PrepTime     models.FlexString   `json:"prepTime"`
	DietType     models.FlexString   `json:"dietType"`
	IsHealthy    models.FlexBool     `json:"isHealthy"`
	Source       models.FlexString   `json:"source"`
	URL          models.FlexString   `json:"url"`
}

var errMissingFields = errors.New("missing title, ingredients or instructions")

func (r rawRecipe) toRecipe() (models.Recipe, error) {
	if r.Title == nil || strings.TrimSpace(string(*r.Title)) == "" || r.Ingredients == nil || r.Instructions == nil {
		return models.Recipe{}, errMissingFields
	}
	return models.Recipe{
		Title:        strings.TrimSpace(string(*r.Title)),
		Description:  string(r.Description),
		Ingredients:  []string(*r.Ingredients),
		Instructions: []string(*r.Instructions),
		PrepTime:     string(r.PrepTime),
		DietType:     models.DietType(strings.TrimSpace(string(r.DietType))),
		IsHealthy:    bool(r.IsHealthy),
		Source:       string(r.Source),
		URL:          string(r.URL),
	}, nil
}

// ParseRecipes turns a model reply into recipes. Individual records that
// cannot be used are dropped and logged; the call only fails when the reply
// as a whole is unusable.
func ParseRecipes(content string, logger *zap.Logger) ([]models.Recipe, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cleaned := StripCodeFences(content)

	if !json.Valid([]byte(cleaned)) {
		return nil, &MalformedResponseError{Kind: MalformedNotJSON}
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &records); err != nil {
		return nil, &MalformedResponseError{Kind: MalformedNotArray, Err: err}
	}

	recipes := make([]models.Recipe, 0, len(records))
	for i, record := range records {
		var raw rawRecipe
		if err := json.Unmarshal(record, &raw); err != nil {
			logger.Warn("Dropping unparseable recipe record", zap.Int("index", i), zap.Error(err))
			continue
		}
		recipe, err := raw.toRecipe()
		if err != nil {
			logger.Warn("Dropping incomplete recipe record", zap.Int("index", i), zap.Error(err))
			continue
		}
		recipes = append(recipes, recipe)
	}

	if len(records) > 0 && len(recipes) == 0 {
		return nil, &MalformedResponseError{Kind: MalformedNoValidRecords}
	}
	return recipes, nil
}

// ExtractJSONObject returns the text from the first '{' to the last '}'.
func ExtractJSONObject(content string) (string, bool) {
	start := strings.Index(content, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(content, "}")
	if end < start {
		return "", false
	}
	return content[start : end+1], true
}

// ParseNutrition extracts the nutrition object from a model reply.
func ParseNutrition(content string) (*models.NutritionData, error) {
	object, ok := ExtractJSONObject(content)
	if !ok {
		return nil, &MalformedResponseError{Kind: MalformedNoJSONObject}
	}

	var nutrition models.NutritionData
	if err := json.Unmarshal([]byte(object), &nutrition); err != nil {
		return nil, &MalformedResponseError{Kind: MalformedNotJSON, Err: err}
	}

	for _, list := range []*models.FlexStrings{&nutrition.Vitamins, &nutrition.Minerals, &nutrition.HealthBenefits, &nutrition.Considerations} {
		if *list == nil {
			*list = models.FlexStrings{}
		}
	}
	return &nutrition, nil
}
