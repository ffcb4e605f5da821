package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dishtail/backend/internal/metrics"
	"github.com/dishtail/backend/internal/models"
	"github.com/dishtail/backend/internal/types"
)

const operationNutrition = "analyze_nutrition"

// NutritionService estimates nutrition for a recipe through the model
type NutritionService struct {
	llm            ChatCompleter
	maxServingSize int
	logger         *zap.Logger
}

func NewNutritionService(llm ChatCompleter, maxServingSize int, logger *zap.Logger) *NutritionService {
	return &NutritionService{
		llm:            llm,
		maxServingSize: maxServingSize,
		logger:         logger,
	}
}

// Analyze returns the model's nutrition estimate. When the reply holds no
// usable JSON object a placeholder carrying the raw reply is returned.
func (s *NutritionService) Analyze(ctx context.Context, req types.NutritionRequest) (*models.NutritionData, error) {
	if strings.TrimSpace(req.Recipe.Title) == "" || len(req.Recipe.Ingredients) == 0 {
		return nil, NewValidationError("Please provide a recipe with a title and ingredients")
	}
	servingSize := ClampServingSize(req.ServingSize, s.maxServingSize)

	s.logger.Info("Analyzing nutrition", zap.String("title", req.Recipe.Title), zap.Int("serving_size", servingSize))

	var nutrition *models.NutritionData
	content, err := s.llm.Complete(ctx, operationNutrition, buildNutritionMessages(req.Recipe, servingSize))
	if err == nil {
		nutrition, err = ParseNutrition(content)
	}
	if err != nil {
		var malformed *MalformedResponseError
		if !errors.As(err, &malformed) {
			return nil, fmt.Errorf("failed to analyze nutrition: %w", err)
		}
		metrics.MalformedResponsesTotal.WithLabelValues(operationNutrition, malformed.Kind).Inc()
		s.logger.Warn("Failed to parse nutrition data", zap.Error(err))
		return models.PlaceholderNutrition(content), nil
	}

	s.logger.Info("Nutrition analysis complete", zap.String("title", req.Recipe.Title))
	return nutrition, nil
}
