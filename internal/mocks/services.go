package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dishtail/backend/internal/models"
	"github.com/dishtail/backend/internal/service"
	"github.com/dishtail/backend/internal/types"
)

// MockRecipeSearchService is a mock implementation of IRecipeSearchService
type MockRecipeSearchService struct {
	mock.Mock
}

func (m *MockRecipeSearchService) Search(ctx context.Context, req types.SearchRequest) ([]models.Recipe, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

// MockNutritionService is a mock implementation of INutritionService
type MockNutritionService struct {
	mock.Mock
}

func (m *MockNutritionService) Analyze(ctx context.Context, req types.NutritionRequest) (*models.NutritionData, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NutritionData), args.Error(1)
}

// MockContactService is a mock implementation of IContactService
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Send(ctx context.Context, req types.ContactRequest, meta service.ContactMeta) error {
	args := m.Called(ctx, req, meta)
	return args.Error(0)
}

func (m *MockContactService) ListMessages(ctx context.Context, filters *models.ContactMessageFilters) ([]*models.ContactMessage, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContactMessage), args.Error(1)
}

// MockSavedRecipeService is a mock implementation of ISavedRecipeService
type MockSavedRecipeService struct {
	mock.Mock
}

func (m *MockSavedRecipeService) Save(ctx context.Context, userID uuid.UUID, recipe models.Recipe, servingSize int) (*models.SavedRecipe, error) {
	args := m.Called(ctx, userID, recipe, servingSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavedRecipe), args.Error(1)
}

func (m *MockSavedRecipeService) List(ctx context.Context, userID uuid.UUID) ([]models.SavedRecipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavedRecipe), args.Error(1)
}

func (m *MockSavedRecipeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockAnalyticsService is a mock implementation of IAnalyticsService
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Track(ctx context.Context, req types.TrackEventRequest, userID *uuid.UUID) string {
	args := m.Called(ctx, req, userID)
	return args.String(0)
}

func (m *MockAnalyticsService) Summary(ctx context.Context, dateRange service.DateRange) (*service.AnalyticsSummary, error) {
	args := m.Called(ctx, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalyticsSummary), args.Error(1)
}

func (m *MockAnalyticsService) Export(ctx context.Context, dateRange service.DateRange) (*service.ExportResult, error) {
	args := m.Called(ctx, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}

// MockAuthService is a mock implementation of IAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

// MockChatCompleter is a mock implementation of ChatCompleter
type MockChatCompleter struct {
	mock.Mock
}

func (m *MockChatCompleter) Complete(ctx context.Context, operation string, messages []service.Message) (string, error) {
	args := m.Called(ctx, operation, messages)
	return args.String(0), args.Error(1)
}

// MockEmailSender is a mock implementation of EmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Name() string {
	return "mock"
}

func (m *MockEmailSender) Send(ctx context.Context, msg service.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockObjectStore is a mock implementation of ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) PutObject(ctx context.Context, objectKey string, body []byte, contentType string) error {
	args := m.Called(ctx, objectKey, body, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expiration)
	return args.String(0), args.Error(1)
}
