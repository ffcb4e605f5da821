package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dishtail/backend/internal/metrics"
	"github.com/dishtail/backend/internal/models"
	"github.com/dishtail/backend/internal/types"
)

const (
	topIngredientLimit = 10
	recentEventLimit   = 20
)

// DateRange selects the window of an analytics summary
type DateRange string

const (
	RangeToday DateRange = "today"
	RangeWeek  DateRange = "week"
	RangeMonth DateRange = "month"
	RangeAll   DateRange = "all"
)

// ParseDateRange defaults to the last week
func ParseDateRange(value string) (DateRange, error) {
	switch DateRange(strings.ToLower(strings.TrimSpace(value))) {
	case "", RangeWeek:
		return RangeWeek, nil
	case RangeToday:
		return RangeToday, nil
	case RangeMonth:
		return RangeMonth, nil
	case RangeAll:
		return RangeAll, nil
	default:
		return "", NewValidationError(fmt.Sprintf("Invalid range %q, expected today, week, month or all", value))
	}
}

// Since returns the start of the range relative to now. ok is false for all.
func (r DateRange) Since(now time.Time) (time.Time, bool) {
	switch r {
	case RangeToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case RangeWeek:
		return now.AddDate(0, 0, -7), true
	case RangeMonth:
		return now.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}

// IngredientCount is one row of the top searched ingredients
type IngredientCount struct {
	Ingredient string `json:"ingredient"`
	Count      int    `json:"count"`
}

// AnalyticsSummary aggregates site activity over a range
type AnalyticsSummary struct {
	Range                  DateRange               `json:"range"`
	TotalPageViews         int64                   `json:"totalPageViews"`
	UniqueSessions         int64                   `json:"uniqueSessions"`
	TotalSearches          int64                   `json:"totalSearches"`
	TotalRecipeSaves       int64                   `json:"totalRecipeSaves"`
	TotalNutritionAnalyses int64                   `json:"totalNutritionAnalyses"`
	TopIngredients         []IngredientCount       `json:"topIngredients"`
	RecentEvents           []models.AnalyticsEvent `json:"recentEvents"`
}

// ExportResult points at an uploaded analytics export
type ExportResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Events    int       `json:"events"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AnalyticsService records and summarises site events
type AnalyticsService struct {
	db         *gorm.DB
	store      ObjectStore
	presignTTL time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewAnalyticsService creates the service. store may be nil, which disables Export.
func NewAnalyticsService(db *gorm.DB, store ObjectStore, presignTTL time.Duration, logger *zap.Logger) *AnalyticsService {
	if presignTTL <= 0 {
		presignTTL = 15 * time.Minute
	}
	return &AnalyticsService{
		db:         db,
		store:      store,
		presignTTL: presignTTL,
		logger:     logger,
		now:        time.Now,
	}
}

const sessionAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewSessionID returns an id of the form session_<unix ms>_<7 base36 chars>
func NewSessionID(now time.Time) string {
	suffix := make([]byte, 7)
	for i := range suffix {
		suffix[i] = sessionAlphabet[rand.IntN(len(sessionAlphabet))]
	}
	return "session_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + string(suffix)
}

// Track stores one event and returns the session id it was filed under.
// Storage failures are logged and swallowed.
func (s *AnalyticsService) Track(ctx context.Context, req types.TrackEventRequest, userID *uuid.UUID) string {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = NewSessionID(s.now())
	}

	eventType := strings.TrimSpace(req.EventType)
	if eventType == "" {
		s.logger.Warn("Dropping analytics event without type", zap.String("session_id", sessionID))
		return sessionID
	}

	var referrer *string
	if req.Referrer != nil && *req.Referrer != "" {
		referrer = req.Referrer
	}

	event := &models.AnalyticsEvent{
		EventType: eventType,
		EventData: models.JSONMap(req.EventData),
		SessionID: sessionID,
		UserID:    userID,
		PagePath:  req.PagePath,
		UserAgent: req.UserAgent,
		Referrer:  referrer,
	}
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		metrics.AnalyticsEventsTotal.WithLabelValues(eventType, "dropped").Inc()
		s.logger.Warn("Analytics tracking failed", zap.String("event_type", eventType), zap.Error(err))
		return sessionID
	}

	metrics.AnalyticsEventsTotal.WithLabelValues(eventType, "stored").Inc()
	return sessionID
}

func (s *AnalyticsService) scoped(ctx context.Context, dateRange DateRange) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.AnalyticsEvent{})
	if since, ok := dateRange.Since(s.now()); ok {
		query = query.Where("created_at >= ?", since)
	}
	return query
}

func (s *AnalyticsService) countType(ctx context.Context, dateRange DateRange, eventType string) (int64, error) {
	var count int64
	if err := s.scoped(ctx, dateRange).Where("event_type = ?", eventType).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s events: %w", eventType, err)
	}
	return count, nil
}

// Summary aggregates the events inside dateRange
func (s *AnalyticsService) Summary(ctx context.Context, dateRange DateRange) (*AnalyticsSummary, error) {
	summary := &AnalyticsSummary{Range: dateRange}

	counts := []struct {
		eventType string
		target    *int64
	}{
		{models.EventPageView, &summary.TotalPageViews},
		{models.EventRecipeSearch, &summary.TotalSearches},
		{models.EventRecipeSave, &summary.TotalRecipeSaves},
		{models.EventNutritionAnalysis, &summary.TotalNutritionAnalyses},
	}
	for _, c := range counts {
		n, err := s.countType(ctx, dateRange, c.eventType)
		if err != nil {
			return nil, err
		}
		*c.target = n
	}

	if err := s.scoped(ctx, dateRange).Distinct("session_id").Count(&summary.UniqueSessions).Error; err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	var searches []models.AnalyticsEvent
	if err := s.scoped(ctx, dateRange).
		Where("event_type = ?", models.EventRecipeSearch).
		Select("event_data").
		Find(&searches).Error; err != nil {
		return nil, fmt.Errorf("failed to load search events: %w", err)
	}
	summary.TopIngredients = TopIngredients(searches, topIngredientLimit)

	summary.RecentEvents = []models.AnalyticsEvent{}
	if err := s.scoped(ctx, dateRange).
		Order("created_at DESC").
		Limit(recentEventLimit).
		Find(&summary.RecentEvents).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent events: %w", err)
	}

	return summary, nil
}

// TopIngredients counts lower-cased ingredients across search events. Ties
// are broken alphabetically.
func TopIngredients(searches []models.AnalyticsEvent, limit int) []IngredientCount {
	counts := map[string]int{}
	for _, event := range searches {
		list, ok := event.EventData["ingredients"].([]interface{})
		if !ok {
			continue
		}
		for _, item := range list {
			name, ok := item.(string)
			if !ok {
				continue
			}
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			counts[name]++
		}
	}

	top := make([]IngredientCount, 0, len(counts))
	for name, count := range counts {
		top = append(top, IngredientCount{Ingredient: name, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Ingredient < top[j].Ingredient
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top
}

// Export uploads the range's events as JSON and returns a presigned link
func (s *AnalyticsService) Export(ctx context.Context, dateRange DateRange) (*ExportResult, error) {
	if s.store == nil {
		return nil, ErrExportDisabled
	}

	var events []models.AnalyticsEvent
	if err := s.scoped(ctx, dateRange).Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	body, err := json.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal events: %w", err)
	}

	now := s.now().UTC()
	key := fmt.Sprintf("analytics/%s/%s.json", dateRange, now.Format("20060102T150405Z"))
	if err := s.store.PutObject(ctx, key, body, "application/json"); err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	url, err := s.store.GeneratePresignedURL(ctx, key, s.presignTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign export: %w", err)
	}

	s.logger.Info("Analytics exported", zap.String("key", key), zap.Int("events", len(events)))
	return &ExportResult{
		Key:       key,
		URL:       url,
		Events:    len(events),
		ExpiresAt: now.Add(s.presignTTL),
	}, nil
}
