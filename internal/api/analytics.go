package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dishtail/backend/internal/middleware"
	"github.com/dishtail/backend/internal/service"
	"github.com/dishtail/backend/internal/types"
)

// AnalyticsHandler accepts browser events and serves the admin dashboard
type AnalyticsHandler struct {
	analyticsService service.IAnalyticsService
	logger           *zap.Logger
}

func NewAnalyticsHandler(analyticsService service.IAnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// RegisterAdminRoutes mounts the dashboard routes on an admin-only group
func (h *AnalyticsHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	analytics := router.Group("/analytics")
	{
		analytics.GET("", h.Summary)
		analytics.POST("/export", h.Export)
	}
}

// TrackEvent stores one event. Tracking never fails the caller, so any
// well-formed body is answered with 202 and the session id used.
func (h *AnalyticsHandler) TrackEvent(c *gin.Context) {
	var req types.TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.UserAgent = c.Request.UserAgent()

	sessionID := h.analyticsService.Track(c.Request.Context(), req, middleware.UserIDPtr(c))
	c.JSON(http.StatusAccepted, gin.H{"sessionId": sessionID})
}

func (h *AnalyticsHandler) Summary(c *gin.Context) {
	dateRange, err := service.ParseDateRange(c.Query("range"))
	if err != nil {
		respondError(c, h.logger, opDefault, err)
		return
	}

	summary, err := h.analyticsService.Summary(c.Request.Context(), dateRange)
	if err != nil {
		respondError(c, h.logger, opDefault, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Export uploads the range's events to object storage and returns a link
func (h *AnalyticsHandler) Export(c *gin.Context) {
	dateRange, err := service.ParseDateRange(c.Query("range"))
	if err != nil {
		respondError(c, h.logger, opDefault, err)
		return
	}

	result, err := h.analyticsService.Export(c.Request.Context(), dateRange)
	if err != nil {
		respondError(c, h.logger, opDefault, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
