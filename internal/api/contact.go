package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dishtail/backend/internal/middleware"
	"github.com/dishtail/backend/internal/models"
	"github.com/dishtail/backend/internal/service"
	"github.com/dishtail/backend/internal/types"
)

type ContactHandler struct {
	contactService service.IContactService
	logger         *zap.Logger
}

func NewContactHandler(contactService service.IContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// RegisterRoutes mounts the admin listing; the group must already require
// an admin.
func (h *ContactHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/contact-messages", h.ListMessages)
}

// SendContactEmail relays a contact form submission to the site admin
func (h *ContactHandler) SendContactEmail(c *gin.Context) {
	var req types.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	meta := service.ContactMeta{
		UserID:    middleware.UserIDPtr(c),
		UserAgent: c.Request.UserAgent(),
	}
	if err := h.contactService.Send(c.Request.Context(), req, meta); err != nil {
		respondError(c, h.logger, opContact, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListMessages lists recorded submissions (admin only)
func (h *ContactHandler) ListMessages(c *gin.Context) {
	filters := &models.ContactMessageFilters{}
	if err := c.ShouldBindQuery(filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	messages, err := h.contactService.ListMessages(c.Request.Context(), filters)
	if err != nil {
		respondError(c, h.logger, opDefault, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
