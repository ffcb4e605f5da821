package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dishtail/backend/internal/service"
)

// operation selects the client-facing wording for upstream failures
type operation int

const (
	opDefault operation = iota
	opSearch
	opNutrition
	opContact
)

type upstreamMessages struct {
	paymentRequired string
	rateLimited     string
	failed          string
}

var operationMessages = map[operation]upstreamMessages{
	opSearch: {
		paymentRequired: "No credits available. Please add credits to your Lovable AI workspace to continue using recipe search.",
		rateLimited:     "Too many requests. Please try again in a moment.",
		failed:          "Failed to search recipes",
	},
	opNutrition: {
		paymentRequired: "Payment required. Please add credits.",
		rateLimited:     "Rate limit exceeded. Please try again later.",
		failed:          "Failed to analyze nutrition",
	},
}

const errInvalidBody = "Invalid request body"

// respondError maps a service error to a status and a JSON {error} body.
func respondError(c *gin.Context, logger *zap.Logger, op operation, err error) {
	var validation *service.ValidationError
	var upstream *service.UpstreamError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
		return
	case errors.As(err, &upstream):
		msgs, known := operationMessages[op]
		switch {
		case known && upstream.StatusCode == http.StatusPaymentRequired:
			c.JSON(http.StatusPaymentRequired, gin.H{"error": msgs.paymentRequired})
			return
		case known && upstream.StatusCode == http.StatusTooManyRequests:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": msgs.rateLimited})
			return
		case known:
			logger.Error("AI gateway error",
				zap.Int("status", upstream.StatusCode),
				zap.String("body", upstream.Body),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgs.failed})
			return
		}
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	case errors.Is(err, service.ErrExportDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
