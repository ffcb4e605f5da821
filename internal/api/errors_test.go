package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/dishtail/backend/internal/service"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		op         operation
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "validation",
			op:         opSearch,
			err:        service.NewValidationError("Please provide ingredients"),
			wantStatus: http.StatusBadRequest,
			wantError:  "Please provide ingredients",
		},
		{
			name:       "search out of credits",
			op:         opSearch,
			err:        fmt.Errorf("failed to search recipes: %w", &service.UpstreamError{StatusCode: 402}),
			wantStatus: http.StatusPaymentRequired,
			wantError:  "No credits available. Please add credits to your Lovable AI workspace to continue using recipe search.",
		},
		{
			name:       "search throttled",
			op:         opSearch,
			err:        &service.UpstreamError{StatusCode: 429},
			wantStatus: http.StatusTooManyRequests,
			wantError:  "Too many requests. Please try again in a moment.",
		},
		{
			name:       "search gateway failure",
			op:         opSearch,
			err:        &service.UpstreamError{StatusCode: 503, Body: "down"},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to search recipes",
		},
		{
			name:       "nutrition throttled",
			op:         opNutrition,
			err:        &service.UpstreamError{StatusCode: 429},
			wantStatus: http.StatusTooManyRequests,
			wantError:  "Rate limit exceeded. Please try again later.",
		},
		{
			name:       "nutrition out of credits",
			op:         opNutrition,
			err:        &service.UpstreamError{StatusCode: 402},
			wantStatus: http.StatusPaymentRequired,
			wantError:  "Payment required. Please add credits.",
		},
		{
			name:       "nutrition gateway failure",
			op:         opNutrition,
			err:        &service.UpstreamError{StatusCode: 500},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to analyze nutrition",
		},
		{
			name:       "not found",
			op:         opDefault,
			err:        service.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "Not found",
		},
		{
			name:       "bad credentials",
			op:         opDefault,
			err:        service.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid email or password",
		},
		{
			name:       "duplicate user",
			op:         opDefault,
			err:        service.ErrUserExists,
			wantStatus: http.StatusConflict,
			wantError:  "An account with this email already exists",
		},
		{
			name:       "export disabled",
			op:         opDefault,
			err:        service.ErrExportDisabled,
			wantStatus: http.StatusServiceUnavailable,
			wantError:  service.ErrExportDisabled.Error(),
		},
		{
			name:       "anything else",
			op:         opContact,
			err:        errors.New("resend returned status 500"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "resend returned status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) {
				respondError(c, zap.NewNop(), tt.op, tt.err)
			})

			w := PerformRequest(r, http.MethodGet, "/", nil, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantError, decodeBody(t, w)["error"])
		})
	}
}
