package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dishtail/backend/internal/models"
	"github.com/dishtail/backend/internal/service"
	"github.com/dishtail/backend/internal/testhelpers"
	"github.com/dishtail/backend/internal/types"
)

func setupAuthService(t *testing.T) *service.AuthService {
	db := testhelpers.SetupSQLiteDatabase(t)
	return service.NewAuthService(db, service.AuthOptions{
		JWTSecret:   "test-secret",
		Expiration:  time.Hour,
		BCryptCost:  bcrypt.MinCost,
		AdminEmails: []string{"Admin@Dishtail.app"},
	}, zap.NewNop())
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Cook@Example.com ", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "cook@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.False(t, claims.IsAdmin())

	_, _, err = svc.Register(ctx, "cook@example.com", "other-pass")
	assert.ErrorIs(t, err, service.ErrUserExists)

	loggedIn, token, err := svc.Login(ctx, "COOK@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(ctx, "cook@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthServiceAdminAllowList(t *testing.T) {
	svc := setupAuthService(t)

	user, token, err := svc.Register(context.Background(), "admin@dishtail.app", "secret123")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
}

func TestAuthServiceValidateToken(t *testing.T) {
	svc := setupAuthService(t)

	sign := func(secret string, expiresAt time.Time) string {
		claims := &types.TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expiresAt)},
			UserID:           uuid.New(),
			Role:             models.RoleUser,
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return signed
	}

	_, err := svc.ValidateToken(sign("test-secret", time.Now().Add(time.Hour)))
	assert.NoError(t, err)

	_, err = svc.ValidateToken(sign("other-secret", time.Now().Add(time.Hour)))
	assert.Error(t, err)

	_, err = svc.ValidateToken(sign("test-secret", time.Now().Add(-time.Minute)))
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
