package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	secretsDir := t.TempDir()
	t.Setenv("SECRETS_DIR", secretsDir)
	t.Setenv("DISHTAIL_APP_ENVIRONMENT", "test")
	return secretsDir
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "an explicit path that does not exist is an error")
	assert.Nil(t, cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "https://ai.gateway.lovable.dev/v1", cfg.AI.BaseURL)
	assert.Equal(t, "google/gemini-2.5-flash", cfg.AI.Model)
	assert.Equal(t, 20, cfg.Search.MaxServingSize)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiration)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "Dishtail Contact <onboarding@resend.dev>", cfg.Email.From)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoadConfigFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("DISHTAIL_SERVER_PORT", "9090")
	t.Setenv("DISHTAIL_DATABASE_DRIVER", "sqlite")
	t.Setenv("DISHTAIL_AI_MODEL", "test-model")
	t.Setenv("DISHTAIL_RATE_LIMIT_WINDOW", "30s")
	t.Setenv("DISHTAIL_AUTH_ADMIN_EMAILS", "admin@dishtail.app,ops@dishtail.app")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "test-model", cfg.AI.Model)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, []string{"admin@dishtail.app", "ops@dishtail.app"}, cfg.Auth.AdminEmails)
}

func TestLoadConfigFromFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 7000
search:
  max_serving_size: 12
email:
  provider: log
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, 12, cfg.Search.MaxServingSize)
	assert.Equal(t, "log", cfg.Email.Provider)
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	secretsDir := isolate(t)
	secrets := map[string]string{
		"db_password": "postpass",
		"jwt_secret":  "test-jwt-secret",
		"ai_api_key":  "sk-test\n",
	}
	for name, value := range secrets {
		require.NoError(t, os.WriteFile(filepath.Join(secretsDir, name), []byte(value), 0o644))
	}

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "postpass", cfg.Database.Password)
	assert.Equal(t, "test-jwt-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
}

func TestEnvironmentOverridesSecrets(t *testing.T) {
	secretsDir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "jwt_secret"), []byte("from-file"), 0o644))
	t.Setenv("DISHTAIL_AUTH_JWT_SECRET", "from-env")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
}

func TestLoadConfigReadsAPIKeyFile(t *testing.T) {
	isolate(t)
	keyFile := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(keyFile, []byte("  sk-file  "), 0o644))
	t.Setenv("DISHTAIL_AI_API_KEY_FILE", keyFile)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "sk-file", cfg.AI.APIKey)
}

func TestValidateConfigProduction(t *testing.T) {
	isolate(t)
	t.Setenv("DISHTAIL_APP_ENVIRONMENT", "production")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.jwt_secret")
	assert.Contains(t, err.Error(), "ai.api_key")
}

func TestValidateConfigRejectsUnknownProvider(t *testing.T) {
	isolate(t)
	t.Setenv("DISHTAIL_EMAIL_PROVIDER", "pigeon")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email.provider")
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, Production, ParseEnvironment("Production"))
	assert.Equal(t, CI, ParseEnvironment("ci"))
	assert.Equal(t, Development, ParseEnvironment(""))
	assert.Equal(t, Development, ParseEnvironment("staging"))
}
