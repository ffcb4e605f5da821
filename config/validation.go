package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequiredFields []string
}

var (
	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {
			RequiredFields: []string{},
		},
		Test: {
			RequiredFields: []string{},
		},
		CI: {
			RequiredFields: []string{
				"database.password",
				"auth.jwt_secret",
			},
		},
		Production: {
			RequiredFields: []string{
				"database.host",
				"database.password",
				"auth.jwt_secret",
				"ai.api_key",
				"email.admin_email",
			},
		},
	}

	validDrivers        = map[string]bool{"postgres": true, "sqlite": true}
	validEmailProviders = map[string]bool{"": true, "log": true, "resend": true, "smtp": true}
)

// fieldValues exposes the string settings that requirements can reference
func fieldValues(cfg *Config) map[string]string {
	return map[string]string{
		"database.host":     cfg.Database.Host,
		"database.password": cfg.Database.Password,
		"auth.jwt_secret":   cfg.Auth.JWTSecret,
		"ai.api_key":        cfg.AI.APIKey,
		"email.admin_email": cfg.Email.AdminEmail,
		"redis.url":         cfg.Redis.URL,
	}
}

// ValidateConfig checks the configuration against the requirements of its environment
func ValidateConfig(cfg *Config) error {
	env := cfg.Environment()
	reqs := requirements[env]
	values := fieldValues(cfg)

	var errors []string

	for _, field := range reqs.RequiredFields {
		if values[field] == "" {
			errors = append(errors, ValidationError{Field: field, Message: fmt.Sprintf("required in %s environment", env)}.Error())
		}
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errors = append(errors, ValidationError{Field: "server.port", Message: "must be between 1 and 65535"}.Error())
	}
	if !validDrivers[cfg.Database.Driver] {
		errors = append(errors, ValidationError{Field: "database.driver", Message: fmt.Sprintf("unsupported driver %q", cfg.Database.Driver)}.Error())
	}
	if !validEmailProviders[cfg.Email.Provider] {
		errors = append(errors, ValidationError{Field: "email.provider", Message: fmt.Sprintf("unsupported provider %q", cfg.Email.Provider)}.Error())
	}
	if cfg.Email.Provider == "resend" && cfg.Email.ResendAPIKey == "" {
		errors = append(errors, ValidationError{Field: "email.resend_api_key", Message: "required when provider is resend"}.Error())
	}
	if cfg.Email.Provider == "smtp" && cfg.Email.SMTPHost == "" {
		errors = append(errors, ValidationError{Field: "email.smtp_host", Message: "required when provider is smtp"}.Error())
	}
	if cfg.Search.MaxServingSize < 1 {
		errors = append(errors, ValidationError{Field: "search.max_serving_size", Message: "must be at least 1"}.Error())
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.RequestsPerWindow < 1 || cfg.RateLimit.Window <= 0) {
		errors = append(errors, ValidationError{Field: "rate_limit", Message: "requests_per_window and window must be positive"}.Error())
	}
	if cfg.Auth.JWTSecret == "" && env.IsProduction() {
		errors = append(errors, ValidationError{Field: "auth.jwt_secret", Message: "jwt_secret secret is required"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
