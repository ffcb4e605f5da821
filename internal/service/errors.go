package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrMissingAPIKey      = errors.New("AI API key is not configured")
	ErrExportDisabled     = errors.New("analytics export storage is not configured")
)

// ValidationError is a client mistake; its message is safe to return as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// UpstreamError is a non-2xx answer from the AI gateway.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("AI gateway returned status %d", e.StatusCode)
}

// Malformed response kinds
const (
	MalformedNotJSON        = "not_json"
	MalformedNotArray       = "not_array"
	MalformedNoValidRecords = "no_valid_records"
	MalformedNoJSONObject   = "no_json_object"
	MalformedNoChoices      = "no_choices"
)

// MalformedResponseError means the model replied but the content could not
// be turned into the expected shape.
type MalformedResponseError struct {
	Kind string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed model response (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("malformed model response (%s)", e.Kind)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
