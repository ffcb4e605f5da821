package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dishtail/backend/config"
	"github.com/dishtail/backend/internal/metrics"
)

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to an OpenAI-compatible chat completions API
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// LLMService talks to the AI gateway
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
	logger *zap.Logger
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg config.AIConfig, logger *zap.Logger) *LLMService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &LLMService{
		apiKey: cfg.APIKey,
		apiURL: strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions",
		model:  cfg.Model,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Complete sends one chat completion and returns the first choice's content.
// operation labels logs and metrics. A reply without choices is a
// *MalformedResponseError so callers can degrade like any unusable reply.
func (s *LLMService) Complete(ctx context.Context, operation string, messages []Message) (string, error) {
	if s.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	jsonData, err := json.Marshal(ChatRequest{Model: s.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	start := time.Now()
	resp, err := s.client.Do(req)
	metrics.LLMRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(operation, "error").Inc()
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(operation, "error").Inc()
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	metrics.LLMRequestsTotal.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Error("AI gateway error",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		s.logger.Warn("AI gateway reply has no choices", zap.String("operation", operation))
		return "", &MalformedResponseError{Kind: MalformedNoChoices}
	}

	s.logger.Debug("AI gateway reply",
		zap.String("operation", operation),
		zap.Duration("latency", time.Since(start)),
		zap.Int("content_length", len(result.Choices[0].Message.Content)),
	)

	return result.Choices[0].Message.Content, nil
}
