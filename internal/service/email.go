package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dishtail/backend/config"
)

// EmailMessage is a rendered HTML email
type EmailMessage struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// NewEmailSender picks a sender from config. Without an explicit provider it
// prefers Resend, then SMTP, and falls back to logging the message.
func NewEmailSender(cfg config.EmailConfig, logger *zap.Logger) EmailSender {
	provider := cfg.Provider
	if provider == "" {
		switch {
		case cfg.ResendAPIKey != "":
			provider = "resend"
		case cfg.SMTPHost != "":
			provider = "smtp"
		default:
			provider = "log"
		}
	}

	switch provider {
	case "resend":
		return NewResendSender(cfg.ResendAPIKey, cfg.ResendURL)
	case "smtp":
		return &SMTPSender{
			host:     cfg.SMTPHost,
			port:     cfg.SMTPPort,
			username: cfg.SMTPUsername,
			password: cfg.SMTPPassword,
		}
	default:
		logger.Warn("No email provider configured, contact messages will only be logged")
		return &LogSender{logger: logger}
	}
}

// ResendSender delivers through the Resend HTTP API
type ResendSender struct {
	apiKey string
	apiURL string
	client *http.Client
}

func NewResendSender(apiKey, apiURL string) *ResendSender {
	if apiURL == "" {
		apiURL = "https://api.resend.com/emails"
	}
	return &ResendSender{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *ResendSender) Name() string { return "resend" }

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (s *ResendSender) Send(ctx context.Context, msg EmailMessage) error {
	payload, err := json.Marshal(resendRequest{
		From:    msg.From,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	var apiErr struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		return fmt.Errorf("%s", apiErr.Message)
	}
	return fmt.Errorf("failed to send email: status %d", resp.StatusCode)
}

var headerBreaks = strings.NewReplacer("\r", "", "\n", "")

// headerValue keeps a value on a single header line
func headerValue(value string) string {
	return headerBreaks.Replace(value)
}

// SMTPSender delivers with net/smtp PLAIN auth
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
}

func (s *SMTPSender) Name() string { return "smtp" }

func (s *SMTPSender) Send(ctx context.Context, msg EmailMessage) error {
	from, err := mail.ParseAddress(msg.From)
	if err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", headerValue(strings.Join(msg.To, ", ")))
	fmt.Fprintf(&b, "From: %s\r\n", headerValue(msg.From))
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", headerValue(msg.ReplyTo))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", headerValue(msg.Subject)))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(msg.HTML)
	b.WriteString("\r\n")

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	if err := smtp.SendMail(addr, auth, from.Address, msg.To, []byte(b.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// LogSender writes the email to the log instead of delivering it
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Name() string { return "log" }

func (s *LogSender) Send(ctx context.Context, msg EmailMessage) error {
	s.logger.Info("Email not delivered, no provider configured",
		zap.Strings("to", msg.To),
		zap.String("reply_to", msg.ReplyTo),
		zap.String("subject", msg.Subject),
		zap.String("html", msg.HTML),
	)
	return nil
}
