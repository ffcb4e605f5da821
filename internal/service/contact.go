package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dishtail/backend/internal/metrics"
	"github.com/dishtail/backend/internal/models"
	"github.com/dishtail/backend/internal/types"
)

const (
	maxContactName    = 100
	maxContactEmail   = 255
	maxContactSubject = 200
	maxContactMessage = 5000
)

var (
	contactEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	htmlEscaper         = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	)
)

// EscapeHTML escapes the five HTML-significant characters.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// ContactMeta carries request details recorded with a message
type ContactMeta struct {
	UserID    *uuid.UUID
	UserAgent string
}

// ContactService validates contact form submissions and relays them to the
// site admin. db is optional; when set every submission is recorded.
type ContactService struct {
	db         *gorm.DB
	sender     EmailSender
	from       string
	adminEmail string
	logger     *zap.Logger
}

func NewContactService(db *gorm.DB, sender EmailSender, from, adminEmail string, logger *zap.Logger) *ContactService {
	return &ContactService{
		db:         db,
		sender:     sender,
		from:       from,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// ValidateContact checks a trimmed submission. Checks run in a fixed order so
// the first failing rule determines the message.
func ValidateContact(req types.ContactRequest) error {
	if req.Name == "" || req.Email == "" || req.Subject == "" || req.Message == "" {
		return NewValidationError("All fields are required")
	}
	if utf8.RuneCountInString(req.Name) > maxContactName ||
		utf8.RuneCountInString(req.Email) > maxContactEmail ||
		utf8.RuneCountInString(req.Subject) > maxContactSubject ||
		utf8.RuneCountInString(req.Message) > maxContactMessage {
		return NewValidationError("Field length exceeds maximum allowed")
	}
	if strings.ContainsAny(req.Name, "\r\n") || strings.ContainsAny(req.Subject, "\r\n") {
		return NewValidationError("Name and subject must be a single line")
	}
	if !contactEmailPattern.MatchString(req.Email) {
		return NewValidationError("Invalid email format")
	}
	return nil
}

func trimContact(req types.ContactRequest) types.ContactRequest {
	return types.ContactRequest{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
}

// RenderContactEmail builds the admin notification with every field escaped
func RenderContactEmail(req types.ContactRequest, from, to string) EmailMessage {
	safeName := EscapeHTML(req.Name)
	safeEmail := EscapeHTML(req.Email)
	safeSubject := EscapeHTML(req.Subject)
	safeMessage := EscapeHTML(req.Message)

	html := fmt.Sprintf(`
<h2>New Contact Form Submission</h2>
<p><strong>From:</strong> %s (%s)</p>
<p><strong>Subject:</strong> %s</p>
<hr />
<h3>Message:</h3>
<p style="white-space: pre-wrap;">%s</p>
<hr />
<p style="color: #666; font-size: 12px;">
  This message was sent from the Dishtail contact form.
  You can reply directly to this email to respond to %s.
</p>
`, safeName, safeEmail, safeSubject, safeMessage, safeName)

	return EmailMessage{
		From:    from,
		To:      []string{to},
		ReplyTo: req.Email,
		Subject: "[Dishtail Contact] " + safeSubject,
		HTML:    html,
	}
}

// Send validates and relays a submission. A validation failure never
// reaches the sender.
func (s *ContactService) Send(ctx context.Context, req types.ContactRequest, meta ContactMeta) error {
	req = trimContact(req)
	if err := ValidateContact(req); err != nil {
		return err
	}
	if s.adminEmail == "" {
		return fmt.Errorf("contact recipient is not configured")
	}

	sendErr := s.sender.Send(ctx, RenderContactEmail(req, s.from, s.adminEmail))

	record := &models.ContactMessage{
		UserID:    meta.UserID,
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Provider:  s.sender.Name(),
		Status:    models.ContactStatusSent,
		UserAgent: meta.UserAgent,
	}
	if sendErr != nil {
		record.Status = models.ContactStatusFailed
		record.Error = sendErr.Error()
	}
	s.record(ctx, record)
	metrics.ContactEmailsTotal.WithLabelValues(s.sender.Name(), record.Status).Inc()

	if sendErr != nil {
		s.logger.Error("Failed to send contact email", zap.String("provider", s.sender.Name()), zap.Error(sendErr))
		return sendErr
	}

	s.logger.Info("Contact email sent", zap.String("provider", s.sender.Name()), zap.String("subject", req.Subject))
	return nil
}

func (s *ContactService) record(ctx context.Context, record *models.ContactMessage) {
	if s.db == nil {
		return
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		s.logger.Warn("Failed to record contact message", zap.Error(err))
	}
}

// ListMessages returns recorded submissions, newest first
func (s *ContactService) ListMessages(ctx context.Context, filters *models.ContactMessageFilters) ([]*models.ContactMessage, error) {
	if s.db == nil {
		return []*models.ContactMessage{}, nil
	}

	query := s.db.WithContext(ctx)
	limit := 50
	if filters != nil {
		if filters.Status != "" {
			query = query.Where("status = ?", filters.Status)
		}
		if filters.Limit > 0 && filters.Limit <= 200 {
			limit = filters.Limit
		}
		if filters.Offset > 0 {
			query = query.Offset(filters.Offset)
		}
	}

	var messages []*models.ContactMessage
	if err := query.Order("created_at DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return messages, nil
}
