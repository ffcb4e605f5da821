package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact message delivery states.
const (
	ContactStatusSent   = "sent"
	ContactStatusFailed = "failed"
)

// ContactMessage records a contact form submission and whether it was relayed.
type ContactMessage struct {
	ID        uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	UserID    *uuid.UUID `gorm:"type:varchar(36)" json:"user_id,omitempty"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Email     string     `gorm:"size:255;not null" json:"email"`
	Subject   string     `gorm:"size:200;not null" json:"subject"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	Provider  string     `gorm:"size:16" json:"provider"`
	Status    string     `gorm:"size:16;not null;index" json:"status"`
	Error     string     `gorm:"type:text" json:"error,omitempty"`
	UserAgent string     `gorm:"size:1024" json:"user_agent"`
}

// TableName returns the table name for the ContactMessage model
func (ContactMessage) TableName() string {
	return "contact_messages"
}

func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ContactMessageFilters narrows the admin listing of contact messages
type ContactMessageFilters struct {
	Status string `form:"status"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}
