package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tipos de notificación (mismo enum que maneja el cliente)
const (
	TypeEventReminder        = "event_reminder"
	TypeAttendanceRegistered = "attendance_registered"
	TypeDocumentUploaded     = "document_uploaded"
	TypeUserCreated          = "user_created"
	TypeGeneral              = "general"
)

type NotificationModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user_read" json:"user_id"`
	Title   string    `gorm:"size:255;not null" json:"title"`
	Message string    `gorm:"type:text;not null" json:"message"`
	Type    string    `gorm:"type:varchar(30);not null;default:'general'" json:"type"`
	Read    bool      `gorm:"not null;default:false;index:idx_notifications_user_read" json:"read"`

	RelatedEventID    *uuid.UUID `gorm:"type:uuid" json:"related_event_id,omitempty"`
	RelatedDocumentID *uuid.UUID `gorm:"type:uuid" json:"related_document_id,omitempty"`
	RelatedUserID     *uuid.UUID `gorm:"type:uuid" json:"related_user_id,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt *time.Time `gorm:"index" json:"expires_at,omitempty"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (n *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
