package dto

import (
	"time"

	"github.com/google/uuid"

	"asistenciapp_backend/internals/features/notifications/model"
)

// ================== REQUEST ==================

// CreateNotificationRequest: difusión manual (solo admin).
// O toAllUsers o una lista de userIds.
type CreateNotificationRequest struct {
	Title      string      `json:"title"`
	Message    string      `json:"message"`
	Type       string      `json:"type"`
	UserIDs    []uuid.UUID `json:"userIds"`
	ToAllUsers bool        `json:"toAllUsers"`
}

// ================== RESPONSE ==================

type NotificationResponse struct {
	ID                uuid.UUID  `json:"id"`
	Title             string     `json:"title"`
	Message           string     `json:"message"`
	Type              string     `json:"type"`
	Read              bool       `json:"read"`
	RelatedEventID    *uuid.UUID `json:"related_event_id,omitempty"`
	RelatedDocumentID *uuid.UUID `json:"related_document_id,omitempty"`
	RelatedUserID     *uuid.UUID `json:"related_user_id,omitempty"`
	CreatedAt         string     `json:"created_at"`
	ExpiresAt         *string    `json:"expires_at,omitempty"`
}

// ================ CONVERSION =================

func ToNotificationResponse(m *model.NotificationModel) *NotificationResponse {
	resp := &NotificationResponse{
		ID:                m.ID,
		Title:             m.Title,
		Message:           m.Message,
		Type:              m.Type,
		Read:              m.Read,
		RelatedEventID:    m.RelatedEventID,
		RelatedDocumentID: m.RelatedDocumentID,
		RelatedUserID:     m.RelatedUserID,
		CreatedAt:         m.CreatedAt.Format(time.RFC3339),
	}
	if m.ExpiresAt != nil {
		s := m.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &s
	}
	return resp
}

func ToNotificationResponseList(models []model.NotificationModel) []NotificationResponse {
	result := make([]NotificationResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToNotificationResponse(&models[i]))
	}
	return result
}
