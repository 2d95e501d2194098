package dto

import (
	"time"

	"github.com/google/uuid"

	"asistenciapp_backend/internals/features/documents/model"
)

// ================== RESPONSE ==================

// DocumentResponse: metadatos sin el blob
type DocumentResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Tags        []string  `json:"tags"`
	UploadedBy  uuid.UUID `json:"uploaded_by"`
	CreatedAt   string    `json:"created_at"`
}

// ================ CONVERSION =================

func ToDocumentResponse(m *model.DocumentModel) *DocumentResponse {
	return &DocumentResponse{
		ID:          m.ID,
		Title:       m.Title,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		Size:        m.Size,
		Tags:        m.Tags,
		UploadedBy:  m.UploadedBy,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}

func ToDocumentResponseList(models []model.DocumentModel) []DocumentResponse {
	result := make([]DocumentResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToDocumentResponse(&models[i]))
	}
	return result
}
