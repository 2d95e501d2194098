package dto

import (
	"time"

	"github.com/google/uuid"

	"asistenciapp_backend/internals/features/attendance/model"
)

// ================== RESPONSE ==================

type AttendanceUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type AttendanceEvent struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Date string    `json:"date"`
}

type AttendanceResponse struct {
	ID        uuid.UUID        `json:"id"`
	Verified  bool             `json:"verified"`
	CreatedAt string           `json:"created_at"`
	User      *AttendanceUser  `json:"user,omitempty"`
	Event     *AttendanceEvent `json:"event,omitempty"`
}

// ================ CONVERSION =================

func ToAttendanceResponse(m *model.AttendanceModel) *AttendanceResponse {
	resp := &AttendanceResponse{
		ID:        m.ID,
		Verified:  m.Verified,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
	if m.User != nil {
		resp.User = &AttendanceUser{ID: m.User.ID, Name: m.User.Name, Email: m.User.Email}
	}
	if m.Event != nil {
		resp.Event = &AttendanceEvent{
			ID:   m.Event.ID,
			Name: m.Event.Name,
			Date: m.Event.Date.Format(time.RFC3339),
		}
	}
	return resp
}

func ToAttendanceResponseList(models []model.AttendanceModel) []AttendanceResponse {
	result := make([]AttendanceResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToAttendanceResponse(&models[i]))
	}
	return result
}
