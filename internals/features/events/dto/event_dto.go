package dto

import (
	"time"

	"github.com/google/uuid"

	"asistenciapp_backend/internals/features/events/model"
	userDto "asistenciapp_backend/internals/features/users/user/dto"
)

// ================== REQUEST ==================

type CreateEventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"` // RFC3339 o YYYY-MM-DD
}

// ParseDate acepta RFC3339 o fecha simple
func (r *CreateEventRequest) ParseDate() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, r.Date); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", r.Date)
}

// ================== RESPONSE ==================

type EventResponse struct {
	ID            uuid.UUID              `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Date          string                 `json:"date"`
	Organizer     *userDto.UserResponse  `json:"organizer,omitempty"`
	Attendees     []userDto.UserResponse `json:"attendees"`
	AttendeeCount int                    `json:"attendee_count"`
}

// ================ CONVERSION =================

func ToEventResponse(m *model.EventModel) *EventResponse {
	resp := &EventResponse{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Date:          m.Date.Format(time.RFC3339),
		Attendees:     userDto.ToUserResponseList(m.Attendees),
		AttendeeCount: len(m.Attendees),
	}
	if m.Organizer != nil {
		resp.Organizer = userDto.ToUserResponse(m.Organizer)
	}
	return resp
}

func ToEventResponseList(models []model.EventModel) []EventResponse {
	result := make([]EventResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToEventResponse(&models[i]))
	}
	return result
}
