package dto

import (
	"github.com/google/uuid"

	"asistenciapp_backend/internals/features/users/user/model"
)

// ================== REQUEST ==================

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ================== RESPONSE ==================

type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	HasFaceImage bool      `json:"has_face_image"`
	CreatedAt    string    `json:"created_at"`
}

// ================ CONVERSION =================

func ToUserResponse(m *model.UserModel) *UserResponse {
	return &UserResponse{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Role:         m.Role,
		HasFaceImage: len(m.FaceImage) > 0,
		CreatedAt:    m.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func ToUserResponseList(models []model.UserModel) []UserResponse {
	result := make([]UserResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToUserResponse(&models[i]))
	}
	return result
}
