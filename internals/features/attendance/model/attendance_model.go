package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	eventModel "asistenciapp_backend/internals/features/events/model"
	userModel "asistenciapp_backend/internals/features/users/user/model"
)

// AttendanceModel representa la tabla attendance_records.
// Invariante: como máximo un registro por par (user_id, event_id); el índice
// único compuesto lo garantiza incluso bajo envíos concurrentes. Un registro
// sin evento (event_id NULL) queda fuera del índice, igual que en Postgres
// los NULL no colisionan entre sí.
// Los registros son inmutables: no hay update ni delete.
type AttendanceModel struct {
	ID      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_user_event" json:"user_id"`
	EventID *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_attendance_user_event" json:"event_id,omitempty"`

	// ¿El probe coincidió byte a byte con la imagen de referencia al crearse?
	Verified bool `gorm:"not null;default:false" json:"verified"`

	User  *userModel.UserModel   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Event *eventModel.EventModel `gorm:"foreignKey:EventID" json:"event,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AttendanceModel) TableName() string {
	return "attendance_records"
}

func (a *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
