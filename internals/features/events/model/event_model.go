package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "asistenciapp_backend/internals/features/users/user/model"
)

// EventModel representa la tabla events. Los eventos no se editan ni se
// eliminan; el set de asistentes solo crece.
type EventModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"not null" json:"date"`
	OrganizerID uuid.UUID `gorm:"type:uuid;not null" json:"organizer_id"`

	Organizer *userModel.UserModel  `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	Attendees []userModel.UserModel `gorm:"many2many:event_attendees;joinForeignKey:EventID;joinReferences:UserID" json:"attendees,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (EventModel) TableName() string {
	return "events"
}

func (e *EventModel) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Validate: nombre y fecha son obligatorios
func (e *EventModel) Validate() error {
	if e.Name == "" {
		return errors.New("el nombre del evento es obligatorio")
	}
	if e.Date.IsZero() {
		return errors.New("la fecha del evento es obligatoria")
	}
	return nil
}
