package model

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validate = validator.New()

// UserModel representa la tabla users
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"size:100;not null" json:"name" validate:"required,min=3,max=100"`
	Email    string    `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password string    `gorm:"not null" json:"-" validate:"required,min=6"`
	// Imagen de referencia del rostro, ya normalizada a 200x200 PNG.
	// Inmutable una vez registrada.
	FaceImage []byte    `gorm:"type:bytea" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null;default:'user'" json:"role" validate:"omitempty,oneof=user admin"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = "user"
	}
}

// Validate revisa el input contra las reglas declaradas en los tags
func (u *UserModel) Validate() error {
	u.SetDefaultValues()

	if err := validate.Struct(u); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		errorMessages := make(map[string]string)
		for _, fieldErr := range validationErrs {
			switch fieldErr.Tag() {
			case "required":
				errorMessages[fieldErr.Field()] = fieldErr.Field() + " es obligatorio."
			case "email":
				errorMessages[fieldErr.Field()] = "Formato de email no válido."
			case "min":
				errorMessages[fieldErr.Field()] = fieldErr.Field() + " debe tener al menos " + fieldErr.Param() + " caracteres."
			case "max":
				errorMessages[fieldErr.Field()] = fieldErr.Field() + " debe tener menos de " + fieldErr.Param() + " caracteres."
			case "oneof":
				errorMessages[fieldErr.Field()] = fieldErr.Field() + " debe ser uno de: " + fieldErr.Param() + "."
			default:
				errorMessages[fieldErr.Field()] = "Formato no válido."
			}
		}
		return errors.New(formatErrorMessage(errorMessages))
	}
	return err
}

func formatErrorMessage(errors map[string]string) string {
	var msg string
	for field, errorMsg := range errors {
		msg += field + ": " + errorMsg + "\n"
	}
	return msg
}
