package service

import (
	"errors"

	"gorm.io/gorm"

	"asistenciapp_backend/internals/features/users/user/model"
	helper "asistenciapp_backend/internals/helpers"
)

var ErrNoFaceMatch = errors.New("no coincide ninguna imagen registrada")

// FindUserByFaceImage busca entre todos los usuarios con imagen de referencia
// una que sea idéntica byte a byte a la imagen normalizada recibida.
// Devuelve ErrNoFaceMatch si ninguna coincide.
func FindUserByFaceImage(db *gorm.DB, normalizedProbe []byte) (*model.UserModel, error) {
	var users []model.UserModel
	if err := db.Where("face_image IS NOT NULL").Find(&users).Error; err != nil {
		return nil, err
	}

	for i := range users {
		if helper.MatchFaceImage(normalizedProbe, users[i].FaceImage) {
			return &users[i], nil
		}
	}
	return nil, ErrNoFaceMatch
}
