package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"asistenciapp_backend/internals/features/attendance/model"
	eventModel "asistenciapp_backend/internals/features/events/model"
	authService "asistenciapp_backend/internals/features/users/auth/service"
	userModel "asistenciapp_backend/internals/features/users/user/model"
	helper "asistenciapp_backend/internals/helpers"
)

var (
	ErrEventNotFound     = errors.New("evento no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrAlreadyRegistered = errors.New("ya has registrado tu asistencia a este evento")
	ErrNoReferenceImage  = errors.New("no tienes imagen de rostro registrada")
)

// RegisterSimple crea un registro de asistencia sin verificación facial.
// Registro y alta en el set de asistentes van en la misma transacción.
func RegisterSimple(db *gorm.DB, userID, eventID uuid.UUID) (*model.AttendanceModel, error) {
	return createRecord(db, userID, eventID, false)
}

// RegisterWithFace crea un registro de asistencia comparando el probe con la
// imagen de referencia del usuario. Si no coinciden, el registro SE CREA
// igualmente con verified=false: la asistencia es optimista y la verificación
// solo informa al llamador.
func RegisterWithFace(db *gorm.DB, userID, eventID uuid.UUID, probe []byte) (*model.AttendanceModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if len(user.FaceImage) == 0 {
		return nil, ErrNoReferenceImage
	}

	normalized, err := helper.NormalizeFaceImage(probe)
	if err != nil {
		return nil, err
	}

	verified := helper.MatchFaceImage(normalized, user.FaceImage)
	return createRecord(db, userID, eventID, verified)
}

// VerifyStandalone es la vía de kiosco: la identidad no se conoce de
// antemano, se busca entre todas las imágenes de referencia. Con evento, el
// invariante de registro único aplica igual que en las otras vías.
func VerifyStandalone(db *gorm.DB, probe []byte, eventID *uuid.UUID) (*userModel.UserModel, *model.AttendanceModel, error) {
	normalized, err := helper.NormalizeFaceImage(probe)
	if err != nil {
		return nil, nil, err
	}

	user, err := authService.FindUserByFaceImage(db, normalized)
	if err != nil {
		return nil, nil, err
	}

	if eventID != nil {
		record, err := createRecord(db, user.ID, *eventID, true)
		if err != nil {
			return user, nil, err
		}
		return user, record, nil
	}

	// Asistencia sin evento (registro suelto)
	record := &model.AttendanceModel{UserID: user.ID, Verified: true}
	if err := db.Create(record).Error; err != nil {
		return user, nil, err
	}
	return user, record, nil
}

func createRecord(db *gorm.DB, userID, eventID uuid.UUID, verified bool) (*model.AttendanceModel, error) {
	record := &model.AttendanceModel{
		UserID:   userID,
		EventID:  &eventID,
		Verified: verified,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var event eventModel.EventModel
		if err := tx.First(&event, "id = ?", eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&model.AttendanceModel{}).
			Where("user_id = ? AND event_id = ?", userID, eventID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyRegistered
		}

		if err := tx.Create(record).Error; err != nil {
			// respaldo del índice único ante envíos concurrentes
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyRegistered
			}
			return err
		}

		// Set de asistentes en la misma transacción (sin ventana de inconsistencia)
		return tx.Exec(
			`INSERT INTO event_attendees (event_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			eventID, userID,
		).Error
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListEventsForUser devuelve los eventos en cuyo set de asistentes figura el usuario
func ListEventsForUser(db *gorm.DB, userID uuid.UUID) ([]eventModel.EventModel, error) {
	var events []eventModel.EventModel
	err := db.
		Joins("JOIN event_attendees ea ON ea.event_id = events.id").
		Where("ea.user_id = ?", userID).
		Order("events.date DESC").
		Find(&events).Error
	return events, err
}

// Filter acota el listado de asistencias para reportes
type Filter struct {
	EventID *uuid.UUID
	From    *time.Time
	To      *time.Time
}

// ListAll es la vía de lectura para reportes; no muta nada
func ListAll(db *gorm.DB, f Filter) ([]model.AttendanceModel, error) {
	q := db.Preload("User").Preload("Event")
	if f.EventID != nil {
		q = q.Where("event_id = ?", *f.EventID)
	}
	if f.From != nil {
		q = q.Where("attendance_records.created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("attendance_records.created_at <= ?", *f.To)
	}

	var records []model.AttendanceModel
	err := q.Order("attendance_records.created_at DESC").Find(&records).Error
	return records, err
}
