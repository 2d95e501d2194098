package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"asistenciapp_backend/internals/constants"
	"asistenciapp_backend/internals/features/notifications/model"
)

// CreateParams agrupa los campos de una notificación nueva
type CreateParams struct {
	Title           string
	Message         string
	Type            string
	RelatedEvent    *uuid.UUID
	RelatedDocument *uuid.UUID
	RelatedUser     *uuid.UUID
	ExpiresInDays   int
}

func (p CreateParams) expiresAt() *time.Time {
	if p.ExpiresInDays <= 0 {
		return nil
	}
	t := time.Now().Add(time.Duration(p.ExpiresInDays) * 24 * time.Hour)
	return &t
}

func (p CreateParams) notifType() string {
	if p.Type == "" {
		return model.TypeGeneral
	}
	return p.Type
}

// CreateNotification crea una notificación para un destinatario
func CreateNotification(db *gorm.DB, userID uuid.UUID, p CreateParams) error {
	notif := model.NotificationModel{
		UserID:            userID,
		Title:             p.Title,
		Message:           p.Message,
		Type:              p.notifType(),
		RelatedEventID:    p.RelatedEvent,
		RelatedDocumentID: p.RelatedDocument,
		RelatedUserID:     p.RelatedUser,
		ExpiresAt:         p.expiresAt(),
	}
	return db.Create(&notif).Error
}

// CreateBulk crea la misma notificación para varios destinatarios
func CreateBulk(db *gorm.DB, userIDs []uuid.UUID, p CreateParams) (int, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	notifs := make([]model.NotificationModel, 0, len(userIDs))
	for _, id := range userIDs {
		notifs = append(notifs, model.NotificationModel{
			UserID:            id,
			Title:             p.Title,
			Message:           p.Message,
			Type:              p.notifType(),
			RelatedEventID:    p.RelatedEvent,
			RelatedDocumentID: p.RelatedDocument,
			RelatedUserID:     p.RelatedUser,
			ExpiresAt:         p.expiresAt(),
		})
	}
	if err := db.Create(&notifs).Error; err != nil {
		return 0, err
	}
	return len(notifs), nil
}

// NotifyAllUsers notifica a todos los usuarios, con exclusión opcional
func NotifyAllUsers(db *gorm.DB, p CreateParams, excludeUserID *uuid.UUID) (int, error) {
	q := db.Table("users").Select("id")
	if excludeUserID != nil {
		q = q.Where("id <> ?", *excludeUserID)
	}

	var ids []uuid.UUID
	if err := q.Scan(&ids).Error; err != nil {
		return 0, err
	}
	return CreateBulk(db, ids, p)
}

// NotifyAdmins notifica solo a los administradores
func NotifyAdmins(db *gorm.DB, p CreateParams) (int, error) {
	var ids []uuid.UUID
	if err := db.Table("users").Select("id").Where("role = ?", constants.RoleAdmin).Scan(&ids).Error; err != nil {
		return 0, err
	}
	return CreateBulk(db, ids, p)
}

// ===================== Lecturas / mutaciones del dueño =====================

// GetUserNotifications devuelve hasta 50, más recientes primero
func GetUserNotifications(db *gorm.DB, userID uuid.UUID, onlyUnread bool) ([]model.NotificationModel, error) {
	q := db.Where("user_id = ?", userID)
	if onlyUnread {
		q = q.Where("read = ?", false)
	}

	var notifs []model.NotificationModel
	err := q.Order("created_at DESC").Limit(50).Find(&notifs).Error
	return notifs, err
}

func GetUnreadCount(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&model.NotificationModel{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead marca como leída solo si pertenece al usuario
func MarkAsRead(db *gorm.DB, notificationID, userID uuid.UUID) (*model.NotificationModel, error) {
	var notif model.NotificationModel
	if err := db.First(&notif, "id = ? AND user_id = ?", notificationID, userID).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&notif).Update("read", true).Error; err != nil {
		return nil, err
	}
	notif.Read = true
	return &notif, nil
}

func MarkAllAsRead(db *gorm.DB, userID uuid.UUID) (int64, error) {
	res := db.Model(&model.NotificationModel{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}

// DeleteNotification borra solo si pertenece al usuario
func DeleteNotification(db *gorm.DB, notificationID, userID uuid.UUID) (bool, error) {
	res := db.Delete(&model.NotificationModel{}, "id = ? AND user_id = ?", notificationID, userID)
	return res.RowsAffected > 0, res.Error
}

// ===================== Barridos programados =====================

// PurgeExpired borra las notificaciones cuyo expires_at ya pasó
// (equivalente al índice TTL del almacén original)
func PurgeExpired(db *gorm.DB) (int64, error) {
	res := db.Delete(&model.NotificationModel{}, "expires_at IS NOT NULL AND expires_at < ?", time.Now())
	return res.RowsAffected, res.Error
}

// SendUpcomingEventReminders notifica los eventos que ocurren mañana
func SendUpcomingEventReminders(db *gorm.DB) (int, error) {
	now := time.Now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)
	dayAfter := tomorrow.Add(24 * time.Hour)

	var events []struct {
		ID   uuid.UUID
		Name string
	}
	if err := db.Table("events").Select("id, name").
		Where("date >= ? AND date < ?", tomorrow, dayAfter).
		Scan(&events).Error; err != nil {
		return 0, err
	}

	for _, ev := range events {
		eventID := ev.ID
		if _, err := NotifyAllUsers(db, CreateParams{
			Title:         "📅 Recordatorio de Evento",
			Message:       fmt.Sprintf("El evento %q es mañana. ¡No olvides asistir!", ev.Name),
			Type:          model.TypeEventReminder,
			RelatedEvent:  &eventID,
			ExpiresInDays: 30,
		}, nil); err != nil {
			return 0, err
		}
	}
	return len(events), nil
}
