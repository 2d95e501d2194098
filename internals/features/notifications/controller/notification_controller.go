package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"asistenciapp_backend/internals/features/notifications/dto"
	"asistenciapp_backend/internals/features/notifications/service"
	helper "asistenciapp_backend/internals/helpers"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// 🟢 GET /api/notifications?unread=true
func (ctrl *NotificationController) GetUserNotifications(c *fiber.Ctx) error {
	userID, err := ctrl.currentUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "No autenticado")
	}

	onlyUnread := c.Query("unread") == "true"
	notifs, err := service.GetUserNotifications(ctrl.DB, userID, onlyUnread)
	if err != nil {
		log.Printf("[ERROR] Error al listar notificaciones: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al obtener las notificaciones")
	}
	return helper.JsonList(c, "ok", dto.ToNotificationResponseList(notifs))
}

// 🟢 GET /api/notifications/unread-count
func (ctrl *NotificationController) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := ctrl.currentUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "No autenticado")
	}

	count, err := service.GetUnreadCount(ctrl.DB, userID)
	if err != nil {
		log.Printf("[ERROR] Error al contar no leídas: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al contar las notificaciones")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"count": count})
}

// 🟢 PUT /api/notifications/:id/read
func (ctrl *NotificationController) MarkAsRead(c *fiber.Ctx) error {
	userID, err := ctrl.currentUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "No autenticado")
	}
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID de notificación no válido")
	}

	notif, err := service.MarkAsRead(ctrl.DB, notifID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Notificación no encontrada")
		}
		log.Printf("[ERROR] Error al marcar como leída: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al actualizar la notificación")
	}
	return helper.JsonUpdated(c, "Notificación marcada como leída", dto.ToNotificationResponse(notif))
}

// 🟢 PUT /api/notifications/mark-all-read
func (ctrl *NotificationController) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := ctrl.currentUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "No autenticado")
	}

	modified, err := service.MarkAllAsRead(ctrl.DB, userID)
	if err != nil {
		log.Printf("[ERROR] Error al marcar todas: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al actualizar las notificaciones")
	}
	return helper.JsonUpdated(c, "Todas las notificaciones marcadas como leídas", fiber.Map{
		"modified_count": modified,
	})
}

// 🟢 DELETE /api/notifications/:id
func (ctrl *NotificationController) DeleteNotification(c *fiber.Ctx) error {
	userID, err := ctrl.currentUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "No autenticado")
	}
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID de notificación no válido")
	}

	deleted, err := service.DeleteNotification(ctrl.DB, notifID, userID)
	if err != nil {
		log.Printf("[ERROR] Error al eliminar notificación: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al eliminar la notificación")
	}
	if !deleted {
		return helper.JsonError(c, fiber.StatusNotFound, "Notificación no encontrada")
	}
	return helper.JsonDeleted(c, "Notificación eliminada", nil)
}

// 🟢 POST /api/notifications (solo admin): difusión manual
func (ctrl *NotificationController) CreateNotification(c *fiber.Ctx) error {
	var req dto.CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición no válido")
	}
	if req.Title == "" || req.Message == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Título y mensaje son requeridos")
	}

	params := service.CreateParams{
		Title:         req.Title,
		Message:       req.Message,
		Type:          req.Type,
		ExpiresInDays: 30,
	}

	var count int
	var err error
	switch {
	case req.ToAllUsers:
		count, err = service.NotifyAllUsers(ctrl.DB, params, nil)
	case len(req.UserIDs) > 0:
		count, err = service.CreateBulk(ctrl.DB, req.UserIDs, params)
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "Debes especificar destinatarios (userIds o toAllUsers)")
	}
	if err != nil {
		log.Printf("[ERROR] Error al crear notificaciones: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al crear las notificaciones")
	}

	return helper.JsonCreated(c, "Notificaciones creadas", fiber.Map{"count": count})
}

func (ctrl *NotificationController) currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("user_id").(string)
	return uuid.Parse(raw)
}
