package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"asistenciapp_backend/internals/constants"
	controller "asistenciapp_backend/internals/features/notifications/controller"
	authMw "asistenciapp_backend/internals/middlewares/auth"
)

// NotificationRoutes monta la bandeja de notificaciones (todo protegido).
// Las rutas fijas van antes que las de :id para que Fiber no las capture.
func NotificationRoutes(protected fiber.Router, db *gorm.DB) {
	notificationController := controller.NewNotificationController(db)

	protected.Get("/notifications", notificationController.GetUserNotifications)
	protected.Get("/notifications/unread-count", notificationController.GetUnreadCount)
	protected.Put("/notifications/mark-all-read", notificationController.MarkAllAsRead)
	protected.Put("/notifications/:id/read", notificationController.MarkAsRead)
	protected.Delete("/notifications/:id", notificationController.DeleteNotification)

	// 🔒 Difusión manual, solo admin
	protected.Post("/notifications",
		authMw.OnlyRoles("Solo un administrador puede enviar notificaciones", constants.RoleAdmin),
		notificationController.CreateNotification)
}
