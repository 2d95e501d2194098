package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "asistenciapp_backend/internals/features/attendance/route"
	documentRoute "asistenciapp_backend/internals/features/documents/route"
	eventRoute "asistenciapp_backend/internals/features/events/route"
	notificationRoute "asistenciapp_backend/internals/features/notifications/route"
	notifService "asistenciapp_backend/internals/features/notifications/service"
	reportRoute "asistenciapp_backend/internals/features/reports/route"
	authRoute "asistenciapp_backend/internals/features/users/auth/route"
	userRoute "asistenciapp_backend/internals/features/users/user/route"
	authMw "asistenciapp_backend/internals/middlewares/auth"
)

var startTime = time.Now()

// SetupRoutes monta todas las rutas de la aplicación.
// Las rutas públicas se registran ANTES de crear el grupo protegido: el
// middleware de sesión se monta como Use sobre /api en el momento de crear
// el grupo y alcanzaría todo lo registrado después.
func SetupRoutes(app *fiber.App, db *gorm.DB, notify *notifService.Dispatcher) {
	BaseRoutes(app, db)

	// 🔓 Público
	public := app.Group("/api")
	authRoute.AuthRoutes(public, db)
	userRoute.PublicUserRoutes(public, db, notify)
	attendanceRoute.KioskAttendanceRoutes(public, db, notify)

	// 🔒 Protegido
	protected := app.Group("/api", authMw.AuthMiddleware(db))
	userRoute.UserRoutes(protected, db, notify)
	eventRoute.EventRoutes(protected, db)
	attendanceRoute.AttendanceRoutes(protected, db, notify)
	notificationRoute.NotificationRoutes(protected, db)
	documentRoute.DocumentRoutes(protected, db, notify)
	reportRoute.ReportRoutes(protected, db)
}
