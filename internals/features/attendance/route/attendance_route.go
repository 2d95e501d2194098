package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "asistenciapp_backend/internals/features/attendance/controller"
	notifService "asistenciapp_backend/internals/features/notifications/service"
)

// KioskAttendanceRoutes monta el verify público del kiosco: la identidad
// sale de la imagen, no del token.
func KioskAttendanceRoutes(public fiber.Router, db *gorm.DB, notify *notifService.Dispatcher) {
	attendanceController := controller.NewAttendanceController(db, notify)

	public.Post("/attendance/verify", attendanceController.VerifyStandalone)
}

// AttendanceRoutes monta el ledger de asistencias tras autenticación
func AttendanceRoutes(protected fiber.Router, db *gorm.DB, notify *notifService.Dispatcher) {
	attendanceController := controller.NewAttendanceController(db, notify)

	protected.Post("/events/:id/attend", attendanceController.Attend)
	protected.Post("/events/:id/attend-facial", attendanceController.AttendFacial)

	protected.Get("/attendance/events", attendanceController.GetUserEvents)
	protected.Get("/attendance", attendanceController.GetAllAttendance)
}
