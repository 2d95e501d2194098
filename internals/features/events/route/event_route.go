package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"asistenciapp_backend/internals/constants"
	controller "asistenciapp_backend/internals/features/events/controller"
	authMw "asistenciapp_backend/internals/middlewares/auth"
)

// EventRoutes monta el catálogo de eventos (todo tras autenticación)
func EventRoutes(protected fiber.Router, db *gorm.DB) {
	eventController := controller.NewEventController(db)

	protected.Get("/events", eventController.GetEvents)
	protected.Post("/events",
		authMw.OnlyRoles("Solo un administrador puede crear eventos", constants.RoleAdmin),
		eventController.CreateEvent)
}
