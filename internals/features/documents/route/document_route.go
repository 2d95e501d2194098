package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "asistenciapp_backend/internals/features/documents/controller"
	notifService "asistenciapp_backend/internals/features/notifications/service"
)

// DocumentRoutes monta el almacén de documentos (todo protegido)
func DocumentRoutes(protected fiber.Router, db *gorm.DB, notify *notifService.Dispatcher) {
	documentController := controller.NewDocumentController(db, notify)

	protected.Post("/documents", documentController.Upload)
	protected.Get("/documents", documentController.List)
	protected.Get("/documents/:id/download", documentController.Download)
	protected.Delete("/documents/:id", documentController.Delete)
}
