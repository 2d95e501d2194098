package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"asistenciapp_backend/internals/constants"
	controller "asistenciapp_backend/internals/features/reports/controller"
	authMw "asistenciapp_backend/internals/middlewares/auth"
)

// ReportRoutes monta las exportaciones de asistencia, solo para administradores
func ReportRoutes(protected fiber.Router, db *gorm.DB) {
	reportController := controller.NewReportController(db)

	reports := protected.Group("/reports",
		authMw.OnlyRoles("Solo un administrador puede generar reportes", constants.RoleAdmin))

	reports.Get("/attendance.xlsx", reportController.ExportExcel)
	reports.Get("/attendance.pdf", reportController.ExportPDF)
	reports.Get("/attendance.csv", reportController.ExportCSV)
}
