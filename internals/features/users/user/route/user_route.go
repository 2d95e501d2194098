package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"asistenciapp_backend/internals/constants"
	notifService "asistenciapp_backend/internals/features/notifications/service"
	controller "asistenciapp_backend/internals/features/users/user/controller"
	rateLimiter "asistenciapp_backend/internals/middlewares"
	authMw "asistenciapp_backend/internals/middlewares/auth"
)

// PublicUserRoutes monta el registro abierto, con limiter propio
func PublicUserRoutes(public fiber.Router, db *gorm.DB, notify *notifService.Dispatcher) {
	userController := controller.NewUserController(db, notify)

	public.Post("/users/register", rateLimiter.RegisterRateLimiter(), userController.Register)
}

// UserRoutes monta la gestión de usuarios tras autenticación
func UserRoutes(protected fiber.Router, db *gorm.DB, notify *notifService.Dispatcher) {
	userController := controller.NewUserController(db, notify)

	// 🔒 Listado solo para administradores
	protected.Get("/users",
		authMw.OnlyRoles("Solo un administrador puede listar usuarios", constants.RoleAdmin),
		userController.GetAllUsers)

	// 🔒 Edición y borrado: el propio usuario o un admin
	protected.Put("/users/:id", authMw.SelfOrAdmin("id"), userController.UpdateUser)
	protected.Delete("/users/:id", authMw.SelfOrAdmin("id"), userController.DeleteUser)
}
