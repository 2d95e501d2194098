package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "asistenciapp_backend/internals/features/users/auth/controller"
	rateLimiter "asistenciapp_backend/internals/middlewares"
)

// AuthRoutes monta los endpoints públicos de inicio de sesión.
// Base: /api/users
func AuthRoutes(public fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	public.Post("/users/login", rateLimiter.LoginRateLimiter(), authController.Login)
	public.Post("/users/login-facial", rateLimiter.LoginRateLimiter(), authController.LoginFacial)
}
