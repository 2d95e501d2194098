package auth

import (
	"github.com/gofiber/fiber/v2"

	"asistenciapp_backend/internals/constants"
	helper "asistenciapp_backend/internals/helpers"
)

// OnlyRoles deja pasar solo a los roles indicados
func OnlyRoles(customForbiddenMessage string, allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(string)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "No autenticado")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		if customForbiddenMessage == "" {
			customForbiddenMessage = "Acceso denegado"
		}
		return helper.JsonError(c, fiber.StatusForbidden, customForbiddenMessage)
	}
}

// SelfOrAdmin permite la operación al propio usuario (:param == user_id) o a un admin
func SelfOrAdmin(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		role, _ := c.Locals("user_role").(string)

		if role == constants.RoleAdmin || (userID != "" && userID == c.Params(param)) {
			return c.Next()
		}
		return helper.JsonError(c, fiber.StatusForbidden, "Solo puedes modificar tu propia información")
	}
}
