package auth

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "asistenciapp_backend/internals/features/users/user/model"
	helper "asistenciapp_backend/internals/helpers"
)

// AuthMiddleware valida el token de sesión y re-resuelve al usuario en cada
// request (si el usuario fue eliminado después de emitir el token, 401).
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := helper.GetRawAccessToken(c)
		if tokenString == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "No autenticado")
		}

		claims, err := helper.ParseAccessToken(tokenString)
		if err != nil {
			log.Printf("[ERROR] Token inválido: %v", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token inválido")
		}

		if err := validateTokenExpiry(claims); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token expirado")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token inválido")
		}

		var user userModel.UserModel
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Usuario no encontrado")
			}
			log.Printf("[ERROR] DB al resolver usuario: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}

		// El rol vigente sale del registro, no del claim
		c.Locals("user_id", user.ID.String())
		c.Locals("user_role", user.Role)
		c.Locals("user_name", user.Name)

		return c.Next()
	}
}

func validateTokenExpiry(claims jwt.MapClaims) error {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return errors.New("exp ausente")
	}
	if time.Now().After(time.Unix(int64(exp), 0)) {
		return errors.New("token expirado")
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, errors.New("claim id ausente")
	}
	return uuid.Parse(raw)
}
